package repository

import "github.com/runnersutah/pipetrack-api/internal/domain/entity"

// StorageLocationRepository define el puerto de persistencia para StorageLocation (DIP).
type StorageLocationRepository interface {
	Create(location *entity.StorageLocation) error
	GetByID(id string) (*entity.StorageLocation, error)
	GetByName(name string) (*entity.StorageLocation, error)
	List(limit, offset int) ([]*entity.StorageLocation, error)
	Update(location *entity.StorageLocation) error
	Delete(id string) error
}
