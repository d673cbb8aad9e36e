package repository

import "github.com/runnersutah/pipetrack-api/internal/domain/entity"

// ProductTemplateRepository define el puerto de persistencia para ProductTemplate (DIP).
// Las plantillas se cargan siempre con sus campos, en orden de Position.
type ProductTemplateRepository interface {
	Create(template *entity.ProductTemplate) error
	GetByID(id string) (*entity.ProductTemplate, error)
	GetByName(name string) (*entity.ProductTemplate, error)
	List(limit, offset int) ([]*entity.ProductTemplate, error)
	Update(template *entity.ProductTemplate) error
	Delete(id string) error
}
