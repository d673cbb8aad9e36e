package repository

import "github.com/runnersutah/pipetrack-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los productos se cargan siempre con sus valores de campo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Product, error)
	ListByTemplate(templateID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
