package repository

import (
	"time"

	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
)

// InventoryChangeRepository define el puerto de persistencia para el ledger
// de cambios de inventario (DIP). El ledger es de solo-agregar: Delete existe
// únicamente para correcciones administrativas y dispara recálculo.
type InventoryChangeRepository interface {
	Create(change *entity.InventoryChange) error
	GetByID(id string) (*entity.InventoryChange, error)
	// ListByKey devuelve TODOS los registros de una pareja (cliente, producto),
	// sin paginar: es la entrada del recálculo de balance y de los acumulados.
	ListByKey(customerID, productID string) ([]*entity.InventoryChange, error)
	ListByCustomer(customerID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryChange, error)
	CountByProduct(productID string) (int64, error)
	Delete(id string) error
}
