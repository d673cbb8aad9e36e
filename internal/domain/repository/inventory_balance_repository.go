package repository

import "github.com/runnersutah/pipetrack-api/internal/domain/entity"

// InventoryBalanceRepository define el puerto de persistencia para los
// balances materializados (DIP). El ledger es la fuente de verdad; estas
// filas son derivadas y se reescriben completas en cada recálculo.
type InventoryBalanceRepository interface {
	Upsert(balance *entity.InventoryBalance) error
	Get(customerID, productID, locationID string) (*entity.InventoryBalance, error)
	ListByCustomer(customerID string) ([]*entity.InventoryBalance, error)
	ListByKey(customerID, productID string) ([]*entity.InventoryBalance, error)
	// DeleteByKey elimina las filas derivadas de una pareja (cliente,
	// producto) antes de rematerializarlas desde el ledger.
	DeleteByKey(customerID, productID string) error
}
