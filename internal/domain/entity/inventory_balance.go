package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBalance representa la fila materializada del balance actual para
// una clave (cliente, producto, rack). Existe exactamente una fila por clave
// que alguna vez tuvo registros; se recalcula completa desde el ledger en
// cada mutación, nunca se parchea incrementalmente.
type InventoryBalance struct {
	CustomerID  string
	ProductID   string
	LocationID  string
	Joints      int64
	Footage     decimal.Decimal
	LastUpdated time.Time
}
