package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceRow una fila del reporte de balances actuales de un cliente.
type BalanceRow struct {
	CustomerID   string          `json:"customer_id"`
	ProductID    string          `json:"product_id"`
	ProductLabel string          `json:"product_label"`
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	Joints       int64           `json:"joints"`
	Footage      decimal.Decimal `json:"footage"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// BalancesQuery parámetros del reporte de balances.
// Sort admite product | rack | last_updated | size | joints; Desc invierte
// el orden. size usa la columna oculta en milímetros del producto.
type BalancesQuery struct {
	Sort string `query:"sort" validate:"omitempty,oneof=product rack last_updated size joints"`
	Desc bool   `query:"desc"`
}

// BalancesResponse reporte de balances actuales con el estado derivado.
type BalancesResponse struct {
	CustomerID string       `json:"customer_id"`
	Status     string       `json:"status"`
	Rows       []BalanceRow `json:"rows"`
}

// HistoryQuery parámetros del historial por producto.
// Sort admite date | joints_in_out; Desc invierte el orden (para
// joints_in_out solo dentro de cada grupo).
type HistoryQuery struct {
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
	Sort string     `query:"sort" validate:"omitempty,oneof=date joints_in_out"`
	Desc bool       `query:"desc"`
}

// HistoryRow una fila del historial con sus acumulados.
type HistoryRow struct {
	ChangeResponse
	RunningJoints  int64           `json:"running_joints"`
	RunningFootage decimal.Decimal `json:"running_footage"`
}

// HistoryResponse historial de una pareja (cliente, producto) con acumulados.
type HistoryResponse struct {
	CustomerID   string          `json:"customer_id"`
	ProductID    string          `json:"product_id"`
	ProductLabel string          `json:"product_label"`
	Rows         []HistoryRow    `json:"rows"`
	TotalJoints  int64           `json:"total_joints"`
	TotalFootage decimal.Decimal `json:"total_footage"`
}
