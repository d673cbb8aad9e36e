package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordChangeRequest body para POST /api/inventory/changes.
// Exactamente una de QuantityInt/QuantityDecimal según el tipo de conteo de
// la plantilla del producto. Footage es el acompañante opcional en pies para
// registros de conteo discreto.
type RecordChangeRequest struct {
	CustomerID string    `json:"customer_id" validate:"required"`
	ProductID  string    `json:"product_id" validate:"required"`
	LocationID string    `json:"location_id" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`

	QuantityInt     *int64           `json:"quantity_int,omitempty"`
	QuantityDecimal *decimal.Decimal `json:"quantity_decimal,omitempty"`
	Footage         *decimal.Decimal `json:"footage,omitempty"`

	RR                  string `json:"rr,omitempty"`
	PO                  string `json:"po,omitempty"`
	AFE                 string `json:"afe,omitempty"`
	Carrier             string `json:"carrier,omitempty"`
	ReceivedTransferred string `json:"received_transferred,omitempty"`
	Manufacturer        string `json:"manufacturer,omitempty"`
	AttachmentID        string `json:"attachment_id,omitempty"`
}

// ZeroOutRequest body para POST /api/inventory/zero-out: genera el registro
// compensatorio que deja la pareja (cliente, producto) en cero.
type ZeroOutRequest struct {
	CustomerID string    `json:"customer_id" validate:"required"`
	ProductID  string    `json:"product_id" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
}

// ChangeResponse salida de un registro del ledger.
type ChangeResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Date       time.Time       `json:"date"`
	Joints     int64           `json:"joints"`
	Footage    decimal.Decimal `json:"footage"`

	RR                  string `json:"rr,omitempty"`
	PO                  string `json:"po,omitempty"`
	AFE                 string `json:"afe,omitempty"`
	Carrier             string `json:"carrier,omitempty"`
	ReceivedTransferred string `json:"received_transferred,omitempty"`
	Manufacturer        string `json:"manufacturer,omitempty"`
	AttachmentID        string `json:"attachment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// ChangeListResponse lista paginada de registros del ledger.
type ChangeListResponse struct {
	Items []ChangeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
