package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldValueRequest valor de un campo al crear/actualizar un producto.
// Solo el miembro que corresponde al tipo del campo debe venir poblado; para
// campos measure se envía el texto imperial original (ej: `5 1/2"`).
type FieldValueRequest struct {
	FieldID string           `json:"field_id" validate:"required"`
	Text    *string          `json:"text,omitempty"`
	Int     *int64           `json:"int,omitempty"`
	Decimal *decimal.Decimal `json:"decimal,omitempty"`
	Choice  *string          `json:"choice,omitempty"`
	Measure *string          `json:"measure,omitempty"`
	File    *string          `json:"file,omitempty"`
}

// CreateProductRequest entrada para crear un producto de un cliente.
type CreateProductRequest struct {
	TemplateID string              `json:"template_id" validate:"required"`
	CustomerID string              `json:"customer_id" validate:"required"`
	Values     []FieldValueRequest `json:"values" validate:"dive"`
}

// UpdateProductRequest entrada para actualizar los valores de un producto.
// TemplateID y CustomerID no son editables.
type UpdateProductRequest struct {
	Values []FieldValueRequest `json:"values" validate:"required,dive"`
}

// FieldValueResponse valor resuelto de un campo en la salida.
type FieldValueResponse struct {
	FieldID   string `json:"field_id"`
	FieldName string `json:"field_name"`
	FieldType string `json:"field_type"`
	Value     any    `json:"value"`
}

// ProductResponse salida de un producto con sus valores resueltos y la
// etiqueta renderizada según el format string de la plantilla.
type ProductResponse struct {
	ID         string               `json:"id"`
	TemplateID string               `json:"template_id"`
	CustomerID string               `json:"customer_id"`
	Label      string               `json:"label"`
	Values     []FieldValueResponse `json:"values"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
