package dto

import (
	"encoding/json"
	"time"
)

// TemplateFieldRequest definición de campo al crear/actualizar una plantilla.
type TemplateFieldRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=100"`
	FieldType  string          `json:"field_type" validate:"required,oneof=text int decimal choice measure static file"`
	Required   bool            `json:"required"`
	Position   int             `json:"position" validate:"min=0"`
	StaticText string          `json:"static_text,omitempty"`
	Choices    json.RawMessage `json:"choices,omitempty"`
}

// CreateTemplateRequest entrada para crear una plantilla de producto.
type CreateTemplateRequest struct {
	Name         string                 `json:"name" validate:"required,min=1,max=200"`
	FormatString string                 `json:"format_string"`
	CountingType string                 `json:"counting_type" validate:"required,oneof=discrete continuous"`
	Fields       []TemplateFieldRequest `json:"fields" validate:"required,min=1,dive"`
}

// UpdateTemplateRequest entrada para actualizar una plantilla. CountingType no
// es editable: cambiarlo invalidaría el ledger existente de sus productos.
type UpdateTemplateRequest struct {
	Name         *string                `json:"name" validate:"omitempty,min=1,max=200"`
	FormatString *string                `json:"format_string"`
	Fields       []TemplateFieldRequest `json:"fields" validate:"omitempty,min=1,dive"`
}

// TemplateFieldResponse salida de una definición de campo.
type TemplateFieldResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	FieldType  string          `json:"field_type"`
	Required   bool            `json:"required"`
	Position   int             `json:"position"`
	StaticText string          `json:"static_text,omitempty"`
	Choices    json.RawMessage `json:"choices,omitempty"`
}

// TemplateResponse salida de una plantilla con sus campos ordenados.
type TemplateResponse struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	FormatString string                  `json:"format_string"`
	CountingType string                  `json:"counting_type"`
	Fields       []TemplateFieldResponse `json:"fields"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// TemplateListResponse lista paginada de plantillas.
type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
