package entity

import (
	"encoding/json"
	"time"
)

// Modos de conteo de una plantilla: entero discreto (joints) o medida
// decimal continua (footage). Determinan cuál campo de cantidad admite
// un registro del ledger.
const (
	CountingDiscrete   = "discrete"
	CountingContinuous = "continuous"
)

// Tipos de campo de plantilla. Los valores se guardan como unión
// discriminada por este tipo (ver FieldValue).
const (
	FieldText    = "text"
	FieldInt     = "int"
	FieldDecimal = "decimal"
	FieldChoice  = "choice"
	FieldMeasure = "measure"
	FieldStatic  = "static"
	FieldFile    = "file"
)

// ProductTemplate representa una plantilla de producto: un conjunto ordenado
// de definiciones de campo tipadas compartido por productos del mismo tipo
// (Casing, Tubing, Line Pipe, ...).
type ProductTemplate struct {
	ID           string
	Name         string
	FormatString string // representación textual, ej: {{diameter}} {{grade}}
	CountingType string // discrete | continuous
	Fields       []TemplateField
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FieldByID busca una definición de campo por su ID. Devuelve nil si no existe.
func (t *ProductTemplate) FieldByID(fieldID string) *TemplateField {
	for i := range t.Fields {
		if t.Fields[i].ID == fieldID {
			return &t.Fields[i]
		}
	}
	return nil
}

// TemplateField representa una definición de campo dentro de una plantilla.
type TemplateField struct {
	ID         string
	TemplateID string
	Name       string
	FieldType  string // text | int | decimal | choice | measure | static | file
	Required   bool
	Position   int             // orden de presentación dentro de la plantilla
	StaticText string          // texto inmutable para campos static
	Choices    json.RawMessage // arreglo JSON de opciones para campos choice
}
