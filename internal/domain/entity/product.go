package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa tubería de un cliente, instancia de una plantilla.
// Los atributos físicos (diámetro, peso, grado, ...) viven en Values según
// las definiciones de campo de la plantilla.
type Product struct {
	ID         string
	TemplateID string
	CustomerID string // dueño único; el estado se recalcula por cliente
	Values     []FieldValue
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValueFor devuelve el valor asociado a un campo, o nil si no existe.
func (p *Product) ValueFor(fieldID string) *FieldValue {
	for i := range p.Values {
		if p.Values[i].FieldID == fieldID {
			return &p.Values[i]
		}
	}
	return nil
}

// FieldValue representa el valor de un campo de producto: unión discriminada
// por el tipo del campo. Solo el miembro correspondiente al tipo está poblado.
type FieldValue struct {
	ProductID    string
	FieldID      string
	ValueText    *string
	ValueInt     *int64
	ValueDecimal *decimal.Decimal
	ValueChoice  *string
	ValueMeasure *string // texto imperial original, ej: `5 1/2"`
	ValueFile    *string // referencia opaca al blob adjunto

	// Columna oculta para ordenar por tamaño: la medida convertida a mm.
	ValueMeasureMM *int64
}

// Value devuelve el valor poblado según el tipo de campo declarado.
// Para campos static devuelve el texto inmutable de la definición.
func (v FieldValue) Value(field TemplateField) any {
	switch field.FieldType {
	case FieldText:
		return deref(v.ValueText)
	case FieldInt:
		if v.ValueInt == nil {
			return nil
		}
		return *v.ValueInt
	case FieldDecimal:
		if v.ValueDecimal == nil {
			return nil
		}
		return *v.ValueDecimal
	case FieldChoice:
		return deref(v.ValueChoice)
	case FieldMeasure:
		return deref(v.ValueMeasure)
	case FieldStatic:
		return field.StaticText
	case FieldFile:
		return deref(v.ValueFile)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
