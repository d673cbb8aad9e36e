package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RenderLabel construye la etiqueta textual de un producto sustituyendo los
// marcadores {{nombre de campo}} del format string de la plantilla por los
// valores del producto. Marcadores sin valor se sustituyen por vacío. Si la
// plantilla no define format string, la etiqueta es el nombre de la plantilla.
func (t *ProductTemplate) RenderLabel(p *Product) string {
	if t.FormatString == "" {
		return t.Name
	}
	label := t.FormatString
	for i := range t.Fields {
		field := &t.Fields[i]
		marker := "{{" + field.Name + "}}"
		if !strings.Contains(label, marker) {
			continue
		}
		var text string
		if field.FieldType == FieldStatic {
			text = field.StaticText
		} else if v := p.ValueFor(field.ID); v != nil {
			text = formatValue(v.Value(*field))
		}
		label = strings.ReplaceAll(label, marker, text)
	}
	return strings.Join(strings.Fields(label), " ")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return fmt.Sprintf("%d", val)
	case decimal.Decimal:
		return val.String()
	}
	return fmt.Sprintf("%v", v)
}
