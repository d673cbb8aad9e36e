// Package legacy contiene las funciones puras de saneamiento usadas por la
// importación del snapshot heredado: desescapado de comillas, normalización
// de fechas en cero y partición heurística del campo compuesto "grade".
package legacy

import (
	"regexp"
	"strings"
)

// Vocabularios fijos del campo compuesto grade. El orden de las reglas
// importa: range y condition se reconocen por patrón antes de probar las
// listas de palabras clave.
var (
	rangePattern     = regexp.MustCompile(`R-?\d+`)
	conditionPattern = regexp.MustCompile(`(\w+)-Condition`)

	conditionKeywords = []string{"New", "Unknown"}

	gradeKeywords = []string{
		"J-55", "L-80", "Seah", "P110", "Grade", "X52", "X42", "T95",
		"CP80", "Junk", "N-80", "HCP-", "DP-API", "P-110",
	}

	couplingKeywords = []string{
		"VAM", "GBCD", "BTC", "DWC/", "EUE", "GB CD", "ERW", "Vamedge",
		"PH6", "LTC", "TSH", "STC", "VA", "Ultra", "S135", "STL",
	}
)

// GradeParts es el resultado de partir el campo compuesto grade heredado.
type GradeParts struct {
	Grade     string
	Coupling  string
	Range     string
	Condition string
	Remarks   string // texto sin clasificar, para revisión manual
}

// NeedsReview indica si quedó texto sin clasificar: el registro se marca
// para revisión manual en vez de descartar el sobrante en silencio.
func (p GradeParts) NeedsReview() bool {
	return p.Remarks != ""
}

// ParseGradeField parte el campo compuesto grade del snapshot heredado en
// {grade, coupling, range, condition} por coincidencia de subcadenas contra
// vocabularios fijos. Es heurística de mejor esfuerzo, nunca rechaza: lo que
// no coincide con ningún vocabulario cae en Remarks.
func ParseGradeField(raw string) GradeParts {
	elements := strings.Split(raw, ",")
	if len(elements) == 1 {
		elements = strings.Split(raw, " ")
	}
	cleaned := make([]string, 0, len(elements))
	for _, ele := range elements {
		if ele = strings.TrimSpace(ele); ele != "" {
			cleaned = append(cleaned, ele)
		}
	}

	var parts GradeParts
	var leftover []string
	for _, element := range cleaned {
		switch {
		case rangePattern.MatchString(element):
			parts.Range = rangePattern.FindString(element)

		case conditionPattern.MatchString(element):
			parts.Condition = conditionPattern.FindStringSubmatch(element)[1]
		case containsAny(element, conditionKeywords):
			parts.Condition = element

		case containsAny(element, gradeKeywords):
			parts.Grade = element

		case containsAny(element, couplingKeywords):
			parts.Coupling = element

		default:
			leftover = append(leftover, element)
		}
	}
	parts.Remarks = strings.Join(leftover, ", ")
	return parts
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
