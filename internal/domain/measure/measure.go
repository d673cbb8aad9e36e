// Package measure convierte medidas imperiales de texto libre (diámetros de
// tubería heredados, ej: `Casing 5 1/2"`) a valores numéricos comparables
// para ordenar por tamaño.
package measure

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseImperial convierte una medida imperial en texto libre a pulgadas.
// Tolera pies (') como ×12 más pulgadas, fracciones (n/d) y tokens
// alfabéticos intercalados (se ignoran). Los segmentos no interpretables
// aportan cero; nunca falla: el dato heredado es sucio por naturaleza.
//
//	ParseImperial(`Casing 5 1/2"`) == 5.5
//	ParseImperial(`1' 4"`)         == 16.0
func ParseImperial(value string) float64 {
	var total float64
	for _, segment := range strings.Split(value, " ") {
		if segment == "" || isAlpha(segment) {
			continue
		}
		multiplier := 1.0
		if strings.Contains(segment, "'") {
			multiplier = 12.0
		}
		segment = strings.ReplaceAll(segment, "'", "")
		segment = strings.ReplaceAll(segment, `"`, "")

		if num, den, ok := strings.Cut(segment, "/"); ok {
			n, errN := strconv.ParseFloat(num, 64)
			d, errD := strconv.ParseFloat(den, 64)
			if errN != nil || errD != nil || d == 0 {
				continue
			}
			total += (n / d) * multiplier
			continue
		}
		f, err := strconv.ParseFloat(segment, 64)
		if err != nil {
			continue
		}
		total += f * multiplier
	}
	return total
}

// ToMillimeters convierte la medida a milímetros redondeados. Es la columna
// oculta de ordenamiento para campos de tipo measure.
func ToMillimeters(value string) int64 {
	return int64(math.Round(ParseImperial(value) * 25.4))
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}
