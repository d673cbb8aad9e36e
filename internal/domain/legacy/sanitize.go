package legacy

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EpochSentinel es la fecha centinela para registros heredados con fecha en
// blanco o en cero.
var EpochSentinel = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Unescape repara las secuencias de comilla escapadas literalmente (\") que
// el volcado heredado dejó en todos los campos de texto.
func Unescape(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}

// NormalizeDate interpreta una fecha heredada YYYY-MM-DD. Fechas en blanco o
// en cero ("0000-00-00") se normalizan al centinela de época; cualquier otro
// texto no interpretable también, para no abortar la fila.
func NormalizeDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "0000-00-00" {
		return EpochSentinel
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return EpochSentinel
	}
	return t
}

// SignedQuantities convierte las columnas heredadas joints_in/joints_out y
// footage en la pareja con signo del modelo actual: entradas positivas,
// salidas negativas. Los valores no numéricos aportan cero (mejor esfuerzo
// por fila, como el resto de la importación).
func SignedQuantities(jointsIn, jointsOut, footage string) (int64, decimal.Decimal) {
	var joints int64
	compFootage := decimal.Zero

	parseFootage := func() decimal.Decimal {
		if footage == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(strings.TrimSpace(footage))
		if err != nil {
			return decimal.Zero
		}
		return d
	}

	if in := strings.TrimSpace(jointsIn); in != "" {
		if n, err := strconv.ParseInt(in, 10, 64); err == nil {
			joints = n
			compFootage = parseFootage()
		}
	} else if out := strings.TrimSpace(jointsOut); out != "" {
		if n, err := strconv.ParseInt(out, 10, 64); err == nil {
			joints = -n
			compFootage = parseFootage().Neg()
		}
	}
	return joints, compFootage
}
