package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/runnersutah/pipetrack-api/internal/domain"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
)

// SignedQuantity es la cantidad autorada de un registro del ledger: entera
// para plantillas discretas (joints), decimal para continuas (footage).
// Exactamente uno de los dos miembros debe estar poblado.
type SignedQuantity struct {
	Int     *int64
	Decimal *decimal.Decimal
}

// Validate verifica la restricción discreto/continuo contra el tipo de conteo
// de la plantilla del producto. Devuelve ErrMixedQuantityType si ambos o
// ninguno están poblados, o si el poblado no corresponde al tipo de conteo.
// Se rechaza antes de escribir: nunca se coacciona en silencio.
func (q SignedQuantity) Validate(countingType string) error {
	if (q.Int == nil) == (q.Decimal == nil) {
		return domain.ErrMixedQuantityType
	}
	switch countingType {
	case entity.CountingDiscrete:
		if q.Int == nil {
			return domain.ErrMixedQuantityType
		}
	case entity.CountingContinuous:
		if q.Decimal == nil {
			return domain.ErrMixedQuantityType
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
