package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
)

// DeriveStatus aplica la regla de estado sobre TODOS los balances del
// cliente, no solo el recién tocado: otros racks influyen en el agregado.
//
// Precedencia estricta: Invalid > Active > Inactive. Un cliente puede tener a
// la vez un rack con balance negativo (error de datos) y otro con stock
// positivo; ese cliente es Invalid, no Active.
func DeriveStatus(balances []*entity.InventoryBalance) string {
	var invalid, active bool
	for _, b := range balances {
		if b == nil {
			continue
		}
		if b.Joints < 0 || b.Footage.IsNegative() {
			invalid = true
		}
		if b.Joints > 0 && b.Footage.IsPositive() {
			active = true
		}
	}
	switch {
	case invalid:
		return entity.StatusInvalid
	case active:
		return entity.StatusActive
	default:
		return entity.StatusInactive
	}
}

// SumChanges suma todos los registros del ledger para una clave en un total
// de joints y uno de footage. El recálculo es desde cero (no incremental):
// cambia eficiencia por corrección y elimina cualquier deriva acumulada.
func SumChanges(changes []*entity.InventoryChange) (int64, decimal.Decimal) {
	var joints int64
	footage := decimal.Zero
	for _, c := range changes {
		joints += c.Joints
		footage = footage.Add(c.Footage)
	}
	return joints, footage
}
