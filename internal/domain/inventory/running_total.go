package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
)

// RunningRow es un registro del ledger con sus totales acumulados adjuntos.
type RunningRow struct {
	Change         *entity.InventoryChange
	RunningJoints  int64
	RunningFootage decimal.Decimal
}

// AttachRunningTotals ordena los registros de una pareja (cliente, producto)
// por fecha ascendente (desempate estable por ID) y adjunta a cada fila la
// suma prefijo de joints y de footage. Se recalcula fresco en cada consulta;
// no hay caché incremental entre peticiones.
func AttachRunningTotals(changes []*entity.InventoryChange) []RunningRow {
	ordered := make([]*entity.InventoryChange, len(changes))
	copy(ordered, changes)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	rows := make([]RunningRow, 0, len(ordered))
	var joints int64
	footage := decimal.Zero
	for _, c := range ordered {
		joints += c.Joints
		footage = footage.Add(c.Footage)
		rows = append(rows, RunningRow{
			Change:         c,
			RunningJoints:  joints,
			RunningFootage: footage,
		})
	}
	return rows
}
