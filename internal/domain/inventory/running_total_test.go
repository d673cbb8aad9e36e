package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/inventory"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// TestAttachRunningTotals_Vector reproduce el escenario documentado del
// reporte por producto: tres registros de abril producen los acumulados
// [12, 18, 10] en joints y [1248.3, 1921.7, 948.3] en footage.
func TestAttachRunningTotals_Vector(t *testing.T) {
	changes := []*entity.InventoryChange{
		{ID: "c", Date: day("2024-04-05"), Joints: -8, Footage: decimal.NewFromFloat(-973.4)},
		{ID: "a", Date: day("2024-04-01"), Joints: 12, Footage: decimal.NewFromFloat(1248.3)},
		{ID: "b", Date: day("2024-04-04"), Joints: 6, Footage: decimal.NewFromFloat(673.4)},
	}

	rows := inventory.AttachRunningTotals(changes)
	require.Len(t, rows, 3)

	wantJoints := []int64{12, 18, 10}
	wantFootage := []float64{1248.3, 1921.7, 948.3}
	for i, row := range rows {
		assert.Equal(t, wantJoints[i], row.RunningJoints, "fila %d", i)
		assert.True(t, row.RunningFootage.Equal(decimal.NewFromFloat(wantFootage[i])),
			"fila %d: footage acumulado = %s", i, row.RunningFootage)
	}
	// El orden resultante es por fecha ascendente, sin importar el de entrada.
	assert.Equal(t, "a", rows[0].Change.ID)
	assert.Equal(t, "b", rows[1].Change.ID)
	assert.Equal(t, "c", rows[2].Change.ID)
}

// TestAttachRunningTotals_DesempatePorID: con fechas iguales el orden es
// estable por ID, para que el reporte no cambie entre consultas.
func TestAttachRunningTotals_DesempatePorID(t *testing.T) {
	changes := []*entity.InventoryChange{
		{ID: "b", Date: day("2024-04-04"), Joints: -3, Footage: decimal.NewFromFloat(-100)},
		{ID: "a", Date: day("2024-04-04"), Joints: 5, Footage: decimal.NewFromFloat(500)},
	}
	rows := inventory.AttachRunningTotals(changes)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Change.ID)
	assert.Equal(t, int64(5), rows[0].RunningJoints)
	assert.Equal(t, int64(2), rows[1].RunningJoints)
}

func TestAttachRunningTotals_NoMutaLaEntrada(t *testing.T) {
	changes := []*entity.InventoryChange{
		{ID: "b", Date: day("2024-04-05"), Joints: 1, Footage: decimal.Zero},
		{ID: "a", Date: day("2024-04-01"), Joints: 2, Footage: decimal.Zero},
	}
	inventory.AttachRunningTotals(changes)
	assert.Equal(t, "b", changes[0].ID, "la rebanada original no debe reordenarse")
}
