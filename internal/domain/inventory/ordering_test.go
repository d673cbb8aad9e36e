package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/inventory"
)

func jointsOf(changes []*entity.InventoryChange) []int64 {
	out := make([]int64, len(changes))
	for i, c := range changes {
		out[i] = c.Joints
	}
	return out
}

// TestSortJointsInOut_GruposNoIntercalados: los no negativos ("in") van
// todos antes que los negativos ("out"), cada grupo ordenado por magnitud.
func TestSortJointsInOut_GruposNoIntercalados(t *testing.T) {
	changes := []*entity.InventoryChange{
		{Joints: 5}, {Joints: -3}, {Joints: 0}, {Joints: 10}, {Joints: -1},
	}
	inventory.SortJointsInOut(changes, false)
	assert.Equal(t, []int64{0, 5, 10, -1, -3}, jointsOf(changes))
}

func TestSortJointsInOut_Descendente(t *testing.T) {
	changes := []*entity.InventoryChange{
		{Joints: 5}, {Joints: -3}, {Joints: 0}, {Joints: 10}, {Joints: -1},
	}
	inventory.SortJointsInOut(changes, true)
	require.Equal(t, []int64{10, 5, 0, -3, -1}, jointsOf(changes),
		"desc invierte dentro del grupo pero nunca intercala grupos")
}

// TestSortJointsInOut_CerosQuedanConLasEntradas: las filas en cero o blanco
// pertenecen al grupo de entradas, no flotan al borde de la página.
func TestSortJointsInOut_CerosQuedanConLasEntradas(t *testing.T) {
	changes := []*entity.InventoryChange{
		{Joints: -7}, {Joints: 0}, {Joints: 0},
	}
	inventory.SortJointsInOut(changes, false)
	assert.Equal(t, []int64{0, 0, -7}, jointsOf(changes))
}
