package inventory

import (
	"sort"

	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
)

// SortJointsInOut ordena registros con el criterio especial "joints in/out":
// primero el grupo de entradas (joints >= 0), después el de salidas
// (joints < 0); los grupos nunca se intercalan, así las filas en cero no
// flotan de forma impredecible hacia los bordes de página. Dentro de cada
// grupo se ordena por magnitud; desc invierte el orden interno del grupo.
func SortJointsInOut(changes []*entity.InventoryChange, desc bool) {
	sort.SliceStable(changes, func(i, j int) bool {
		bi, bj := bucket(changes[i].Joints), bucket(changes[j].Joints)
		if bi != bj {
			return bi < bj
		}
		mi, mj := magnitude(changes[i].Joints), magnitude(changes[j].Joints)
		if desc {
			return mi > mj
		}
		return mi < mj
	})
}

// bucket: 0 = entrada (no negativo), 1 = salida (negativo).
func bucket(joints int64) int {
	if joints < 0 {
		return 1
	}
	return 0
}

func magnitude(joints int64) int64 {
	if joints < 0 {
		return -joints
	}
	return joints
}
