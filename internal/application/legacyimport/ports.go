package legacyimport

import "context"

// LegacyRow es una fila cruda del snapshot heredado, tal cual viene de la BD
// vieja: todo texto, con sus comillas escapadas, fechas en cero y campos
// compuestos sin partir.
type LegacyRow struct {
	Kind                string // tipo de producto de la tabla origen: Casing, Tubing, ...
	Customer            string
	Rack                string
	Date                string
	JointsIn            string
	JointsOut           string
	Footage             string
	Grade               string // campo compuesto: grade/coupling/range/condition
	OutsideDiameter     string // medida imperial en texto libre
	Weight              string
	Remarks             string
	RR                  string
	PO                  string
	AFE                 string
	Carrier             string
	ReceivedTransferred string
	Manufacturer        string
}

// LegacySource lee las filas del snapshot heredado.
type LegacySource interface {
	Rows(ctx context.Context) ([]LegacyRow, error)
}
