package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ─────────────────────────────────────────────
// Exporter
// ─────────────────────────────────────────────

func TestExporter_EscribeCabeceraYFilas(t *testing.T) {
	exporter := NewExporter("")

	data, err := exporter.Write("Balances",
		[]string{"Product", "Rack", "Joints", "Footage"},
		[][]any{
			{`Casing 5 1/2" J-55`, "Rack 7", int64(40), 1248.3},
			{`Tubing 2 7/8" L-80`, "Yard", int64(12), 370.5},
		},
	)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Sin logo configurado la cabecera ocupa la fila 1.
	a1, err := f.GetCellValue("Balances", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Product", a1)

	b2, err := f.GetCellValue("Balances", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Rack 7", b2)

	c3, err := f.GetCellValue("Balances", "C3")
	require.NoError(t, err)
	assert.Equal(t, "12", c3)
}

func TestExporter_LogoInexistenteNoFalla(t *testing.T) {
	exporter := NewExporter("assets/no-existe.png")

	data, err := exporter.Write("Historial", []string{"Date"}, [][]any{{"2024-01-15"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue("Historial", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", a1)
}
