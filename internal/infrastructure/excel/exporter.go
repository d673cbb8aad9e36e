package excel

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/runnersutah/pipetrack-api/internal/application/report"
)

var _ report.WorkbookWriter = (*Exporter)(nil)

// Exporter genera libros xlsx con la cabecera corporativa: logo de la empresa
// en la primera fila y títulos en negrita debajo.
type Exporter struct {
	logoPath string
}

// NewExporter construye el generador. logoPath puede apuntar a un archivo
// inexistente; en ese caso el libro se genera sin logo.
func NewExporter(logoPath string) *Exporter {
	return &Exporter{logoPath: logoPath}
}

// Write construye el libro completo y devuelve sus bytes.
func (e *Exporter) Write(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerRow, err := e.writeLogo(f, sheet)
	if err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set header cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, bold); err != nil {
			return nil, fmt.Errorf("set header style: %w", err)
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return nil, fmt.Errorf("data cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("set data cell: %w", err)
			}
			if c < len(widths) {
				if n := len(fmt.Sprint(value)); n > widths[c] {
					widths[c] = n
				}
			}
		}
	}
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if w < 10 {
			w = 10
		}
		if w > 60 {
			w = 60
		}
		if err := f.SetColWidth(sheet, name, name, float64(w)+2); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeLogo inserta el logo en la fila 1 y devuelve la fila donde empieza la
// cabecera de datos. Sin logo disponible la cabecera va en la fila 1.
func (e *Exporter) writeLogo(f *excelize.File, sheet string) (int, error) {
	if e.logoPath == "" {
		return 1, nil
	}
	data, err := os.ReadFile(e.logoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("read logo: %w", err)
	}
	if err := f.SetRowHeight(sheet, 1, 100); err != nil {
		return 0, fmt.Errorf("set logo row height: %w", err)
	}
	err = f.AddPictureFromBytes(sheet, "A1", &excelize.Picture{
		Extension: filepath.Ext(e.logoPath),
		File:      data,
	})
	if err != nil {
		return 0, fmt.Errorf("insert logo: %w", err)
	}
	return 2, nil
}
