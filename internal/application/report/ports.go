package report

// WorkbookWriter construye un libro xlsx con la cabecera corporativa (logo y
// fila de títulos en negrita) y las filas de datos. Devuelve los bytes del
// archivo listos para descarga.
type WorkbookWriter interface {
	Write(sheet string, headers []string, rows [][]any) ([]byte, error)
}
