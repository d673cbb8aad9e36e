package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryChange representa un registro del ledger: tubería que entra o sale
// de un rack. Inmutable una vez agregado; una edición se modela como borrar y
// volver a insertar. Signo positivo = recibido, negativo = transferido.
//
// Joints y Footage se guardan desnormalizados: la cantidad autorada
// (entera o decimal según el tipo de conteo de la plantilla) se valida en el
// caso de uso antes de construir la entidad.
type InventoryChange struct {
	ID         string
	CustomerID string
	ProductID  string
	LocationID string
	Date       time.Time
	Joints     int64           // conteo discreto de tramos, con signo
	Footage    decimal.Decimal // pies lineales, con signo

	// Metadatos de texto libre del recibo.
	RR                  string
	PO                  string
	AFE                 string
	Carrier             string
	ReceivedTransferred string
	Manufacturer        string
	AttachmentID        string // referencia opaca al blob; vacío = sin adjunto

	CreatedAt time.Time
	CreatedBy string
}

// String describe el registro como importación o exportación según el signo.
func (c *InventoryChange) String() string {
	if c.Joints >= 0 {
		return fmt.Sprintf("Import %sft in %d joints", c.Footage.String(), c.Joints)
	}
	return fmt.Sprintf("Export %sft in %d joints", c.Footage.Neg().String(), -c.Joints)
}
