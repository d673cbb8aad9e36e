package entity

import "time"

// Estados derivados del cliente. Nunca los escribe un usuario: los recalcula
// el motor de agregación cada vez que cambia cualquiera de sus balances.
const (
	StatusActive   = "Active"   // al menos un rack con joints y footage positivos
	StatusInactive = "Inactive" // sin stock, o stock que suma exactamente cero
	StatusInvalid  = "Invalid"  // algún rack con total negativo (salió más de lo que entró)
)

// Customer representa un cliente dueño de tubería almacenada en los racks.
// Status es función pura del ledger, cacheado solo para mostrar en listados.
type Customer struct {
	ID          string
	DisplayName string
	Email       string
	Phone       string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
