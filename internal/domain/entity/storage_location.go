package entity

import "time"

// StorageLocation representa un rack físico de almacenamiento.
// Es independiente de cliente y producto: solo un balde de colocación.
type StorageLocation struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
