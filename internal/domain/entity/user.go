package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"    // personal del patio: acceso total
	RoleCustomer = "customer" // cliente: solo sus propios reportes
)

// User representa una cuenta de acceso. Los clientes tienen un usuario
// vinculado por CustomerID; el personal administrativo no.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CustomerID   string // vacío para usuarios admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
