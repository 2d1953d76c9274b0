package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleComprador = "comprador" // gestiona pedidos de compra
	RoleBodeguero = "bodeguero" // valida recepciones y devoluciones
	RoleVendedor  = "vendedor"  // consulta documentos de venta
)

// User representa un usuario del sistema (pertenece a una Company). También es
// el responsable de producto y el vendedor que aparece en los documentos.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
