package entity

import "time"

// Roles de la aplicación. "usuario" solo consulta tiendas, inventario y
// reportes; "administrador" tiene acceso completo (ventas, catálogo, ajustes).
const (
	RoleUsuario       = "usuario"
	RoleAdministrador = "administrador"
)

// User representa una cuenta de acceso al sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
