package entity

import "time"

// Supplier representa un proveedor del catálogo.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
