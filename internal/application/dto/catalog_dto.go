package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierRequest body para crear/actualizar un proveedor.
type SupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Contact string `json:"contact" validate:"omitempty,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductRequest body para crear/actualizar un producto. El precio aquí es el
// precio de catálogo (fuente de verdad); el motor de ventas nunca acepta un
// precio enviado en la venta.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price"`
	GlobalStock int64           `json:"global_stock"`
	SupplierID  string          `json:"supplier_id" validate:"omitempty,uuid"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	GlobalStock int64           `json:"global_stock"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CustomerRequest body para crear/actualizar un cliente.
type CustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreRequest body para crear/actualizar una tienda.
type StoreRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Location string `json:"location" validate:"omitempty,max=150"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}
