package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Price es la fuente de verdad
// para el precio de venta: nunca se toma de la entrada del cliente.
//
// GlobalStock es el contador legado a nivel de producto; la sellabilidad por
// tienda la decide el libro de stock (StockEntry), no este campo.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	GlobalStock int64
	SupplierID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
