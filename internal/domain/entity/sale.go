package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es la cabecera de una venta. Total es un campo derivado: tras cada
// mutación confirmada cumple Total == Σ subtotal de sus líneas.
//
// La tienda es inmutable después de la creación; las ediciones liberan y
// reservan stock siempre contra la tienda original.
type Sale struct {
	ID         string
	Date       time.Time
	CustomerID string
	StoreID    string
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaleLine es una línea de venta. Subtotal captura cantidad × precio del
// producto al momento de la venta; solo la reconciliación lo vuelve a derivar
// del precio vigente.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	Subtotal  decimal.Decimal
}

// SumSubtotals devuelve la suma de subtotales de un conjunto de líneas.
func SumSubtotals(lines []*SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}
