package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea solicitada: producto y cantidad. No hay campo de
// precio: el subtotal se calcula siempre con el precio de catálogo.
type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest body para POST /api/sales. Date en formato 2006-01-02;
// vacío = hoy.
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id" validate:"required,uuid"`
	StoreID    string            `json:"store_id" validate:"required,uuid"`
	Date       string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Lines      []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// EditSaleRequest body para PUT /api/sales/:id. La tienda no se puede cambiar;
// las líneas reemplazan por completo al conjunto anterior.
type EditSaleRequest struct {
	CustomerID string            `json:"customer_id" validate:"required,uuid"`
	Date       string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Lines      []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineResponse salida de una línea de venta.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID         string             `json:"id"`
	Date       time.Time          `json:"date"`
	CustomerID string             `json:"customer_id"`
	StoreID    string             `json:"store_id"`
	Total      decimal.Decimal    `json:"total"`
	Lines      []SaleLineResponse `json:"lines"`
}

// ReconcileResponse resumen de una corrida de reconciliación.
type ReconcileResponse struct {
	DetallesRevisados    int `json:"detalles_revisados"`
	DetallesActualizados int `json:"detalles_actualizados"`
	VentasRevisadas      int `json:"ventas_revisadas"`
	VentasActualizadas   int `json:"ventas_actualizadas"`
}
