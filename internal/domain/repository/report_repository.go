package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filas desnormalizadas para los reportes exportables. Se resuelven con
// JOINs en la capa de persistencia; los casos de uso solo las formatean.

// InventoryRow es una fila del reporte de inventario.
type InventoryRow struct {
	EntryID     string
	ProductName string
	StoreName   string
	Quantity    int64
}

// SaleRow es una fila del reporte de ventas.
type SaleRow struct {
	SaleID       string
	Date         time.Time
	Total        decimal.Decimal
	CustomerName string
}

// CustomerRow es una fila del reporte de clientes.
type CustomerRow struct {
	CustomerID string
	Name       string
	Email      string
	Phone      string
}

// SupplierRow es una fila del reporte de proveedores.
type SupplierRow struct {
	SupplierID string
	Name       string
	Contact    string
}

// SaleDetailRow es una fila del reporte de detalle de ventas.
type SaleDetailRow struct {
	LineID       string
	SaleID       string
	CustomerName string
	StoreName    string
	ProductName  string
	Quantity     int64
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
	Date         time.Time
}

// SaleDetailFilter acota el reporte de detalle de ventas. Campos en nil/""
// no filtran.
type SaleDetailFilter struct {
	From       *time.Time
	To         *time.Time
	CustomerID string
}

// ReportRepository define el puerto de lectura para los reportes.
type ReportRepository interface {
	InventoryRows() ([]InventoryRow, error)
	SaleRows() ([]SaleRow, error)
	CustomerRows() ([]CustomerRow, error)
	SupplierRows() ([]SupplierRow, error)
	SaleDetailRows(filter SaleDetailFilter) ([]SaleDetailRow, error)
}
