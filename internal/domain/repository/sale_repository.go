package repository

import (
	"github.com/shopspring/decimal"

	"github.com/inventario-pymes/pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia del agregado de venta
// (cabecera + líneas). Las líneas se mutan siempre como conjunto completo:
// el motor descarta el conjunto anterior y persiste el nuevo.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	ListAll() ([]*entity.Sale, error)
	UpdateHeader(sale *entity.Sale) error
	UpdateTotal(id string, total decimal.Decimal) error
	Delete(id string) error

	CreateLine(line *entity.SaleLine) error
	ListLines(saleID string) ([]*entity.SaleLine, error)
	ListAllLines() ([]*entity.SaleLine, error)
	DeleteLines(saleID string) error
	UpdateLineSubtotal(id string, subtotal decimal.Decimal) error
}
