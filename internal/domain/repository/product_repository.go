package repository

import (
	"github.com/shopspring/decimal"

	"github.com/inventario-pymes/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia de productos.
// El precio leído aquí es la fuente autoritativa para el motor de ventas.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// List filtra por nombre normalizado (el caso de uso normaliza la búsqueda).
	List(search string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// AllPrices devuelve el precio vigente de todos los productos, indexado
	// por ID. Usado por la reconciliación para re-derivar subtotales.
	AllPrices() (map[string]decimal.Decimal, error)
}
