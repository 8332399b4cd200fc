package repository

import "github.com/inventario-pymes/pos-api/internal/domain/entity"

// StockLedgerRepository define el puerto del libro de stock por
// (producto, tienda). Get y GetForUpdate devuelven nil cuando el par nunca
// fue abastecido: la ausencia de entrada es un estado distinto de cantidad 0.
//
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la transacción
// en curso; dos reservas concurrentes sobre la misma entrada se serializan
// en la capa de almacenamiento.
type StockLedgerRepository interface {
	Get(productID, storeID string) (*entity.StockEntry, error)
	GetForUpdate(productID, storeID string) (*entity.StockEntry, error)
	GetByID(id string) (*entity.StockEntry, error)
	Create(entry *entity.StockEntry) error
	SetQuantity(id string, quantity int64) error
	Delete(id string) error
	List(storeID string, limit, offset int) ([]*entity.StockEntry, error)
}
