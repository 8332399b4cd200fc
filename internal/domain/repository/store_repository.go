package repository

import "github.com/inventario-pymes/pos-api/internal/domain/entity"

// StoreRepository define el puerto de persistencia de tiendas.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	List(limit, offset int) ([]*entity.Store, error)
	Update(store *entity.Store) error
	Delete(id string) error
}
