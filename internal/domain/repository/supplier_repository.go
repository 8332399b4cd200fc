package repository

import "github.com/inventario-pymes/pos-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}
