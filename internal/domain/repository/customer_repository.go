package repository

import "github.com/inventario-pymes/pos-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia de clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
