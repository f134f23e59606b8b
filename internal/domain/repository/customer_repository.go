package repository

import "github.com/jdcampos/inventario-ledger/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
// GetByID filtra soft-deleted: un cliente eliminado no puede ser contraparte.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
}
