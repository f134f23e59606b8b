package repository

import "github.com/jdcampos/inventario-ledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate debe bloquear la fila (SELECT FOR UPDATE) y solo tiene sentido
// dentro de una transacción; es el punto de serialización del ledger.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, stock int) error
	ListBelowMinimum(limit, offset int) ([]*entity.Product, error)
}
