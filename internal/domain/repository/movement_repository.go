package repository

import "github.com/jdcampos/inventario-ledger/internal/domain/entity"

// MovementRepository define el puerto de persistencia para movimientos del ledger.
// Los movimientos son inmutables: la única mutación permitida después de crear
// es SetCorrectedBy, que se escribe una sola vez bajo el mismo lock de producto.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	GetForUpdate(id string) (*entity.Movement, error)
	SetCorrectedBy(movementID, correctionID string) error
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
	ListBySale(saleID string) ([]*entity.Movement, error)
	ListByPurchase(purchaseID string) ([]*entity.Movement, error)
}
