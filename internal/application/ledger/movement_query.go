package ledger

import (
	"context"
	"fmt"

	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

// MovementQuery expone la lectura del historial del ledger: movimientos por
// producto y los de una venta o compra. Solo lecturas sueltas sobre el pool.
type MovementQuery struct {
	movRepo repository.MovementRepository
}

// NewMovementQuery construye el caso de uso de lectura del historial.
func NewMovementQuery(movRepo repository.MovementRepository) *MovementQuery {
	return &MovementQuery{movRepo: movRepo}
}

// Get obtiene un movimiento por ID.
func (q *MovementQuery) Get(ctx context.Context, id string) (*entity.Movement, error) {
	movement, err := q.movRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("movimiento %s: %w", id, err)
	}
	if movement == nil {
		return nil, fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
	}
	return movement, nil
}

// History lista el historial de movimientos de un producto, paginado.
// Incluye movimientos ya corregidos: la historia nunca se reescribe.
func (q *MovementQuery) History(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	return q.movRepo.ListByProduct(productID, limit, offset)
}

// BySale lista los movimientos generados por una venta.
func (q *MovementQuery) BySale(ctx context.Context, saleID string) ([]*entity.Movement, error) {
	return q.movRepo.ListBySale(saleID)
}

// ByPurchase lista los movimientos generados por una compra.
func (q *MovementQuery) ByPurchase(ctx context.Context, purchaseID string) ([]*entity.Movement, error) {
	return q.movRepo.ListByPurchase(purchaseID)
}
