package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, supplier_id, user_id, date, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.SupplierID, purchase.UserID, purchase.Date, purchase.Total,
		purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID (excluye soft-deleted).
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, supplier_id, user_id, date, total, created_at, updated_at, deleted_at
		FROM purchases WHERE id = $1 AND deleted_at IS NULL`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SupplierID, &p.UserID, &p.Date, &p.Total, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// AddToTotal ajusta el total de la compra por un delta (flujo de corrección).
func (r *PurchaseRepo) AddToTotal(purchaseID string, delta decimal.Decimal) error {
	query := `UPDATE purchases SET total = total + $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, purchaseID, delta)
	if err != nil {
		return fmt.Errorf("add to purchase total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("compra %s: %w", purchaseID, domain.ErrNotFound)
	}
	return nil
}
