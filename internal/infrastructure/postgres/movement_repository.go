package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, type, product_id, quantity, user_id, customer_id, sale_id,
		purchase_id, price, stock_before, date, reason, corrected_by, created_at, updated_at, deleted_at`

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del ledger.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, type, product_id, quantity, user_id, customer_id, sale_id,
			purchase_id, price, stock_before, date, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Type, movement.ProductID, movement.Quantity, movement.UserID,
		movement.CustomerID, movement.SaleID, movement.PurchaseID, movement.Price,
		movement.StockBefore, movement.Date, movement.Reason, movement.CreatedAt, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID (excluye soft-deleted).
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el movimiento y bloquea su fila (SELECT FOR UPDATE).
// Usado por el flujo de corrección para escribir corrected_by sin carreras.
func (r *MovementRepo) GetForUpdate(id string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`
	return r.scanOne(query, id)
}

// SetCorrectedBy marca el movimiento como corregido. Escritura única: falla
// con ErrConflict si el movimiento ya tiene corrección.
func (r *MovementRepo) SetCorrectedBy(movementID, correctionID string) error {
	query := `
		UPDATE movements SET corrected_by = $2, updated_at = now()
		WHERE id = $1 AND corrected_by IS NULL`
	tag, err := r.q.Exec(context.Background(), query, movementID, correctionID)
	if err != nil {
		return fmt.Errorf("set corrected_by: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("movimiento %s ya corregido: %w", movementID, domain.ErrConflict)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// ListBySale lista los movimientos de una venta en orden de creación.
func (r *MovementRepo) ListBySale(saleID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE sale_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`
	return r.list(query, saleID)
}

// ListByPurchase lista los movimientos de una compra en orden de creación.
func (r *MovementRepo) ListByPurchase(purchaseID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE purchase_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`
	return r.list(query, purchaseID)
}

func (r *MovementRepo) scanOne(query string, args ...any) (*entity.Movement, error) {
	var m entity.Movement
	err := scanMovement(r.q.QueryRow(context.Background(), query, args...), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row, m *entity.Movement) error {
	return row.Scan(
		&m.ID, &m.Type, &m.ProductID, &m.Quantity, &m.UserID, &m.CustomerID, &m.SaleID,
		&m.PurchaseID, &m.Price, &m.StockBefore, &m.Date, &m.Reason, &m.CorrectedBy,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
}
