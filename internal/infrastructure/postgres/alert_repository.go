package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una alerta nueva.
func (r *AlertRepo) Create(alert *entity.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	query := `
		INSERT INTO alerts (id, type, message, product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query, alert.ID, alert.Type, alert.Message, alert.ProductID)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// ActiveByProduct lista las alertas vigentes de un producto.
func (r *AlertRepo) ActiveByProduct(productID string) ([]*entity.Alert, error) {
	query := `
		SELECT id, type, message, product_id, created_at, updated_at, deleted_at
		FROM alerts WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`
	return r.list(query, productID)
}

// Retire da de baja una alerta (soft delete).
func (r *AlertRepo) Retire(id string) error {
	query := `UPDATE alerts SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.q.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("retire alert: %w", err)
	}
	return nil
}

// ListActive lista todas las alertas vigentes con paginación.
func (r *AlertRepo) ListActive(limit, offset int) ([]*entity.Alert, error) {
	query := `
		SELECT id, type, message, product_id, created_at, updated_at, deleted_at
		FROM alerts WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *AlertRepo) list(query string, args ...any) ([]*entity.Alert, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.ProductID, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
