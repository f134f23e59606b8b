package ledger

import (
	"context"
	"fmt"

	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

// StockQuery expone lecturas del inventario que no mutan estado: consulta de
// disponibilidad, productos bajo mínimo y alertas activas. Corre sobre
// repositorios atados al pool (sin transacción ni locks).
type StockQuery struct {
	productRepo repository.ProductRepository
	alertRepo   repository.AlertRepository
}

// NewStockQuery construye el caso de uso de lectura.
func NewStockQuery(productRepo repository.ProductRepository, alertRepo repository.AlertRepository) *StockQuery {
	return &StockQuery{productRepo: productRepo, alertRepo: alertRepo}
}

// CheckStockResult resultado de la consulta de disponibilidad.
type CheckStockResult struct {
	Available    bool
	CurrentStock int
}

// CheckStock informa si hay stock para quantity unidades del producto.
// Lectura sin lock: es una sonda informativa, la verificación autoritativa
// ocurre dentro de la transacción del movimiento.
func (q *StockQuery) CheckStock(ctx context.Context, productID string, quantity int) (CheckStockResult, error) {
	if quantity < 1 {
		return CheckStockResult{}, fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	product, err := q.productRepo.GetByID(productID)
	if err != nil {
		return CheckStockResult{}, fmt.Errorf("producto %s: %w", productID, err)
	}
	if product == nil {
		return CheckStockResult{}, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return CheckStockResult{
		Available:    quantity <= product.CurrentStock,
		CurrentStock: product.CurrentStock,
	}, nil
}

// LowStockProducts lista productos con stock igual o inferior a su mínimo.
func (q *StockQuery) LowStockProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return q.productRepo.ListBelowMinimum(limit, offset)
}

// ActiveAlerts lista las alertas de stock vigentes.
func (q *StockQuery) ActiveAlerts(ctx context.Context, limit, offset int) ([]*entity.Alert, error) {
	return q.alertRepo.ListActive(limit, offset)
}
