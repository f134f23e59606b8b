package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcampos/inventario-ledger/internal/application/ledger"
	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
)

func newStockQueryFixture() (*memStore, *ledger.StockQuery) {
	store := newMemStore()
	q := ledger.NewStockQuery(&memProductRepo{store}, &memAlertRepo{store})
	return store, q
}

func TestCheckStock_Disponible(t *testing.T) {
	store, q := newStockQueryFixture()
	store.addProduct("prod-1", "Teclado", "supp-1", decimal.NewFromInt(20), 10, 3)

	res, err := q.CheckStock(context.Background(), "prod-1", 10)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 10, res.CurrentStock)
}

func TestCheckStock_NoDisponible(t *testing.T) {
	store, q := newStockQueryFixture()
	store.addProduct("prod-1", "Teclado", "supp-1", decimal.NewFromInt(20), 4, 3)

	res, err := q.CheckStock(context.Background(), "prod-1", 5)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, 4, res.CurrentStock)
}

func TestCheckStock_CantidadInvalida(t *testing.T) {
	_, q := newStockQueryFixture()
	_, err := q.CheckStock(context.Background(), "prod-1", 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckStock_ProductoInexistente(t *testing.T) {
	_, q := newStockQueryFixture()
	_, err := q.CheckStock(context.Background(), "prod-zzz", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStockProducts_FiltraPorMinimo(t *testing.T) {
	store, q := newStockQueryFixture()
	store.addProduct("prod-a", "Teclado", "supp-1", decimal.NewFromInt(20), 10, 3)
	store.addProduct("prod-b", "Mouse", "supp-1", decimal.NewFromInt(5), 2, 3)
	store.addProduct("prod-c", "Monitor", "supp-1", decimal.NewFromInt(150), 3, 3)

	products, err := q.LowStockProducts(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "prod-b", products[0].ID)
	assert.Equal(t, "prod-c", products[1].ID, "stock igual al mínimo también cuenta")
}

func TestActiveAlerts_SoloVigentes(t *testing.T) {
	store, q := newStockQueryFixture()
	store.alerts["al-1"] = entity.Alert{ID: "al-1", Type: entity.AlertTypeLowStock, ProductID: "prod-a"}
	store.alerts["al-2"] = entity.Alert{ID: "al-2", Type: entity.AlertTypeOutOfStock, ProductID: "prod-b"}
	retired := testNow
	store.alerts["al-3"] = entity.Alert{ID: "al-3", Type: entity.AlertTypeOneUnit, ProductID: "prod-c", DeletedAt: &retired}

	alerts, err := q.ActiveAlerts(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "al-1", alerts[0].ID)
	assert.Equal(t, "al-2", alerts[1].ID)
}
