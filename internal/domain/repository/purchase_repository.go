package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	AddToTotal(purchaseID string, delta decimal.Decimal) error
}
