package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
// AddToTotal existe solo para el flujo de corrección: ajusta el total por el
// delta corregido sin recalcular la venta completa.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	AddToTotal(saleID string, delta decimal.Decimal) error
}
