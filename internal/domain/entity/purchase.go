package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase agrupa movimientos de entrada bajo un proveedor y una fecha única.
// Análoga a Sale pero para ingresos de inventario.
type Purchase struct {
	ID         string
	SupplierID string
	UserID     string
	Date       time.Time
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
