package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale agrupa movimientos de salida bajo un cliente y una fecha única.
// Total se calcula antes de escribir los movimientos y solo lo ajusta
// el flujo de corrección (delta por el precio histórico original).
type Sale struct {
	ID         string
	CustomerID string
	UserID     string
	Date       time.Time // compartida por todos los movimientos de la venta
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
