package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// CurrentStock es propiedad exclusiva del ledger: solo se muta dentro de la
// transacción que crea el movimiento correspondiente (nunca directamente).
type Product struct {
	ID           string
	Name         string
	Description  string
	CategoryID   string
	SupplierID   string
	Price        decimal.Decimal // precio de venta vigente; cada movimiento guarda su snapshot
	CurrentStock int             // invariante: >= 0
	MinimumStock int             // umbral para alertas de stock bajo
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
