package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de inventario.
const (
	MovementTypeInput      = "input"      // entrada (compra o ingreso directo)
	MovementTypeOutput     = "output"     // salida (venta o egreso directo)
	MovementTypeAdjustment = "adjustment" // ajuste manual con motivo (cantidad con signo)
	MovementTypeCorrection = "correction" // corrección de una entrada/salida previa (cantidad con signo)
)

// Movement es un hecho histórico inmutable del ledger: un cambio de stock
// sobre un producto, con snapshot de precio y de stock previo.
// Después de creado solo se permite escribir CorrectedBy (una única vez);
// una reversión nunca edita el movimiento, siempre crea una corrección nueva.
type Movement struct {
	ID          string
	Type        string
	ProductID   string
	Quantity    int // positivo para input/output; con signo para adjustment/correction
	UserID      string
	CustomerID  *string // requerido en salidas
	SaleID      *string
	PurchaseID  *string
	Price       decimal.Decimal // precio histórico del producto al momento del movimiento
	StockBefore int             // stock del producto antes de aplicar este movimiento
	Date        time.Time
	Reason      string  // obligatorio para adjustment y correction
	CorrectedBy *string // ID de la corrección que supersede este movimiento (a lo sumo una)
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// StockDelta devuelve el efecto del movimiento sobre el stock según su tipo.
func (m *Movement) StockDelta() int {
	switch m.Type {
	case MovementTypeInput:
		return m.Quantity
	case MovementTypeOutput:
		return -m.Quantity
	case MovementTypeAdjustment, MovementTypeCorrection:
		return m.Quantity // cantidad con signo
	}
	return 0
}

// StockAfter calcula el stock resultante a partir del snapshot StockBefore.
func (m *Movement) StockAfter() int {
	return m.StockBefore + m.StockDelta()
}
