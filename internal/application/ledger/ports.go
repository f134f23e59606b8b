package ledger

import (
	"context"
	"time"

	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: si fn retorna error
// se hace rollback completo (stock, movimientos y registro dueño).
type TxRunner interface {
	// Run abre la transacción mínima para movimientos individuales.
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		alertRepo repository.AlertRepository,
	) error) error

	// RunTransaction abre la transacción ampliada para ventas, compras y
	// correcciones (que pueden ajustar el total de la venta/compra dueña).
	RunTransaction(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		alertRepo repository.AlertRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// AuditEmitter recibe eventos de auditoría del ledger. Fire-and-forget:
// el ledger registra y descarta cualquier error de emisión; la auditoría
// nunca revierte la operación de negocio.
type AuditEmitter interface {
	Emit(ctx context.Context, event entity.AuditEvent) error
}

// Clock provee la hora del servidor. Inyectable para tests.
type Clock interface {
	Now() time.Time
}

// SystemClock implementa Clock con time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
