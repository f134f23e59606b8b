package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/inventory"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

// MovementUseCase crea movimientos individuales del ledger (input, output,
// adjustment) de forma transaccional, con bloqueo de fila sobre el producto
// (SELECT FOR UPDATE) y Commit/Rollback todo-o-nada.
//
// El tipo correction no es invocable desde aquí: solo lo crea el flujo de
// corrección con un delta precalculado (CorrectionUseCase).
type MovementUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	clock        Clock
	audit        AuditEmitter
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	clock Clock,
	audit AuditEmitter,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		clock:        clock,
		audit:        audit,
	}
}

// MovementInput entrada para crear un movimiento.
// Quantity: >= 1 para input/output; con signo y != 0 para adjustment.
// CustomerID: obligatorio para output. Reason: obligatorio para adjustment.
// Date: opcional; si viene, la capa que llama debe haber aplicado la política
// de fecha (ValidateMovementDate) — el núcleo del ledger no la impone.
type MovementInput struct {
	Type       string
	ProductID  string
	Quantity   int
	UserID     string
	CustomerID string
	Reason     string
	Date       *time.Time
}

// CreateMovement valida las precondiciones por tipo, bloquea la fila del
// producto y crea el movimiento junto con la mutación de stock y la
// conciliación de alertas, todo en una transacción.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("usuario %s: %w", input.UserID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", input.UserID, domain.ErrNotFound)
	}

	var customerID *string
	if input.Type == entity.MovementTypeOutput {
		customer, err := uc.customerRepo.GetByID(input.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("cliente %s: %w", input.CustomerID, err)
		}
		if customer == nil {
			return nil, fmt.Errorf("cliente %s: %w", input.CustomerID, domain.ErrNotFound)
		}
		customerID = &customer.ID
	}

	date := uc.clock.Now()
	if input.Date != nil {
		date = *input.Date
	}

	movement := &entity.Movement{
		ID:         uuid.New().String(),
		Type:       input.Type,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		UserID:     input.UserID,
		CustomerID: customerID,
		Date:       date,
		Reason:     strings.TrimSpace(input.Reason),
		CreatedAt:  date,
		UpdatedAt:  date,
	}

	var stockBefore, stockAfter int
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		alertRepo repository.AlertRepository,
	) error {
		// Lectura bloqueada: dos operaciones concurrentes sobre el mismo
		// producto serializan aquí y la segunda ve el stock ya aplicado.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", input.ProductID, domain.ErrNotFound)
		}

		switch input.Type {
		case entity.MovementTypeOutput:
			if err := inventory.CheckAvailability(product.ID, product.CurrentStock, input.Quantity); err != nil {
				return err
			}
		case entity.MovementTypeAdjustment:
			if input.Quantity < 0 {
				if err := inventory.CheckAvailability(product.ID, product.CurrentStock, -input.Quantity); err != nil {
					return err
				}
			}
		}

		movement.Price = product.Price
		if err := applyEntry(movRepo, productRepo, alertRepo, product, movement); err != nil {
			return err
		}
		stockBefore = movement.StockBefore
		stockAfter = product.CurrentStock
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Los ajustes llevan motivo explícito: son los de mayor valor de auditoría.
	if input.Type == entity.MovementTypeAdjustment {
		uc.emitAudit(ctx, entity.AuditEvent{
			UserID:   input.UserID,
			Action:   entity.AuditActionCreate,
			Model:    "Movement",
			ObjectID: movement.ID,
			Changes: map[string]any{
				"movement_type": movement.Type,
				"product_id":    movement.ProductID,
				"quantity":      movement.Quantity,
				"stock_before":  stockBefore,
				"stock_after":   stockAfter,
				"reason":        movement.Reason,
			},
			At: date,
		})
	}

	return movement, nil
}

func (uc *MovementUseCase) validateInput(input MovementInput) error {
	switch input.Type {
	case entity.MovementTypeInput:
		if input.Quantity < 1 {
			return fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
		}
	case entity.MovementTypeOutput:
		if input.Quantity < 1 {
			return fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
		}
		if input.CustomerID == "" {
			return fmt.Errorf("%w: el cliente es requerido para movimientos de salida", domain.ErrInvalidInput)
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity == 0 {
			return fmt.Errorf("%w: la cantidad del ajuste no puede ser cero", domain.ErrInvalidInput)
		}
		if strings.TrimSpace(input.Reason) == "" {
			return fmt.Errorf("%w: el motivo es obligatorio para ajustes", domain.ErrInvalidInput)
		}
	case entity.MovementTypeCorrection:
		return fmt.Errorf("%w: las correcciones solo se crean desde el flujo de corrección", domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, input.Type)
	}
	return nil
}

func (uc *MovementUseCase) emitAudit(ctx context.Context, event entity.AuditEvent) {
	emitAudit(ctx, uc.audit, event)
}

// emitAudit emite el evento y descarta el error: la auditoría nunca falla
// la operación de negocio.
func emitAudit(ctx context.Context, emitter AuditEmitter, event entity.AuditEvent) {
	if emitter == nil {
		return
	}
	if err := emitter.Emit(ctx, event); err != nil {
		log.Warn().Err(err).Str("model", event.Model).Str("object_id", event.ObjectID).
			Msg("emisión de auditoría falló; se descarta")
	}
}

// applyEntry es el paso compartido de mutación de stock del ledger: snapshot
// de stock previo, persistencia del movimiento, aplicación del delta,
// actualización del producto y conciliación de alertas. Debe invocarse con el
// producto ya bloqueado (GetForUpdate) y con movement.Price ya asignado.
func applyEntry(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	alertRepo repository.AlertRepository,
	product *entity.Product,
	movement *entity.Movement,
) error {
	movement.StockBefore = product.CurrentStock

	newStock := product.CurrentStock + movement.StockDelta()
	if newStock < 0 {
		return &domain.InsufficientStockError{
			ProductID: product.ID,
			Available: product.CurrentStock,
			Requested: -movement.StockDelta(),
		}
	}

	if err := movRepo.Create(movement); err != nil {
		return fmt.Errorf("crear movimiento: %w", err)
	}

	product.CurrentStock = newStock
	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return fmt.Errorf("actualizar stock de %s: %w", product.ID, err)
	}

	return ReconcileAlerts(product, alertRepo)
}
