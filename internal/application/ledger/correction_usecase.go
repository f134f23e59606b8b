package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

// CorrectionUseCase corrige un movimiento de entrada o salida sin tocar la
// historia: crea un movimiento de corrección con el delta firmado, enlaza el
// original vía corrected_by (una sola vez) y ajusta el total de la venta o
// compra dueña al precio histórico original.
type CorrectionUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	clock    Clock
	audit    AuditEmitter
}

// NewCorrectionUseCase construye el caso de uso.
func NewCorrectionUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	clock Clock,
	audit AuditEmitter,
) *CorrectionUseCase {
	return &CorrectionUseCase{
		txRunner: txRunner,
		userRepo: userRepo,
		clock:    clock,
		audit:    audit,
	}
}

// CorrectMovement corrige el movimiento originalID dejando su cantidad
// efectiva en newQuantity.
//
// Convención de signo del delta: para una entrada original de Q corregida a N,
// delta = N - Q (más entrada, el stock sube); para una salida original de Q
// corregida a N, delta = Q - N (se vendió menos, el stock se restaura). El
// delta es así directamente aditivo sobre el stock sin importar el tipo
// original.
func (uc *CorrectionUseCase) CorrectMovement(
	ctx context.Context,
	originalID string,
	newQuantity int,
	reason string,
	userID string,
) (*entity.Movement, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: el motivo es obligatorio para correcciones", domain.ErrInvalidInput)
	}
	if newQuantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad corregida debe ser al menos 1", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("usuario %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", userID, domain.ErrNotFound)
	}

	now := uc.clock.Now()
	var correction *entity.Movement
	var original *entity.Movement
	var stockBefore, stockAfter int

	err = uc.txRunner.RunTransaction(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		alertRepo repository.AlertRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		original, err = movRepo.GetForUpdate(originalID)
		if err != nil {
			return err
		}
		if original == nil {
			return fmt.Errorf("movimiento %s: %w", originalID, domain.ErrNotFound)
		}
		if original.CorrectedBy != nil {
			return &domain.AlreadyCorrectedError{MovementID: original.ID, CorrectionID: *original.CorrectedBy}
		}
		if original.Type != entity.MovementTypeInput && original.Type != entity.MovementTypeOutput {
			return &domain.InvalidCorrectionTargetError{
				MovementID: original.ID,
				Reason:     "solo se corrigen entradas y salidas",
			}
		}
		if newQuantity == original.Quantity {
			return &domain.InvalidCorrectionTargetError{
				MovementID: original.ID,
				Reason:     "la cantidad corregida es igual a la original",
			}
		}

		product, err := productRepo.GetForUpdate(original.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", original.ProductID, domain.ErrNotFound)
		}

		var delta int
		if original.Type == entity.MovementTypeInput {
			delta = newQuantity - original.Quantity
		} else {
			delta = original.Quantity - newQuantity
		}

		if product.CurrentStock+delta < 0 {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				Available: product.CurrentStock,
				Requested: -delta,
			}
		}

		correction = &entity.Movement{
			ID:         uuid.New().String(),
			Type:       entity.MovementTypeCorrection,
			ProductID:  product.ID,
			Quantity:   delta,
			UserID:     userID,
			CustomerID: original.CustomerID,
			SaleID:     original.SaleID,
			PurchaseID: original.PurchaseID,
			Price:      original.Price, // las correcciones nunca re-precian
			Date:       now,
			Reason:     reason,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := applyEntry(movRepo, productRepo, alertRepo, product, correction); err != nil {
			return err
		}
		stockBefore = correction.StockBefore
		stockAfter = product.CurrentStock

		// Única mutación permitida sobre el original: el back-link.
		if err := movRepo.SetCorrectedBy(original.ID, correction.ID); err != nil {
			return fmt.Errorf("marcar movimiento %s como corregido: %w", original.ID, err)
		}

		// Ajustar el total de la venta/compra dueña por el delta de cantidad
		// al precio histórico del movimiento original.
		totalDelta := decimal.NewFromInt(int64(newQuantity - original.Quantity)).Mul(original.Price)
		if original.SaleID != nil {
			if err := saleRepo.AddToTotal(*original.SaleID, totalDelta); err != nil {
				return fmt.Errorf("ajustar total de venta %s: %w", *original.SaleID, err)
			}
		} else if original.PurchaseID != nil {
			if err := purchaseRepo.AddToTotal(*original.PurchaseID, totalDelta); err != nil {
				return fmt.Errorf("ajustar total de compra %s: %w", *original.PurchaseID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.emitAudit(ctx, entity.AuditEvent{
		UserID:   userID,
		Action:   entity.AuditActionCreate,
		Model:    "Movement",
		ObjectID: correction.ID,
		Changes: map[string]any{
			"movement_type":        entity.MovementTypeCorrection,
			"original_movement_id": original.ID,
			"product_id":           correction.ProductID,
			"original_quantity":    original.Quantity,
			"new_quantity":         newQuantity,
			"stock_diff":           correction.Quantity,
			"stock_before":         stockBefore,
			"stock_after":          stockAfter,
			"reason":               reason,
		},
		At: now,
	})

	return correction, nil
}

func (uc *CorrectionUseCase) emitAudit(ctx context.Context, event entity.AuditEvent) {
	emitAudit(ctx, uc.audit, event)
}
