package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

// classifyAlert determina el tipo de alerta para un nivel de stock ya por
// debajo (o igual) del mínimo. El orden es fijo: agotado, luego última
// unidad, luego stock bajo genérico.
func classifyAlert(currentStock int) string {
	switch currentStock {
	case 0:
		return entity.AlertTypeOutOfStock
	case 1:
		return entity.AlertTypeOneUnit
	default:
		return entity.AlertTypeLowStock
	}
}

func alertMessage(product *entity.Product, alertType string) string {
	switch alertType {
	case entity.AlertTypeOutOfStock:
		return fmt.Sprintf("El producto %q está agotado.", product.Name)
	case entity.AlertTypeOneUnit:
		return fmt.Sprintf("Solo queda 1 unidad del producto %q.", product.Name)
	default:
		return fmt.Sprintf("El producto %q está por debajo del stock mínimo (%d). Stock actual: %d",
			product.Name, product.MinimumStock, product.CurrentStock)
	}
}

// ReconcileAlerts concilia las alertas de un producto contra su stock actual.
// Idempotente: llamarla N veces sobre un producto sin cambios deja exactamente
// una alerta activa (o ninguna). Debe ejecutarse dentro de la misma unidad de
// trabajo que mutó el stock.
//
//   - stock > mínimo: retira toda alerta activa
//   - stock == 0: out_of_stock; stock == 1: one_unit; si no: low_stock
//   - si ya existe una alerta activa del tipo calculado, no hace nada
//   - si existe de otro tipo, la retira y crea la del tipo calculado
func ReconcileAlerts(product *entity.Product, alertRepo repository.AlertRepository) error {
	active, err := alertRepo.ActiveByProduct(product.ID)
	if err != nil {
		return fmt.Errorf("alertas activas de %s: %w", product.ID, err)
	}

	if product.CurrentStock > product.MinimumStock {
		for _, alert := range active {
			if err := alertRepo.Retire(alert.ID); err != nil {
				return fmt.Errorf("retirar alerta %s: %w", alert.ID, err)
			}
		}
		return nil
	}

	alertType := classifyAlert(product.CurrentStock)

	exists := false
	for _, alert := range active {
		if alert.Type == alertType {
			exists = true
			continue
		}
		// Alerta activa de otro tipo: el tipo se recalcula, no se acumula.
		if err := alertRepo.Retire(alert.ID); err != nil {
			return fmt.Errorf("retirar alerta %s: %w", alert.ID, err)
		}
	}
	if exists {
		return nil
	}

	alert := &entity.Alert{
		ID:        uuid.New().String(),
		Type:      alertType,
		Message:   alertMessage(product, alertType),
		ProductID: product.ID,
	}
	if err := alertRepo.Create(alert); err != nil {
		return fmt.Errorf("crear alerta %s: %w", alertType, err)
	}
	return nil
}
