package ledger

import (
	"fmt"
	"time"

	"github.com/jdcampos/inventario-ledger/internal/domain"
)

// ValidateMovementDate aplica la política de fecha de la capa que llama:
// un movimiento con fecha explícita debe estar dentro del día actual y no
// ser futuro. Es política de presentación, no invariante del núcleo del
// ledger; el caller que la omita rompe el orden temporal append-only.
func ValidateMovementDate(date, now time.Time) error {
	if date.After(now) {
		return fmt.Errorf("%w: la fecha del movimiento no puede ser futura", domain.ErrInvalidInput)
	}
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(todayStart) {
		return fmt.Errorf("%w: solo se permiten movimientos del día actual", domain.ErrInvalidInput)
	}
	return nil
}
