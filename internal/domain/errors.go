package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// InsufficientStockError indica que una salida o ajuste negativo excede el stock disponible.
// Lleva disponible/solicitado para que la capa de presentación arme el mensaje.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

// AlreadyCorrectedError indica que el movimiento ya fue corregido una vez.
// Un movimiento admite a lo sumo una corrección.
type AlreadyCorrectedError struct {
	MovementID   string
	CorrectionID string
}

func (e *AlreadyCorrectedError) Error() string {
	return fmt.Sprintf("el movimiento %s ya fue corregido por %s", e.MovementID, e.CorrectionID)
}

// InvalidCorrectionTargetError indica que el movimiento no es corregible:
// tipo de origen inválido (solo entradas y salidas) o cantidad sin cambio.
type InvalidCorrectionTargetError struct {
	MovementID string
	Reason     string
}

func (e *InvalidCorrectionTargetError) Error() string {
	return fmt.Sprintf("el movimiento %s no se puede corregir: %s", e.MovementID, e.Reason)
}

// SupplierMismatchError indica que el producto no pertenece al proveedor de la compra.
type SupplierMismatchError struct {
	ProductName  string
	SupplierName string
}

func (e *SupplierMismatchError) Error() string {
	return fmt.Sprintf("el producto %q no pertenece al proveedor %q", e.ProductName, e.SupplierName)
}
