// Package inventory contiene reglas de negocio puras del inventario,
// sin I/O ni dependencias de persistencia.
package inventory

import "github.com/jdcampos/inventario-ledger/internal/domain"

// CheckAvailability decide si una salida de requested unidades es legal dado
// el stock actual. Predicado puro: el caller debe invocarlo sobre una lectura
// bloqueada del producto y abortar la transacción si retorna error.
func CheckAvailability(productID string, currentStock, requested int) error {
	if requested > currentStock {
		return &domain.InsufficientStockError{
			ProductID: productID,
			Available: currentStock,
			Requested: requested,
		}
	}
	return nil
}
