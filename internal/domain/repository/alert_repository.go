package repository

import "github.com/jdcampos/inventario-ledger/internal/domain/entity"

// AlertRepository define el puerto de persistencia para alertas de stock.
// Las alertas solo se mutan como consecuencia de una mutación de stock,
// dentro de la misma unidad de trabajo.
type AlertRepository interface {
	Create(alert *entity.Alert) error
	ActiveByProduct(productID string) ([]*entity.Alert, error)
	Retire(id string) error
	ListActive(limit, offset int) ([]*entity.Alert, error)
}
