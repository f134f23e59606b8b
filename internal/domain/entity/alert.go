package entity

import "time"

// Tipos de alerta de stock, en orden de precedencia de clasificación:
// agotado y última unidad tienen prioridad sobre stock bajo genérico.
const (
	AlertTypeOutOfStock = "out_of_stock" // stock en cero
	AlertTypeOneUnit    = "one_unit"     // queda una sola unidad
	AlertTypeLowStock   = "low_stock"    // por debajo del stock mínimo
)

// Alert es una vista materializada y regenerable del estado de stock de un
// producto frente a su política. A lo sumo una alerta activa por producto;
// el tipo se recalcula, nunca se acumula. Se retira con soft delete.
type Alert struct {
	ID        string
	Type      string
	Message   string
	ProductID string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Active indica si la alerta sigue vigente.
func (a *Alert) Active() bool {
	return a.DeletedAt == nil
}
