package entity

import "time"

// Supplier representa un proveedor (contraparte de compras).
type Supplier struct {
	ID        string
	Name      string
	Document  string // RUC
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
