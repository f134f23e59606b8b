package entity

import "time"

// Customer representa un cliente (contraparte de ventas y salidas).
type Customer struct {
	ID        string
	Name      string
	Document  string // cédula o RUC
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
