package entity

import "time"

// User representa al usuario que registra operaciones (actor del ledger).
// La identidad llega siempre como parámetro explícito, nunca por estado global.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
