package repository

import "github.com/jdcampos/inventario-ledger/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (actores).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
}
