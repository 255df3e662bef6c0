package repository

import "github.com/tu-usuario/costeo-pro/internal/domain/entity"

// UserRepository puerto de persistencia para User (pegamento de auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
