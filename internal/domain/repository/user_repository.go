package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}

// ProfileRepository define el puerto de persistencia para Profile.
// GetByUserAndCompany resuelve el responsable de un movimiento: el perfil
// del usuario en la empresa dueña del stock.
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByUserAndCompany(userID, companyID string) (*entity.Profile, error)
	ListByUser(userID string) ([]*entity.Profile, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Profile, error)
}
