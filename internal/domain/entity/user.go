package entity

import "time"

// Roles de perfil dentro de una empresa.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa una cuenta de acceso al sistema. La pertenencia a una
// empresa no vive aquí sino en Profile (un usuario puede tener perfiles
// en varias empresas).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile vincula un usuario con una empresa y un rol. Es la identidad
// "responsable" que se estampa en los movimientos de stock.
type Profile struct {
	ID        string
	UserID    string
	CompanyID string
	Role      string // ver constantes Role*
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
