package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsValidRole indica si role es uno de los roles soportados.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User representa un usuario del sistema (pertenece a exactamente una Company).
// Email es único globalmente; CompanyID no cambia después de crearse.
type User struct {
	ID           string
	CompanyID    string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, user
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
