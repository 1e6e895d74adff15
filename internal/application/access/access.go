// Package access resuelve quién hace la petición y qué puede ver:
// todo registro se filtra por la empresa del usuario autenticado y
// las operaciones de administración exigen rol admin.
package access

import (
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Caller identidad autenticada extraída del JWT.
type Caller struct {
	UserID    string
	CompanyID string
	Role      string
}

// IsAdmin indica si el usuario tiene rol admin.
func (c Caller) IsAdmin() bool {
	return c.Role == entity.RoleAdmin
}

// Authenticated valida que el caller tenga usuario y empresa.
func Authenticated(c Caller) error {
	if c.UserID == "" || c.CompanyID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// RequireAdmin exige un caller autenticado con rol admin.
func RequireAdmin(c Caller) error {
	if err := Authenticated(c); err != nil {
		return err
	}
	if !c.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// Owned comprueba que el registro pertenece a la empresa del caller.
// Un registro de otra empresa se reporta como notFound (no se revela que existe).
func Owned(c Caller, companyID string, notFound error) error {
	if companyID == "" || companyID != c.CompanyID {
		return notFound
	}
	return nil
}
