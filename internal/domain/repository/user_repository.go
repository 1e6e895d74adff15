package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create/Update devuelven domain.ErrEmailAlreadyExists si el índice único de email lo rechaza.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID busca dentro de la empresa; (nil, nil) si no existe o es de otra empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	// GetByEmail busca en todas las empresas (login).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
