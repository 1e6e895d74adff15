package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// Update persiste los datos de contacto; devuelve domain.ErrNotFound si no existe.
	Update(ctx context.Context, company *entity.Company) error
	UpdateLogo(ctx context.Context, id, logo string) error
}
