package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (facturación).
// Todas las lecturas y escrituras van acotadas por companyID.
type CustomerRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si (company_id, email) ya existe.
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID devuelve (nil, nil) si no existe en esa empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error)
	// Update devuelve domain.ErrNotFound si no existe en esa empresa.
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete devuelve domain.ErrNotFound si no existe y domain.ErrCustomerHasInvoices si hay facturas que lo referencian.
	Delete(ctx context.Context, companyID, id string) error
}
