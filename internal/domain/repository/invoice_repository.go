package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoiceFilter filtros del listado de facturas.
type InvoiceFilter struct {
	Status string // vacío = todos
	Limit  int
	Offset int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Las operaciones de escritura compuestas (cabecera + líneas) se ejecutan a través de TxRunner.
type InvoiceRepository interface {
	// Create devuelve domain.ErrInvoiceNumberExists si (company_id, number) ya existe.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update actualiza la cabecera acotada por empresa; domain.ErrNotFound si no existe.
	Update(ctx context.Context, invoice *entity.Invoice) error
	// Delete borra la cabecera acotada por empresa; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, companyID, id string) error
	// GetByID devuelve la cabecera con Customer cargado; (nil, nil) si no existe en esa empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	// List devuelve cabeceras con Customer (nombre y email) cargado, más recientes primero.
	List(ctx context.Context, companyID string, f InvoiceFilter) ([]*entity.Invoice, error)
	// CountByCustomer cuenta las facturas que referencian al cliente.
	CountByCustomer(ctx context.Context, companyID, customerID string) (int, error)

	CreateItems(ctx context.Context, items []*entity.InvoiceItem) error
	DeleteItems(ctx context.Context, invoiceID string) error
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
}
