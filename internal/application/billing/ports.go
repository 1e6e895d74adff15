package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación gráfica de una factura.
// inv llega con Customer e Items cargados.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, company *entity.Company) ([]byte, error)
}
