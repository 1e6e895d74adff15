package billing

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoices    *InvoiceUseCase
	companyRepo repository.CompanyRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(invoices *InvoiceUseCase, companyRepo repository.CompanyRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, companyRepo: companyRepo, generator: generator}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DownloadInvoicePDF carga la factura (acotada a la empresa del caller) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrInvoiceNotFound  si la factura no existe o es de otra empresa.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, caller access.Caller, invoiceID string) (pdfBytes []byte, filename string, err error) {
	if err := access.Authenticated(caller); err != nil {
		return nil, "", err
	}
	// Factura y empresa son lecturas independientes: se piden en paralelo.
	var (
		inv     *entity.Invoice
		company *entity.Company
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inv, err = uc.invoices.Load(gctx, caller, invoiceID)
		return err
	})
	g.Go(func() error {
		var err error
		company, err = uc.companyRepo.GetByID(gctx, caller.CompanyID)
		if err != nil {
			return fmt.Errorf("pdf: obtener empresa: %w", err)
		}
		if company == nil {
			return domain.ErrCompanyNotFound
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, company)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("factura_%s.pdf", unsafeFilename.ReplaceAllString(inv.Number, "_"))
	return pdfBytes, filename, nil
}
