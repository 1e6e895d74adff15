package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, customer_id, number, date, due_date, status, total, currency,
			notes, terms_and_conditions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.CustomerID, inv.Number, inv.Date, inv.DueDate, inv.Status,
		inv.Total, inv.Currency, inv.Notes, inv.TermsAndConditions, inv.CreatedAt, inv.UpdatedAt,
	)
	return invoiceWriteError("insert invoice", err)
}

// Update actualiza la cabecera; toma el lock de la fila hasta el fin de la transacción.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET
			customer_id = $3, number = $4, date = $5, due_date = $6, status = $7, total = $8,
			currency = $9, notes = $10, terms_and_conditions = $11, updated_at = $12
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.CustomerID, inv.Number, inv.Date, inv.DueDate, inv.Status,
		inv.Total, inv.Currency, inv.Notes, inv.TermsAndConditions, inv.UpdatedAt,
	)
	if err := invoiceWriteError("update invoice", err); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func invoiceWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, constraintInvoicesNumber):
		return domain.ErrInvoiceNumberExists
	case isForeignKeyViolation(err, constraintInvoicesCustomerFK):
		return domain.ErrCustomerNotFound
	default:
		return writeError(op, err)
	}
}

// Delete borra la cabecera (las líneas caen por ON DELETE CASCADE si quedara alguna).
func (r *InvoiceRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

const invoiceSelect = `
	SELECT i.id, i.company_id, i.customer_id, i.number, i.date, i.due_date, i.status, i.total, i.currency,
		i.notes, i.terms_and_conditions, i.created_at, i.updated_at,
		` + `c.id, c.company_id, c.name, c.email, c.company_name, c.address, c.city, c.state, c.zip, c.country,
		c.phone, c.tax_id, c.currency, c.created_at, c.updated_at
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id AND c.company_id = i.company_id`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var c entity.Customer
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Date, &inv.DueDate, &inv.Status,
		&inv.Total, &inv.Currency, &inv.Notes, &inv.TermsAndConditions, &inv.CreatedAt, &inv.UpdatedAt,
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.CompanyName, &c.Address, &c.City, &c.State,
		&c.Zip, &c.Country, &c.Phone, &c.TaxID, &c.Currency, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Customer = &c
	return &inv, nil
}

// GetByID obtiene la cabecera con su cliente.
func (r *InvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1 AND i.company_id = $2`, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List lista cabeceras de la empresa, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, companyID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := invoiceSelect + `
		WHERE i.company_id = $1 AND ($2 = '' OR i.status = $2)
		ORDER BY i.date DESC, i.created_at DESC, i.id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// CountByCustomer cuenta facturas que referencian al cliente.
func (r *InvoiceRepo) CountByCustomer(ctx context.Context, companyID, customerID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM invoices WHERE company_id = $1 AND customer_id = $2`,
		companyID, customerID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices by customer: %w", err)
	}
	return n, nil
}

// CreateItems inserta todas las líneas en un solo batch (un viaje de red).
func (r *InvoiceRepo) CreateItems(ctx context.Context, items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, quantity, unit_price, amount, tax_rate, tax_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query,
			it.ID, it.InvoiceID, it.Position, it.Description, it.Quantity, it.UnitPrice,
			it.Amount, it.TaxRate, it.TaxAmount,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return writeError("insert invoice item", err)
		}
	}
	if err := br.Close(); err != nil {
		return writeError("insert invoice items", err)
	}
	return nil
}

// DeleteItems borra todas las líneas de la factura.
func (r *InvoiceRepo) DeleteItems(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// GetItems devuelve las líneas en su orden original.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, position, description, quantity, unit_price, amount, tax_rate, tax_amount
		FROM invoice_items WHERE invoice_id = $1
		ORDER BY position, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()
	items := make([]*entity.InvoiceItem, 0)
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.Amount, &it.TaxRate, &it.TaxAmount); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
