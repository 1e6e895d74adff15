package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, company_id, name, email, company_name, address, city, state, zip, country,
	phone, tax_id, currency, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.CompanyName, &c.Address, &c.City, &c.State,
		&c.Zip, &c.Country, &c.Phone, &c.TaxID, &c.Currency, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.Name, c.Email, c.CompanyName, c.Address, c.City, c.State,
		c.Zip, c.Country, c.Phone, c.TaxID, c.Currency, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, constraintCustomersEmail) {
			return domain.ErrEmailAlreadyExists
		}
		return writeError("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente de la empresa.
func (r *CustomerRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND company_id = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByCompany lista clientes de la empresa con paginación.
func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers WHERE company_id = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update reemplaza los datos del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET
			name = $3, email = $4, company_name = $5, address = $6, city = $7, state = $8,
			zip = $9, country = $10, phone = $11, tax_id = $12, currency = $13, updated_at = $14
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.Name, c.Email, c.CompanyName, c.Address, c.City, c.State,
		c.Zip, c.Country, c.Phone, c.TaxID, c.Currency, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, constraintCustomersEmail) {
			return domain.ErrEmailAlreadyExists
		}
		return writeError("update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Delete borra el cliente; la FK RESTRICT de invoices lo impide si tiene facturas.
func (r *CustomerRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if isForeignKeyViolation(err, constraintInvoicesCustomerFK) {
			return domain.ErrCustomerHasInvoices
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
