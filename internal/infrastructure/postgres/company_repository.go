package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, address, phone, email, website, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Address, company.Phone, company.Email,
		company.Website, company.Logo, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return writeError("insert company", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id, name, address, phone, email, website, logo, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Website, &c.Logo,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos de contacto.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, address = $3, phone = $4, email = $5, website = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Address, company.Phone, company.Email,
		company.Website, company.UpdatedAt,
	)
	if err != nil {
		return writeError("update company", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// UpdateLogo guarda la URL del logo.
func (r *CompanyRepo) UpdateLogo(ctx context.Context, id, logo string) error {
	tag, err := r.q.Exec(ctx, `UPDATE companies SET logo = $2, updated_at = now() WHERE id = $1`, id, logo)
	if err != nil {
		return writeError("update company logo", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
