package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, company_id, name, email, password_hash, role, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, constraintUsersEmail) {
			return domain.ErrEmailAlreadyExists
		}
		return writeError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario de la empresa.
func (r *UserRepo) GetByID(ctx context.Context, companyID, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND company_id = $2`
	return r.getOne(ctx, query, id, companyID)
}

// GetByEmail obtiene un usuario por email (login).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ListByCompany lista usuarios de la empresa con paginación.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE company_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update persiste nombre, email y password. company_id y role no cambian aquí.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $3, email = $4, password_hash = $5, updated_at = $6
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.Name, user.Email, user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, constraintUsersEmail) {
			return domain.ErrEmailAlreadyExists
		}
		return writeError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
