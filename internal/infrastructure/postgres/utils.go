package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// Códigos SQLSTATE usados para traducir errores a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeStringTooLong       = "22001"
	codeNumericOutOfRange   = "22003"
)

// Nombres de constraints definidos en las migraciones.
const (
	constraintUsersEmail         = "users_email_key"
	constraintCustomersEmail     = "customers_company_email_key"
	constraintInvoicesNumber     = "invoices_company_number_key"
	constraintInvoicesCustomerFK = "invoices_customer_fkey"
)

func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// isUniqueViolation verifica si err es una violación de constraint único (23505), opcionalmente de uno concreto.
func isUniqueViolation(err error, constraint string) bool {
	pgErr := pgError(err)
	if pgErr == nil || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// isForeignKeyViolation verifica si err es una violación de FK (23503) del constraint indicado.
func isForeignKeyViolation(err error, constraint string) bool {
	pgErr := pgError(err)
	if pgErr == nil || pgErr.Code != codeForeignKeyViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// writeError envuelve un fallo de escritura. Los valores que no caben en la columna
// (texto largo, número fuera de rango, CHECK) son ErrInvalidInput y no un error interno.
func writeError(op string, err error) error {
	if pgErr := pgError(err); pgErr != nil {
		switch pgErr.Code {
		case codeStringTooLong, codeNumericOutOfRange, codeCheckViolation:
			return fmt.Errorf("%w: valor fuera de los límites permitidos (%s)", domain.ErrInvalidInput, op)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
