package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Toda falla que cruza el borde de un caso de uso es uno de estos, o los envuelve.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
)

// Registros ausentes (o de otra empresa); errors.Is(err, ErrNotFound) sigue siendo cierto.
var (
	ErrCompanyNotFound  = fmt.Errorf("%w: empresa no encontrada", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("%w: usuario no encontrado", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("%w: cliente no encontrado", ErrNotFound)
	ErrInvoiceNotFound  = fmt.Errorf("%w: factura no encontrada", ErrNotFound)
)

// Conflictos concretos; errors.Is(err, ErrConflict) sigue siendo cierto.
var (
	ErrEmailAlreadyExists  = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
	ErrInvoiceNumberExists = fmt.Errorf("%w: ya existe una factura con ese número", ErrConflict)
	ErrCustomerHasInvoices = fmt.Errorf("%w: el cliente tiene facturas asociadas", ErrConflict)
)

// Invalid envuelve ErrInvalidInput con un detalle legible para el cliente.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
