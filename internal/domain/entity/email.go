package entity

import (
	"net/mail"
	"strings"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// NormalizeEmail recorta, pasa a minúsculas y valida una dirección simple (sin nombre visible).
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", domain.Invalid("email es obligatorio")
	}
	if err := CheckLength("email", e, MaxEmailLen); err != nil {
		return "", err
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", domain.Invalid("email inválido: %s", email)
	}
	return e, nil
}
