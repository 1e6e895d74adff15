// Package currency normaliza y valida códigos de moneda ISO 4217.
package currency

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// Default moneda usada cuando un cliente o una empresa sin facturas no indica otra.
const Default = "USD"

// Normalize devuelve el código ISO 4217 en mayúsculas o error si no es reconocido.
// Un valor vacío se resuelve a fallback.
func Normalize(code, fallback string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = fallback
	}
	if len(code) != 3 {
		return "", fmt.Errorf("moneda %q: se esperan 3 letras", code)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("moneda %q: %w", code, err)
	}
	return unit.String(), nil
}
