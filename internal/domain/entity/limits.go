package entity

import (
	"unicode/utf8"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// Longitud máxima (en caracteres) de los campos de texto acotados en la base.
const (
	MaxNameLen          = 255
	MaxEmailLen         = 255
	MaxWebsiteLen       = 255
	MaxPhoneLen         = 50
	MaxTaxIDLen         = 50
	MaxPlaceLen         = 120 // ciudad, estado, país
	MaxZipLen           = 20
	MaxInvoiceNumberLen = 50
)

// CheckLength ErrInvalidInput si value supera max caracteres.
func CheckLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return domain.Invalid("%s admite como máximo %d caracteres", field, max)
	}
	return nil
}

// Field par campo/valor/límite para validar varios textos de una vez.
type Field struct {
	Name  string
	Value string
	Max   int
}

// CheckLengths valida los campos en orden y devuelve el primer error.
func CheckLengths(fields ...Field) error {
	for _, f := range fields {
		if err := CheckLength(f.Name, f.Value, f.Max); err != nil {
			return err
		}
	}
	return nil
}
