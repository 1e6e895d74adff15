package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

func TestCheckLength_CuentaCaracteresNoBytes(t *testing.T) {
	assert.NoError(t, CheckLength("city", strings.Repeat("ñ", MaxPlaceLen), MaxPlaceLen))

	err := CheckLength("city", strings.Repeat("ñ", MaxPlaceLen+1), MaxPlaceLen)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "city")
}

func TestCheckLengths_DevuelveElPrimerError(t *testing.T) {
	err := CheckLengths(
		Field{Name: "name", Value: "ok", Max: MaxNameLen},
		Field{Name: "zip", Value: strings.Repeat("1", MaxZipLen+1), Max: MaxZipLen},
		Field{Name: "phone", Value: strings.Repeat("1", MaxPhoneLen+1), Max: MaxPhoneLen},
	)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "zip")
	assert.NoError(t, CheckLengths())
}
