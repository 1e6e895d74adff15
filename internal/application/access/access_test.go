package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

func TestRequireAdmin_SoloAdmin(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		want   error
	}{
		{"admin", Caller{UserID: "u1", CompanyID: "c1", Role: "admin"}, nil},
		{"user", Caller{UserID: "u1", CompanyID: "c1", Role: "user"}, domain.ErrForbidden},
		{"sin usuario", Caller{CompanyID: "c1", Role: "admin"}, domain.ErrUnauthorized},
		{"sin empresa", Caller{UserID: "u1", Role: "admin"}, domain.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAdmin(tt.caller)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOwned_OtraEmpresaEsNotFound(t *testing.T) {
	c := Caller{UserID: "u1", CompanyID: "c1", Role: "user"}

	assert.NoError(t, Owned(c, "c1", domain.ErrCustomerNotFound))

	err := Owned(c, "c2", domain.ErrCustomerNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, Owned(c, "", domain.ErrInvoiceNotFound), domain.ErrInvoiceNotFound)
}
