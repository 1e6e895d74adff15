package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/gormstore"
)

type fixture struct {
	db        *gorm.DB
	tx        *gormstore.TxRunner
	customers *CustomerUseCase
	invoices  *InvoiceUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gormstore.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	tx := gormstore.NewTxRunner(db)
	return &fixture{
		db:        db,
		tx:        tx,
		customers: NewCustomerUseCase(tx, gormstore.NewCustomerRepository(db)),
		invoices:  NewInvoiceUseCase(tx, gormstore.NewInvoiceRepository(db)),
	}
}

// tenant crea una empresa y devuelve un caller con el rol indicado.
func (f *fixture) tenant(t *testing.T, role string) access.Caller {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Company{ID: uuid.NewString(), Name: "Empresa " + role, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, gormstore.NewCompanyRepository(f.db).Create(context.Background(), c))
	return access.Caller{UserID: uuid.NewString(), CompanyID: c.ID, Role: role}
}

func (f *fixture) customer(t *testing.T, caller access.Caller, email, currency string) *dto.CustomerResponse {
	t.Helper()
	c, err := f.customers.Create(context.Background(), caller, dto.CustomerRequest{Name: "Cliente", Email: email, Currency: currency})
	require.NoError(t, err)
	return c
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func invoiceReq(customerID, number string, items ...dto.InvoiceItemRequest) dto.InvoiceRequest {
	if len(items) == 0 {
		items = []dto.InvoiceItemRequest{{Description: "Servicio", Quantity: dec("2"), UnitPrice: dec("10"), TaxRate: dec("10")}}
	}
	return dto.InvoiceRequest{
		CustomerID: customerID,
		Number:     number,
		Date:       "2024-01-10",
		DueDate:    "2024-02-10",
		Items:      items,
	}
}
