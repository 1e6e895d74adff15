package gormstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedCompany(t *testing.T, db *gorm.DB) string {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Company{ID: uuid.NewString(), Name: "Acme", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewCompanyRepository(db).Create(context.Background(), c))
	return c.ID
}

func seedCustomer(t *testing.T, db *gorm.DB, companyID, email string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{ID: uuid.NewString(), CompanyID: companyID, Name: "Cliente", Email: email, Currency: "USD"}
	require.NoError(t, NewCustomerRepository(db).Create(context.Background(), c))
	return c
}

func newInvoice(companyID, customerID, number, status, cur string, total int64) *entity.Invoice {
	d := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID: uuid.NewString(), CompanyID: companyID, CustomerID: customerID, Number: number,
		Date: d, DueDate: d.AddDate(0, 0, 30), Status: status, Total: decimal.NewFromInt(total), Currency: cur,
	}
}

func TestCustomerRepo_EmailUnicoPorEmpresa(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	a, b := seedCompany(t, db), seedCompany(t, db)
	repo := NewCustomerRepository(db)

	seedCustomer(t, db, a, "x@y.com")
	err := repo.Create(ctx, &entity.Customer{ID: uuid.NewString(), CompanyID: a, Name: "Otro", Email: "x@y.com", Currency: "USD"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	assert.NoError(t, repo.Create(ctx, &entity.Customer{ID: uuid.NewString(), CompanyID: b, Name: "Otro", Email: "x@y.com", Currency: "USD"}))
}

func TestCustomerRepo_AisladoPorEmpresa(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	a, b := seedCompany(t, db), seedCompany(t, db)
	c := seedCustomer(t, db, a, "x@y.com")
	repo := NewCustomerRepository(db)

	got, err := repo.GetByID(ctx, b, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, repo.Delete(ctx, b, c.ID), domain.ErrNotFound)

	list, err := repo.ListByCompany(ctx, b, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceRepo_NumeroUnicoYClienteConFacturasNoSeBorra(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	a, b := seedCompany(t, db), seedCompany(t, db)
	ca := seedCustomer(t, db, a, "x@y.com")
	cb := seedCustomer(t, db, b, "x@y.com")
	repo := NewInvoiceRepository(db)

	require.NoError(t, repo.Create(ctx, newInvoice(a, ca.ID, "INV-001", "draft", "USD", 10)))
	assert.ErrorIs(t, repo.Create(ctx, newInvoice(a, ca.ID, "INV-001", "draft", "USD", 10)), domain.ErrInvoiceNumberExists)
	assert.NoError(t, repo.Create(ctx, newInvoice(b, cb.ID, "INV-001", "draft", "USD", 10)))

	// Borrado directo sin conteo previo: lo frena ON DELETE RESTRICT.
	assert.ErrorIs(t, NewCustomerRepository(db).Delete(ctx, a, ca.ID), domain.ErrCustomerHasInvoices)
	got, err := NewCustomerRepository(db).GetByID(ctx, a, ca.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestInvoiceRepo_ClienteInexistenteEsNotFound(t *testing.T) {
	db := newDB(t)
	a := seedCompany(t, db)
	err := NewInvoiceRepository(db).Create(context.Background(), newInvoice(a, uuid.NewString(), "INV-001", "draft", "USD", 10))
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestIsForeignKeyViolation_CodigosSQLite(t *testing.T) {
	restrict := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintTrigger}
	insert := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}
	unique := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}

	assert.True(t, isForeignKeyViolation(restrict))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("delete: %w", insert)))
	assert.True(t, isForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyViolation(unique))
	assert.False(t, isForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
}

func TestInvoiceRepo_ReemplazaLineasEnTransaccion(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	a := seedCompany(t, db)
	c := seedCustomer(t, db, a, "x@y.com")
	inv := newInvoice(a, c.ID, "INV-001", "draft", "USD", 22)
	repo := NewInvoiceRepository(db)
	require.NoError(t, repo.Create(ctx, inv))

	item := func(pos int, desc string) *entity.InvoiceItem {
		return &entity.InvoiceItem{
			ID: uuid.NewString(), InvoiceID: inv.ID, Position: pos, Description: desc,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1),
			Amount: decimal.NewFromInt(1), TaxRate: decimal.Zero, TaxAmount: decimal.Zero,
		}
	}
	require.NoError(t, repo.CreateItems(ctx, []*entity.InvoiceItem{item(0, "A1"), item(1, "A2")}))

	tx := NewTxRunner(db)
	err := tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Invoices.DeleteItems(ctx, inv.ID); err != nil {
			return err
		}
		return r.Invoices.CreateItems(ctx, []*entity.InvoiceItem{item(0, "B1")})
	})
	require.NoError(t, err)

	items, err := repo.GetItems(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "B1", items[0].Description)

	// un fallo a mitad deja las líneas como estaban
	err = tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Invoices.DeleteItems(ctx, inv.ID); err != nil {
			return err
		}
		return domain.Invalid("falla simulada")
	})
	require.Error(t, err)
	items, err = repo.GetItems(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "B1", items[0].Description)
}

func TestStatsRepo_AgregaPorEmpresa(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	a, b := seedCompany(t, db), seedCompany(t, db)
	c := seedCustomer(t, db, a, "x@y.com")
	cb := seedCustomer(t, db, b, "x@y.com")
	repo := NewInvoiceRepository(db)
	require.NoError(t, repo.Create(ctx, newInvoice(a, c.ID, "1", "paid", "EUR", 10)))
	require.NoError(t, repo.Create(ctx, newInvoice(a, c.ID, "2", "paid", "EUR", 5)))
	require.NoError(t, repo.Create(ctx, newInvoice(a, c.ID, "3", "paid", "USD", 7)))
	require.NoError(t, repo.Create(ctx, newInvoice(a, c.ID, "4", "pending", "USD", 1)))
	require.NoError(t, repo.Create(ctx, newInvoice(b, cb.ID, "1", "paid", "GBP", 100)))

	stats := NewStatsRepository(db)
	counts, err := stats.CountByStatus(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"paid": 3, "pending": 1}, counts)

	rev, err := stats.RevenueByCurrency(ctx, a, "paid")
	require.NoError(t, err)
	require.Len(t, rev, 2)
	assert.Equal(t, "EUR", rev[0].Currency)
	assert.True(t, rev[0].Amount.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "USD", rev[1].Currency)
	assert.True(t, rev[1].Amount.Equal(decimal.NewFromInt(7)))

	// empate 2-2: gana el orden alfabético
	cur, err := stats.MostUsedCurrency(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cur)

	empty := seedCompany(t, db)
	cur, err = stats.MostUsedCurrency(ctx, empty)
	require.NoError(t, err)
	assert.Equal(t, "", cur)
}
