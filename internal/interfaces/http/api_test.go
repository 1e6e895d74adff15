package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/analytics"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/gormstore"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/Facturacion-api/pkg/metrics"
)

// newAPI app completa sobre sqlite en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gormstore.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	tx := gormstore.NewTxRunner(db)
	companyRepo := gormstore.NewCompanyRepository(db)
	userRepo := gormstore.NewUserRepository(db)
	invoiceUC := billing.NewInvoiceUseCase(tx, gormstore.NewInvoiceRepository(db))

	return apphttp.NewApp(fiber.Config{AppName: "facturacion-test"}, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(tx, userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		UserUC:     usecase.NewUserUseCase(userRepo, companyRepo),
		CompanyUC:  usecase.NewCompanyUseCase(companyRepo),
		CustomerUC: billing.NewCustomerUseCase(tx, gormstore.NewCustomerRepository(db)),
		InvoiceUC:  invoiceUC,
		StatsUC:    analytics.NewStatsUseCase(gormstore.NewTxRunner(db)),
		InvoicePDF: billing.NewPDFUseCase(invoiceUC, companyRepo, pdf.NewMarotoPDFGenerator()),
		JWTSecret:  testJWTSecret,
		Metrics:    metrics.New(),
	})
}

// call hace la petición y decodifica la respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func register(t *testing.T, app *fiber.App, email, company string) dto.AuthResponse {
	t.Helper()
	var out dto.AuthResponse
	status := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Admin", Email: email, Password: "12345678", CompanyName: company,
	}, &out)
	require.Equal(t, http.StatusCreated, status)
	return out
}

func invoiceBody(customerID, number string) dto.InvoiceRequest {
	return dto.InvoiceRequest{
		CustomerID: customerID, Number: number, Date: "2024-01-01", DueDate: "2024-01-31",
		Items: []dto.InvoiceItemRequest{{
			Description: "Consultoría", Quantity: decimal.NewFromInt(2),
			UnitPrice: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(10),
		}},
	}
}

func TestAPI_FacturacionCompleta(t *testing.T) {
	app := newAPI(t)
	a := register(t, app, "a@acme.io", "Acme")
	b := register(t, app, "b@beta.io", "Beta")

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "A@acme.io", Password: "12345678", CompanyName: "Otra",
	}, &errResp))
	assert.Equal(t, "CONFLICT", errResp.Code)

	var login dto.AuthResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "a@acme.io", Password: "12345678"}, &login))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "a@acme.io", Password: "mala-clave"}, nil))

	// cliente
	var cust dto.CustomerResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/customers", login.Token,
		dto.CustomerRequest{Name: "Cliente", Email: "c@x.com"}, &cust))
	assert.Equal(t, "USD", cust.Currency)
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/customers", login.Token,
		dto.CustomerRequest{Name: "Otro", Email: "C@x.com"}, nil))
	// mismo email en otra empresa es válido
	assert.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/customers", b.Token,
		dto.CustomerRequest{Name: "Cliente B", Email: "c@x.com"}, nil))

	// factura
	var inv dto.InvoiceResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/invoices", a.Token, invoiceBody(cust.ID, "INV-001"), &inv))
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(22)), "total %s", inv.Total)
	assert.Equal(t, "draft", inv.Status)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].TaxAmount.Equal(decimal.NewFromInt(2)))

	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/invoices", a.Token, invoiceBody(cust.ID, "INV-001"), nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, "/api/invoices", b.Token, invoiceBody(cust.ID, "INV-001"), nil),
		"el cliente de otra empresa no existe para b")

	bad := invoiceBody(cust.ID, "INV-002")
	bad.Items = nil
	require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/invoices", a.Token, bad, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	// valores que no caben en las columnas: 400, no 500
	long := invoiceBody(cust.ID, strings.Repeat("9", 60))
	require.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/invoices", a.Token, long, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)
	precise := invoiceBody(cust.ID, "INV-003")
	precise.Items[0].UnitPrice = decimal.RequireFromString("0.333")
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/invoices", a.Token, precise, nil))

	// aislamiento de lectura
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/invoices/"+inv.ID, b.Token, nil, nil))
	var detail dto.InvoiceResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/invoices/"+inv.ID, a.Token, nil, &detail))
	require.NotNil(t, detail.Customer)
	assert.Equal(t, "Cliente", detail.Customer.Name)

	// pagada → estadísticas
	upd := invoiceBody(cust.ID, "INV-001")
	upd.Status = "paid"
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/invoices/"+inv.ID, a.Token, upd, nil))

	var stats dto.InvoiceStatsResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/invoices/stats/overview", a.Token, nil, &stats))
	assert.Equal(t, 1, stats.TotalInvoices)
	assert.Equal(t, 1, stats.PaidInvoices)
	assert.Equal(t, "USD", stats.Currency)
	require.Len(t, stats.Revenues, 1)
	assert.True(t, stats.Revenues[0].Amount.Equal(decimal.NewFromInt(22)))

	var statsB dto.InvoiceStatsResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/invoices/stats/overview", b.Token, nil, &statsB))
	assert.Equal(t, 0, statsB.TotalInvoices)

	// listado con filtro
	var list []dto.InvoiceResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/invoices?status=paid", a.Token, nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Cliente", list[0].CustomerName)
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/invoices?status=raro", a.Token, nil, nil))

	// borrado protegido
	require.Equal(t, http.StatusConflict, call(t, app, http.MethodDelete, "/api/customers/"+cust.ID, a.Token, nil, &errResp))
	assert.Equal(t, "CONFLICT", errResp.Code)
	require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/invoices/"+inv.ID, a.Token, nil, nil))
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/customers/"+cust.ID, a.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/customers/"+cust.ID, a.Token, nil, nil))
}

func TestAPI_RutasSoloAdmin(t *testing.T) {
	app := newAPI(t)
	admin := register(t, app, "admin@acme.io", "Acme")

	var created dto.UserResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/users", admin.Token,
		dto.CreateUserRequest{Name: "Vendedor", Email: "v@acme.io", Password: "12345678"}, &created))
	assert.Equal(t, "user", created.Role)

	var login dto.AuthResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "v@acme.io", Password: "12345678"}, &login))

	name := "Hack"
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodPut, "/api/companies", login.Token, dto.UpdateCompanyRequest{Name: &name}, nil))
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodPost, "/api/companies/logo", login.Token, dto.UpdateLogoRequest{LogoURL: "https://x/l.png"}, nil))
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodGet, "/api/users", login.Token, nil, nil))

	var company dto.CompanyResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/companies", login.Token, nil, &company))
	assert.Equal(t, "Acme", company.Name)

	var me dto.UserResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/users/me", login.Token, nil, &me))
	assert.Equal(t, "Acme", me.CompanyName)

	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/customers", "", nil, nil))
}

func TestAPI_DescargaPDF(t *testing.T) {
	app := newAPI(t)
	a := register(t, app, "a@acme.io", "Acme")
	var cust dto.CustomerResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/customers", a.Token,
		dto.CustomerRequest{Name: "Cliente", Email: "c@x.com", Currency: "eur"}, &cust))
	var inv dto.InvoiceResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/invoices", a.Token, invoiceBody(cust.ID, "F/001"), &inv))
	assert.Equal(t, "EUR", inv.Currency)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+a.Token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_F_001.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestAPI_SaludYMetricas(t *testing.T) {
	app := newAPI(t)
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", "", nil, nil))
	// petición rechazada por el middleware de auth; igual se cuenta
	call(t, app, http.MethodGet, "/api/customers", "", nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "facturacion_http_requests_total")
}
