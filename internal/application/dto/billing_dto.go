package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest body para POST /api/customers y PUT /api/customers/:id (reemplazo completo).
type CustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
	Currency    string `json:"currency,omitempty"` // ISO 4217; vacío = USD
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CompanyName string    `json:"companyName,omitempty"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Zip         string    `json:"zip"`
	Country     string    `json:"country"`
	Phone       string    `json:"phone,omitempty"`
	TaxID       string    `json:"taxId,omitempty"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InvoiceRequest body para POST /api/invoices y PUT /api/invoices/:id.
// En PUT, Items reemplaza por completo las líneas existentes.
// Fechas en formato 2006-01-02 o RFC 3339.
type InvoiceRequest struct {
	CustomerID         string               `json:"customerId"`
	Number             string               `json:"number"`
	Date               string               `json:"date"`
	DueDate            string               `json:"dueDate"`
	Status             string               `json:"status,omitempty"`   // vacío: draft al crear, sin cambio al editar
	Currency           string               `json:"currency,omitempty"` // vacío: moneda del cliente al crear, sin cambio al editar
	Notes              string               `json:"notes,omitempty"`
	TermsAndConditions string               `json:"termsAndConditions,omitempty"`
	Items              []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea de factura. Amount y TaxAmount se calculan en el servidor.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"` // porcentaje
}

// InvoiceResponse factura; Items solo en el detalle.
type InvoiceResponse struct {
	ID                 string                `json:"id"`
	CompanyID          string                `json:"companyId"`
	CustomerID         string                `json:"customerId"`
	CustomerName       string                `json:"customerName,omitempty"`
	CustomerEmail      string                `json:"customerEmail,omitempty"`
	Number             string                `json:"number"`
	Date               string                `json:"date"`
	DueDate            string                `json:"dueDate"`
	Status             string                `json:"status"`
	Currency           string                `json:"currency"`
	Subtotal           *decimal.Decimal      `json:"subtotal,omitempty"`
	TaxTotal           *decimal.Decimal      `json:"taxTotal,omitempty"`
	Total              decimal.Decimal       `json:"total"`
	Notes              string                `json:"notes,omitempty"`
	TermsAndConditions string                `json:"termsAndConditions,omitempty"`
	Customer           *CustomerResponse     `json:"customer,omitempty"`
	Items              []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// InvoiceItemResponse línea de detalle en la respuesta.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoiceId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
}

// InvoiceListRequest filtros de GET /api/invoices.
type InvoiceListRequest struct {
	PageRequest
	Status string `query:"status"`
}
