package dto

import "github.com/shopspring/decimal"

// InvoiceStatsResponse respuesta de GET /api/invoices/stats/overview.
type InvoiceStatsResponse struct {
	TotalInvoices   int          `json:"totalInvoices"`
	PaidInvoices    int          `json:"paidInvoices"`
	PendingInvoices int          `json:"pendingInvoices"`
	OverdueInvoices int          `json:"overdueInvoices"`
	Revenues        []RevenueDTO `json:"revenues"` // facturas pagadas, por moneda
	Currency        string       `json:"currency"` // moneda principal (la más usada)
}

// RevenueDTO ingresos cobrados en una moneda.
type RevenueDTO struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}
