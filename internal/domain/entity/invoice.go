package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. No hay restricciones de transición entre ellos.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceStatuses lista los estados válidos en orden de ciclo de vida.
var InvoiceStatuses = []string{
	InvoiceStatusDraft,
	InvoiceStatusPending,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

// IsValidInvoiceStatus indica si s es un estado soportado.
func IsValidInvoiceStatus(s string) bool {
	for _, st := range InvoiceStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Invoice representa la cabecera de una factura.
// (CompanyID, Number) es único; CustomerID apunta a un Customer de la misma empresa.
type Invoice struct {
	ID                 string
	CompanyID          string
	CustomerID         string
	Number             string
	Date               time.Time
	DueDate            time.Time
	Status             string
	Total              decimal.Decimal
	Currency           string
	Notes              string
	TermsAndConditions string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Cargados según la consulta; no se persisten desde aquí.
	Customer *Customer
	Items    []*InvoiceItem
}

// InvoiceItem representa una línea de detalle de una factura.
// No tiene ciclo de vida propio: se crea y se reemplaza siempre junto con su factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Position    int // orden dentro de la factura
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity × UnitPrice
	TaxRate     decimal.Decimal // porcentaje, ej. 19 = 19%
	TaxAmount   decimal.Decimal // Amount × TaxRate / 100
}
