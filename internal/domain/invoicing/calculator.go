// Package invoicing contiene la aritmética de líneas y totales de factura (servicio de dominio).
package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Decimales usados al redondear importes monetarios.
const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Decimales admitidos en cada dato de entrada de una línea.
const (
	QuantityPlaces  int32 = 4
	UnitPricePlaces int32 = 2
	TaxRatePlaces   int32 = 4
)

// Cotas de las columnas numéricas. MaxQuantity y MaxAmount son exclusivas.
var (
	MaxQuantity = decimal.New(1, 14)
	MaxAmount   = decimal.New(1, 16)
	MaxTaxRate  = decimal.NewFromInt(100)
)

// HasScale indica si d no tiene más de places decimales.
func HasScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// LineAmounts calcula el importe y el impuesto de una línea.
// Amount = Quantity × UnitPrice; TaxAmount = Amount × TaxRate / 100. Ambos redondeados a 2 decimales.
func LineAmounts(quantity, unitPrice, taxRate decimal.Decimal) (amount, taxAmount decimal.Decimal) {
	amount = quantity.Mul(unitPrice).Round(moneyPlaces)
	taxAmount = amount.Mul(taxRate).Div(hundred).Round(moneyPlaces)
	return amount, taxAmount
}

// Totals resume un conjunto de líneas.
type Totals struct {
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
	Total    decimal.Decimal
}

// Summarize suma importes e impuestos de las líneas ya calculadas.
func Summarize(items []*entity.InvoiceItem) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal = t.Subtotal.Add(it.Amount)
		t.TaxTotal = t.TaxTotal.Add(it.TaxAmount)
	}
	t.Total = t.Subtotal.Add(t.TaxTotal)
	return t
}

// Fill recalcula Amount/TaxAmount de cada línea, asigna su posición y devuelve los totales.
func Fill(items []*entity.InvoiceItem) Totals {
	for i, it := range items {
		it.Position = i
		it.Amount, it.TaxAmount = LineAmounts(it.Quantity, it.UnitPrice, it.TaxRate)
	}
	return Summarize(items)
}
