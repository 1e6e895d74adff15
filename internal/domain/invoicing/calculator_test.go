package invoicing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLineAmounts_RedondeaImporteEImpuesto(t *testing.T) {
	cases := []struct {
		name                      string
		qty, price, rate          string
		wantAmount, wantTaxAmount string
	}{
		{"2 × 10 al 10%", "2", "10", "10", "20", "2"},
		{"sin impuesto", "3", "7.5", "0", "22.5", "0"},
		{"redondeo a centavos", "1", "9.99", "19", "9.99", "1.9"},
		{"cantidad fraccionaria", "0.5", "3.333", "5", "1.67", "0.08"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, tax := invoicing.LineAmounts(d(tc.qty), d(tc.price), d(tc.rate))
			assert.True(t, d(tc.wantAmount).Equal(amount), "amount=%s", amount)
			assert.True(t, d(tc.wantTaxAmount).Equal(tax), "tax=%s", tax)
		})
	}
}

func TestFill_CalculaLineasYTotales(t *testing.T) {
	items := []*entity.InvoiceItem{
		{Description: "Consultoría", Quantity: d("2"), UnitPrice: d("10"), TaxRate: d("10")},
		{Description: "Soporte", Quantity: d("1"), UnitPrice: d("5"), TaxRate: d("0")},
	}

	totals := invoicing.Fill(items)

	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, 1, items[1].Position)
	assert.True(t, d("20").Equal(items[0].Amount))
	assert.True(t, d("2").Equal(items[0].TaxAmount))
	assert.True(t, d("25").Equal(totals.Subtotal))
	assert.True(t, d("2").Equal(totals.TaxTotal))
	assert.True(t, d("27").Equal(totals.Total))
}

func TestSummarize_SinLineas(t *testing.T) {
	totals := invoicing.Summarize(nil)
	assert.True(t, totals.Total.IsZero())
}
