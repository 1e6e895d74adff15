// Package pdf genera la representación gráfica de una factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + web        │  N° Factura + fechas + estado│
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  CLIENTE: Nombre + empresa + dirección + contacto            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Imp% | Importe         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                       │
//	│  NOTAS + TÉRMINOS + QR de referencia                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/invoicing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes. inv debe traer Customer e Items.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, company *entity.Company) ([]byte, error) {
	if inv == nil || company == nil {
		return nil, fmt.Errorf("pdf: factura y empresa son obligatorias")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(company))
	if inv.Customer != nil {
		m.AddRows(customerRow(inv.Customer))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(inv.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))
	m.AddRows(footerRows(inv)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(inv *entity.Invoice, company *entity.Company) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(company.Website, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+inv.Date.Format(dateLayout)+"   Vence: "+inv.DueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Estado: "+strings.ToUpper(inv.Status), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

func issuerRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	name := c.Name
	if c.CompanyName != "" {
		name += " (" + c.CompanyName + ")"
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(nonEmpty(joinNonEmpty(", ", c.Address, c.City, c.State, c.Zip, c.Country), "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
			text.New(fmt.Sprintf("ID fiscal: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(c.TaxID, "—"),
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Phone, "—"),
			), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio unit.", 2, align.Right),
		h("Imp.%", 1, align.Center),
		h("Importe", 3, align.Right),
	)
}

func itemRows(items []*entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.TaxRate.String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(formatMoney(it.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(inv *entity.Invoice) core.Row {
	t := invoicing.Summarize(inv.Items)
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Impuestos:", 6),
			text.New("TOTAL "+inv.Currency+":", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12,
			}),
		),
		col.New(3).Add(
			value(formatMoney(t.Subtotal), 1),
			value(formatMoney(t.TaxTotal), 6),
			text.New(formatMoney(inv.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12,
			}),
		),
	)
}

func footerRows(inv *entity.Invoice) []core.Row {
	rows := []core.Row{line.NewRow(3)}
	if inv.Notes != "" {
		rows = append(rows, noteRow("NOTAS", inv.Notes))
	}
	if inv.TermsAndConditions != "" {
		rows = append(rows, noteRow("TÉRMINOS Y CONDICIONES", inv.TermsAndConditions))
	}
	// QR con número|fecha|total|moneda para conciliar el pago.
	ref := strings.Join([]string{inv.Number, inv.Date.Format("2006-01-02"), inv.Total.StringFixed(2), inv.Currency}, "|")
	rows = append(rows, row.New(35).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(text.New("Referencia de pago: "+ref, props.Text{
			Size: 8, Top: 4, Left: 3, Color: colorGray,
		})),
	))
	return rows
}

func noteRow(title, body string) core.Row {
	return row.New(16).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(body, props.Text{Size: 8, Top: 6, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// formatMoney redondea a 2 decimales e inserta separador de miles.
// Ej: 25000 → "25,000.00", -1234.5 → "-1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
