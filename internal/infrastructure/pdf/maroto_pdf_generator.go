// Package pdf genera la representación imprimible de cotizaciones y pedidos de
// venta a partir del documento ya traducido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Título + número             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DIRECCIONES: envío / facturación                           │
//	│  CAMPOS: etiqueta → valor (fecha, referencia, vendedor)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | P.Unit | Desc.% | Importe      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Base / Impuestos / Total                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/sales"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa sales.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ sales.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSaleDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSaleDocumentPDF(
	_ context.Context,
	doc *dto.SaleDocumentResponse,
	company *entity.Company,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(addressRow(doc.Addresses))
	for _, r := range fieldRows(doc.TemplateData) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(doc.Labels))
	for _, r := range tableDetailRows(doc.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y título + número (der).
func headerRow(doc *dto.SaleDocumentResponse, company *entity.Company) core.Row {
	number := ""
	if len(doc.TemplateData) > 0 {
		number = doc.TemplateData[0].Value
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(company.NIT, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(doc.Title), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// addressRow: uno o dos bloques de dirección lado a lado.
func addressRow(blocks []dto.AddressBlockDTO) core.Row {
	if len(blocks) == 0 {
		return row.New(2)
	}
	size := 12 / len(blocks)
	cols := make([]core.Col, 0, len(blocks))
	for _, b := range blocks {
		lines := append([]string{b.Name}, b.Lines...)
		if b.TaxID != "" {
			lines = append(lines, b.TaxID)
		}
		if b.Contact != "" {
			lines = append(lines, b.Contact)
		}
		cols = append(cols, col.New(size).Add(
			text.New(b.Label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.Join(lines, "\n"), props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		))
	}
	return row.New(30).Add(cols...)
}

// fieldRows: una fila etiqueta/valor por campo de cabecera.
func fieldRows(fields []dto.LabelValue) []core.Row {
	result := make([]core.Row, 0, len(fields))
	for _, f := range fields {
		result = append(result, row.New(5).Add(
			col.New(4).Add(text.New(f.Label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(8).Add(text.New(f.Value, props.Text{Size: 8, Top: 1})),
		))
	}
	return result
}

// tableHeaderRow: cabecera de la tabla de líneas con las etiquetas traducidas.
func tableHeaderRow(labels map[string]string) core.Row {
	h := func(key string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(labels[key], props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("description", 5, align.Left),
		h("quantity", 2, align.Right),
		h("unit_price", 2, align.Right),
		h("discount", 1, align.Right),
		h("amount", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea del pedido.
func tableDetailRows(lines []dto.SaleDocumentLineDTO) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(l.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Quantity.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(l.PriceUnit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(l.Discount.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *dto.SaleDocumentResponse) core.Row {
	label := func(s string, grand bool) core.Component {
		p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2}
		if grand {
			p.Size, p.Color = 10, colorPrimary
		}
		return text.New(s, p)
	}
	value := func(d decimal.Decimal, grand bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 1}
		if grand {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New(doc.Currency+" "+money(d), p)
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label(doc.Labels["untaxed"]+":", false),
			label(doc.Labels["taxes"]+":", false),
			label(doc.Labels["total"]+":", true),
		),
		col.New(3).Add(
			value(doc.AmountUntaxed, false),
			value(doc.AmountTax, false),
			value(doc.AmountTotal, true),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money importe con dos decimales y puntos de miles: 1234567.5 → "1.234.567,50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatMoney(intPart) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
