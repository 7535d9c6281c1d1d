// Package pdf genera el reporte PDF del listado de facturas CFDI.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: RFC de la empresa   │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMITIDAS: Fecha | Serie-Folio | RFC receptor | Total       │
//	│  Totales por moneda                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECIBIDAS: Fecha | Serie-Folio | RFC emisor | Total        │
//	│  Totales por moneda                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

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
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/cfdi-api/internal/application/invoicing"
	"github.com/jhoicas/cfdi-api/internal/domain/entity"
	pkgcfdi "github.com/jhoicas/cfdi-api/pkg/cfdi"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa invoicing.InvoiceReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador con formato numérico es-MX.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(language.MustParse("es-MX"))}
}

// GenerateInvoiceReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInvoiceReport(_ context.Context, rep *invoicing.InvoiceReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Facturas CFDI "+rep.CompanyRFC, true).
		WithAuthor(rep.CompanyRFC, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(g.section("FACTURAS EMITIDAS", "RFC receptor", rep.Issued, rep.IssuedTotals, func(inv *entity.Invoice) string {
		return inv.ReceiverRFC
	})...)
	m.AddRows(line.NewRow(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.section("FACTURAS RECIBIDAS", "RFC emisor", rep.Received, rep.ReceivedTotals, func(inv *entity.Invoice) string {
		return inv.IssuerRFC
	})...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(rep *invoicing.InvoiceReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Reporte de facturas CFDI", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RFC: "+rep.CompanyRFC, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Emitidas: %d  |  Recibidas: %d", len(rep.Issued), len(rep.Received)), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// section arma el título, la tabla y los totales de una clasificación.
func (g *MarotoReportGenerator) section(
	title, counterpartLabel string,
	list []*entity.Invoice,
	totals map[string]decimal.Decimal,
	counterpart func(*entity.Invoice) string,
) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}))),
	}
	if len(list) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(text.New("Sin facturas.", props.Text{
			Size: 8, Color: colorGray, Top: 1,
		}))))
	}

	rows = append(rows, tableHeaderRow(counterpartLabel))
	for _, inv := range list {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(inv.Date, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(seriesFolio(inv), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(counterpartText(counterpart(inv)), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(g.money(inv.Total, inv.Currency), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}

	rows = append(rows, line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	for _, cur := range sortedKeys(totals) {
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New("Total "+cur+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(g.money(totals[cur], cur), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 1, Color: colorPrimary,
			})),
		))
	}
	return rows
}

func tableHeaderRow(counterpartLabel string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 3, align.Left),
		h("Serie-Folio", 2, align.Left),
		h(counterpartLabel, 4, align.Left),
		h("Total", 3, align.Right),
	)
}

// money formatea el importe con separador de miles (es-MX) y el código ISO de la moneda.
// Un código no reconocido se muestra tal como viene en el CFDI.
func (g *MarotoReportGenerator) money(d decimal.Decimal, cur string) string {
	f, _ := d.Round(2).Float64()
	amount := g.printer.Sprint(number.Decimal(f, number.Scale(2)))
	if unit, err := currency.ParseISO(cur); err == nil {
		return amount + " " + unit.String()
	}
	if cur == "" {
		return amount
	}
	return amount + " " + cur
}

func seriesFolio(inv *entity.Invoice) string {
	switch {
	case inv.Series != "" && inv.Folio != "":
		return inv.Series + "-" + inv.Folio
	case inv.Folio != "":
		return inv.Folio
	case inv.Series != "":
		return inv.Series
	}
	return "-"
}

// counterpartText marca los RFC genéricos del SAT.
func counterpartText(rfc string) string {
	if pkgcfdi.IsGenericRFC(rfc) {
		return rfc + " (genérico)"
	}
	return rfc
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
