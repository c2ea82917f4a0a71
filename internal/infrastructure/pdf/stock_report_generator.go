// Package pdf genera reportes PDF del inventario con Maroto v2.
//
// Layout del reporte de stock bajo (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  RESUMEN: cantidad de productos en alerta                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Ubicación | Stock | Mínimo | Falta │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.StockReportGenerator = (*MarotoStockReportGenerator)(nil)

// MarotoStockReportGenerator implementa inventory.StockReportGenerator usando Maroto v2.
type MarotoStockReportGenerator struct {
	title   string
	printer *message.Printer
}

// NewMarotoStockReportGenerator construye el generador. Los números salen con formato es-CO.
func NewMarotoStockReportGenerator(title string) *MarotoStockReportGenerator {
	if title == "" {
		title = "Inventario"
	}
	return &MarotoStockReportGenerator{
		title:   title,
		printer: message.NewPrinter(language.MustParse("es-CO")),
	}
}

// GenerateLowStockReport genera el PDF de productos bajo su stock mínimo y devuelve sus bytes.
func (g *MarotoStockReportGenerator) GenerateLowStockReport(ctx context.Context, items []*entity.Product, generatedAt time.Time) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock bajo", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(g.summaryRow(len(items)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Falta = stock mínimo - stock actual. Registre entradas en /movements para reponer.", props.Text{
			Size: 7, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStockReportGenerator) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Productos bajo stock mínimo", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoStockReportGenerator) summaryRow(n int) core.Row {
	msg := "Sin productos en alerta."
	if n > 0 {
		msg = g.printer.Sprintf("%d producto(s) requieren reposición.", n)
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorAlert}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Ubicación", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mínimo", 1, align.Right),
		h("Falta", 2, align.Right),
	)
}

func (g *MarotoStockReportGenerator) tableRows(items []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, p := range items {
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(p.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(p.LocationName, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.number(p.CurrentStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(g.number(p.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.number(p.Shortfall()), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// number formatea con separadores locales: 1234.5 → "1.234,5".
func (g *MarotoStockReportGenerator) number(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return g.printer.Sprintf("%d", d.IntPart())
	}
	return g.printer.Sprintf("%.2f", d.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
