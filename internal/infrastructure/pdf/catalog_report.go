// Package pdf genera el reporte PDF de una consulta del catálogo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + tienda        │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FILTROS aplicados                                          │
//	│  TARJETAS: Total | Ingresos | Unidades | Conteo por estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una fila por registro visible                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: registros mostrados / coincidentes                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
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

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

var _ appcatalog.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// column cabecera + ancho (sobre 12) + alineación + extractor de valor.
type column struct {
	label string
	size  int
	align align.Type
	value func(dto.CatalogRecordDTO) string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa appcatalog.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateCatalogReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateCatalogReport(_ context.Context, data appcatalog.ReportData) ([]byte, error) {
	if data.Result == nil {
		return nil, fmt.Errorf("pdf: reporte sin resultado")
	}
	title := reportTitle(data.Kind)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(data.StoreID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(filtersRow(data.Filters))
	m.AddRows(statsRows(data.Result.Stats)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	cols := columnsFor(data.Kind)
	m.AddRows(tableHeaderRow(cols))
	m.AddRows(tableRows(cols, data.Result.Records)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data.Result))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportTitle(kind entity.RecordKind) string {
	if kind == entity.KindOrder {
		return "Reporte de pedidos"
	}
	return "Reporte de productos"
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + tienda (izq) y fecha de generación (der).
func headerRow(title string, data appcatalog.ReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tienda: "+data.StoreID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func filtersRow(filters []appcatalog.AppliedFilter) core.Row {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f.Label+": "+f.Value)
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("FILTROS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(strings.Join(parts, "   |   "), "Sin filtros"), props.Text{
				Size: 8, Top: 5, Color: colorGray,
			}),
		),
	)
}

// statsRows: tarjetas de resumen y conteo por estado (y por medio de pago en pedidos).
func statsRows(s dto.CatalogStatsDTO) []core.Row {
	card := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center}),
		)
	}
	scope := "Conjunto completo"
	if s.Scope == "filtered" {
		scope = "Registros filtrados"
	}
	rows := []core.Row{
		row.New(14).Add(
			card("Total ("+scope+")", fmt.Sprintf("%d", s.TotalCount)),
			card("Ingresos", "$"+money(s.TotalRevenue)),
			card("Unidades", fmt.Sprintf("%d", s.TotalItems)),
			card("Valor inventario", "$"+money(s.InventoryValue)),
		),
		row.New(6).Add(col.New(12).Add(
			text.New("Por estado: "+formatCounts(s.CountsByStatus), props.Text{Size: 8, Top: 1}),
		)),
	}
	if len(s.CountsByPaymentMethod) > 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Por medio de pago: "+formatCounts(s.CountsByPaymentMethod), props.Text{Size: 8, Top: 1}),
		)))
	}
	return rows
}

func columnsFor(kind entity.RecordKind) []column {
	price := func(r dto.CatalogRecordDTO) string { return "$" + money(r.Price) }
	status := func(r dto.CatalogRecordDTO) string { return r.Status }
	if kind == entity.KindOrder {
		return []column{
			{"Pedido", 3, align.Left, func(r dto.CatalogRecordDTO) string { return nonEmpty(r.DisplayName, r.ID) }},
			{"Estado", 2, align.Center, status},
			{"Medio de pago", 2, align.Center, func(r dto.CatalogRecordDTO) string { return nonEmpty(r.PaymentMethod, "—") }},
			{"Fecha", 2, align.Center, func(r dto.CatalogRecordDTO) string {
				if r.CreatedAt == nil {
					return "—"
				}
				return r.CreatedAt.Format("02/01/2006")
			}},
			{"Total", 3, align.Right, price},
		}
	}
	return []column{
		{"Producto", 4, align.Left, func(r dto.CatalogRecordDTO) string { return nonEmpty(r.DisplayName, r.ID) }},
		{"Categoría", 2, align.Left, func(r dto.CatalogRecordDTO) string { return r.Category }},
		{"Estado", 2, align.Center, status},
		{"Cant.", 1, align.Center, func(r dto.CatalogRecordDTO) string { return fmt.Sprintf("%d", r.Quantity) }},
		{"Precio", 3, align.Right, price},
	}
}

func tableHeaderRow(cols []column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

// tableRows: una fila por registro visible.
func tableRows(cols []column, records []dto.CatalogRecordDTO) []core.Row {
	if len(records) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Ningún registro coincide con los filtros.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		))}
	}
	result := make([]core.Row, 0, len(records))
	for _, rec := range records {
		r := row.New(7)
		for _, c := range cols {
			r.Add(col.New(c.size).Add(text.New(c.value(rec), props.Text{
				Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, r)
	}
	return result
}

func footerRow(res *dto.CatalogQueryResponse) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Mostrando %d de %d registros coincidentes (offset %d).",
			len(res.Records), res.Page.Matched, res.Page.Offset), props.Text{
			Size: 7, Color: colorGray, Top: 2, Align: align.Right,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	return formatMoney(d.StringFixed(0))
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

// formatCounts "active: 2, archived: 0, draft: 1" con claves en orden alfabético.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
