package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

type column struct {
	title   string
	numeric bool
	value   func(r dto.CatalogRecordDTO) string
}

func created(r dto.CatalogRecordDTO) string {
	if r.CreatedAt == nil {
		return "-"
	}
	return r.CreatedAt.Format("2006-01-02")
}

func columnsFor(kind entity.RecordKind) []column {
	if kind == entity.KindOrder {
		return []column{
			{title: "ID", value: func(r dto.CatalogRecordDTO) string { return r.ID }},
			{title: "Pedido", value: func(r dto.CatalogRecordDTO) string { return r.DisplayName }},
			{title: "Estado", value: func(r dto.CatalogRecordDTO) string { return r.Status }},
			{title: "Pago", value: func(r dto.CatalogRecordDTO) string { return r.PaymentMethod }},
			{title: "Total", numeric: true, value: func(r dto.CatalogRecordDTO) string { return r.Price.StringFixed(2) }},
			{title: "Artículos", numeric: true, value: func(r dto.CatalogRecordDTO) string { return strconv.FormatInt(r.Quantity, 10) }},
			{title: "Creado", value: created},
		}
	}
	return []column{
		{title: "ID", value: func(r dto.CatalogRecordDTO) string { return r.ID }},
		{title: "Nombre", value: func(r dto.CatalogRecordDTO) string { return r.DisplayName }},
		{title: "Estado", value: func(r dto.CatalogRecordDTO) string { return r.Status }},
		{title: "Categoría", value: func(r dto.CatalogRecordDTO) string { return r.Category }},
		{title: "Precio", numeric: true, value: func(r dto.CatalogRecordDTO) string { return r.Price.StringFixed(2) }},
		{title: "Rango", value: func(r dto.CatalogRecordDTO) string { return r.PriceBucket }},
		{title: "Stock", numeric: true, value: func(r dto.CatalogRecordDTO) string { return strconv.FormatInt(r.Quantity, 10) }},
		{title: "Creado", value: created},
	}
}

// renderTable imprime la página visible y las tarjetas de resumen.
func renderTable(w io.Writer, kind entity.RecordKind, resp *dto.CatalogQueryResponse) error {
	cols := columnsFor(kind)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.title
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case cols[col].numeric:
				return numberStyle
			default:
				return cellStyle
			}
		})
	for _, r := range resp.Records {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.value(r)
		}
		t.Row(cells...)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", resp.StoreID, kind)))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d-%d de %d coincidencias\n",
		min(resp.Page.Offset+1, resp.Page.Matched), resp.Page.Offset+len(resp.Records), resp.Page.Matched)

	s := resp.Stats
	fmt.Fprintf(&b, "Estadísticas (%s): total %d · ingresos %s · valor inventario %s · unidades %d\n",
		s.Scope, s.TotalCount, s.TotalRevenue.StringFixed(2), s.InventoryValue.StringFixed(2), s.TotalItems)
	fmt.Fprintf(&b, "Por estado: %s\n", joinCounts(s.CountsByStatus))
	if len(s.CountsByPaymentMethod) > 0 {
		fmt.Fprintf(&b, "Por medio de pago: %s\n", joinCounts(s.CountsByPaymentMethod))
	}
	if len(resp.Normalization.Issues) > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Anomalías al normalizar: %s", joinCounts(resp.Normalization.Issues))))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// joinCounts "active=2 archived=0 draft=1" en orden alfabético.
func joinCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}
