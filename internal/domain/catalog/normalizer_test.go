package catalog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func TestNormalize_ProductoCompleto(t *testing.T) {
	raw := entity.RawRecord{
		"_id":         "p-1",
		"name":        "Robe en wax",
		"description": "Coton 100%",
		"status":      "ACTIVE",
		"category":    map[string]any{"name": "Vêtements"},
		"price":       "15 000",
		"stockLevel":  float64(12),
		"createdAt":   "2024-03-01T10:00:00Z",
	}

	rec, issues := catalog.Normalize(entity.KindProduct, raw)

	assert.Empty(t, issues)
	assert.Equal(t, "p-1", rec.ID)
	assert.Equal(t, entity.KindProduct, rec.Kind)
	assert.Equal(t, "Robe en wax", rec.DisplayName)
	assert.Equal(t, entity.StatusActive, rec.Status)
	assert.Equal(t, "Vêtements", rec.Category)
	assert.True(t, rec.Price.Equal(decimal.NewFromInt(15000)), "price=%s", rec.Price)
	assert.Equal(t, int64(12), rec.Quantity)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), rec.CreatedAt)
	assert.Empty(t, rec.PaymentMethod, "los productos no llevan medio de pago")
}

func TestNormalize_ValoresPorDefecto(t *testing.T) {
	rec, issues := catalog.Normalize(entity.KindProduct, entity.RawRecord{"id": "p-2", "status": "draft"})

	assert.Empty(t, issues, "campos opcionales ausentes no son anomalías")
	assert.Equal(t, entity.DefaultCategory, rec.Category)
	assert.True(t, rec.Price.IsZero())
	assert.Equal(t, int64(0), rec.Quantity)
	assert.True(t, rec.CreatedAt.IsZero())
}

func TestNormalize_NumerosMalformadosSonCero(t *testing.T) {
	rec, issues := catalog.Normalize(entity.KindProduct, entity.RawRecord{
		"id":       "p-3",
		"status":   "active",
		"price":    "gratuit?",
		"quantity": true,
	})

	assert.True(t, rec.Price.IsZero())
	assert.Equal(t, int64(0), rec.Quantity)
	assert.ElementsMatch(t, []catalog.Issue{catalog.IssueBadPrice, catalog.IssueBadQuantity}, issues)
}

func TestNormalize_NegativosSeReportanYSeLlevanACero(t *testing.T) {
	rec, issues := catalog.Normalize(entity.KindOrder, entity.RawRecord{
		"id":            "o-1",
		"status":        "pending",
		"totalAmount":   -50.5,
		"itemCount":     -2,
		"paymentMethod": "card",
	})

	assert.True(t, rec.Price.IsZero())
	assert.Equal(t, int64(0), rec.Quantity)
	assert.ElementsMatch(t, []catalog.Issue{catalog.IssueNegativePrice, catalog.IssueNegativeQuantity}, issues)
}

func TestNormalize_CantidadFueraDeRangoEsCero(t *testing.T) {
	cases := map[string]any{
		"json.Number": json.Number("1e19"),
		"float64":     float64(1e19),
		"string":      "18446744073709551617",
	}
	for name, qty := range cases {
		t.Run(name, func(t *testing.T) {
			rec, issues := catalog.Normalize(entity.KindProduct, entity.RawRecord{"id": "p-9", "status": "active", "quantity": qty})
			assert.Equal(t, int64(0), rec.Quantity)
			assert.Equal(t, []catalog.Issue{catalog.IssueBadQuantity}, issues)
		})
	}
}

func TestNormalize_PedidoConAliasYEstadoDesconocido(t *testing.T) {
	rec, issues := catalog.Normalize(entity.KindOrder, entity.RawRecord{
		"id":             json.Number("42"),
		"orderNumber":    "CMD-0042",
		"status":         "refunded",
		"total_amount":   json.Number("74990.50"),
		"payment_method": "Orange Money",
		"created_at":     float64(1709287200000),
	})

	assert.Equal(t, "42", rec.ID)
	assert.Equal(t, "CMD-0042", rec.DisplayName)
	assert.Equal(t, entity.StatusUnknown, rec.Status)
	assert.True(t, rec.Price.Equal(decimal.RequireFromString("74990.50")))
	assert.Equal(t, entity.PaymentMobileMoney, rec.PaymentMethod)
	assert.Equal(t, time.UnixMilli(1709287200000).UTC(), rec.CreatedAt)
	assert.Equal(t, []catalog.Issue{catalog.IssueUnknownStatus}, issues)
}

func TestNormalize_SeparadoresDecimales(t *testing.T) {
	cases := map[string]string{
		"1,5":        "1.5",
		"1,250.00":   "1250",
		"1.250,75":   "1250.75",
		"25000 FCFA": "25000",
		"$ 19.99":    "19.99",
		" 100 000 ":  "100000",
		"1.5e3":      "1500",
		"1e5":        "100000",
		"2.5E+2 XOF": "250",
	}
	for in, want := range cases {
		rec, issues := catalog.Normalize(entity.KindProduct, entity.RawRecord{"id": "x", "status": "active", "price": in})
		assert.Empty(t, issues, in)
		assert.True(t, rec.Price.Equal(decimal.RequireFromString(want)), "%q → %s", in, rec.Price)
	}
}

func TestNormalizeAll_IDsUnicosYOrdenConservado(t *testing.T) {
	raws := []entity.RawRecord{
		{"id": "a", "status": "active"},
		{"status": "draft"},
		{"id": "a", "status": "archived"},
		{"id": "b", "status": "weird"},
	}

	recs, report := catalog.NormalizeAll(entity.KindProduct, raws)

	require.Len(t, recs, 3)
	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, entity.StatusActive, recs[0].Status, "gana la primera aparición")
	assert.Equal(t, "row-2", recs[1].ID)
	assert.Equal(t, "b", recs[2].ID)

	assert.Equal(t, 4, report.Received)
	assert.Equal(t, 3, report.Kept)
	assert.Equal(t, 1, report.Issues[catalog.IssueDuplicateID])
	assert.Equal(t, 1, report.Issues[catalog.IssueMissingID])
	assert.Equal(t, 1, report.Issues[catalog.IssueUnknownStatus])
	assert.True(t, report.HasIssues())
}

func TestNormalizeAll_LoteVacio(t *testing.T) {
	recs, report := catalog.NormalizeAll(entity.KindOrder, nil)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.False(t, report.HasIssues())
}
