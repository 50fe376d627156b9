package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func sampleResult() *dto.CatalogQueryResponse {
	created := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	return &dto.CatalogQueryResponse{
		StoreID: "store-1",
		Kind:    "order",
		Records: []dto.CatalogRecordDTO{
			{ID: "o1", DisplayName: "CMD-1", Status: "delivered", Price: decimal.NewFromInt(125000), PaymentMethod: "mobile_money", CreatedAt: &created},
			{ID: "o2", Status: "pending", Price: decimal.NewFromInt(900)},
		},
		Page: dto.PageResponse{Limit: 500, Matched: 2},
		Stats: dto.CatalogStatsDTO{
			Scope:                 "full",
			CountsByStatus:        map[string]int{"delivered": 1, "pending": 1},
			CountsByPaymentMethod: map[string]int{"mobile_money": 1, "unknown": 1},
			TotalRevenue:          decimal.NewFromInt(125900),
			TotalCount:            2,
		},
	}
}

func TestGenerateCatalogReport_DevuelvePDF(t *testing.T) {
	gen := NewMarotoReportGenerator()

	for _, kind := range []entity.RecordKind{entity.KindOrder, entity.KindProduct} {
		out, err := gen.GenerateCatalogReport(context.Background(), appcatalog.ReportData{
			StoreID:     "store-1",
			Kind:        kind,
			GeneratedAt: time.Now(),
			Filters:     []appcatalog.AppliedFilter{{Label: "Estado", Value: "delivered, pending"}},
			Result:      sampleResult(),
		})
		require.NoError(t, err, kind)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "kind %s", kind)
	}
}

func TestGenerateCatalogReport_SinRegistros(t *testing.T) {
	res := sampleResult()
	res.Records = nil

	out, err := NewMarotoReportGenerator().GenerateCatalogReport(context.Background(), appcatalog.ReportData{
		StoreID: "store-1", Kind: entity.KindProduct, Result: res,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = NewMarotoReportGenerator().GenerateCatalogReport(context.Background(), appcatalog.ReportData{Kind: entity.KindProduct})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{"0": "0", "900": "900", "25000": "25.000", "1000000": "1.000.000"}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in))
	}
	assert.Equal(t, "41.000", money(decimal.RequireFromString("40999.6")))
}

func TestFormatCounts_OrdenAlfabetico(t *testing.T) {
	assert.Equal(t, "active: 2, archived: 0, draft: 1", formatCounts(map[string]int{"draft": 1, "active": 2, "archived": 0}))
}
