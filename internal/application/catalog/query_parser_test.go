package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func TestBuildQuery_ListasSeparadasPorComa(t *testing.T) {
	q, err := appcatalog.BuildQuery(entity.KindProduct, dto.CatalogQueryRequest{
		Search:        "  robe ",
		Status:        "active, ACTIVE,brouillon,,rare",
		Category:      "Mode,Maison",
		Price:         "gratuit,100000+",
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, "robe", q.Criteria.SearchText)
	assert.Equal(t, []entity.Status{entity.StatusActive, entity.StatusDraft, entity.StatusUnknown}, q.Criteria.StatusIn)
	assert.Equal(t, []string{"Mode", "Maison"}, q.Criteria.CategoryIn)
	assert.Equal(t, []catalog.PriceBucket{catalog.BucketFree, catalog.Bucket100000Plus}, q.Criteria.PriceRanges)
	assert.Empty(t, q.Criteria.PaymentMethodIn, "los productos ignoran el filtro de medio de pago")
	assert.Equal(t, catalog.DefaultSort(), q.Sort)
	assert.Equal(t, catalog.ScopeFull, q.StatsScope)
}

func TestBuildQuery_RangoDeFechasCubreElDiaCompleto(t *testing.T) {
	q, err := appcatalog.BuildQuery(entity.KindOrder, dto.CatalogQueryRequest{CreatedFrom: "2024-05-01", CreatedTo: "2024-05-01"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), q.Criteria.CreatedFrom)
	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 999999999, time.UTC), q.Criteria.CreatedTo)
}

func TestBuildQuery_OrdenYPaginacion(t *testing.T) {
	q, err := appcatalog.BuildQuery(entity.KindProduct, dto.CatalogQueryRequest{
		Sort:        "created_at",
		Dir:         "ASC",
		PageRequest: dto.PageRequest{Limit: 10, Offset: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, catalog.SortSpec{Field: catalog.SortByCreatedAt, Direction: catalog.SortAsc}, q.Sort)
	assert.Equal(t, catalog.Page{Offset: 20, Limit: 10}, q.Page)

	q, err = appcatalog.BuildQuery(entity.KindProduct, dto.CatalogQueryRequest{Sort: "name"})
	require.NoError(t, err)
	assert.Equal(t, catalog.SortAsc, q.Sort.Direction, "sin dir el orden explícito es ascendente")

	q, err = appcatalog.BuildQuery(entity.KindProduct, dto.CatalogQueryRequest{Dir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, catalog.SortSpec{Field: catalog.SortByCreatedAt, Direction: catalog.SortAsc}, q.Sort)
}

func TestDescribeFilters_SoloLosActivos(t *testing.T) {
	q, err := appcatalog.BuildQuery(entity.KindOrder, dto.CatalogQueryRequest{
		Status:        "shipped",
		PaymentMethod: "momo",
		CreatedTo:     "2024-06-30",
	})
	require.NoError(t, err)

	filters := appcatalog.DescribeFilters(entity.KindOrder, q)

	assert.Equal(t, []appcatalog.AppliedFilter{
		{Label: "Estado", Value: "shipped"},
		{Label: "Medio de pago", Value: "mobile_money"},
		{Label: "Hasta", Value: "2024-06-30"},
		{Label: "Orden", Value: "createdAt desc"},
	}, filters)
}
