package catalog

import (
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func toQueryResponse(storeID string, kind entity.RecordKind, q catalog.Query, res catalog.Result, view loadedView) *dto.CatalogQueryResponse {
	records := make([]dto.CatalogRecordDTO, 0, len(res.VisibleRecords))
	for _, r := range res.VisibleRecords {
		records = append(records, toRecordDTO(r))
	}

	scope := q.StatsScope
	if scope == "" {
		scope = catalog.ScopeFull
	}

	return &dto.CatalogQueryResponse{
		StoreID: storeID,
		Kind:    string(kind),
		Records: records,
		Page: dto.PageResponse{
			Limit:   q.Page.Limit,
			Offset:  q.Page.Offset,
			Matched: res.Matched,
		},
		Stats:         toStatsDTO(scope, res.Stats),
		Normalization: toNormalizationDTO(view.report),
		Stale:         view.stale,
	}
}

func toRecordDTO(r entity.CatalogRecord) dto.CatalogRecordDTO {
	out := dto.CatalogRecordDTO{
		ID:            r.ID,
		Kind:          string(r.Kind),
		DisplayName:   r.DisplayName,
		Description:   r.Description,
		Status:        string(r.Status),
		Category:      r.Category,
		Price:         r.Price,
		Quantity:      r.Quantity,
		PaymentMethod: string(r.PaymentMethod),
	}
	if b, ok := catalog.BucketFor(r.Price); ok {
		out.PriceBucket = string(b)
	}
	if !r.CreatedAt.IsZero() {
		t := r.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

func toStatsDTO(scope catalog.StatsScope, s catalog.Stats) dto.CatalogStatsDTO {
	out := dto.CatalogStatsDTO{
		Scope:          string(scope),
		CountsByStatus: make(map[string]int, len(s.CountsByStatus)),
		TotalRevenue:   s.TotalRevenue,
		InventoryValue: s.InventoryValue,
		TotalItems:     s.TotalItems,
		TotalCount:     s.TotalCount,
	}
	for status, n := range s.CountsByStatus {
		out.CountsByStatus[string(status)] = n
	}
	if s.CountsByPaymentMethod != nil {
		out.CountsByPaymentMethod = make(map[string]int, len(s.CountsByPaymentMethod))
		for pm, n := range s.CountsByPaymentMethod {
			out.CountsByPaymentMethod[string(pm)] = n
		}
	}
	return out
}

func toNormalizationDTO(r catalog.Report) dto.NormalizationDTO {
	out := dto.NormalizationDTO{Received: r.Received, Kept: r.Kept}
	for issue, n := range r.Issues {
		if n == 0 {
			continue
		}
		if out.Issues == nil {
			out.Issues = make(map[string]int)
		}
		out.Issues[string(issue)] = n
	}
	return out
}
