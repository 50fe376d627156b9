package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

const reportMaxRows = 500 // filas por PDF cuando la petición no fija limit

// ReportUseCase genera el PDF de una consulta del catálogo (mismos filtros que el listado).
type ReportUseCase struct {
	queries   *QueryUseCase
	generator ReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(queries *QueryUseCase, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{queries: queries, generator: generator, now: time.Now}
}

// ProductReport PDF del listado de productos.
func (uc *ReportUseCase) ProductReport(ctx context.Context, storeID string, req dto.CatalogQueryRequest) ([]byte, string, error) {
	return uc.Report(ctx, storeID, entity.KindProduct, req)
}

// OrderReport PDF del listado de pedidos.
func (uc *ReportUseCase) OrderReport(ctx context.Context, storeID string, req dto.CatalogQueryRequest) ([]byte, string, error) {
	return uc.Report(ctx, storeID, entity.KindOrder, req)
}

// Report ejecuta la consulta y la pasa al generador.
// Retorna (pdfBytes, filename, nil) o los mismos errores que QueryUseCase.Query.
func (uc *ReportUseCase) Report(
	ctx context.Context,
	storeID string,
	kind entity.RecordKind,
	req dto.CatalogQueryRequest,
) (pdfBytes []byte, filename string, err error) {
	if req.Limit == 0 {
		req.Limit = reportMaxRows
	}
	resp, q, err := uc.queries.query(ctx, storeID, kind, req)
	if err != nil {
		return nil, "", err
	}

	now := uc.now()
	data := ReportData{
		StoreID:     resp.StoreID,
		Kind:        kind,
		GeneratedAt: now,
		Filters:     DescribeFilters(kind, q),
		Result:      resp,
	}
	pdfBytes, err = uc.generator.GenerateCatalogReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	filename = fmt.Sprintf("catalogo_%s_%s_%s.pdf", kind, resp.StoreID, now.Format("20060102"))
	return pdfBytes, filename, nil
}
