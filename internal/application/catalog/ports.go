package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Metrics instrumentación de las consultas (Prometheus en producción).
type Metrics interface {
	ObserveQuery(kind entity.RecordKind, outcome string, elapsed time.Duration)
	ObserveNormalization(kind entity.RecordKind, report catalog.Report)
	IncStaleFetch(kind entity.RecordKind)
}

// Resultados posibles de una consulta para ObserveQuery.
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeSourceFailed = "source_error"
)

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) ObserveQuery(entity.RecordKind, string, time.Duration)  {}
func (NopMetrics) ObserveNormalization(entity.RecordKind, catalog.Report) {}
func (NopMetrics) IncStaleFetch(entity.RecordKind)                        {}

// ReportGenerator genera la representación PDF de una consulta ya resuelta.
type ReportGenerator interface {
	GenerateCatalogReport(ctx context.Context, data ReportData) ([]byte, error)
}

// AppliedFilter par etiqueta/valor que se imprime en la cabecera del reporte.
type AppliedFilter struct {
	Label string
	Value string
}

// ReportData datos que necesita el generador PDF.
type ReportData struct {
	StoreID     string
	Kind        entity.RecordKind
	GeneratedAt time.Time
	Filters     []AppliedFilter
	Result      *dto.CatalogQueryResponse
}
