// Package catalog contiene los casos de uso de consulta del catálogo de una tienda:
// carga de registros crudos, normalización, ejecución del motor y reportes.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// QueryUseCase resuelve una consulta de productos o pedidos de una tienda.
//
// Flujo: fuente de registros → normalización → snapshot (gana la última carga) → motor.
type QueryUseCase struct {
	source    repository.RecordSource
	snapshots *Snapshots
	metrics   Metrics
	log       *logger.Logger
}

// NewQueryUseCase construye el caso de uso. metrics puede ser NopMetrics{}.
func NewQueryUseCase(
	source repository.RecordSource,
	snapshots *Snapshots,
	metrics Metrics,
	log *logger.Logger,
) *QueryUseCase {
	if snapshots == nil {
		snapshots = NewSnapshots()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &QueryUseCase{source: source, snapshots: snapshots, metrics: metrics, log: log}
}

// loadedView conjunto normalizado con el que se ejecuta el motor.
type loadedView struct {
	records []entity.CatalogRecord
	report  catalog.Report
	stale   bool
}

// Query ejecuta la consulta completa y devuelve la página visible con sus estadísticas.
//
// Retorna:
//   - domain.ErrUnknownKind       si kind no es product ni order.
//   - domain.ErrInvalidInput      si los parámetros no son válidos.
//   - domain.ErrSourceUnavailable si la fuente de registros falla.
func (uc *QueryUseCase) Query(
	ctx context.Context,
	storeID string,
	kind entity.RecordKind,
	req dto.CatalogQueryRequest,
) (*dto.CatalogQueryResponse, error) {
	start := time.Now()
	resp, _, err := uc.query(ctx, storeID, kind, req)
	switch {
	case err == nil:
		uc.metrics.ObserveQuery(kind, OutcomeOK, time.Since(start))
	case errors.Is(err, domain.ErrSourceUnavailable):
		uc.metrics.ObserveQuery(kind, OutcomeSourceFailed, time.Since(start))
	default:
		uc.metrics.ObserveQuery(kind, OutcomeInvalid, time.Since(start))
	}
	return resp, err
}

func (uc *QueryUseCase) query(
	ctx context.Context,
	storeID string,
	kind entity.RecordKind,
	req dto.CatalogQueryRequest,
) (*dto.CatalogQueryResponse, catalog.Query, error) {
	if !kind.Valid() {
		return nil, catalog.Query{}, domain.ErrUnknownKind
	}
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, catalog.Query{}, fmt.Errorf("%w: store_id requerido", domain.ErrInvalidInput)
	}
	q, err := BuildQuery(kind, req)
	if err != nil {
		return nil, catalog.Query{}, err
	}

	view, err := uc.load(ctx, storeID, kind)
	if err != nil {
		return nil, catalog.Query{}, err
	}

	res := catalog.Run(kind, view.records, q)
	return toQueryResponse(storeID, kind, q, res, view), q, nil
}

// load obtiene y normaliza los registros bajo un ticket de snapshot.
// Una carga superada por otra más reciente responde con el conjunto más reciente.
func (uc *QueryUseCase) load(ctx context.Context, storeID string, kind entity.RecordKind) (loadedView, error) {
	ticket := uc.snapshots.Begin(SnapshotKey(storeID, kind))

	raws, err := uc.source.FetchRecords(ctx, storeID, kind)
	if err != nil {
		uc.snapshots.Abandon(ticket)
		uc.log.Error().Err(err).
			Str("store_id", storeID).
			Str("kind", string(kind)).
			Msg("catalog: no se pudieron obtener los registros")
		return loadedView{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	records, report := catalog.NormalizeAll(kind, raws)
	uc.metrics.ObserveNormalization(kind, report)
	if report.HasIssues() {
		uc.log.Warn().
			Str("store_id", storeID).
			Str("kind", string(kind)).
			Int("received", report.Received).
			Int("kept", report.Kept).
			Interface("issues", report.Issues).
			Msg("catalog: registros con anomalías normalizados")
	}

	current, fresh := uc.snapshots.Commit(ticket, Snapshot{Records: records, Report: report})
	if !fresh {
		uc.metrics.IncStaleFetch(kind)
		uc.log.Debug().
			Str("store_id", storeID).
			Str("kind", string(kind)).
			Msg("catalog: carga descartada, ya se aplicó una más reciente")
	}
	return loadedView{records: current.Records, report: current.Report, stale: !fresh}, nil
}
