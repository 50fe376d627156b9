// Package metrics expone la instrumentación del motor de consultas en formato Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

var _ appcatalog.Metrics = (*Prometheus)(nil)

// Prometheus implementa appcatalog.Metrics sobre un registry propio (sin métricas globales).
type Prometheus struct {
	registry *prometheus.Registry

	queriesTotal       *prometheus.CounterVec
	queryDuration      *prometheus.HistogramVec
	recordsNormalized  *prometheus.CounterVec
	normalizationIssue *prometheus.CounterVec
	staleFetches       *prometheus.CounterVec
}

// NewPrometheus registra las métricas bajo el namespace indicado (ej. "catalogo").
func NewPrometheus(namespace string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Consultas al catálogo por tipo de registro y resultado.",
		}, []string{"kind", "outcome"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Latencia de consulta: carga, normalización y motor.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		recordsNormalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_normalized_total",
			Help:      "Registros crudos normalizados.",
		}, []string{"kind"}),
		normalizationIssue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalization_issues_total",
			Help:      "Anomalías encontradas al normalizar, por tipo.",
		}, []string{"kind", "issue"}),
		staleFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_fetches_total",
			Help:      "Cargas descartadas porque otra más reciente ya se había aplicado.",
		}, []string{"kind"}),
	}
	p.registry.MustRegister(
		p.queriesTotal,
		p.queryDuration,
		p.recordsNormalized,
		p.normalizationIssue,
		p.staleFetches,
		collectors.NewGoCollector(),
	)
	return p
}

func (p *Prometheus) ObserveQuery(kind entity.RecordKind, outcome string, elapsed time.Duration) {
	p.queriesTotal.WithLabelValues(string(kind), outcome).Inc()
	p.queryDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func (p *Prometheus) ObserveNormalization(kind entity.RecordKind, report catalog.Report) {
	p.recordsNormalized.WithLabelValues(string(kind)).Add(float64(report.Received))
	for issue, n := range report.Issues {
		if n > 0 {
			p.normalizationIssue.WithLabelValues(string(kind), string(issue)).Add(float64(n))
		}
	}
}

func (p *Prometheus) IncStaleFetch(kind entity.RecordKind) {
	p.staleFetches.WithLabelValues(string(kind)).Inc()
}

// Registry para tests y exportadores adicionales.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler endpoint /metrics (net/http; en Fiber se monta con el adaptor).
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
