// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the import pipeline. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "layofflens"

// Import row stages.
const (
	StageRead             = "read"
	StageValidated        = "validated"
	StageInserted         = "inserted"
	StageValidationFailed = "validation_failed"
	StageInsertFailed     = "insert_failed"
)

type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	importRows    *prometheus.CounterVec
	importBatches *prometheus.CounterVec
	lastImport    prometheus.Gauge
}

// New registers every collector on a private registry so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "code"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	m.importRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "CSV rows by import stage",
	}, []string{"stage"})
	m.importBatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_batches_total",
		Help:      "Insert batches by result",
	}, []string{"result"})
	m.lastImport = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_import_success_timestamp_seconds",
		Help:      "Unix timestamp of the last import without insert failures",
	})

	m.registry.MustRegister(
		m.requests, m.duration, m.importRows, m.importBatches, m.lastImport,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveBatch(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.importBatches.WithLabelValues(result).Inc()
}

// ObserveImport records the row counts of a finished import.
func (m *Metrics) ObserveImport(report *models.ImportReport) {
	if m == nil || report == nil {
		return
	}
	m.importRows.WithLabelValues(StageRead).Add(float64(report.RowsRead))
	m.importRows.WithLabelValues(StageValidated).Add(float64(report.RowsValidated))
	m.importRows.WithLabelValues(StageInserted).Add(float64(report.RowsInserted))
	m.importRows.WithLabelValues(StageValidationFailed).Add(float64(report.ValidationFailed))
	m.importRows.WithLabelValues(StageInsertFailed).Add(float64(report.InsertFailed))
	if report.InsertFailed == 0 && report.RowsInserted > 0 {
		m.lastImport.Set(float64(report.FinishedAt.Unix()))
	}
}
