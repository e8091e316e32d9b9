package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "equipcare_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	kpiRequests *prometheus.CounterVec
	kpiLatency  *prometheus.HistogramVec

	suggestionRequests *prometheus.CounterVec
	suggestionLatency  *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		kpiRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "kpi_requests_total",
				Help: "Total KPI view requests by view and result",
			},
			[]string{"view", "result"},
		)
		kpiLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "kpi_latency_seconds",
				Help:    "KPI view latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"view", "result"},
		)

		suggestionRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "suggestion_requests_total",
				Help: "Total asset suggestion requests by result",
			},
			[]string{"result"},
		)
		suggestionLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "suggestion_latency_seconds",
				Help:    "Asset suggestion latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			kpiRequests,
			kpiLatency,
			suggestionRequests,
			suggestionLatency,
			exportTotal,
			exportLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveKPIRequest records one KPI view computation.
func ObserveKPIRequest(view, result string, duration time.Duration) {
	if view == "" {
		view = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if kpiRequests != nil {
		kpiRequests.WithLabelValues(view, result).Inc()
	}
	if kpiLatency != nil {
		kpiLatency.WithLabelValues(view, result).Observe(duration.Seconds())
	}
}

// ObserveSuggestion records one suggestion request.
func ObserveSuggestion(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if suggestionRequests != nil {
		suggestionRequests.WithLabelValues(result).Inc()
	}
	if suggestionLatency != nil {
		suggestionLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records one report export.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
