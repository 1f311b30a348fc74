// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Source Resolution Metrics
	SourceLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_loads_total",
			Help: "Total number of dataset loads by resolved source",
		},
		[]string{"source"}, // "remote", "local", "none"
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Duration of remote dataset fetches in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
		[]string{"result"}, // "success", "failure"
	)

	SourceRowsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "source_rows_loaded",
			Help: "Number of records in the currently loaded dataset",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// View Metrics
	ViewDerivationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "view_derivation_duration_seconds",
			Help:    "Duration of derived view computations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"view"}, // "averages", "dominant", "heatmap", "series"
	)

	ChartCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chart_cache_hits_total",
			Help: "Total number of rendered chart cache hits",
		},
	)

	ChartCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chart_cache_misses_total",
			Help: "Total number of rendered chart cache misses",
		},
	)

	ChartRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chart_render_duration_seconds",
			Help:    "Duration of PNG chart rendering in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"chart"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSourceLoad records the outcome of one source resolution.
func RecordSourceLoad(source string, rows int) {
	SourceLoadsTotal.WithLabelValues(source).Inc()
	SourceRowsLoaded.Set(float64(rows))
}

// RecordRemoteFetch records the latency of a remote dataset fetch.
func RecordRemoteFetch(duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	SourceFetchDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordViewDerivation records how long a derived view took to compute.
func RecordViewDerivation(view string, duration time.Duration) {
	ViewDerivationDuration.WithLabelValues(view).Observe(duration.Seconds())
}

// RecordChartCache records a chart cache lookup.
func RecordChartCache(hit bool) {
	if hit {
		ChartCacheHits.Inc()
	} else {
		ChartCacheMisses.Inc()
	}
}

// RecordChartRender records the duration of one chart render.
func RecordChartRender(chart string, duration time.Duration) {
	ChartRenderDuration.WithLabelValues(chart).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}
