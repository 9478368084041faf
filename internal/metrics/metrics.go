// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package metrics provides Prometheus instrumentation for Showlog:
// database query performance, API latency, stats computation, metadata
// provider calls, and the reclassification cycle.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Watch Event Metrics
	EventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watch_events_recorded_total",
			Help: "Total number of watch events recorded",
		},
		[]string{"media_type", "source"},
	)

	EventsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "watch_events_deleted_total",
			Help: "Total number of watch events deleted",
		},
	)

	EventsMalformedTimestamp = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "watch_events_malformed_timestamp_total",
			Help: "Total number of events skipped during stats due to unparseable timestamps",
		},
	)

	// Stats Computation Metrics
	StatsComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stats_compute_duration_seconds",
			Help:    "Duration of full stats computation in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	AchievementsUnlocked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "achievements_unlocked",
			Help: "Number of achievements unlocked as of the last evaluation",
		},
	)

	// Reclassification Cycle Metrics
	ReclassifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reclassify_duration_seconds",
			Help:    "Duration of library reclassification cycles in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	ReclassifyTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reclassify_transitions_total",
			Help: "Total number of library status transitions applied by reclassification",
		},
		[]string{"from", "to"},
	)

	ReclassifySkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reclassify_skipped_total",
			Help: "Total number of titles skipped during reclassification due to missing metadata",
		},
	)

	// Metadata Provider Metrics
	MetadataRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metadata_request_duration_seconds",
			Help:    "Duration of metadata provider API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	MetadataRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_request_errors_total",
			Help: "Total number of metadata provider errors",
		},
		[]string{"error_type"}, // "timeout", "http", "decode", "breaker_open"
	)

	MetadataCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_hits_total",
			Help: "Total number of metadata cache hits",
		},
	)

	MetadataCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_misses_total",
			Help: "Total number of metadata cache misses",
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

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEvent records a watch event being stored.
func RecordEvent(mediaType, source string) {
	EventsRecorded.WithLabelValues(mediaType, source).Inc()
}

// RecordStatsCompute records the duration of a stats computation.
func RecordStatsCompute(duration time.Duration) {
	StatsComputeDuration.Observe(duration.Seconds())
}

// RecordReclassification records a reclassification cycle with the status
// transitions it applied.
func RecordReclassification(duration time.Duration, transitions map[[2]string]int, skipped int) {
	ReclassifyDuration.Observe(duration.Seconds())
	for pair, count := range transitions {
		ReclassifyTransitions.WithLabelValues(pair[0], pair[1]).Add(float64(count))
	}
	ReclassifySkipped.Add(float64(skipped))
}

// RecordMetadataRequest records a metadata provider call.
func RecordMetadataRequest(duration time.Duration, errorType string) {
	MetadataRequestDuration.Observe(duration.Seconds())
	if errorType != "" {
		MetadataRequestErrors.WithLabelValues(errorType).Inc()
	}
}
