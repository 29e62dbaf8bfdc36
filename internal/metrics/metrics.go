// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package metrics provides Prometheus instrumentation for the
// recommendation and matching service: per-tier recommendation counters,
// search and label-match throughput, and API latency histograms.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal counts served recommendation lists by tier
	// (curated, personalized, cold_start).
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation lists served, by tier",
		},
		[]string{"tier"},
	)

	// RecommendationDuration tracks end-to-end recommendation latency.
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SearchesTotal counts catalog searches.
	SearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_searches_total",
			Help: "Total number of catalog searches",
		},
	)

	// MatchesTotal counts label match attempts by outcome
	// (matched, not_found).
	MatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "label_matches_total",
			Help: "Total number of label match attempts, by outcome",
		},
		[]string{"outcome"},
	)

	// APIRequestsTotal counts API requests.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// APIRequestDuration tracks API request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// DBQueryErrors counts store-level query errors.
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)
)

// RecordRecommendation records one served recommendation list.
func RecordRecommendation(tier string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(tier).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordSearch records one catalog search.
func RecordSearch() {
	SearchesTotal.Inc()
}

// RecordMatch records one label match attempt.
func RecordMatch(found bool) {
	outcome := "not_found"
	if found {
		outcome = "matched"
	}
	MatchesTotal.WithLabelValues(outcome).Inc()
}

// RecordDBError records one failed store query.
func RecordDBError(operation string) {
	DBQueryErrors.WithLabelValues(operation).Inc()
}

// RecordAPIRequest records an API request with its duration.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
