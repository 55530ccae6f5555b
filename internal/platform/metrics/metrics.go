// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics declares Libra's Prometheus collectors and the HTTP
// instrumentation middleware. Collectors register on the default registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libra_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "libra_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Import pipeline
	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libra_import_rows_total",
			Help: "Import rows by source format and outcome (parsed, skipped)",
		},
		[]string{"format", "outcome"},
	)

	ImportConfirmTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libra_import_confirm_total",
			Help: "Confirmed import items by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	// Recommendations
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "libra_recommend_duration_seconds",
			Help:    "Time to rank the corpus for one target book",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	RecommendCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libra_recommend_cache_total",
			Help: "Recommendation cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	// Metadata providers
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libra_provider_requests_total",
			Help: "Metadata provider calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "libra_provider_breaker_state",
			Help: "Circuit breaker state per provider (0 closed, 1 half-open, 2 open)",
		},
		[]string{"provider"},
	)

	// Covers
	CoverDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libra_cover_downloads_total",
			Help: "Remote cover downloads by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordImportRows adds parsed and skipped counts for one import run.
func RecordImportRows(format string, parsed, skipped int) {
	ImportRowsTotal.WithLabelValues(format, "parsed").Add(float64(parsed))
	ImportRowsTotal.WithLabelValues(format, "skipped").Add(float64(skipped))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (writer *statusWriter) WriteHeader(code int) {
	writer.status = code
	writer.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		recorder := &statusWriter{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		HTTPRequestsTotal.WithLabelValues(route, request.Method, strconv.Itoa(recorder.status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, request.Method).Observe(time.Since(start).Seconds())
	})
}
