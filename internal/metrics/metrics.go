// Package metrics exposes railplan's Prometheus instrumentation: HTTP
// request metrics, journey-query latency, and loaded-dataset size
// gauges, wired to net/http via chi middleware.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "railplan",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "railplan",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	// JourneyQueriesTotal counts /computejourneys requests, partitioned
	// by outcome.
	JourneyQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "railplan",
		Subsystem: "journey",
		Name:      "queries_total",
		Help:      "Total journey queries processed",
	}, []string{"outcome"})

	// JourneyQueryDuration measures time spent inside the Dijkstra
	// engine per /computejourneys request, excluding JSON marshalling.
	JourneyQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "railplan",
		Subsystem: "journey",
		Name:      "query_duration_seconds",
		Help:      "Time spent computing journeys for one request",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
	})

	// JourneyQueryDestinations records how many destinations each
	// request asked for.
	JourneyQueryDestinations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "railplan",
		Subsystem: "journey",
		Name:      "query_destinations",
		Help:      "Number of destinations requested per journey query",
		Buckets:   []float64{1, 2, 5, 10, 25, 50},
	})

	// DatasetStations, DatasetFixedLinks, and DatasetServices report
	// the size of the currently loaded dataset.
	DatasetStations = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "railplan",
		Subsystem: "dataset",
		Name:      "stations",
		Help:      "Number of stations in the loaded dataset",
	})

	DatasetFixedLinks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "railplan",
		Subsystem: "dataset",
		Name:      "fixed_links",
		Help:      "Number of fixed links in the loaded dataset",
	})

	DatasetServices = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "railplan",
		Subsystem: "dataset",
		Name:      "services",
		Help:      "Number of timetabled services in the loaded dataset",
	})

	// DatasetLoadDuration measures how long the MSN/FLF/MCA load and
	// graph build took at startup.
	DatasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "railplan",
		Subsystem: "dataset",
		Name:      "load_duration_seconds",
		Help:      "Duration of the dataset load and graph build at startup",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
	})

	// AuditRecordsDropped counts journey-audit records dropped because
	// the sink's buffer was full.
	AuditRecordsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "railplan",
		Subsystem: "audit",
		Name:      "records_dropped_total",
		Help:      "Total journey-audit records dropped due to a full buffer",
	})
)

// Middleware records per-request HTTP metrics. It wraps chi's
// middleware.WrapResponseWriter to capture the status code.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		route := routeLabel(r)
		status := strconv.Itoa(ww.Status())

		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(duration)
	})
}

// routeLabel prefers the matched chi route pattern (e.g. "/station/{crs}")
// over the raw path so that path-parameterized routes don't blow up
// cardinality.
func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
