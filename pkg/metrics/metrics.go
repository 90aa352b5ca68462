// Package metrics provides Prometheus instrumentation for the storefront.
//
// Wire it up once in internal/kernel/http.go:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "coconina"

// ─────────────────────────────────────────────
// HTTP server metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route pattern, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// Panics counts handler panics answered with a 500 by the recovery
	// middleware.
	Panics = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "panics_total",
		Help:      "Handler panics recovered into a 500 response.",
	})

	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected with 429 by the per-client limiter.",
	})

	// CacheHits / CacheMisses track the revalidation cache.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"driver"}, // "redis" | "memory"
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"driver"},
	)
)

// ─────────────────────────────────────────────
// Catalog API gateway metrics
// ─────────────────────────────────────────────

var (
	// GatewayRequests counts calls to the remote catalog API by outcome:
	// "ok", "error", "status", "decode", "not_found".
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Remote catalog API calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Duration of remote catalog API calls in seconds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// GatewayFallbacks counts reads answered from fixtures.
	GatewayFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "fallbacks_total",
			Help:      "Reads served from bundled fixtures, by operation and reason.",
		},
		[]string{"operation", "reason"}, // reason: "unconfigured" | "error" | "status" | "decode" | "not_found"
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry served on /metrics.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		Panics,
		RateLimited,
		CacheHits,
		CacheMisses,
		GatewayRequests,
		GatewayDuration,
		GatewayFallbacks,
	)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, count and in-flight gauge per request. The
// path label is the chi route pattern so ids do not explode cardinality.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			path := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					path = p
				}
			}
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the registry in Prometheus text and OpenMetrics formats.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ─────────────────────────────────────────────
// Helpers for app code
// ─────────────────────────────────────────────

// ObserveGateway records one remote call:
//
//	defer metrics.ObserveGateway("products", time.Now(), &outcome)
func ObserveGateway(operation string, start time.Time, outcome *string) {
	GatewayDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	GatewayRequests.WithLabelValues(operation, *outcome).Inc()
}

// RecordFallback counts one read served from fixtures.
func RecordFallback(operation, reason string) {
	GatewayFallbacks.WithLabelValues(operation, reason).Inc()
}
