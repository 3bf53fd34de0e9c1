// Package metrics exposes the panel's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds all panel metrics.
type Registry struct {
	// HTTP metrics
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec

	// Auth metrics
	LoginFailures  prometheus.Counter
	LoginSuccesses prometheus.Counter
	RateLimited    prometheus.Counter

	// Engine metrics
	EngineErrors *prometheus.CounterVec
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = newRegistry()
	})
	return registry
}

func newRegistry() *Registry {
	r := &Registry{}

	r.Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panel_http_requests_total",
		Help: "Total HTTP requests served",
	}, []string{"method", "status"})

	r.Latency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "panel_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	r.LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "panel_login_failures_total",
		Help: "Total failed login attempts",
	})

	r.LoginSuccesses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "panel_login_successes_total",
		Help: "Total successful logins",
	})

	r.RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "panel_login_rate_limited_total",
		Help: "Total login attempts rejected by the rate limiter",
	})

	r.EngineErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panel_engine_errors_total",
		Help: "Total engine request failures by category",
	}, []string{"kind"})

	return r
}

// RecordRequest records one served HTTP request.
func (r *Registry) RecordRequest(method string, status int, duration float64) {
	r.Requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.Latency.WithLabelValues(method).Observe(duration)
}

// RecordEngineError records one classified engine failure.
func (r *Registry) RecordEngineError(kind string) {
	r.EngineErrors.WithLabelValues(kind).Inc()
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
