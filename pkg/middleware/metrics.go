package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/widgets/pkg/request"
)

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	// Namespace is the metric namespace (default: "widgets").
	Namespace string

	// Subsystem is the metric subsystem (default: "").
	Subsystem string

	// ConstLabels are labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets for the request duration histogram.
	Buckets []float64

	// Registry is where metrics are registered (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// MetricsOption configures metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = ns
	}
}

// WithSubsystem sets the metric subsystem.
func WithSubsystem(sub string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = sub
	}
}

// WithConstLabels adds constant labels to all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets for request latency.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = reg
	}
}

func defaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Namespace: "widgets",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors shared by every middleware built against the
// same registry.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	RequestErrors     *prometheus.CounterVec
	RequestsInFlight  prometheus.Gauge
	ScriptLoads       *prometheus.CounterVec
	PageChanges       prometheus.Counter
	ActiveConnections prometheus.Gauge
}

var (
	metricsMu  sync.Mutex
	registered = map[prometheus.Registerer]*Metrics{}
	current    *Metrics
)

// Prometheus returns middleware that records request metrics.
//
// Calling Prometheus twice with the same registry reuses the collectors
// instead of registering duplicates.
func Prometheus(opts ...MetricsOption) request.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(config)
	}
	m := initMetrics(config)

	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			resp, err := next.RoundTrip(req)
			m.RequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

			status := "error"
			if err != nil {
				m.RequestErrors.WithLabelValues(req.Method, categorizeError(err)).Inc()
			} else {
				status = strconv.Itoa(resp.StatusCode)
				if resp.StatusCode >= http.StatusBadRequest {
					m.RequestErrors.WithLabelValues(req.Method, "status").Inc()
				}
			}
			m.RequestsTotal.WithLabelValues(req.Method, status).Inc()
			return resp, err
		})
	}
}

func initMetrics(config *MetricsConfig) *Metrics {
	metricsMu.Lock()
	defer metricsMu.Unlock()

	if m, ok := registered[config.Registry]; ok {
		current = m
		return m
	}

	factory := promauto.With(config.Registry)
	m := &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "requests_total",
				Help:        "Total number of HTTP requests issued",
				ConstLabels: config.ConstLabels,
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "request_duration_seconds",
				Help:        "HTTP request latency in seconds",
				Buckets:     config.Buckets,
				ConstLabels: config.ConstLabels,
			},
			[]string{"method"},
		),
		RequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "request_errors_total",
				Help:        "Total number of failed HTTP requests",
				ConstLabels: config.ConstLabels,
			},
			[]string{"method", "error_type"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "requests_in_flight",
				Help:        "Number of HTTP requests currently in flight",
				ConstLabels: config.ConstLabels,
			},
		),
		ScriptLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "script_loads_total",
				Help:        "Total number of script load attempts",
				ConstLabels: config.ConstLabels,
			},
			[]string{"result"},
		),
		PageChanges: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "page_changes_total",
				Help:        "Total number of frame page changes",
				ConstLabels: config.ConstLabels,
			},
		),
		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   config.Namespace,
				Subsystem:   config.Subsystem,
				Name:        "active_connections",
				Help:        "Number of open preview event connections",
				ConstLabels: config.ConstLabels,
			},
		),
	}
	registered[config.Registry] = m
	current = m
	return m
}

// categorizeError maps a transport error to a low-cardinality label.
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	var rerr *request.Error
	if errors.As(err, &rerr) {
		switch rerr.Code {
		case request.CodeTimeout:
			return "timeout"
		case request.CodeAbort:
			return "canceled"
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return "timeout"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such host"):
		return "dns"
	case strings.Contains(msg, "connection refused"):
		return "refused"
	case strings.Contains(msg, "tls"), strings.Contains(msg, "certificate"):
		return "tls"
	case strings.Contains(msg, "eof"), strings.Contains(msg, "connection reset"):
		return "connection"
	default:
		return "internal"
	}
}

// GetMetrics returns the collectors of the most recently built Prometheus
// middleware, or nil if none has been built.
func GetMetrics() *Metrics {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	return current
}

// RecordScriptLoad counts a script load with the given result
// ("ok", "error" or "skipped").
func RecordScriptLoad(result string) {
	if m := GetMetrics(); m != nil {
		m.ScriptLoads.WithLabelValues(result).Inc()
	}
}

// RecordPageChange counts a frame page change.
func RecordPageChange() {
	if m := GetMetrics(); m != nil {
		m.PageChanges.Inc()
	}
}

// RecordConnectionOpen increments the open connection gauge.
func RecordConnectionOpen() {
	if m := GetMetrics(); m != nil {
		m.ActiveConnections.Inc()
	}
}

// RecordConnectionClose decrements the open connection gauge.
func RecordConnectionClose() {
	if m := GetMetrics(); m != nil {
		m.ActiveConnections.Dec()
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
