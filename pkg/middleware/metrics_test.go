package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/widgets/pkg/request"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func statusServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMetricsConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := defaultMetricsConfig()
		if config.Namespace != "widgets" {
			t.Errorf("Namespace = %q, want %q", config.Namespace, "widgets")
		}
		if config.Registry != prometheus.DefaultRegisterer {
			t.Error("Registry should default to prometheus.DefaultRegisterer")
		}
	})

	t.Run("options", func(t *testing.T) {
		config := defaultMetricsConfig()
		reg := prometheus.NewRegistry()
		for _, opt := range []MetricsOption{
			WithNamespace("app"),
			WithSubsystem("api"),
			WithBuckets([]float64{.1, .5, 1}),
			WithConstLabels(prometheus.Labels{"env": "test"}),
			WithRegistry(reg),
		} {
			opt(config)
		}
		if config.Namespace != "app" {
			t.Errorf("Namespace = %q, want %q", config.Namespace, "app")
		}
		if config.Subsystem != "api" {
			t.Errorf("Subsystem = %q, want %q", config.Subsystem, "api")
		}
		if len(config.Buckets) != 3 {
			t.Errorf("len(Buckets) = %d, want 3", len(config.Buckets))
		}
		if config.ConstLabels["env"] != "test" {
			t.Errorf("ConstLabels[env] = %q, want %q", config.ConstLabels["env"], "test")
		}
		if config.Registry != reg {
			t.Error("Registry was not applied")
		}
	})
}

func TestPrometheusMiddleware(t *testing.T) {
	srv := statusServer(t)
	reg := prometheus.NewRegistry()
	client := request.New(
		request.WithBaseURL(srv.URL),
		request.WithMiddleware(Prometheus(WithRegistry(reg))),
	)
	ctx := context.Background()

	f, err := client.Load(ctx, "/ok", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := f.Await(ctx); err != nil {
		t.Fatalf("Await() error = %v", err)
	}

	f, err = client.Load(ctx, "/missing", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := f.Await(ctx); err == nil {
		t.Fatal("Await() on 404 should reject")
	}

	m := GetMetrics()
	if m == nil {
		t.Fatal("GetMetrics() = nil after Prometheus()")
	}
	if got := metricCounterValue(t, m.RequestsTotal.WithLabelValues("GET", "200")); got != 1 {
		t.Errorf("requests_total{GET,200} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.RequestsTotal.WithLabelValues("GET", "404")); got != 1 {
		t.Errorf("requests_total{GET,404} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.RequestErrors.WithLabelValues("GET", "status")); got != 1 {
		t.Errorf("request_errors_total{GET,status} = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.RequestDuration.WithLabelValues("GET")); got != 2 {
		t.Errorf("request_duration_seconds count = %d, want 2", got)
	}
	if got := metricGaugeValue(t, m.RequestsInFlight); got != 0 {
		t.Errorf("requests_in_flight = %v, want 0", got)
	}
}

func TestPrometheusMiddleware_TransportError(t *testing.T) {
	srv := statusServer(t)
	url := srv.URL
	srv.Close()

	reg := prometheus.NewRegistry()
	client := request.New(request.WithMiddleware(Prometheus(WithRegistry(reg))))
	ctx := context.Background()
	f, err := client.Load(ctx, url+"/ok", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := f.Await(ctx); err == nil {
		t.Fatal("Await() against closed server should reject")
	}

	m := GetMetrics()
	if got := metricCounterValue(t, m.RequestsTotal.WithLabelValues("GET", "error")); got != 1 {
		t.Errorf("requests_total{GET,error} = %v, want 1", got)
	}
}

func TestPrometheus_ReusesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	Prometheus(WithRegistry(reg))
	first := GetMetrics()
	// A second registration against the same registry would panic with a
	// duplicate collector error if the collectors were not reused.
	Prometheus(WithRegistry(reg))
	if GetMetrics() != first {
		t.Error("Prometheus() with the same registry should reuse its collectors")
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"canceled", fmt.Errorf("get: %w", context.Canceled), "canceled"},
		{"request timeout", &request.Error{Kind: request.KindRequest, Code: request.CodeTimeout}, "timeout"},
		{"request abort", &request.Error{Kind: request.KindRequest, Code: request.CodeAbort}, "canceled"},
		{"dns", errors.New("dial tcp: lookup nowhere: no such host"), "dns"},
		{"refused", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), "refused"},
		{"tls", errors.New("tls: handshake failure"), "tls"},
		{"eof", errors.New("unexpected EOF"), "connection"},
		{"other", errors.New("some other error"), "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizeError(tt.err); got != tt.want {
				t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestRecordFunctions(t *testing.T) {
	reg := prometheus.NewRegistry()
	Prometheus(WithRegistry(reg))
	m := GetMetrics()

	RecordScriptLoad("ok")
	RecordScriptLoad("ok")
	RecordPageChange()
	RecordConnectionOpen()
	RecordConnectionOpen()
	RecordConnectionClose()

	if got := metricCounterValue(t, m.ScriptLoads.WithLabelValues("ok")); got != 2 {
		t.Errorf("script_loads_total{ok} = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.PageChanges); got != 1 {
		t.Errorf("page_changes_total = %v, want 1", got)
	}
	if got := metricGaugeValue(t, m.ActiveConnections); got != 1 {
		t.Errorf("active_connections = %v, want 1", got)
	}
}
