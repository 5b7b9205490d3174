package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/widgets/pkg/request"
)

const defaultTracerName = "github.com/vango-dev/widgets"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the instrumentation name (default: module path).
	TracerName string

	// Filter returns false for requests that should not be traced.
	Filter func(req *http.Request) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(req *http.Request) []attribute.KeyValue

	// Propagator injects the trace context into outgoing headers
	// (default: otel.GetTextMapPropagator()).
	Propagator propagation.TextMapPropagator

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithFilter skips tracing for requests the filter rejects.
func WithFilter(filter func(req *http.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor adds attributes computed from the request.
func WithAttributeExtractor(extractor func(req *http.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// WithPropagator sets the propagator used for header injection.
func WithPropagator(p propagation.TextMapPropagator) OTelOption {
	return func(c *OTelConfig) {
		c.Propagator = p
	}
}

// OpenTelemetry returns middleware that traces each request with a client
// span and injects the trace context into the request headers.
//
// The tracer comes from the global provider; configure it before issuing
// requests:
//
//	otel.SetTracerProvider(tp)
//	otel.SetTextMapPropagator(propagation.TraceContext{})
func OpenTelemetry(opts ...OTelOption) request.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if config.Filter != nil && !config.Filter(req) {
				return next.RoundTrip(req)
			}

			attrs := []attribute.KeyValue{
				attribute.String("http.request.method", req.Method),
				attribute.String("url.full", req.URL.String()),
				attribute.String("server.address", req.URL.Hostname()),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(req)...)
			}

			ctx, span := config.tracer.Start(req.Context(), formatSpanName(req),
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			out := req.Clone(ctx)
			propagator := config.Propagator
			if propagator == nil {
				propagator = otel.GetTextMapPropagator()
			}
			propagator.Inject(ctx, propagation.HeaderCarrier(out.Header))

			resp, err := next.RoundTrip(out)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.SetAttributes(attribute.String("error.type", categorizeError(err)))
				return resp, err
			}

			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			if resp.StatusCode >= http.StatusBadRequest {
				span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return resp, nil
		})
	}
}

// formatSpanName creates a span name like "GET example.com".
func formatSpanName(req *http.Request) string {
	if host := req.URL.Host; host != "" {
		return req.Method + " " + host
	}
	return req.Method
}
