// Package middleware provides transport middleware for the request client.
//
// Each middleware wraps an http.RoundTripper and is installed with
// request.WithMiddleware:
//
//	client := request.New(
//	    request.WithMiddleware(middleware.Logging(logger)),
//	    request.WithMiddleware(middleware.OpenTelemetry()),
//	    request.WithMiddleware(middleware.Prometheus(middleware.WithNamespace("app"))),
//	)
//
// # Metrics
//
// Prometheus records request counts, latencies, in-flight requests and
// categorized transport errors. The same collectors track script loads,
// frame page changes and preview server connections through the Record
// functions.
//
// # Tracing
//
// OpenTelemetry starts a client span per request and injects the active
// trace context into the outgoing headers using the global propagator.
package middleware
