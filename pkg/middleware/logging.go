package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/widgets/pkg/request"
)

// Logging returns middleware that logs each request after it completes.
// Successful responses log at debug level, failures and error statuses at
// warn.
func Logging(logger *slog.Logger) request.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)
			attrs := []any{
				"method", req.Method,
				"url", req.URL.String(),
				"duration", time.Since(start),
			}
			switch {
			case err != nil:
				logger.Warn("request failed", append(attrs, "error", err)...)
			case resp.StatusCode >= http.StatusBadRequest:
				logger.Warn("request error status", append(attrs, "status", resp.StatusCode)...)
			default:
				logger.Debug("request", append(attrs, "status", resp.StatusCode)...)
			}
			return resp, err
		})
	}
}
