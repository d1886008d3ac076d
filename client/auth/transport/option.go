package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/shiftmate/internal/metrics"
)

type Option func(*RoundTripper)

// WithTransport sets the underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		if transport != nil {
			t.transport = transport
		}
	}
}

// WithAuthPaths replaces the path fragments identifying authentication endpoints
func WithAuthPaths(paths ...string) Option {
	return func(t *RoundTripper) {
		if len(paths) > 0 {
			t.authPaths = paths
		}
	}
}

// WithAuthExpired sets the callback fired when the session cannot be recovered
func WithAuthExpired(fn func(ctx context.Context)) Option {
	return func(t *RoundTripper) {
		t.onAuthExpired = fn
	}
}

// WithExpirySkew sets how early a JWT access token is treated as expired
func WithExpirySkew(skew time.Duration) Option {
	return func(t *RoundTripper) {
		t.skew = skew
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(t *RoundTripper) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMetrics sets the metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *RoundTripper) {
		t.metrics = m
	}
}
