package refresh

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/shiftmate/internal/metrics"
)

// DefaultTimeout bounds a single exchange
const DefaultTimeout = 10 * time.Second

// DefaultPath is the reissue endpoint relative to the API base URL
const DefaultPath = "auth/reissue"

type Option func(c *Coordinator)

// WithHTTPClient sets the client used for the exchange. It must not carry the auth transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Coordinator) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the exchange timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithPath overrides the reissue path
func WithPath(path string) Option {
	return func(c *Coordinator) {
		if path != "" {
			c.path = path
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}
