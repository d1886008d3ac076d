package client

import (
	"log/slog"
	"net/http"

	"github.com/viant/shiftmate/internal/metrics"
)

// Option represents option
type Option func(c *Client)

// WithHTTPClient sets the http client; its transport is expected to handle authorization
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets request metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithResourceUnwrap sets how many data envelopes typed resources strip
func WithResourceUnwrap(levels int) Option {
	return func(c *Client) {
		if levels > 0 {
			c.resourceUnwrap = levels
		}
	}
}

// WithOnClose sets a hook run by Close
func WithOnClose(fn func() error) Option {
	return func(c *Client) {
		c.onClose = fn
	}
}
