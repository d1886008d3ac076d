package shiftmate

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/viant/shiftmate/client"
	"github.com/viant/shiftmate/client/auth/refresh"
	"github.com/viant/shiftmate/client/auth/store"
	"github.com/viant/shiftmate/client/auth/transport"
	"github.com/viant/shiftmate/internal/logging"
	"github.com/viant/shiftmate/internal/metrics"
)

const sqliteScheme = "sqlite://"

type builder struct {
	onAuthExpired func(ctx context.Context)
	registerer    prometheus.Registerer
	logger        *slog.Logger
	logOutput     io.Writer
	storage       store.Storage
	transport     http.RoundTripper
}

// Option customizes NewClient
type Option func(b *builder)

// WithAuthExpired sets the callback fired when the session cannot be recovered
// and the user has to sign in again
func WithAuthExpired(fn func(ctx context.Context)) Option {
	return func(b *builder) {
		b.onAuthExpired = fn
	}
}

// WithRegisterer registers client metrics
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(b *builder) {
		b.registerer = registerer
	}
}

// WithLogger overrides the logger built from LogOptions
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

// WithLogOutput sets where the default logger writes
func WithLogOutput(w io.Writer) Option {
	return func(b *builder) {
		b.logOutput = w
	}
}

// WithStorage overrides the storage selected by TokenStorageURL
func WithStorage(storage store.Storage) Option {
	return func(b *builder) {
		b.storage = storage
	}
}

// WithTransport sets the transport under the authorizing round tripper
func WithTransport(rt http.RoundTripper) Option {
	return func(b *builder) {
		b.transport = rt
	}
}

// NewClient creates a ShiftMate client with token storage, refresh and
// authorization configured via ClientOptions.
func NewClient(ctx context.Context, options *ClientOptions, opts ...Option) (*client.Client, error) {
	if options == nil {
		options = &ClientOptions{}
	}
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	b := &builder{logOutput: os.Stderr, transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(b)
	}
	logger := b.logger
	if logger == nil {
		logger = logging.NewLogger(b.logOutput, logging.Config{Level: options.Log.Level, Format: options.Log.Format})
	}
	m := metrics.New(options.Metrics.Namespace)
	if err := m.Register(b.registerer); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	storage, closer := b.storage, func() error { return nil }
	if storage == nil {
		var err error
		if storage, closer, err = options.newStorage(ctx); err != nil {
			return nil, err
		}
	}
	tokens := store.New(ctx, store.WithStorage(storage), store.WithLogger(logger))
	coordinator := refresh.New(options.BaseURL, tokens,
		refresh.WithHTTPClient(&http.Client{Transport: b.transport, Timeout: options.RefreshTimeout}),
		refresh.WithTimeout(options.RefreshTimeout),
		refresh.WithLogger(logger),
		refresh.WithMetrics(m))
	rt := transport.New(tokens, coordinator,
		transport.WithTransport(b.transport),
		transport.WithAuthPaths(options.AuthPaths...),
		transport.WithAuthExpired(b.onAuthExpired),
		transport.WithLogger(logger),
		transport.WithMetrics(m))
	return client.New(options.BaseURL, tokens,
		client.WithHTTPClient(&http.Client{Transport: rt, Timeout: options.Timeout}),
		client.WithLogger(logger),
		client.WithMetrics(m),
		client.WithOnClose(closer)), nil
}

// newStorage selects the token storage backend from TokenStorageURL
func (o *ClientOptions) newStorage(ctx context.Context) (store.Storage, func() error, error) {
	noop := func() error { return nil }
	switch location := o.TokenStorageURL; {
	case location == "":
		return store.NewMemoryStorage(), noop, nil
	case strings.HasPrefix(location, sqliteScheme):
		db, err := sql.Open("sqlite3", strings.TrimPrefix(location, sqliteScheme))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open token database: %w", err)
		}
		storage, err := store.NewSQLStorage(ctx, db, "")
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return storage, db.Close, nil
	default:
		return store.NewFileStorage(location, store.WithSecretKey(o.TokenKey)), noop, nil
	}
}
