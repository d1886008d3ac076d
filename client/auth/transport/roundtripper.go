package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/viant/shiftmate/client/auth/store"
	"github.com/viant/shiftmate/client/envelope"
	"github.com/viant/shiftmate/internal/metrics"
)

// ErrUnauthorized is returned when no usable access token could be obtained
var ErrUnauthorized = errors.New("authentication required")

// DefaultAuthPaths identify endpoints that are never refreshed
var DefaultAuthPaths = []string{"/auth/login", "/auth/reissue", "/auth/logout", "/auth/otp"}

// DefaultExpirySkew is subtracted from a JWT expiry before a pre-flight refresh
const DefaultExpirySkew = 5 * time.Second

// Refresher obtains a new access token
type Refresher interface {
	Refresh(ctx context.Context) bool
	RefreshIfStale(ctx context.Context, used string) bool
}

type RoundTripper struct {
	tokens        *store.Tokens
	refresher     Refresher
	transport     http.RoundTripper
	authPaths     []string
	skew          time.Duration
	onAuthExpired func(ctx context.Context)
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

func New(tokens *store.Tokens, refresher Refresher, options ...Option) *RoundTripper {
	ret := &RoundTripper{
		tokens:    tokens,
		refresher: refresher,
		transport: http.DefaultTransport,
		authPaths: DefaultAuthPaths,
		skew:      DefaultExpirySkew,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	body, err := readBody(req)
	if err != nil {
		return nil, err
	}
	if r.IsAuthEndpoint(req.URL.Path) {
		return r.transport.RoundTrip(clone(req, body, r.tokens.OAuth2Token(ctx)))
	}

	// 1) Make sure there is a usable token before sending.
	token := r.tokens.OAuth2Token(ctx)
	if token == nil || store.ExpiresWithin(token, r.skew) {
		if !r.refresher.RefreshIfStale(ctx, accessToken(token)) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.expire(ctx, req)
			return nil, ErrUnauthorized
		}
		token = r.tokens.OAuth2Token(ctx)
	}

	// 2) Send with the bearer token.
	resp, err := r.transport.RoundTrip(clone(req, body, token))
	if err != nil {
		return nil, err
	}
	if retry, err := r.needsRefresh(resp); err != nil || !retry {
		return resp, err
	}

	// 3) Refresh, unless someone else already did, and replay once.
	if !r.refresher.RefreshIfStale(ctx, accessToken(token)) {
		if ctx.Err() == nil {
			r.expire(ctx, req)
		}
		return resp, nil
	}
	_ = resp.Body.Close()
	r.logger.DebugContext(ctx, "replaying request after token refresh", slog.String("method", req.Method), slog.String("path", req.URL.Path))
	resp, err = r.transport.RoundTrip(clone(req, body, r.tokens.OAuth2Token(ctx)))
	if err != nil {
		return nil, err
	}
	if retry, err := r.needsRefresh(resp); err != nil || !retry {
		return resp, err
	}
	r.expire(ctx, req)
	return resp, nil
}

// IsAuthEndpoint reports whether path belongs to an authentication endpoint
func (r *RoundTripper) IsAuthEndpoint(path string) bool {
	for _, fragment := range r.authPaths {
		if fragment != "" && strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}

// needsRefresh reports a 401, or an error status carrying an expired-token code.
// Error bodies are buffered so the response stays readable.
func (r *RoundTripper) needsRefresh(resp *http.Response) (bool, error) {
	if resp.StatusCode < http.StatusBadRequest {
		return false, nil
	}
	data, err := bufferBody(resp)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return true, nil
	}
	code := envelope.ErrorCode(envelope.Decode(data), resp.StatusCode)
	return envelope.IsExpiredToken(code), nil
}

func (r *RoundTripper) expire(ctx context.Context, req *http.Request) {
	r.tokens.Clear(ctx)
	r.logger.WarnContext(ctx, "session expired", slog.String("method", req.Method), slog.String("path", req.URL.Path))
	r.metrics.ObserveAuthExpired()
	if r.onAuthExpired != nil {
		r.onAuthExpired(ctx)
	}
}
