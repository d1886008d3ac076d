package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/afs/url"
	"golang.org/x/sync/singleflight"

	"github.com/viant/shiftmate/client/auth/store"
	"github.com/viant/shiftmate/client/envelope"
	"github.com/viant/shiftmate/internal/metrics"
	"github.com/viant/shiftmate/schema"
)

const flightKey = "reissue"

// Coordinator runs at most one reissue exchange at a time
type Coordinator struct {
	baseURL    string
	path       string
	tokens     *store.Tokens
	httpClient *http.Client
	timeout    time.Duration
	group      singleflight.Group
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type reissueRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// New creates a coordinator for the API rooted at baseURL
func New(baseURL string, tokens *store.Tokens, options ...Option) *Coordinator {
	ret := &Coordinator{
		baseURL:    baseURL,
		path:       DefaultPath,
		tokens:     tokens,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Endpoint returns the reissue URL
func (c *Coordinator) Endpoint() string {
	return url.Join(c.baseURL, c.path)
}

// Refresh makes sure a fresh access token is stored. Concurrent callers join the
// exchange in flight and share its outcome. It returns false without any network
// call when no refresh token is held.
func (c *Coordinator) Refresh(ctx context.Context) bool {
	return c.join(ctx, func(ctx context.Context) bool { return false })
}

// RefreshIfStale refreshes unless the held access token already differs from used,
// the token a failed request carried. A different non-empty token means another
// caller completed a refresh in the meantime. The check is repeated inside the
// flight, so a caller that read used before an exchange completed does not start
// another one.
func (c *Coordinator) RefreshIfStale(ctx context.Context, used string) bool {
	stale := func(ctx context.Context) bool {
		if current := c.tokens.AccessToken(ctx); current != "" && current != used {
			c.metrics.ObserveRefresh(metrics.RefreshStale)
			return true
		}
		return false
	}
	if stale(ctx) {
		return true
	}
	return c.join(ctx, stale)
}

// join runs or joins the flight; replaced reports, inside the flight, whether the
// token was already replaced and the exchange can be skipped
func (c *Coordinator) join(ctx context.Context, replaced func(ctx context.Context) bool) bool {
	if c.tokens.RefreshToken(ctx) == "" {
		c.metrics.ObserveRefresh(metrics.RefreshSkipped)
		return false
	}
	ch := c.group.DoChan(flightKey, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		if replaced(ctx) {
			return true, nil
		}
		return c.exchange(ctx), nil
	})
	select {
	case <-ctx.Done():
		return false
	case result := <-ch:
		if result.Shared {
			c.metrics.ObserveRefresh(metrics.RefreshShared)
		}
		ok, _ := result.Val.(bool)
		return ok
	}
}

func (c *Coordinator) exchange(ctx context.Context) bool {
	refreshToken := c.tokens.RefreshToken(ctx)
	if refreshToken == "" {
		c.metrics.ObserveRefresh(metrics.RefreshSkipped)
		return false
	}
	started := time.Now()
	credentials, err := c.reissue(ctx, refreshToken)
	if err != nil {
		c.logger.WarnContext(ctx, "token refresh failed", slog.Any("error", err), slog.Duration("elapsed", time.Since(started)))
		c.metrics.ObserveRefresh(metrics.RefreshFailure)
		c.tokens.Clear(ctx)
		return false
	}
	c.tokens.Set(ctx, credentials)
	c.logger.DebugContext(ctx, "token refreshed", slog.Bool("rotated", credentials.RefreshToken != ""), slog.Duration("elapsed", time.Since(started)))
	c.metrics.ObserveRefresh(metrics.RefreshSuccess)
	return true
}

func (c *Coordinator) reissue(ctx context.Context, refreshToken string) (*schema.Credentials, error) {
	body, err := json.Marshal(&reissueRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw := envelope.Decode(data)
		return nil, fmt.Errorf("reissue rejected: status %d, code %s", resp.StatusCode, envelope.ErrorCode(raw, resp.StatusCode))
	}
	credentials := &schema.Credentials{}
	if err = json.Unmarshal(envelope.UnwrapJSON(data, 1), credentials); err != nil {
		return nil, fmt.Errorf("failed to decode reissue response: %w", err)
	}
	if credentials.AccessToken == "" {
		return nil, errors.New("reissue response missing access token")
	}
	return credentials, nil
}
