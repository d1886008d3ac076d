package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/viant/shiftmate/schema"
)

// Tokens owns the credential pair. Storage failures are logged, never returned.
type Tokens struct {
	mu          sync.RWMutex
	accessToken string
	storage     Storage
	logger      *slog.Logger
}

// Option configures Tokens
type Option func(t *Tokens)

// WithStorage sets the durable storage
func WithStorage(storage Storage) Option {
	return func(t *Tokens) {
		if storage != nil {
			t.storage = storage
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tokens) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates Tokens, restoring the access token from storage
func New(ctx context.Context, options ...Option) *Tokens {
	ret := &Tokens{storage: NewMemoryStorage(), logger: slog.Default()}
	for _, opt := range options {
		opt(ret)
	}
	if value, ok, err := ret.storage.Get(ctx, AccessTokenKey); err != nil {
		ret.logger.WarnContext(ctx, "failed to restore access token", slog.Any("error", err))
	} else if ok {
		ret.accessToken = value
	}
	return ret
}

// AccessToken returns the current access token, re-synced from storage.
// A storage read failure returns the last token held in memory instead of no
// token, so a briefly unreadable file or database does not end the session.
func (t *Tokens) AccessToken(ctx context.Context) string {
	value, ok, err := t.storage.Get(ctx, AccessTokenKey)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.logger.WarnContext(ctx, "failed to read access token", slog.Any("error", err))
		return t.accessToken
	}
	if !ok {
		value = ""
	}
	t.accessToken = value
	return value
}

// RefreshToken returns the stored refresh token, empty when absent or unreadable
func (t *Tokens) RefreshToken(ctx context.Context) string {
	value, _, err := t.storage.Get(ctx, RefreshTokenKey)
	if err != nil {
		t.logger.WarnContext(ctx, "failed to read refresh token", slog.Any("error", err))
		return ""
	}
	return value
}

// SetAccessToken stores the access token; an empty value removes it
func (t *Tokens) SetAccessToken(ctx context.Context, token string) {
	t.mu.Lock()
	t.accessToken = token
	t.mu.Unlock()
	t.put(ctx, AccessTokenKey, token)
}

// SetRefreshToken stores the refresh token; an empty value removes it
func (t *Tokens) SetRefreshToken(ctx context.Context, token string) {
	t.put(ctx, RefreshTokenKey, token)
}

// Set stores a credential pair. A blank refresh token keeps the existing one.
func (t *Tokens) Set(ctx context.Context, credentials *schema.Credentials) {
	if credentials == nil {
		return
	}
	t.SetAccessToken(ctx, credentials.AccessToken)
	if credentials.RefreshToken != "" {
		t.SetRefreshToken(ctx, credentials.RefreshToken)
	}
}

// Clear removes both tokens. Calling it repeatedly is harmless.
func (t *Tokens) Clear(ctx context.Context) {
	t.mu.Lock()
	t.accessToken = ""
	t.mu.Unlock()
	t.remove(ctx, AccessTokenKey)
	t.remove(ctx, RefreshTokenKey)
}

// Expired reports whether the access token expires within skew of now
func (t *Tokens) Expired(ctx context.Context, skew time.Duration) bool {
	return ExpiresWithin(t.OAuth2Token(ctx), skew)
}

// OAuth2Token returns the access token as a bearer oauth2.Token, nil when none is
// held. Expiry is the JWT exp claim; it stays zero for opaque tokens.
func (t *Tokens) OAuth2Token(ctx context.Context) *oauth2.Token {
	access := t.AccessToken(ctx)
	if access == "" {
		return nil
	}
	ret := &oauth2.Token{AccessToken: access, TokenType: "Bearer"}
	if expiry, ok := Expiry(access); ok {
		ret.Expiry = expiry
	}
	return ret
}

// Token implements oauth2.TokenSource
func (t *Tokens) Token() (*oauth2.Token, error) {
	ctx := context.Background()
	ret := t.OAuth2Token(ctx)
	if ret == nil {
		return nil, errors.New("no access token")
	}
	ret.RefreshToken = t.RefreshToken(ctx)
	return ret, nil
}

// ExpiresWithin reports whether token carries an expiry falling within skew of now.
// Tokens without expiry never expire here.
func ExpiresWithin(token *oauth2.Token, skew time.Duration) bool {
	if token == nil || token.Expiry.IsZero() {
		return false
	}
	return !time.Now().Add(skew).Before(token.Expiry)
}

// Expiry returns the exp claim of an unverified JWT
func Expiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (t *Tokens) put(ctx context.Context, key, value string) {
	if value == "" {
		t.remove(ctx, key)
		return
	}
	if err := t.storage.Set(ctx, key, value); err != nil {
		t.logger.WarnContext(ctx, "failed to persist token", slog.String("key", key), slog.Any("error", err))
	}
}

func (t *Tokens) remove(ctx context.Context, key string) {
	if err := t.storage.Delete(ctx, key); err != nil {
		t.logger.WarnContext(ctx, "failed to remove token", slog.String("key", key), slog.Any("error", err))
	}
}

var _ oauth2.TokenSource = (*Tokens)(nil)
