package store

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/shiftmate/schema"
)

type failingStorage struct {
	Storage
	fail bool
}

func (f *failingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if f.fail {
		return "", false, errors.New("storage unavailable")
	}
	return f.Storage.Get(ctx, key)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})
	value, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return value
}

func TestTokens_SetAndClear(t *testing.T) {
	ctx := context.Background()
	tokens := New(ctx)

	tokens.Set(ctx, &schema.Credentials{AccessToken: "A1", RefreshToken: "R1"})
	assert.Equal(t, "A1", tokens.AccessToken(ctx))
	assert.Equal(t, "R1", tokens.RefreshToken(ctx))

	tokens.Set(ctx, &schema.Credentials{AccessToken: "A2"})
	assert.Equal(t, "A2", tokens.AccessToken(ctx))
	assert.Equal(t, "R1", tokens.RefreshToken(ctx), "blank refresh token keeps the previous one")

	tokens.Clear(ctx)
	tokens.Clear(ctx)
	assert.Empty(t, tokens.AccessToken(ctx))
	assert.Empty(t, tokens.RefreshToken(ctx))
}

func TestTokens_RestoresFromStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, AccessTokenKey, "persisted"))
	tokens := New(ctx, WithStorage(storage))
	assert.Equal(t, "persisted", tokens.AccessToken(ctx))

	// another writer rotated the token
	require.NoError(t, storage.Set(ctx, AccessTokenKey, "rotated"))
	assert.Equal(t, "rotated", tokens.AccessToken(ctx))
}

func TestTokens_ReadFailureFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{Storage: NewMemoryStorage()}
	tokens := New(ctx, WithStorage(storage))
	tokens.SetAccessToken(ctx, "A1")
	storage.fail = true
	assert.Equal(t, "A1", tokens.AccessToken(ctx))
	assert.Empty(t, tokens.RefreshToken(ctx))
}

func TestTokens_Expired(t *testing.T) {
	ctx := context.Background()
	var testCases = []struct {
		description string
		token       string
		expect      bool
	}{
		{description: "empty", token: "", expect: false},
		{description: "opaque", token: "opaque-token", expect: false},
		{description: "valid jwt", token: signed(t, time.Now().Add(time.Hour)), expect: false},
		{description: "expired jwt", token: signed(t, time.Now().Add(-time.Minute)), expect: true},
		{description: "within skew", token: signed(t, time.Now().Add(10*time.Second)), expect: true},
	}
	for _, testCase := range testCases {
		tokens := New(ctx)
		tokens.SetAccessToken(ctx, testCase.token)
		assert.Equal(t, testCase.expect, tokens.Expired(ctx, 30*time.Second), testCase.description)
	}
}

func TestTokens_Token(t *testing.T) {
	ctx := context.Background()
	tokens := New(ctx)
	_, err := tokens.Token()
	assert.Error(t, err)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tokens.Set(ctx, &schema.Credentials{AccessToken: signed(t, exp), RefreshToken: "R1"})
	token, err := tokens.Token()
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, "R1", token.RefreshToken)
	assert.True(t, token.Expiry.Equal(exp))
	assert.True(t, token.Valid())
}

func TestTokens_OAuth2Token(t *testing.T) {
	ctx := context.Background()
	tokens := New(ctx)
	assert.Nil(t, tokens.OAuth2Token(ctx))
	assert.False(t, ExpiresWithin(nil, time.Minute))

	tokens.SetAccessToken(ctx, "opaque-token")
	token := tokens.OAuth2Token(ctx)
	require.NotNil(t, token)
	assert.True(t, token.Expiry.IsZero())
	assert.False(t, ExpiresWithin(token, time.Hour))

	req, err := http.NewRequest(http.MethodGet, "http://localhost/users/me", nil)
	require.NoError(t, err)
	token.SetAuthHeader(req)
	assert.Equal(t, "Bearer opaque-token", req.Header.Get("Authorization"))

	tokens.SetAccessToken(ctx, signed(t, time.Now().Add(20*time.Second)))
	token = tokens.OAuth2Token(ctx)
	assert.False(t, ExpiresWithin(token, 5*time.Second))
	assert.True(t, ExpiresWithin(token, 30*time.Second))
}
