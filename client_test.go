package shiftmate

import (
	"bytes"
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/shiftmate/client/auth/mock"
	"github.com/viant/shiftmate/client/auth/store"
	"github.com/viant/shiftmate/schema"
)

func newMockServer(t *testing.T) *mock.HTTPTestServer {
	t.Helper()
	server, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return server
}

func TestNewClient_PersistsTokens(t *testing.T) {
	server := newMockServer(t)
	ctx := context.Background()
	var testCases = []struct {
		description string
		storageURL  string
		tokenKey    string
	}{
		{description: "file", storageURL: filepath.Join(t.TempDir(), "credentials.json")},
		{description: "encrypted file", storageURL: filepath.Join(t.TempDir(), "credentials.enc"), tokenKey: store.DefaultSecretKey},
		{description: "sqlite", storageURL: "sqlite://" + filepath.Join(t.TempDir(), "tokens.db")},
	}
	for _, testCase := range testCases {
		options := &ClientOptions{BaseURL: server.URL, TokenStorageURL: testCase.storageURL, TokenKey: testCase.tokenKey}
		first, err := NewClient(ctx, options, WithLogOutput(&bytes.Buffer{}))
		require.NoError(t, err, testCase.description)
		login := first.Login(ctx, &schema.LoginRequest{Email: mock.ManagerEmail, Password: mock.ManagerPassword})
		require.True(t, login.Success, login.Error)
		require.NoError(t, first.Close())

		second, err := NewClient(ctx, options, WithLogOutput(&bytes.Buffer{}))
		require.NoError(t, err, testCase.description)
		me := second.Me(ctx)
		require.True(t, me.Success, me.Error)
		assert.Equal(t, "u-1", me.Data.ID, testCase.description)
		assert.Equal(t, login.Data.AccessToken, second.Tokens().AccessToken(ctx), testCase.description)
		require.NoError(t, second.Close())
	}
}

func TestNewClient_AuthExpiredAndMetrics(t *testing.T) {
	server := newMockServer(t)
	ctx := context.Background()
	registry := prometheus.NewRegistry()
	var expired atomic.Int32
	logs := &bytes.Buffer{}

	cli, err := NewClient(ctx, &ClientOptions{BaseURL: server.URL, Log: LogOptions{Level: "debug"}},
		WithRegisterer(registry),
		WithLogOutput(logs),
		WithAuthExpired(func(ctx context.Context) { expired.Add(1) }))
	require.NoError(t, err)
	defer cli.Close()

	access, err := server.IssueAccessToken("u-1", -time.Minute)
	require.NoError(t, err)
	cli.Tokens().Set(ctx, &schema.Credentials{AccessToken: access, RefreshToken: server.IssueRefreshToken("u-1")})
	require.True(t, cli.Me(ctx).Success)

	server.RejectReissue(true)
	server.RevokeRefreshTokens()
	cli.Tokens().SetAccessToken(ctx, access)
	me := cli.Me(ctx)
	require.False(t, me.Success)
	assert.Equal(t, schema.CodeUnauthorized, me.Error.Code)
	assert.EqualValues(t, 1, expired.Load())

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
	assert.Equal(t, 1, mustCount(t, registry, "shiftmate_client_auth_expired_total"))
	assert.Contains(t, logs.String(), "session expired")
	assert.NotContains(t, logs.String(), access)
}

func TestNewClient_InvalidOptions(t *testing.T) {
	_, err := NewClient(context.Background(), &ClientOptions{BaseURL: "not a url"})
	assert.Error(t, err)

	_, err = NewClient(context.Background(), &ClientOptions{BaseURL: "http://localhost", TokenStorageURL: "sqlite://" + filepath.Join(t.TempDir(), "missing", "tokens.db")})
	assert.Error(t, err)
}

func mustCount(t *testing.T, registry *prometheus.Registry, name string) int {
	t.Helper()
	count, err := testutil.GatherAndCount(registry, name)
	require.NoError(t, err)
	return count
}
