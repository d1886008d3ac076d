package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/shiftmate/client/auth/store"
	"github.com/viant/shiftmate/schema"
)

type fakeRefresher struct {
	tokens *store.Tokens
	next   string
	ok     bool
	calls  int
}

func (f *fakeRefresher) Refresh(ctx context.Context) bool {
	return f.RefreshIfStale(ctx, "")
}

func (f *fakeRefresher) RefreshIfStale(ctx context.Context, _ string) bool {
	f.calls++
	if !f.ok {
		f.tokens.Clear(ctx)
		return false
	}
	f.tokens.SetAccessToken(ctx, f.next)
	return true
}

type responder func(w http.ResponseWriter, r *http.Request, attempt int)

type fixture struct {
	mu            sync.Mutex
	URL           string
	authorization []string
	bodies        []string
	respond       responder
	tokens        *store.Tokens
	refresher     *fakeRefresher
	expired       int
	client        *http.Client
}

func (f *fixture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.authorization = append(f.authorization, r.Header.Get("Authorization"))
	f.bodies = append(f.bodies, string(data))
	attempt := len(f.authorization)
	f.mu.Unlock()
	f.respond(w, r, attempt)
}

func newFixture(t *testing.T, access, refresh string, refreshOK bool, respond responder) *fixture {
	t.Helper()
	ctx := context.Background()
	ret := &fixture{respond: respond, tokens: store.New(ctx)}
	ret.tokens.Set(ctx, &schema.Credentials{AccessToken: access, RefreshToken: refresh})
	server := httptest.NewServer(ret)
	t.Cleanup(server.Close)
	ret.URL = server.URL
	ret.refresher = &fakeRefresher{tokens: ret.tokens, next: "A2", ok: refreshOK}
	rt := New(ret.tokens, ret.refresher, WithAuthExpired(func(ctx context.Context) { ret.expired++ }))
	ret.client = &http.Client{Transport: rt}
	return ret
}

func (f *fixture) post(t *testing.T, path, body string) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, f.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	return f.client.Do(req)
}

func ok(w http.ResponseWriter, _ *http.Request, _ int) {
	_, _ = w.Write([]byte(`{"data":{"id":1}}`))
}

func expiredOnFirst(w http.ResponseWriter, r *http.Request, attempt int) {
	if attempt == 1 {
		alwaysExpired(w, r, attempt)
		return
	}
	ok(w, r, attempt)
}

func alwaysExpired(w http.ResponseWriter, _ *http.Request, _ int) {
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"EXPIRED_TOKEN","message":"expired"}}`))
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestRoundTripper_AttachesBearer(t *testing.T) {
	f := newFixture(t, "A1", "R1", true, ok)
	resp, err := f.client.Get(f.URL + "/stores/s1/shifts")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, []string{"Bearer A1"}, f.authorization)
	assert.Equal(t, 0, f.refresher.calls)
}

func TestRoundTripper_ReplaysOnceAfterRefresh(t *testing.T) {
	f := newFixture(t, "A1", "R1", true, expiredOnFirst)
	resp, err := f.post(t, "/attendance/clock-in", `{"storeId":"s1"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"data":{"id":1}}`, readAll(t, resp))
	assert.Equal(t, []string{"Bearer A1", "Bearer A2"}, f.authorization)
	assert.Equal(t, []string{`{"storeId":"s1"}`, `{"storeId":"s1"}`}, f.bodies)
	assert.Equal(t, 1, f.refresher.calls)
	assert.Equal(t, 0, f.expired)
}

func TestRoundTripper_BoundedRetry(t *testing.T) {
	f := newFixture(t, "A1", "R1", true, alwaysExpired)
	resp, err := f.post(t, "/attendance/clock-out", `{}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readAll(t, resp), "EXPIRED_TOKEN")
	assert.Len(t, f.authorization, 2)
	assert.Equal(t, 1, f.refresher.calls)
	assert.Equal(t, 1, f.expired)
	assert.Empty(t, f.tokens.AccessToken(context.Background()))
}

func TestRoundTripper_RefreshFailureReturnsLastResponse(t *testing.T) {
	f := newFixture(t, "A1", "R1", false, alwaysExpired)
	resp, err := f.client.Get(f.URL + "/users/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readAll(t, resp), "expired")
	assert.Len(t, f.authorization, 1)
	assert.Equal(t, 1, f.expired)
	assert.Empty(t, f.tokens.RefreshToken(context.Background()))
}

func TestRoundTripper_AuthEndpointsNeverRefresh(t *testing.T) {
	for _, path := range []string{"/auth/login", "/auth/reissue", "/auth/logout", "/auth/otp/verify", "/api/auth/login/pin"} {
		f := newFixture(t, "", "R1", true, alwaysExpired)
		resp, err := f.post(t, path, `{}`)
		require.NoError(t, err, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, 0, f.refresher.calls, path)
		assert.Equal(t, 0, f.expired, path)
		assert.Len(t, f.authorization, 1, path)
	}
}

func TestRoundTripper_PreflightWithoutRefreshToken(t *testing.T) {
	f := newFixture(t, "", "", false, ok)
	_, err := f.client.Get(f.URL + "/users/me")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Len(t, f.authorization, 0)
	assert.Equal(t, 1, f.expired)
}

func TestRoundTripper_PreflightRefresh(t *testing.T) {
	f := newFixture(t, "", "R1", true, ok)
	resp, err := f.client.Get(f.URL + "/users/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, []string{"Bearer A2"}, f.authorization)
	assert.Equal(t, 1, f.refresher.calls)
}

func TestRoundTripper_PreflightRefreshOfExpiringJWT(t *testing.T) {
	sign := func(exp time.Time) string {
		value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("secret"))
		require.NoError(t, err)
		return value
	}
	var testCases = []struct {
		description   string
		access        string
		expectCalls   int
		expectBearers []string
	}{
		{description: "valid jwt is sent", access: sign(time.Now().Add(time.Hour)), expectCalls: 0},
		{description: "jwt expiring within skew is refreshed first", access: sign(time.Now().Add(2 * time.Second)), expectCalls: 1, expectBearers: []string{"Bearer A2"}},
		{description: "expired jwt is refreshed first", access: sign(time.Now().Add(-time.Minute)), expectCalls: 1, expectBearers: []string{"Bearer A2"}},
	}
	for _, testCase := range testCases {
		f := newFixture(t, testCase.access, "R1", true, ok)
		resp, err := f.client.Get(f.URL + "/users/me")
		require.NoError(t, err, testCase.description)
		resp.Body.Close()
		assert.Equal(t, testCase.expectCalls, f.refresher.calls, testCase.description)
		expectBearers := testCase.expectBearers
		if expectBearers == nil {
			expectBearers = []string{"Bearer " + testCase.access}
		}
		assert.Equal(t, expectBearers, f.authorization, testCase.description)
	}
}

func TestRoundTripper_ExpiredCodeOnOtherStatus(t *testing.T) {
	var testCases = []struct {
		description  string
		status       int
		body         string
		expectCalls  int
		expectStatus int
	}{
		{description: "403 expired code", status: http.StatusForbidden, body: `{"error":{"code":"TOKEN_EXPIRED"}}`, expectCalls: 1, expectStatus: http.StatusOK},
		{description: "top level code", status: http.StatusBadRequest, body: `{"code":"EXPIRED_TOKEN"}`, expectCalls: 1, expectStatus: http.StatusOK},
		{description: "plain server error", status: http.StatusInternalServerError, body: `{"error":{"code":"INTERNAL"}}`, expectCalls: 0, expectStatus: http.StatusInternalServerError},
		{description: "not found", status: http.StatusNotFound, body: `not found`, expectCalls: 0, expectStatus: http.StatusNotFound},
	}
	for _, testCase := range testCases {
		status, body := testCase.status, testCase.body
		f := newFixture(t, "A1", "R1", true, func(w http.ResponseWriter, r *http.Request, attempt int) {
			if attempt == 1 {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(body))
				return
			}
			ok(w, r, attempt)
		})
		resp, err := f.client.Get(f.URL + "/stores/s1/substitutes")
		require.NoError(t, err, testCase.description)
		actual := readAll(t, resp)
		assert.Equal(t, testCase.expectStatus, resp.StatusCode, testCase.description)
		assert.Equal(t, testCase.expectCalls, f.refresher.calls, testCase.description)
		if testCase.expectCalls == 0 {
			assert.Equal(t, body, actual, testCase.description)
		}
	}
}

func TestRoundTripper_IsAuthEndpoint(t *testing.T) {
	rt := New(store.New(context.Background()), &fakeRefresher{}, WithAuthPaths("/session"))
	assert.True(t, rt.IsAuthEndpoint("/api/session/new"))
	assert.False(t, rt.IsAuthEndpoint("/auth/login"))
}
