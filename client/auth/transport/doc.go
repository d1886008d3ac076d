// Package transport implements an http.RoundTripper that attaches the bearer access
// token to outgoing requests, refreshes it before sending when it is missing or
// expired, and replays a request once when the server reports an expired token.
//
// Requests to authentication endpoints (login, reissue, logout, OTP) are sent as-is
// and never trigger a refresh, so a failing refresh cannot recurse into itself.
package transport
