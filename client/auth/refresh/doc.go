// Package refresh exchanges a refresh token for a new access token.
//
// A Coordinator guarantees that concurrent callers needing a refresh share a single
// POST /auth/reissue exchange and observe the same outcome. Any failed exchange
// clears the stored credentials.
package refresh
