// Package auth groups the client side session machinery.
//
// store keeps access and refresh tokens in memory, a file or SQLite; refresh
// coordinates a single in-flight token reissue; transport is the http.RoundTripper
// that attaches bearer tokens, refreshes stale ones and replays a rejected request
// once; mock is an in-process ShiftMate API used by tests.
package auth
