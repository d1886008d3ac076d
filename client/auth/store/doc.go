// Package store keeps the access/refresh token pair used by the API client.
//
// Tokens is the single owner of the credentials. It mirrors the access token in
// memory and persists both tokens to a pluggable Storage: an in-memory backend for
// tests and short lived processes, a file backend on top of github.com/viant/afs
// and a database/sql backend for kiosk devices sharing a local SQLite file.
package store
