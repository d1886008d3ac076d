// Package mock provides an in-process ShiftMate server for tests.
//
// It issues RS256 signed access tokens with a configurable lifetime, rotates
// single-use refresh tokens on /auth/reissue and serves a small in-memory data set
// for the schedule, attendance, substitute and payroll resources, so the client can
// be exercised end to end without a real backend.
package mock
