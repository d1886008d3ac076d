// Package metrics defines the prometheus collectors recorded by the API client:
// logical requests, token refreshes and unrecoverable authentication failures.
package metrics
