// Package schema defines the request result model and the ShiftMate resource types
// exchanged with the server.
package schema
