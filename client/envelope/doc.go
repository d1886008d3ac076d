// Package envelope normalizes ShiftMate response bodies.
//
// The server wraps payloads as {"success", "data", "error"} and some routes wrap
// twice. Unwrap strips exactly one level so a legitimate "data" field inside a
// payload is never discarded implicitly; callers that expect a double wrap apply it
// twice. Error codes and messages are searched at every nesting depth the server
// has been seen to emit.
package envelope
