package schema

import "fmt"

// Client-side error codes. Server-declared business codes are passed through verbatim.
const (
	CodeNetworkError   = "NETWORK_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeExpiredToken   = "EXPIRED_TOKEN"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeDecodeError    = "DECODE_ERROR"
)

// DefaultErrorMessage is reported when the server did not supply a message.
const DefaultErrorMessage = "An error occurred"

// Error is a classified request failure
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements error
func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// NewError creates an error, falling back to DefaultErrorMessage for a blank message
func NewError(code, message string, details map[string]any) *Error {
	if message == "" {
		message = DefaultErrorMessage
	}
	return &Error{Code: code, Message: message, Details: details}
}

// NewNetworkError creates a transport failure error
func NewNetworkError(err error) *Error {
	return NewError(CodeNetworkError, err.Error(), nil)
}

// NewUnauthorized creates an error for a request that had no usable credentials
func NewUnauthorized() *Error {
	return NewError(CodeUnauthorized, "authentication required", nil)
}

// NewDecodeError creates an error for an undecodable success body
func NewDecodeError(err error) *Error {
	return NewError(CodeDecodeError, fmt.Sprintf("failed to decode response: %v", err), nil)
}
