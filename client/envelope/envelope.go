package envelope

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/viant/shiftmate/internal/conv"
	"github.com/viant/shiftmate/schema"
)

const dataKey = "data"

var (
	codePaths    = [][]string{{"error", "code"}, {"details", "error", "code"}, {"code"}}
	messagePaths = [][]string{{"error", "message"}, {"details", "error", "message"}, {"message"}}
	detailPaths  = [][]string{{"error", "details"}, {"details"}}

	expiredCodes = map[string]bool{
		schema.CodeExpiredToken: true,
		"TOKEN_EXPIRED":         true,
		"ACCESS_TOKEN_EXPIRED":  true,
	}
)

// Decode decodes a response body: JSON when possible, the plain text otherwise, nil when empty
func Decode(data []byte) any {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return string(data)
	}
	return value
}

// Unwrap returns raw["data"] when raw is an object with a data key, raw otherwise
func Unwrap(raw any) any {
	if object, ok := raw.(map[string]any); ok {
		if value, ok := object[dataKey]; ok {
			return value
		}
	}
	return raw
}

// UnwrapJSON applies Unwrap to encoded JSON up to levels times, stopping early
// once the body is no longer an object holding a data key
func UnwrapJSON(data []byte, levels int) json.RawMessage {
	current := json.RawMessage(data)
	for i := 0; i < levels; i++ {
		var object map[string]json.RawMessage
		if err := json.Unmarshal(current, &object); err != nil {
			break
		}
		value, ok := object[dataKey]
		if !ok {
			break
		}
		current = value
	}
	return current
}

// ErrorCode returns the first error code found at error.code, details.error.code or
// code, falling back to the HTTP status
func ErrorCode(raw any, status int) string {
	if code, ok := first(raw, codePaths); ok {
		return code
	}
	return strconv.Itoa(status)
}

// ErrorMessage returns the first error message found, or schema.DefaultErrorMessage
func ErrorMessage(raw any) string {
	if message, ok := first(raw, messagePaths); ok {
		return message
	}
	if text, ok := raw.(string); ok && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}
	return schema.DefaultErrorMessage
}

// ErrorDetails returns the error details object if present
func ErrorDetails(raw any) map[string]any {
	for _, path := range detailPaths {
		if value, ok := lookup(raw, path); ok {
			if details, ok := value.(map[string]any); ok {
				return details
			}
		}
	}
	return nil
}

// NewError classifies a failed response body
func NewError(raw any, status int) *schema.Error {
	return schema.NewError(ErrorCode(raw, status), ErrorMessage(raw), ErrorDetails(raw))
}

// IsExpiredToken reports whether code signals an expired access token
func IsExpiredToken(code string) bool {
	return expiredCodes[strings.ToUpper(strings.TrimSpace(code))]
}

func first(raw any, paths [][]string) (string, bool) {
	for _, path := range paths {
		value, ok := lookup(raw, path)
		if !ok {
			continue
		}
		if text, ok := conv.AsString(value); ok && text != "" {
			return text, true
		}
	}
	return "", false
}

func lookup(raw any, path []string) (any, bool) {
	current := raw
	for _, key := range path {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = object[key]; !ok {
			return nil, false
		}
	}
	return current, current != nil
}
