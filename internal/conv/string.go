package conv

import (
	"encoding/json"
	"strconv"
)

// AsString coerces a decoded JSON scalar into a string
func AsString(value any) (string, bool) {
	switch actual := value.(type) {
	case string:
		return actual, true
	case float64:
		return strconv.FormatFloat(actual, 'f', -1, 64), true
	case json.Number:
		return actual.String(), true
	case int:
		return strconv.Itoa(actual), true
	case int64:
		return strconv.FormatInt(actual, 10), true
	case bool:
		return strconv.FormatBool(actual), true
	}
	return "", false
}
