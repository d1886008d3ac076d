package conv

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsString(t *testing.T) {
	var testCases = []struct {
		description string
		value       any
		expect      string
		ok          bool
	}{
		{description: "string", value: "EXPIRED_TOKEN", expect: "EXPIRED_TOKEN", ok: true},
		{description: "json float", value: float64(4001), expect: "4001", ok: true},
		{description: "json number", value: json.Number("42"), expect: "42", ok: true},
		{description: "int", value: 7, expect: "7", ok: true},
		{description: "object", value: map[string]any{"a": 1}, ok: false},
		{description: "nil", value: nil, ok: false},
	}
	for _, testCase := range testCases {
		actual, ok := AsString(testCase.value)
		assert.Equal(t, testCase.ok, ok, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}
