// Package value provides primitives for coercing loosely-typed values
// coming from the remote content API.
//
// These helpers solve common problems:
//   - Type coercion (string "123" → int)
//   - Null/empty handling
//   - Multi-value normalization
//   - Timestamp parsing for date-backed fields
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Text extracts a string from various representations.
// Handles: string, []byte, fmt.Stringer, json.Number, numeric types, nil
func Text(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// TextSlice normalizes a value to []string, dropping empty entries.
// Handles: string, []string, []any, nil
func TextSlice(v any) []string {
	if v == nil {
		return nil
	}

	var result []string
	switch val := v.(type) {
	case []string:
		for _, s := range val {
			if s != "" {
				result = append(result, s)
			}
		}
	case []any:
		for _, item := range val {
			if s := Text(item); s != "" {
				result = append(result, s)
			}
		}
	case string:
		if val != "" {
			result = []string{val}
		}
	default:
		if s := Text(v); s != "" {
			result = []string{s}
		}
	}
	return result
}

// Int extracts an integer from various representations.
// Handles: int, float64, string ("123"), json.Number, nil (→ 0)
func Int(v any) int {
	if v == nil {
		return 0
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case json.Number:
		i, _ := val.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(val))
		return i
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Bool extracts a boolean from various representations.
// Handles: bool, int (0/1), string ("true"/"1"/"yes"/"on"), nil
func Bool(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case json.Number:
		i, _ := val.Int64()
		return i != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		return s == "true" || s == "1" || s == "yes" || s == "on"
	default:
		return false
	}
}
