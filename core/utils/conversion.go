package utils

import (
	"fmt"
	"strconv"
)

// ToString converts various types to string.
// YAML decodes bare scalars such as `name: 1` into numbers, so callers that
// need a name use this instead of a type assertion.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsTruthy reports whether a decoded YAML/JSON value counts as set.
// nil, false, zero numbers, empty strings and empty collections are falsy.
func IsTruthy(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
