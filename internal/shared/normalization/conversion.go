package normalization

import (
	"strings"
	"time"
)

// AsString trims and returns the string representation of value when possible.
func AsString(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// AsInt coerces the numeric types produced by encoding/json into Go ints.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	default:
		return 0
	}
}

// AsBool coerces boolean payload values, defaulting to false.
func AsBool(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

// AsTime parses RFC3339 timestamps, returning the zero time on failure.
func AsTime(value any) time.Time {
	s := AsString(value)
	if s == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// AsInterfaceSlice normalizes collection payloads into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// MapFromPayload unwraps common envelope shapes (e.g. {"data": {...}}) into a
// plain map for the normalization routines.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	typed, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	if nested, ok := typed["data"].(map[string]any); ok {
		return nested
	}
	return typed
}
