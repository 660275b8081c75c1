package normalize

import (
	"strconv"
	"strings"
)

// Coercion helpers for values plucked out of a decoded JSON map. The
// collaborator does not reliably honor the schema's types, so numbers may
// arrive as strings and flags as "yes"/"no". The ok return distinguishes
// "absent or null" and "present but uncoercible" at the call site.

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		return ""
	}
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceInt(v any) (int, bool) {
	f, ok := coerceFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// records returns the list of map-shaped sub-records under the given key.
// Anything that is not a map is dropped up front.
func records(data map[string]any, key string) []map[string]any {
	items, ok := data[key].([]any)
	if !ok {
		return nil
	}

	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			result = append(result, m)
		}
	}
	return result
}

// optionalFloat reads a numeric field that may legitimately be absent.
// The second return reports whether a value was present but uncoercible,
// which discards the whole sub-record.
func optionalFloat(m map[string]any, key string) (*float64, bool) {
	raw, present := m[key]
	if !present || raw == nil {
		return nil, false
	}
	f, ok := coerceFloat(raw)
	if !ok {
		return nil, true
	}
	return &f, false
}

func optionalInt(m map[string]any, key string) (*int, bool) {
	f, bad := optionalFloat(m, key)
	if bad || f == nil {
		return nil, bad
	}
	i := int(*f)
	return &i, false
}
