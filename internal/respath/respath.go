// Package respath reads and writes values inside decoded JSON objects
// (map[string]any) addressed by dot-separated paths like "users.items".
// The CLI uses it to build response extractors from configuration;
// typed consumers of the library supply their own extractor functions
// instead.
package respath

import (
	"encoding/json"
	"strings"

	"gqlpick/internal/domain"
)

// Lookup walks path through nested maps and returns the value at the
// end, or false when any segment is missing or not an object.
func Lookup(m map[string]any, path string) (any, bool) {
	if m == nil {
		return nil, false
	}
	segments := strings.Split(path, ".")
	var current any = m
	for _, seg := range segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// WithValue returns a copy of m with the value at path replaced. Maps
// along the path are shallow-copied so the input is left untouched;
// missing intermediate objects are created.
func WithValue(m map[string]any, path string, value any) map[string]any {
	segments := strings.Split(path, ".")

	out := copyMap(m)
	current := out
	for _, seg := range segments[:len(segments)-1] {
		child, ok := current[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
		} else {
			child = copyMap(child)
		}
		current[seg] = child
		current = child
	}
	current[segments[len(segments)-1]] = value
	return out
}

// Items returns the list at path as item maps. Both []any (fresh from
// json.Unmarshal) and []map[string]any (written back by WithValue
// after a page merge) are accepted.
func Items(m map[string]any, path string) []map[string]any {
	v, ok := Lookup(m, path)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []map[string]any:
		return list
	case []any:
		items := make([]map[string]any, 0, len(list))
		for _, el := range list {
			if obj, ok := el.(map[string]any); ok {
				items = append(items, obj)
			}
		}
		return items
	default:
		return nil
	}
}

// PageInfo reads pagination metadata at path.
func PageInfo(m map[string]any, path string) domain.PageInfo {
	v, ok := Lookup(m, path)
	if !ok {
		return domain.PageInfo{}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return domain.PageInfo{}
	}
	return domain.PageInfo{
		Page:      Int(obj["pageNumber"]),
		PageSize:  Int(obj["pageSize"]),
		Total:     Int(obj["total"]),
		TotalPage: Int(obj["totalPage"]),
	}
}

// String returns the value at path rendered as a string, or "".
func String(m map[string]any, path string) string {
	v, ok := Lookup(m, path)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.Trim(string(b), `"`)
	}
}

// Int converts the numeric types json.Unmarshal produces.
func Int(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	default:
		return 0
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
