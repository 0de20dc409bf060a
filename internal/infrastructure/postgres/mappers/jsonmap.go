package mappers

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// fromJSONMap copies a scanned jsonb column into a plain map. JSONMap decodes
// with UseNumber, so numbers are turned back into int64 or float64.
func fromJSONMap(m datatypes.JSONMap) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeJSON(v)
	}
	return out
}

func normalizeJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = normalizeJSON(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = normalizeJSON(inner)
		}
		return out
	}
	return v
}
