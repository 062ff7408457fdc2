package convert

import (
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/modeldesk/internal/jsonvalue"
)

// ToYAML renders merged documents as YAML. Numbers decoded as json.Number
// are emitted as YAML numbers rather than strings.
func ToYAML(docs []map[string]any) ([]byte, error) {
	plain := make([]any, len(docs))
	for i, d := range docs {
		plain[i] = PlainValue(d)
	}
	return yaml.MarshalWithOptions(plain,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
}

// PlainValue converts json.Number values nested in maps and slices to int64
// or float64 so encoders that do not know json.Number print them as numbers.
func PlainValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, ok := jsonvalue.Int64(t); ok {
			return i
		}
		if f, ok := jsonvalue.Float64(t); ok {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = PlainValue(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = PlainValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = PlainValue(val)
		}
		return out
	default:
		return v
	}
}
