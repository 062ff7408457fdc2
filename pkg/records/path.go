package records

import (
	"slices"
	"strings"

	"github.com/agentstation/modeldesk/internal/jsonvalue"
	"github.com/agentstation/modeldesk/pkg/errors"
)

// ParseValue interprets a command-line value as JSON, falling back to a
// plain string when it does not parse.
func ParseValue(s string) any {
	v, err := jsonvalue.Decode([]byte(s))
	if err != nil {
		return s
	}
	return v
}

// SetField returns a copy of r with the field at the dotted path set to
// value. Supported paths are a top-level key ("name"), a nested key
// ("params.temperature") or a single capability flag
// ("meta.capabilities.vision").
func SetField(r Record, path string, value any) (Record, error) {
	parts := strings.Split(path, ".")
	m := r.ToMap()

	switch {
	case len(parts) == 1 && slices.Contains(ScalarKeys, parts[0]):
		m[parts[0]] = value

	case len(parts) == 2 && slices.Contains(KnownKeys(parts[0]), parts[1]):
		m[parts[0]].(map[string]any)[parts[1]] = value

	case len(parts) == 3 && parts[0] == KeyMeta && parts[1] == MetaCapabilities && parts[2] != "":
		caps := m[KeyMeta].(map[string]any)[MetaCapabilities].(map[string]any)
		if value == nil {
			delete(caps, parts[2])
		} else {
			caps[parts[2]] = value
		}

	default:
		return r, errors.NewValidationError(path, value, "unknown field")
	}

	out := Normalize(m)
	if !jsonvalue.IsEmpty(value) && jsonvalue.IsEmpty(lookup(out.ToMap(), parts)) {
		return r, errors.NewValidationError(path, value, "value has the wrong type for this field")
	}
	return out, nil
}

// GetField returns the value at a dotted path, or nil when the path is not
// known.
func GetField(r Record, path string) any {
	return lookup(r.ToMap(), strings.Split(path, "."))
}

func lookup(m map[string]any, parts []string) any {
	var cur any = m
	for _, p := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[p]
	}
	return cur
}
