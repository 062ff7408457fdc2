// Package jsonvalue holds helpers for working with generic decoded JSON
// (map[string]any, []any, json.Number and friends). Numbers are always kept
// as json.Number so that raw documents survive a decode/encode cycle without
// float rounding.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/agentstation/modeldesk/pkg/errors"
)

// Decode parses a single JSON value. Trailing non-whitespace data is an error.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, parseError(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &errors.ParseError{
			Format:  "json",
			Offset:  dec.InputOffset(),
			Message: "unexpected data after top-level value",
		}
	}
	return v, nil
}

// DecodeObject parses data that must be a single JSON object.
func DecodeObject(data []byte) (map[string]any, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.NewParseError("json", "", "expected a JSON object", nil)
	}
	return obj, nil
}

// DecodeObjects parses either one object or an array of objects.
func DecodeObjects(data []byte) ([]map[string]any, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}

	switch doc := v.(type) {
	case map[string]any:
		return []map[string]any{doc}, nil
	case []any:
		out := make([]map[string]any, 0, len(doc))
		for i, item := range doc {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, errors.NewParseError("json", "", "array element "+strconv.Itoa(i)+" is not an object", nil)
			}
			out = append(out, obj)
		}
		return out, nil
	default:
		return nil, errors.NewParseError("json", "", "expected an object or an array of objects", nil)
	}
}

func parseError(err error) error {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		perr := errors.NewParseError("json", "", syntax.Error(), err)
		perr.Offset = syntax.Offset
		return perr
	}
	if err == io.EOF {
		return errors.NewParseError("json", "", "empty document", err)
	}
	return errors.WrapParse("json", "", err)
}

// Copy returns a deep copy of a decoded JSON value. Maps and slices are
// duplicated; scalars are shared.
func Copy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CopyObject(val)
	case []any:
		if val == nil {
			return []any(nil)
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Copy(item)
		}
		return out
	default:
		return val
	}
}

// CopyObject is Copy specialised for objects. A nil map stays nil.
func CopyObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Copy(v)
	}
	return out
}

// IsEmpty reports whether v counts as a cleared value: null, "", false,
// an empty array or an empty object. Numbers are never empty.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// Equal compares two values by their canonical JSON encoding. Object key
// order does not matter; number formatting does.
func Equal(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// Equivalent is like Equal but compares numbers by value, so 1, 1.0 and
// json.Number("1") are all equivalent.
func Equivalent(a, b any) bool {
	if an, ok := number(a); ok {
		bn, ok := number(b)
		return ok && an.equal(bn)
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !Equivalent(v, w) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equivalent(av[i], bv[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return Equal(a, b)
	}
}

type num struct {
	i     int64
	f     float64
	isInt bool
}

func (n num) equal(o num) bool {
	if n.isInt && o.isInt {
		return n.i == o.i
	}
	return n.f == o.f
}

func number(v any) (num, bool) {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return num{i: i, f: float64(i), isInt: true}, true
		}
		f, err := val.Float64()
		if err != nil {
			return num{}, false
		}
		return fromFloat(f), true
	case int64:
		return num{i: val, f: float64(val), isInt: true}, true
	case int:
		return num{i: int64(val), f: float64(val), isInt: true}, true
	case float64:
		return fromFloat(val), true
	default:
		return num{}, false
	}
}

func fromFloat(f float64) num {
	if f == float64(int64(f)) && f >= -(1<<53) && f <= 1<<53 {
		return num{i: int64(f), f: f, isInt: true}
	}
	return num{f: f}
}

// Int64 converts a decoded JSON number to int64. Fractional values fail.
func Int64(v any) (int64, bool) {
	n, ok := number(v)
	if !ok || !n.isInt {
		return 0, false
	}
	return n.i, true
}

// Float64 converts a decoded JSON number to float64.
func Float64(v any) (float64, bool) {
	n, ok := number(v)
	if !ok {
		return 0, false
	}
	return n.f, true
}
