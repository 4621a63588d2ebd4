package definition

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/roach88/querydsl/internal/scalar"
)

// body reads keys from one decoded mapping and remembers which were used,
// so that typos surface as ErrUnknownField instead of being ignored.
type body struct {
	path string
	m    map[string]any
	used map[string]bool
}

func newBody(path string, v any) (*body, error) {
	if v == nil {
		return &body{path: path, m: map[string]any{}, used: map[string]bool{}}, nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil, errorf(path, ErrInvalidType, "expected a mapping, got %s", typeName(v))
	}
	return &body{path: path, m: m, used: map[string]bool{}}, nil
}

func (b *body) child(key string) string {
	if b.path == "" {
		return key
	}
	return b.path + "." + key
}

func (b *body) lookup(key string) (any, bool) {
	v, ok := b.m[key]
	if ok {
		b.used[key] = true
	}
	return v, ok
}

func (b *body) requiredString(key string) (string, error) {
	v, ok := b.lookup(key)
	if !ok {
		return "", errorf(b.child(key), ErrMissingField, "%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", errorf(b.child(key), ErrInvalidType, "expected a string, got %s", typeName(v))
	}
	return s, nil
}

func (b *body) optionalString(key string) (string, bool, error) {
	v, ok := b.lookup(key)
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, errorf(b.child(key), ErrInvalidType, "expected a string, got %s", typeName(v))
	}
	return s, true, nil
}

func (b *body) optionalBool(key string) (bool, bool, error) {
	v, ok := b.lookup(key)
	if !ok || v == nil {
		return false, false, nil
	}
	x, ok := v.(bool)
	if !ok {
		return false, false, errorf(b.child(key), ErrInvalidType, "expected a boolean, got %s", typeName(v))
	}
	return x, true, nil
}

func (b *body) optionalFloat(key string) (float64, bool, error) {
	v, ok := b.lookup(key)
	if !ok || v == nil {
		return 0, false, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, false, errorf(b.child(key), ErrInvalidType, "%v", err)
	}
	return f, true, nil
}

func (b *body) optionalInt(key string) (int64, bool, error) {
	v, ok := b.lookup(key)
	if !ok || v == nil {
		return 0, false, nil
	}
	i, err := toInt(v)
	if err != nil {
		return 0, false, errorf(b.child(key), ErrInvalidType, "%v", err)
	}
	return i, true, nil
}

// requiredScalar demands the key be present; an explicit null is allowed
// and yields scalar.None.
func (b *body) requiredScalar(key string) (scalar.Scalar, error) {
	v, ok := b.lookup(key)
	if !ok {
		return scalar.None, errorf(b.child(key), ErrMissingField, "%s is required (use null for an absent value)", key)
	}
	return toScalar(b.child(key), v)
}

func (b *body) optionalScalar(key string) (scalar.Scalar, error) {
	v, ok := b.lookup(key)
	if !ok {
		return scalar.None, nil
	}
	return toScalar(b.child(key), v)
}

func (b *body) optionalList(key string) ([]any, bool, error) {
	v, ok := b.lookup(key)
	if !ok || v == nil {
		return nil, false, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false, errorf(b.child(key), ErrInvalidType, "expected a list, got %s", typeName(v))
	}
	return list, true, nil
}

// done fails on the first unused key, in sorted order.
func (b *body) done() error {
	var unknown []string
	for k := range b.m {
		if !b.used[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return errorf(b.child(unknown[0]), ErrUnknownField, "unknown field %q", unknown[0])
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// number is satisfied by json.Number, which is what documents decoded with
// UseNumber carry.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

func toScalar(path string, v any) (scalar.Scalar, error) {
	switch x := v.(type) {
	case nil:
		return scalar.None, nil
	case string:
		return scalar.String(x), nil
	case bool:
		return scalar.Bool(x), nil
	case int:
		return scalar.Int(int64(x)), nil
	case int64:
		return scalar.Int(x), nil
	case uint64:
		return scalar.Uint(x), nil
	case float64:
		return scalar.Float(x), nil
	case number:
		if i, err := x.Int64(); err == nil {
			return scalar.Int(i), nil
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return scalar.Uint(u), nil
		}
		f, err := x.Float64()
		if err != nil {
			return scalar.None, errorf(path, ErrInvalidType, "invalid number %q", x.String())
		}
		return scalar.Float(f), nil
	default:
		return scalar.None, errorf(path, ErrInvalidType, "expected a scalar, got %s", typeName(v))
	}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case float64:
		return x, nil
	case number:
		return x.Float64()
	default:
		return 0, fmt.Errorf("expected a number, got %s", typeName(v))
	}
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d out of range", x)
		}
		return int64(x), nil
	case number:
		return x.Int64()
	default:
		return 0, fmt.Errorf("expected an integer, got %s", typeName(v))
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64, number:
		return "number"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
