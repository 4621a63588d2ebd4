// Package scalar provides the optional scalar value carried by query
// parameters: either absent, or a present integer, float, boolean or string.
//
// Absent and present-but-default are different states. Of(0), Of(false) and
// Of("") are all present; only None (and the zero Scalar) is absent.
package scalar

import (
	"fmt"
	"reflect"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/roach88/querydsl/internal/wire"
)

// Kind identifies which variant a Scalar holds.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Primitive is the set of Go types a Scalar can be built from.
type Primitive interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~bool | ~string
}

// Value is accepted wherever a query takes a scalar argument.
// Passing a Scalar (including None) forwards it unchanged.
type Value interface {
	Primitive | Scalar
}

// Scalar is an optional primitive value. The zero value is absent.
type Scalar struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	b    bool
	s    string
}

// None is the explicit absent marker.
var None = Scalar{}

// Int returns a present integer.
func Int(v int64) Scalar { return Scalar{kind: KindInt, i: v} }

// Uint returns a present unsigned integer.
func Uint(v uint64) Scalar { return Scalar{kind: KindUint, u: v} }

// Float returns a present float.
func Float(v float64) Scalar { return Scalar{kind: KindFloat, f: v} }

// Bool returns a present boolean.
func Bool(v bool) Scalar { return Scalar{kind: KindBool, b: v} }

// String returns a present string.
func String(v string) Scalar { return Scalar{kind: KindString, s: v} }

// Of converts any accepted value into a Scalar. Conversion is total: every
// Primitive yields a present Scalar.
func Of[T Value](v T) Scalar {
	return from(v)
}

// FromPtr converts a pointer, mapping nil to None.
func FromPtr[T Primitive](p *T) Scalar {
	if p == nil {
		return None
	}
	return from(*p)
}

func from(v any) Scalar {
	switch x := v.(type) {
	case Scalar:
		return x
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case int32:
		return Int(int64(x))
	case uint64:
		return Uint(x)
	case uint:
		return Uint(uint64(x))
	case float64:
		return Float(x)
	case float32:
		return Float(widenFloat32(x))
	case bool:
		return Bool(x)
	case string:
		return String(x)
	}

	// Named types (~int, ~string, ...) fall through to reflection.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint())
	case reflect.Float32:
		return Float(widenFloat32(float32(rv.Float())))
	case reflect.Float64:
		return Float(rv.Float())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return String(rv.String())
	}
	return None
}

// widenFloat32 keeps the shortest float32 representation, so float32(0.1)
// becomes 0.1 rather than 0.10000000149011612.
func widenFloat32(f float32) float64 {
	w, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return w
}

// Kind returns the variant held.
func (s Scalar) Kind() Kind { return s.kind }

// IsAbsent reports whether s holds no value.
func (s Scalar) IsAbsent() bool { return s.kind == KindAbsent }

// ShouldSkip implements wire.Skipper: a scalar is skipped iff absent.
func (s Scalar) ShouldSkip() bool { return s.IsAbsent() }

// AsInt64 returns the integer held, if s is KindInt.
func (s Scalar) AsInt64() (int64, bool) { return s.i, s.kind == KindInt }

// AsUint64 returns the unsigned integer held, if s is KindUint.
func (s Scalar) AsUint64() (uint64, bool) { return s.u, s.kind == KindUint }

// AsFloat64 returns the float held, if s is KindFloat.
func (s Scalar) AsFloat64() (float64, bool) { return s.f, s.kind == KindFloat }

// AsBool returns the boolean held, if s is KindBool.
func (s Scalar) AsBool() (bool, bool) { return s.b, s.kind == KindBool }

// AsString returns the string held, if s is KindString.
func (s Scalar) AsString() (string, bool) { return s.s, s.kind == KindString }

// Interface returns the held value as a Go value, or nil when absent.
func (s Scalar) Interface() any {
	switch s.kind {
	case KindInt:
		return s.i
	case KindUint:
		return s.u
	case KindFloat:
		return s.f
	case KindBool:
		return s.b
	case KindString:
		return s.s
	default:
		return nil
	}
}

// String formats s for humans; absent prints as "<absent>".
func (s Scalar) String() string {
	switch s.kind {
	case KindAbsent:
		return "<absent>"
	case KindString:
		return s.s
	case KindFloat:
		return string(wire.AppendFloat(nil, s.f))
	default:
		return fmt.Sprint(s.Interface())
	}
}

// WriteJSON implements wire.Value. An absent scalar writes null; adapters
// filter absent optional values before they get here.
func (s Scalar) WriteJSON(stream *jsoniter.Stream) {
	switch s.kind {
	case KindInt:
		stream.WriteInt64(s.i)
	case KindUint:
		stream.WriteUint64(s.u)
	case KindFloat:
		wire.Float(s.f).WriteJSON(stream)
	case KindBool:
		stream.WriteBool(s.b)
	case KindString:
		stream.WriteString(s.s)
	default:
		stream.WriteNil()
	}
}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return wire.Marshal(s)
}
