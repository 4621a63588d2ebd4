package wire

import (
	jsoniter "github.com/json-iterator/go"
)

// Skipper is implemented by every field type and every query that may be
// omitted from output. ShouldSkip must be a pure function of the receiver.
type Skipper interface {
	ShouldSkip() bool
}

// Value is anything that can write itself as a single JSON value.
type Value interface {
	WriteJSON(stream *jsoniter.Stream)
}

// OptionalValue is a Value that can also report itself as absent.
type OptionalValue interface {
	Value
	Skipper
}

// String is a JSON string.
type String string

// WriteJSON implements Value.
func (s String) WriteJSON(stream *jsoniter.Stream) {
	stream.WriteString(string(s))
}

// Int is a JSON integer.
type Int int64

// WriteJSON implements Value.
func (i Int) WriteJSON(stream *jsoniter.Stream) {
	stream.WriteInt64(int64(i))
}

// Float is a JSON number that always renders with a fraction or exponent.
type Float float64

// WriteJSON implements Value.
func (f Float) WriteJSON(stream *jsoniter.Stream) {
	stream.WriteRaw(string(AppendFloat(nil, float64(f))))
}

// Bool is a JSON boolean.
type Bool bool

// WriteJSON implements Value.
func (b Bool) WriteJSON(stream *jsoniter.Stream) {
	stream.WriteBool(bool(b))
}

// Null is the JSON null literal.
type Null struct{}

// WriteJSON implements Value.
func (Null) WriteJSON(stream *jsoniter.Stream) {
	stream.WriteNil()
}

// Array is an ordered list of values.
type Array []Value

// WriteJSON implements Value.
func (a Array) WriteJSON(stream *jsoniter.Stream) {
	if len(a) == 0 {
		stream.WriteEmptyArray()
		return
	}
	stream.WriteArrayStart()
	for i, v := range a {
		if i > 0 {
			stream.WriteMore()
		}
		v.WriteJSON(stream)
	}
	stream.WriteArrayEnd()
}

// ShouldSkip reports whether the array is empty.
func (a Array) ShouldSkip() bool {
	return len(a) == 0
}

type field struct {
	key   string
	value Value
}

// Object is a JSON object that keeps keys in insertion order.
// Keys are not deduplicated; adapters are responsible for using each key once.
type Object struct {
	fields []field
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{}
}

// Wrap returns the single-entry object {key: v}. It is used for both the
// type-tag layer and the field-name indirection layer.
func Wrap(key string, v Value) *Object {
	return &Object{fields: []field{{key: key, value: v}}}
}

// Set appends key unconditionally.
func (o *Object) Set(key string, v Value) *Object {
	o.fields = append(o.fields, field{key: key, value: v})
	return o
}

// SetOptional appends key unless v reports ShouldSkip.
func (o *Object) SetOptional(key string, v OptionalValue) *Object {
	if v == nil || v.ShouldSkip() {
		return o
	}
	return o.Set(key, v)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.fields)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.key
	}
	return keys
}

// Get returns the first value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	for _, f := range o.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// ShouldSkip reports whether the object has no keys.
func (o *Object) ShouldSkip() bool {
	return o == nil || len(o.fields) == 0
}

// WriteJSON implements Value.
func (o *Object) WriteJSON(stream *jsoniter.Stream) {
	if o.ShouldSkip() {
		stream.WriteEmptyObject()
		return
	}
	stream.WriteObjectStart()
	for i, f := range o.fields {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(f.key)
		f.value.WriteJSON(stream)
	}
	stream.WriteObjectEnd()
}
