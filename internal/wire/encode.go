package wire

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// compact never escapes HTML; the search service reads raw UTF-8.
var compact = jsoniter.Config{
	EscapeHTML: false,
}.Froze()

// Marshal renders v as compact JSON.
func Marshal(v Value) ([]byte, error) {
	return marshalWith(compact, v)
}

// MarshalIndent renders v as JSON indented by step spaces per level.
// A step of zero or less is the same as Marshal.
func MarshalIndent(v Value, step int) ([]byte, error) {
	if step <= 0 {
		return Marshal(v)
	}
	api := jsoniter.Config{
		EscapeHTML:    false,
		IndentionStep: step,
	}.Froze()
	return marshalWith(api, v)
}

func marshalWith(api jsoniter.API, v Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot marshal nil wire value")
	}

	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	v.WriteJSON(stream)
	if stream.Error != nil {
		return nil, fmt.Errorf("write json: %w", stream.Error)
	}

	// The stream buffer is reused after ReturnStream.
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// AppendFloat appends the wire form of f to b.
//
// Whole numbers keep a trailing ".0" so that a float never reads back as an
// integer. Large and tiny magnitudes use exponent form without a '+' sign or
// zero padding ("1e21", "1.5e-7"). NaN and infinities have no JSON form and
// render as null.
func AppendFloat(b []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(b, "null"...)
	}

	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e16) {
		format = 'e'
	}

	start := len(b)
	b = strconv.AppendFloat(b, f, format, -1, 64)

	if format == 'e' {
		return tidyExponent(b, start)
	}
	if bytes.IndexByte(b[start:], '.') < 0 {
		b = append(b, ".0"...)
	}
	return b
}

// tidyExponent rewrites strconv's "1e+21" / "1e-07" into "1e21" / "1e-7".
func tidyExponent(b []byte, start int) []byte {
	num := b[start:]
	e := bytes.IndexByte(num, 'e')
	if e < 0 {
		return b
	}

	mantissa := append([]byte(nil), num[:e]...)
	exp := num[e+1:]
	negative := len(exp) > 0 && exp[0] == '-'
	if len(exp) > 0 && (exp[0] == '-' || exp[0] == '+') {
		exp = exp[1:]
	}
	exp = bytes.TrimLeft(exp, "0")
	if len(exp) == 0 {
		exp = []byte("0")
	}
	digits := append([]byte(nil), exp...)

	b = append(b[:start], mantissa...)
	b = append(b, 'e')
	if negative {
		b = append(b, '-')
	}
	return append(b, digits...)
}
