package scalar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userID string
type level int8
type ratio float32

func TestOfPrimitives(t *testing.T) {
	tests := []struct {
		name string
		got  Scalar
		kind Kind
		json string
	}{
		{"int", Of(123), KindInt, "123"},
		{"int8", Of(int8(-8)), KindInt, "-8"},
		{"int64", Of(int64(9223372036854775807)), KindInt, "9223372036854775807"},
		{"uint", Of(uint(7)), KindUint, "7"},
		{"uint64 max", Of(uint64(18446744073709551615)), KindUint, "18446744073709551615"},
		{"float64", Of(2.5), KindFloat, "2.5"},
		{"float64 whole", Of(2.0), KindFloat, "2.0"},
		{"float32", Of(float32(0.1)), KindFloat, "0.1"},
		{"bool", Of(true), KindBool, "true"},
		{"string", Of("username"), KindString, `"username"`},
		{"named string", Of(userID("u-1")), KindString, `"u-1"`},
		{"named int", Of(level(3)), KindInt, "3"},
		{"named float32", Of(ratio(0.2)), KindFloat, "0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.got.Kind())
			assert.False(t, tt.got.IsAbsent())

			out, err := json.Marshal(tt.got)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(out))
		})
	}
}

func TestPresentButFalsyIsNotAbsent(t *testing.T) {
	for _, s := range []Scalar{Of(0), Of(false), Of(""), Of(0.0), Of(uint(0))} {
		assert.False(t, s.IsAbsent(), "%v should be present", s.Kind())
		assert.False(t, s.ShouldSkip())
	}
}

func TestNone(t *testing.T) {
	assert.True(t, None.IsAbsent())
	assert.True(t, None.ShouldSkip())
	assert.True(t, Scalar{}.IsAbsent(), "zero value is absent")
	assert.True(t, Of(None).IsAbsent(), "Of forwards None unchanged")
	assert.Nil(t, None.Interface())
	assert.Equal(t, "<absent>", None.String())

	out, err := json.Marshal(None)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestOfForwardsScalar(t *testing.T) {
	s := String("x")
	assert.Equal(t, s, Of(s))
}

func TestFromPtr(t *testing.T) {
	var missing *string
	assert.True(t, FromPtr(missing).IsAbsent())

	name := "kimchy"
	got := FromPtr(&name)
	v, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "kimchy", v)

	n := 0
	assert.False(t, FromPtr(&n).IsAbsent())
}

func TestAccessors(t *testing.T) {
	i, ok := Int(5).AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(5), i)

	_, ok = Int(5).AsString()
	assert.False(t, ok)

	u, ok := Uint(5).AsUint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(5), u)

	f, ok := Float(1.5).AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	b, ok := Bool(false).AsBool()
	assert.True(t, ok)
	assert.False(t, b)

	assert.Equal(t, int64(5), Int(5).Interface())
	assert.Equal(t, "x", String("x").Interface())
}

func TestStringer(t *testing.T) {
	assert.Equal(t, "123", Int(123).String())
	assert.Equal(t, "2.0", Float(2).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "abc", String("abc").String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "absent", KindAbsent.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestStringEscaping(t *testing.T) {
	out, err := String("a\"b\n<c>").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"a\"b\n<c>"`, string(out))
}
