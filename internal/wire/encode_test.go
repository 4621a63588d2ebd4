package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"html is not escaped", String("<a&b>"), `"<a&b>"`},
		{"int", Int(42), "42"},
		{"negative int", Int(-100), "-100"},
		{"float whole", Float(2), "2.0"},
		{"float fraction", Float(0.5), "0.5"},
		{"bool", Bool(false), "false"},
		{"null", Null{}, "null"},
		{"empty array", Array{}, "[]"},
		{"empty object", NewObject(), "{}"},
		{"array", Array{Int(1), String("a"), Bool(true)}, `[1,"a",true]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestMarshalKeepsInsertionOrder(t *testing.T) {
	obj := NewObject().
		Set("zebra", Int(1)).
		Set("alpha", Int(2)).
		Set("beta", Int(3))

	out, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"alpha":2,"beta":3}`, string(out))
	assert.Equal(t, []string{"zebra", "alpha", "beta"}, obj.Keys())
}

func TestMarshalIsStable(t *testing.T) {
	obj := Wrap("term", Wrap("user", NewObject().Set("value", String("kimchy")).Set("boost", Float(1.5))))

	first, err := Marshal(obj)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Marshal(obj)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMarshalNil(t *testing.T) {
	_, err := Marshal(nil)
	assert.Error(t, err)
}

func TestMarshalIndent(t *testing.T) {
	obj := Wrap("bool", NewObject().Set("filter", Array{Wrap("match_all", NewObject())}))

	out, err := MarshalIndent(obj, 2)
	require.NoError(t, err)
	expected := "{\n  \"bool\": {\n    \"filter\": [\n      {\n        \"match_all\": {}\n      }\n    ]\n  }\n}"
	assert.Equal(t, expected, string(out))

	flat, err := MarshalIndent(obj, 0)
	require.NoError(t, err)
	assert.Equal(t, `{"bool":{"filter":[{"match_all":{}}]}}`, string(flat))
}

type optional struct {
	Value
	skip bool
}

func (o optional) ShouldSkip() bool { return o.skip }

func TestSetOptional(t *testing.T) {
	obj := NewObject().
		Set("value", Int(1)).
		SetOptional("boost", optional{Value: Float(2), skip: false}).
		SetOptional("_name", optional{Value: String("x"), skip: true}).
		SetOptional("empty", Array{}).
		SetOptional("nothing", nil)

	out, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"value":1,"boost":2.0}`, string(out))
}

func TestObjectGet(t *testing.T) {
	obj := NewObject().Set("a", Int(1))

	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, Int(1), v)

	_, ok = obj.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 1, obj.Len())
}

func TestAppendFloat(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{2, "2.0"},
		{-3, "-3.0"},
		{0.1, "0.1"},
		{1.25, "1.25"},
		{123456789, "123456789.0"},
		{1e21, "1e21"},
		{1.5e-7, "1.5e-7"},
		{1e16, "1e16"},
		{-2.5e-10, "-2.5e-10"},
		{math.NaN(), "null"},
		{math.Inf(1), "null"},
		{math.Inf(-1), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(AppendFloat(nil, tt.input)))
		})
	}
}

func TestAppendFloatPreservesPrefix(t *testing.T) {
	out := AppendFloat([]byte("x="), 1e21)
	assert.Equal(t, "x=1e21", string(out))
}
