package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestValue_BaseType(t *testing.T) {
	assert.Equal(t, VoidType, Void().BaseType())
	assert.Equal(t, IntType, Int(5).BaseType())
	assert.Equal(t, FloatType, Float(1.5).BaseType())
	assert.Equal(t, TextType, Text("hi").BaseType())

	var zero Value
	assert.True(t, zero.IsVoid(), "the zero Value must be Void")
	assert.True(t, Int(3).Equal(Int(3)))
	assert.False(t, Int(3).Equal(Float(3)))
}

func TestValue_JSON(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		wire string
	}{
		{"void", Void(), `null`},
		{"int", Int(-42), `-42`},
		{"whole float keeps fraction", Float(2), `2.0`},
		{"float", Float(0.25), `0.25`},
		{"text", Text("a \"b\""), `"a \"b\""`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.wire, string(data))

			var back Value
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tc.in, back)
		})
	}
}

func TestValue_JSONRejects(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`4294967296`), &v), "ints are 32-bit")
	assert.Error(t, json.Unmarshal([]byte(`true`), &v))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &v))
}

func TestBaseType_Text(t *testing.T) {
	for _, bt := range []BaseType{VoidType, IntType, FloatType, TextType} {
		text, err := bt.MarshalText()
		require.NoError(t, err)
		var back BaseType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, bt, back)
	}
	_, err := ParseBaseType("truth")
	assert.Error(t, err)
}

func TestFromCty(t *testing.T) {
	v, err := FromCty(cty.NumberIntVal(7))
	require.NoError(t, err)
	assert.Equal(t, Int(7), v)

	v, err = FromCty(cty.NumberFloatVal(1.5))
	require.NoError(t, err)
	assert.Equal(t, Float(1.5), v)

	v, err = FromCty(cty.NumberIntVal(1 << 40))
	require.NoError(t, err)
	assert.Equal(t, FloatType, v.BaseType(), "out of range whole numbers fall back to float")

	v, err = FromCty(cty.StringVal("x"))
	require.NoError(t, err)
	assert.Equal(t, Text("x"), v)

	v, err = FromCty(cty.NullVal(cty.String))
	require.NoError(t, err)
	assert.Equal(t, Void(), v)

	_, err = FromCty(cty.True)
	assert.Error(t, err)
}

func TestToCty_RoundTrip(t *testing.T) {
	for _, v := range []Value{Void(), Int(3), Float(0.5), Text("t")} {
		back, err := FromCty(ToCty(v))
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}
