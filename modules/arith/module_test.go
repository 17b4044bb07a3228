package arith

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/value"
)

func TestOperators(t *testing.T) {
	cases := []struct {
		name string
		op   operator
		a, b value.Value
		want value.Value
	}{
		{"add ints", add, value.Int(2), value.Int(3), value.Int(5)},
		{"add floats", add, value.Float(0.5), value.Float(1), value.Float(1.5)},
		{"join texts", add, value.Text("foo"), value.Text("bar"), value.Text("foobar")},
		{"sub ints", sub, value.Int(2), value.Int(3), value.Int(-1)},
		{"sub floats", sub, value.Float(2), value.Float(0.5), value.Float(1.5)},
		{"mul ints", mul, value.Int(-4), value.Int(3), value.Int(-12)},
		{"mul floats", mul, value.Float(1.5), value.Float(2), value.Float(3)},
		{"min int", sub, value.Int(math.MinInt32 + 1), value.Int(1), value.Int(math.MinInt32)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.op.apply(tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOperators_Errors(t *testing.T) {
	_, err := add.apply(value.Int(math.MaxInt32), value.Int(1))
	assert.True(t, errors.Is(err, block.ErrIntegerOverflow))

	_, err = mul.apply(value.Int(1<<16), value.Int(1<<16))
	assert.ErrorIs(t, err, block.ErrIntegerOverflow)

	_, err = sub.apply(value.Int(math.MinInt32), value.Int(1))
	assert.ErrorIs(t, err, block.ErrIntegerOverflow)

	_, err = sub.apply(value.Text("a"), value.Text("b"))
	assert.Equal(t, &block.OperandError{Op: "subtract", Left: value.TextType, Right: value.TextType}, err)

	_, err = add.apply(value.Void(), value.Void())
	assert.Equal(t, &block.OperandError{Op: "add", Left: value.VoidType, Right: value.VoidType}, err)

	_, err = mul.apply(value.Int(1), value.Float(1))
	assert.Equal(t, &block.OperandError{Op: "multiply", Left: value.IntType, Right: value.FloatType}, err)
}

func TestBlock_SlotsCanBeEdited(t *testing.T) {
	k := &Kind{id: "add", op: add}
	b := k.Create().(*Block)
	a, bs := b.Slots()
	require.NoError(t, a.PlaceValue(value.Int(4)))
	require.NoError(t, bs.PlaceValue(value.Int(5)))

	got, err := b.Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int(9), got)
}
