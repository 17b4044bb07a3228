package block

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

type constBlock struct {
	v   value.Value
	err error
}

func (c constBlock) Evaluate(context.Context, Host) (value.Value, error) { return c.v, c.err }

func TestSlot_DefaultIsFreeVoid(t *testing.T) {
	s := NewSlot()
	v, isLiteral := s.Literal()
	assert.True(t, isLiteral)
	assert.Equal(t, value.Void(), v)
	assert.Nil(t, s.Block())

	got, err := s.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Void(), got)
}

func TestSlot_PlaceOnce(t *testing.T) {
	s := NewSlot()
	require.NoError(t, s.PlaceValue(value.Int(3)))

	err := s.PlaceValue(value.Int(4))
	var pe *PlaceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, NotAvailable, pe.Reason)

	err = s.PlaceBlock(constBlock{v: value.Int(1)})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, NotAvailable, pe.Reason)

	got, err := s.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), got)
}

func TestSlot_PlaceNilBlockIsFormatMismatch(t *testing.T) {
	s := NewSlot()
	var pe *PlaceError
	require.ErrorAs(t, s.PlaceBlock(nil), &pe)
	assert.Equal(t, FormatMismatch, pe.Reason)
}

func TestSlot_PopFreesSlot(t *testing.T) {
	s := NewSlot()
	child := constBlock{v: value.Int(9)}
	require.NoError(t, s.PlaceBlock(child))

	got, err := s.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int(9), got)

	assert.Equal(t, child, s.Pop())
	assert.Nil(t, s.Pop(), "second pop has nothing to detach")
	require.NoError(t, s.PlaceValue(value.Int(1)), "slot is free again")

	lit := LiteralSlot(value.Int(2))
	assert.Nil(t, lit.Pop())
}

func TestResolveField_WrapsSubBlockFailures(t *testing.T) {
	boom := errors.New("boom")
	src := descriptor.Builtin(descriptor.KindAdd)

	s := BlockSlot(constBlock{err: boom})
	_, err := ResolveField(context.Background(), nil, src, "a", &s)
	var child *ChildError
	require.ErrorAs(t, err, &child)
	assert.Equal(t, SlotRef("a"), child.Field)
	assert.ErrorIs(t, err, boom)

	steps, leaf := Path(err)
	assert.Equal(t, []Step{{Source: src, Field: "a"}}, steps)
	assert.Equal(t, boom, leaf)
}

func TestEvaluate_NilBlock(t *testing.T) {
	_, err := Evaluate(context.Background(), nil, nil)
	assert.Error(t, err)
}
