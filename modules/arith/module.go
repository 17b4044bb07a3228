// Package arith provides the binary arithmetic blocks add, sub and mul.
//
// Both operands are evaluated, left first, and must share a base type;
// nothing is coerced. Integer results that leave the 32-bit range are an
// error rather than wrapping around.
package arith

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Module implements the block.Module interface for this package.
type Module struct{}

// Register registers the arithmetic kinds with the engine.
func (m *Module) Register(r *block.Registry) {
	r.RegisterKind(descriptor.KindAdd, &Kind{id: descriptor.KindAdd, op: add,
		description: "Adds two numbers and returns them. Two texts are joined."})
	r.RegisterKind(descriptor.KindSub, &Kind{id: descriptor.KindSub, op: sub,
		description: "Subtracts b from a and returns the result."})
	r.RegisterKind(descriptor.KindMul, &Kind{id: descriptor.KindMul, op: mul,
		description: "Multiplies two numbers and returns the result."})
}

var fields = []block.Field{block.AnyField("a"), block.AnyField("b")}

type operator struct {
	name  string
	ints  func(a, b int64) int64
	float func(a, b float64) float64
	text  func(a, b string) string
}

var (
	add = operator{
		name:  "add",
		ints:  func(a, b int64) int64 { return a + b },
		float: func(a, b float64) float64 { return a + b },
		text:  func(a, b string) string { return a + b },
	}
	sub = operator{
		name:  "subtract",
		ints:  func(a, b int64) int64 { return a - b },
		float: func(a, b float64) float64 { return a - b },
	}
	mul = operator{
		name:  "multiply",
		ints:  func(a, b int64) int64 { return a * b },
		float: func(a, b float64) float64 { return a * b },
	}
)

func (o operator) apply(a, b value.Value) (value.Value, error) {
	if a.BaseType() != b.BaseType() {
		return value.Void(), &block.OperandError{Op: o.name, Left: a.BaseType(), Right: b.BaseType()}
	}
	switch a.BaseType() {
	case value.IntType:
		x, _ := a.AsInt()
		y, _ := b.AsInt()
		r := o.ints(int64(x), int64(y))
		if r > math.MaxInt32 || r < math.MinInt32 {
			return value.Void(), fmt.Errorf("%s %d and %d: %w", o.name, x, y, block.ErrIntegerOverflow)
		}
		return value.Int(int32(r)), nil
	case value.FloatType:
		x, _ := a.AsFloat()
		y, _ := b.AsFloat()
		return value.Float(o.float(x, y)), nil
	case value.TextType:
		if o.text != nil {
			x, _ := a.AsText()
			y, _ := b.AsText()
			return value.Text(o.text(x, y)), nil
		}
	}
	return value.Void(), &block.OperandError{Op: o.name, Left: a.BaseType(), Right: b.BaseType()}
}

// Kind is a binary operator over the fields "a" and "b".
type Kind struct {
	id          descriptor.BuiltinKind
	op          operator
	description string
}

func (k *Kind) Description() string   { return k.description }
func (k *Kind) Fields() []block.Field { return fields }

func (k *Kind) Create() block.Block {
	return &Block{kind: k, a: block.NewSlot(), b: block.NewSlot()}
}

func (k *Kind) FromDescriptor(r block.Reifier, d descriptor.Instance) (block.Block, error) {
	b := &Block{kind: k, a: block.NewSlot(), b: block.NewSlot()}
	if err := block.Fill(r, d, block.Bind(fields[0], &b.a), block.Bind(fields[1], &b.b)); err != nil {
		return nil, err
	}
	return b, nil
}

// Block applies its kind's operator to the values of its two slots.
type Block struct {
	kind *Kind
	a, b block.Slot
}

// Slots exposes the operand slots, for editors placing and removing blocks.
func (b *Block) Slots() (*block.Slot, *block.Slot) { return &b.a, &b.b }

func (b *Block) Evaluate(ctx context.Context, host block.Host) (value.Value, error) {
	src := descriptor.Builtin(b.kind.id)
	left, err := block.ResolveField(ctx, host, src, "a", &b.a)
	if err != nil {
		return value.Void(), err
	}
	right, err := block.ResolveField(ctx, host, src, "b", &b.b)
	if err != nil {
		return value.Void(), err
	}
	return b.kind.op.apply(left, right)
}
