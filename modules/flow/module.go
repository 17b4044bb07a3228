// Package flow provides control-flow blocks.
package flow

import (
	"context"

	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Module implements the block.Module interface for this package.
type Module struct{}

// Register registers the control-flow kinds with the engine.
func (m *Module) Register(r *block.Registry) {
	r.RegisterKind(descriptor.KindIf, &IfKind{})
}

var ifFields = []block.Field{
	block.TypedField("cond", value.IntType),
	block.AnyField("then"),
	block.AnyField("else"),
}

// IfKind chooses between two branches. Only the chosen branch is evaluated.
type IfKind struct{}

func (k *IfKind) Description() string {
	return "Evaluates {then} when {cond} is not zero, and {else} otherwise. Only one branch runs."
}

func (k *IfKind) Fields() []block.Field { return ifFields }

func (k *IfKind) Create() block.Block {
	return &If{cond: block.NewSlot(), then: block.NewSlot(), els: block.NewSlot()}
}

func (k *IfKind) FromDescriptor(r block.Reifier, d descriptor.Instance) (block.Block, error) {
	b := &If{cond: block.NewSlot(), then: block.NewSlot(), els: block.NewSlot()}
	err := block.Fill(r, d,
		block.Bind(ifFields[0], &b.cond),
		block.Bind(ifFields[1], &b.then),
		block.Bind(ifFields[2], &b.els),
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// If is a reified conditional.
type If struct {
	cond, then, els block.Slot
}

var ifSource = descriptor.Builtin(descriptor.KindIf)

func (b *If) Evaluate(ctx context.Context, host block.Host) (value.Value, error) {
	c, err := block.ResolveField(ctx, host, ifSource, "cond", &b.cond)
	if err != nil {
		return value.Void(), err
	}
	n, ok := c.AsInt()
	if !ok {
		return value.Void(), &block.TypeError{Field: "cond", Expected: value.IntType, Got: c.BaseType()}
	}
	if n != 0 {
		return block.ResolveField(ctx, host, ifSource, "then", &b.then)
	}
	return block.ResolveField(ctx, host, ifSource, "else", &b.els)
}
