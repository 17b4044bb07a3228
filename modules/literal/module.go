// Package literal provides the blocks that evaluate to a constant: int,
// float and text.
package literal

import (
	"context"

	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Module implements the block.Module interface for this package.
type Module struct{}

// Register registers the literal kinds with the engine.
func (m *Module) Register(r *block.Registry) {
	r.RegisterKind(descriptor.KindInt, &Kind{typ: value.IntType, description: "Returns an integer."})
	r.RegisterKind(descriptor.KindFloat, &Kind{typ: value.FloatType, description: "Returns a number that may have a fractional part."})
	r.RegisterKind(descriptor.KindText, &Kind{typ: value.TextType, description: "Returns a piece of text."})
}

// Kind is a literal kind of a single base type. Its only field, "v", must
// hold a literal of that type.
type Kind struct {
	typ         value.BaseType
	description string
}

func (k *Kind) Description() string { return k.description }

func (k *Kind) Fields() []block.Field {
	return []block.Field{block.LiteralField("v", k.typ)}
}

func (k *Kind) Create() block.Block {
	return &Block{v: block.NewSlot()}
}

func (k *Kind) FromDescriptor(r block.Reifier, d descriptor.Instance) (block.Block, error) {
	b := &Block{v: block.NewSlot()}
	if err := block.Fill(r, d, block.Bind(k.Fields()[0], &b.v)); err != nil {
		return nil, err
	}
	return b, nil
}

// Block evaluates to the value held in its slot.
type Block struct {
	v block.Slot
}

func (b *Block) Evaluate(ctx context.Context, host block.Host) (value.Value, error) {
	return b.v.Resolve(ctx, host)
}
