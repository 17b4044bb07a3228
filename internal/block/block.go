package block

import (
	"context"
	"errors"

	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Block is an executable node. Each kind decides how, and whether, to
// evaluate the children held in its slots.
type Block interface {
	Evaluate(ctx context.Context, host Host) (value.Value, error)
}

// Host receives the externally observable effects of evaluation.
type Host interface {
	Log(ctx context.Context, v value.Value)
	ChangeScreen(ctx context.Context, screen string) error
}

// Reifier compiles descriptors into blocks. Kinds use it to build the
// sub-blocks of their slots.
type Reifier interface {
	Reify(d descriptor.Instance) (Block, error)
}

// Kind is the definition a block is stamped from.
type Kind interface {
	// Description documents what the block does and what it returns.
	Description() string
	// Fields lists the required fields, in binding order.
	Fields() []Field
	// Create returns a block with every slot in its default state.
	Create() Block
	// FromDescriptor builds a block from d, reifying nested blocks through r.
	FromDescriptor(r Reifier, d descriptor.Instance) (Block, error)
}

// Evaluate runs b and returns its value.
func Evaluate(ctx context.Context, b Block, host Host) (value.Value, error) {
	if b == nil {
		return value.Void(), errors.New("evaluate: nil block")
	}
	return b.Evaluate(ctx, host)
}
