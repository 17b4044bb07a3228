// Package screen provides the change_screen block.
package screen

import (
	"context"
	"errors"

	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Module implements the block.Module interface for this package.
type Module struct{}

// Register registers the change_screen kind with the engine.
func (m *Module) Register(r *block.Registry) {
	r.RegisterKind(descriptor.KindChangeScreen, &ChangeKind{})
}

var changeFields = []block.Field{block.TypedField("screen", value.TextType)}

// ChangeKind asks the host to switch to another screen.
type ChangeKind struct{}

func (k *ChangeKind) Description() string {
	return "Changes the current screen to {screen}."
}

func (k *ChangeKind) Fields() []block.Field { return changeFields }

func (k *ChangeKind) Create() block.Block {
	return &Change{screen: block.NewSlot()}
}

func (k *ChangeKind) FromDescriptor(r block.Reifier, d descriptor.Instance) (block.Block, error) {
	b := &Change{screen: block.NewSlot()}
	if err := block.Fill(r, d, block.Bind(changeFields[0], &b.screen)); err != nil {
		return nil, err
	}
	return b, nil
}

// Change is a reified change_screen block.
type Change struct {
	screen block.Slot
}

func (b *Change) Evaluate(ctx context.Context, host block.Host) (value.Value, error) {
	if host == nil {
		return value.Void(), errors.New("change_screen: no host")
	}
	v, err := block.ResolveField(ctx, host, descriptor.Builtin(descriptor.KindChangeScreen), "screen", &b.screen)
	if err != nil {
		return value.Void(), err
	}
	name, ok := v.AsText()
	if !ok {
		return value.Void(), &block.TypeError{Field: "screen", Expected: value.TextType, Got: v.BaseType()}
	}
	if err := host.ChangeScreen(ctx, name); err != nil {
		return value.Void(), err
	}
	return value.Void(), nil
}
