package block

import (
	"context"

	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Slot is a runtime binding site. It holds exactly one of a sub-block or a
// literal; a fresh slot holds the Void literal and is free to be placed into.
type Slot struct {
	block   Block
	literal value.Value
	placed  bool
}

// NewSlot returns a free slot holding the default Void literal.
func NewSlot() Slot {
	return Slot{}
}

// LiteralSlot returns a slot already holding v.
func LiteralSlot(v value.Value) Slot {
	return Slot{literal: v, placed: true}
}

// BlockSlot returns a slot already holding b.
func BlockSlot(b Block) Slot {
	return Slot{block: b, placed: true}
}

// PlaceValue binds a literal into a free slot.
func (s *Slot) PlaceValue(v value.Value) error {
	if s.placed {
		return &PlaceError{Reason: NotAvailable}
	}
	s.literal = v
	s.placed = true
	return nil
}

// PlaceBlock binds a sub-block into a free slot.
func (s *Slot) PlaceBlock(b Block) error {
	if s.placed {
		return &PlaceError{Reason: NotAvailable}
	}
	if b == nil {
		return &PlaceError{Reason: FormatMismatch}
	}
	s.block = b
	s.placed = true
	return nil
}

// Pop detaches the sub-block, if any, and frees the slot.
func (s *Slot) Pop() Block {
	b := s.block
	if b == nil {
		return nil
	}
	*s = NewSlot()
	return b
}

// Block returns the sub-block held by the slot, or nil.
func (s *Slot) Block() Block { return s.block }

// Literal returns the literal held by the slot and whether the slot holds a
// literal at all.
func (s *Slot) Literal() (value.Value, bool) {
	return s.literal, s.block == nil
}

// Resolve returns the slot's current content: the value of its sub-block, or
// a copy of its literal.
func (s *Slot) Resolve(ctx context.Context, host Host) (value.Value, error) {
	if s.block != nil {
		return s.block.Evaluate(ctx, host)
	}
	return s.literal, nil
}

// ResolveField resolves s, the content of field on a block stamped from src.
// Failures of a sub-block are wrapped in a ChildError so evaluation errors
// carry the same path as reification errors.
func ResolveField(ctx context.Context, host Host, src descriptor.Source, field string, s *Slot) (value.Value, error) {
	v, err := s.Resolve(ctx, host)
	if err != nil && s.block != nil {
		return v, &ChildError{Field: SlotRef(field), Source: src, Err: err}
	}
	return v, err
}
