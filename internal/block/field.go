package block

import (
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Field declares one required field of a kind.
type Field struct {
	Name string
	// Type is checked against literal content when Typed is set.
	Type  value.BaseType
	Typed bool
	// Literal fields refuse nested blocks.
	Literal bool
}

// AnyField accepts any literal or block.
func AnyField(name string) Field {
	return Field{Name: name}
}

// TypedField accepts blocks, and literals of type t.
func TypedField(name string, t value.BaseType) Field {
	return Field{Name: name, Type: t, Typed: true}
}

// LiteralField accepts only literals of type t.
func LiteralField(name string, t value.BaseType) Field {
	return Field{Name: name, Type: t, Typed: true, Literal: true}
}

// Binding pairs a field with the slot its content is bound into.
type Binding struct {
	Field Field
	Slot  *Slot
}

// Bind is shorthand for a Binding.
func Bind(f Field, s *Slot) Binding {
	return Binding{Field: f, Slot: s}
}

// Fill resolves every binding from d, in order, stopping at the first
// failure. Literal content is type checked and bound as is; nested
// instances are reified through r and failures wrapped in a ChildError.
func Fill(r Reifier, d descriptor.Instance, bindings ...Binding) error {
	for _, b := range bindings {
		if err := fill(r, d, b); err != nil {
			return err
		}
	}
	return nil
}

func fill(r Reifier, d descriptor.Instance, b Binding) error {
	ref := SlotRef(b.Field.Name)
	content, ok := d.Content[b.Field.Name]
	if !ok {
		return &MissingFieldError{Field: b.Field.Name}
	}
	if content.Slot == nil {
		return &PlaceError{Reason: FormatMismatch, Field: ref}
	}

	slot := content.Slot
	if !slot.IsBlock() {
		if b.Field.Typed && slot.Literal.BaseType() != b.Field.Type {
			return &MismatchedTypeError{Field: ref, Expected: b.Field.Type, Got: slot.Literal.BaseType()}
		}
		return withField(b.Slot.PlaceValue(slot.Literal), ref)
	}

	if b.Field.Literal {
		return &ShouldBeAVariantError{Field: ref}
	}
	child, err := r.Reify(*slot.Block)
	if err != nil {
		return &ChildError{Field: ref, Source: d.Source, Err: err}
	}
	return withField(b.Slot.PlaceBlock(child), ref)
}

func withField(err error, ref SlotRef) error {
	if pe, ok := err.(*PlaceError); ok {
		pe.Field = ref
		return pe
	}
	return err
}
