package block

import (
	"errors"
	"fmt"

	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// SlotRef names a field of a block.
type SlotRef string

// MissingFieldError reports a required field absent from a descriptor.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// ShouldBeAVariantError reports a field that must hold a literal value but
// holds something else.
type ShouldBeAVariantError struct {
	Field SlotRef
}

func (e *ShouldBeAVariantError) Error() string {
	return fmt.Sprintf("field %q must hold a literal value", string(e.Field))
}

// MismatchedTypeError reports a literal whose base type disagrees with the
// type its field declares.
type MismatchedTypeError struct {
	Field    SlotRef
	Expected value.BaseType
	Got      value.BaseType
}

func (e *MismatchedTypeError) Error() string {
	return fmt.Sprintf("field %q expects %s, got %s", string(e.Field), e.Expected, e.Got)
}

// PlaceReason says why a slot refused a binding.
type PlaceReason int

const (
	// NotAvailable means the slot is already occupied.
	NotAvailable PlaceReason = iota
	// FormatMismatch means the payload does not have the shape the slot expects.
	FormatMismatch
)

func (r PlaceReason) String() string {
	switch r {
	case NotAvailable:
		return "not available"
	case FormatMismatch:
		return "format mismatch"
	default:
		return fmt.Sprintf("PlaceReason(%d)", int(r))
	}
}

// PlaceError reports a slot binding that violated the slot's invariants.
type PlaceError struct {
	Reason PlaceReason
	Field  SlotRef
}

func (e *PlaceError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot place into slot: %s", e.Reason)
	}
	return fmt.Sprintf("cannot place into field %q: %s", string(e.Field), e.Reason)
}

// ChildError wraps the failure of a block nested in Field of a block whose
// kind is Source.
type ChildError struct {
	Field  SlotRef
	Source descriptor.Source
	Err    error
}

func (e *ChildError) Error() string {
	return fmt.Sprintf("field %q of %s: %v", string(e.Field), e.Source, e.Err)
}

func (e *ChildError) Unwrap() error { return e.Err }

// UnsupportedKindError reports a source no kind could be resolved for.
type UnsupportedKindError struct {
	Source descriptor.Source
	Err    error
}

func (e *UnsupportedKindError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported block kind %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("unsupported block kind %s", e.Source)
}

func (e *UnsupportedKindError) Unwrap() error { return e.Err }

// Step is one level of a failing path: Field of the block stamped from Source.
type Step struct {
	Source descriptor.Source
	Field  SlotRef
}

// Path returns the chain of ChildError levels in err, root first, together
// with the innermost error they wrap.
func Path(err error) ([]Step, error) {
	var steps []Step
	for {
		var child *ChildError
		if !errors.As(err, &child) {
			return steps, err
		}
		steps = append(steps, Step{Source: child.Source, Field: child.Field})
		err = child.Err
	}
}

// ErrIntegerOverflow is returned when integer arithmetic leaves the 32-bit range.
var ErrIntegerOverflow = errors.New("integer overflow")

// OperandError reports operands an operation cannot combine.
type OperandError struct {
	Op    string
	Left  value.BaseType
	Right value.BaseType
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("cannot %s %s and %s", e.Op, e.Left, e.Right)
}

// TypeError reports a value of the wrong type found while evaluating Field.
type TypeError struct {
	Field    SlotRef
	Expected value.BaseType
	Got      value.BaseType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("field %q evaluated to %s, expected %s", string(e.Field), e.Got, e.Expected)
}

// ErrNoPluginResolver is wrapped by UnsupportedKindError when a plugin kind
// is reified without a PluginResolver installed.
var ErrNoPluginResolver = errors.New("plugin block resolution is not available")
