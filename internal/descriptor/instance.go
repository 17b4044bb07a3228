package descriptor

import (
	"github.com/vk/rpgbaker/internal/value"
)

// SourceField is the reserved wire key holding an instance's Source. No block
// kind may use it as a field name.
const SourceField = "source"

// Instance is a node of the script graph: which kind to instantiate, plus the
// content of each of its named fields.
type Instance struct {
	Source  Source
	Content map[string]Content
}

// NewInstance returns an instance with an empty content map.
func NewInstance(source Source) Instance {
	return Instance{Source: source, Content: make(map[string]Content)}
}

// With returns a copy of i with field set to slot.
func (i Instance) With(field string, slot Slot) Instance {
	content := make(map[string]Content, len(i.Content)+1)
	for k, v := range i.Content {
		content[k] = v
	}
	content[field] = SlotContent(slot)
	return Instance{Source: i.Source, Content: content}
}

// Clone returns a deep copy of i. Nothing in the copy is shared with i.
func (i Instance) Clone() Instance {
	out := Instance{Source: i.Source}
	if i.Content == nil {
		return out
	}
	out.Content = make(map[string]Content, len(i.Content))
	for name, c := range i.Content {
		if c.Slot == nil {
			out.Content[name] = Content{}
			continue
		}
		slot := *c.Slot
		if slot.Block != nil {
			child := slot.Block.Clone()
			slot.Block = &child
		}
		out.Content[name] = Content{Slot: &slot}
	}
	return out
}

// Equal compares two instances structurally.
func (i Instance) Equal(o Instance) bool {
	if i.Source != o.Source || len(i.Content) != len(o.Content) {
		return false
	}
	for name, c := range i.Content {
		other, ok := o.Content[name]
		if !ok || !c.Equal(other) {
			return false
		}
	}
	return true
}

// Depth is the number of nested instance levels below i.
func (i Instance) Depth() int {
	deepest := 0
	for _, c := range i.Content {
		if c.Slot == nil || c.Slot.Block == nil {
			continue
		}
		if d := c.Slot.Block.Depth() + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Content is what a field holds. Slot is its only variant today; other kinds
// of content (such as statement bodies) would be added alongside it.
type Content struct {
	Slot *Slot
}

// SlotContent wraps a slot as field content.
func SlotContent(s Slot) Content {
	return Content{Slot: &s}
}

func (c Content) Equal(o Content) bool {
	if c.Slot == nil || o.Slot == nil {
		return c.Slot == nil && o.Slot == nil
	}
	return c.Slot.Equal(*o.Slot)
}

// Slot holds either a literal value or a nested instance. A nil Block means
// the slot holds Literal.
type Slot struct {
	Literal value.Value
	Block   *Instance
}

// LiteralSlot returns a slot holding v.
func LiteralSlot(v value.Value) Slot {
	return Slot{Literal: v}
}

// BlockSlot returns a slot holding a nested instance.
func BlockSlot(child Instance) Slot {
	return Slot{Block: &child}
}

func (s Slot) IsBlock() bool { return s.Block != nil }

func (s Slot) Equal(o Slot) bool {
	if s.IsBlock() != o.IsBlock() {
		return false
	}
	if s.IsBlock() {
		return s.Block.Equal(*o.Block)
	}
	return s.Literal == o.Literal
}
