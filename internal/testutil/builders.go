package testutil

import (
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Lit wraps a value as a literal slot.
func Lit(v value.Value) descriptor.Slot { return descriptor.LiteralSlot(v) }

// Sub wraps an instance as a nested slot.
func Sub(i descriptor.Instance) descriptor.Slot { return descriptor.BlockSlot(i) }

// Inst builds a builtin instance with the given fields.
func Inst(kind descriptor.BuiltinKind, fields map[string]descriptor.Slot) descriptor.Instance {
	inst := descriptor.NewInstance(descriptor.Builtin(kind))
	for name, s := range fields {
		inst = inst.With(name, s)
	}
	return inst
}

// IntBlock is a builtin:int instance holding v.
func IntBlock(v int32) descriptor.Instance {
	return Inst(descriptor.KindInt, map[string]descriptor.Slot{"v": Lit(value.Int(v))})
}

// AddBlock is a builtin:add instance over a and b.
func AddBlock(a, b descriptor.Slot) descriptor.Instance {
	return Inst(descriptor.KindAdd, map[string]descriptor.Slot{"a": a, "b": b})
}

// LogBlock is a builtin:log instance logging what.
func LogBlock(what descriptor.Slot) descriptor.Instance {
	return Inst(descriptor.KindLog, map[string]descriptor.Slot{"what": what})
}
