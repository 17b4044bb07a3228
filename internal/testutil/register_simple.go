package testutil

import (
	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/descriptor"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers a single block kind.
type SimpleModule struct {
	ID   descriptor.BuiltinKind
	Kind block.Kind
}

// Register implements the block.Module interface.
func (m *SimpleModule) Register(r *block.Registry) {
	if m.ID != "" && m.Kind != nil {
		r.RegisterKind(m.ID, m.Kind)
	}
}
