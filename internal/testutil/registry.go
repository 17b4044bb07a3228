package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/modules"
)

// NewRegistry returns a validated registry holding every core module.
func NewRegistry(t *testing.T) *block.Registry {
	t.Helper()
	reg := block.New()
	for _, mod := range modules.Core() {
		mod.Register(reg)
	}
	require.NoError(t, reg.Validate(context.Background()))
	return reg
}
