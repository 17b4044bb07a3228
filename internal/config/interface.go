package config

import (
	"context"

	"github.com/vk/rpgbaker/internal/descriptor"
)

// Loader is the interface for a format-specific recipe loader.
type Loader interface {
	// Load reads every file in paths, in order, and returns one recipe
	// holding their top-level statements in the same order.
	Load(ctx context.Context, paths ...string) (*descriptor.Recipe, error)
}

// Writer renders a recipe in a specific format.
type Writer interface {
	Write(recipe *descriptor.Recipe) ([]byte, error)
}

// Format is a Loader and Writer pair for one file extension.
type Format interface {
	Loader
	Writer
}
