// Package jsonrecipe implements config.Format for the JSON wire format of
// recipes: either {"blocks": [...]} or a bare array of top-level blocks.
package jsonrecipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/descriptor"
)

// Format loads and writes JSON recipes.
type Format struct {
	// Indent, when set, is used to indent written documents.
	Indent string
}

// New returns a Format that writes two-space indented JSON.
func New() *Format {
	return &Format{Indent: "  "}
}

// Load implements config.Loader.
func (f *Format) Load(ctx context.Context, paths ...string) (*descriptor.Recipe, error) {
	logger := ctxlog.FromContext(ctx)
	recipe := descriptor.NewRecipe()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		part, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JSON recipe %s: %w", path, err)
		}
		for _, inst := range part.Blocks.Snapshot() {
			recipe.Blocks.Push(inst)
		}
		logger.Debug("Loaded JSON recipe.", "path", path, "statements", part.Blocks.Len())
	}
	return recipe, nil
}

// Write implements config.Writer.
func (f *Format) Write(recipe *descriptor.Recipe) ([]byte, error) {
	if recipe == nil {
		recipe = descriptor.NewRecipe()
	}
	if f.Indent == "" {
		return json.Marshal(recipe)
	}
	out, err := json.MarshalIndent(recipe, "", f.Indent)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// Decode parses a single JSON recipe document.
func Decode(data []byte) (*descriptor.Recipe, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var blocks []descriptor.Instance
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return nil, err
		}
		return descriptor.NewRecipe(blocks...), nil
	}
	recipe := descriptor.NewRecipe()
	if err := json.Unmarshal(trimmed, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}
