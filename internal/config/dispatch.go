package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/fsutil"
)

// Dispatcher routes each script file to the Format registered for its
// extension.
type Dispatcher struct {
	formats map[string]Format
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{formats: make(map[string]Format)}
}

// Register binds ext (for example ".hcl") to f.
func (d *Dispatcher) Register(ext string, f Format) {
	ext = normalizeExt(ext)
	if _, exists := d.formats[ext]; exists {
		panic(fmt.Sprintf("format for extension '%s' already registered", ext))
	}
	d.formats[ext] = f
}

// Extensions lists the registered extensions, sorted.
func (d *Dispatcher) Extensions() []string {
	exts := make([]string, 0, len(d.formats))
	for ext := range d.formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Format returns the format registered for ext, with or without its dot.
func (d *Dispatcher) Format(ext string) (Format, bool) {
	f, ok := d.formats[normalizeExt(ext)]
	return f, ok
}

// Load implements Loader. Directories are searched recursively for files of
// any registered extension, in lexical order; explicit files must have a
// registered extension.
func (d *Dispatcher) Load(ctx context.Context, paths ...string) (*descriptor.Recipe, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Recipe loading started.", "path_count", len(paths))

	files, err := d.Resolve(paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered script files.", "count", len(files))

	recipe := descriptor.NewRecipe()
	for _, file := range files {
		f, _ := d.Format(filepath.Ext(file))
		part, err := f.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, inst := range part.Blocks.Snapshot() {
			recipe.Blocks.Push(inst)
		}
	}

	logger.Debug("Recipe loading complete.", "files", len(files), "statements", recipe.Blocks.Len())
	return recipe, nil
}

// Resolve expands paths into the list of script files Load would read.
func (d *Dispatcher) Resolve(paths ...string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, d.Extensions()...)
			if err != nil {
				return nil, err
			}
			for _, p := range found {
				add(p)
			}
			continue
		}
		if _, ok := d.Format(filepath.Ext(path)); !ok {
			return nil, fmt.Errorf("unsupported script format %q for %s (supported: %s)",
				filepath.Ext(path), path, strings.Join(d.Extensions(), ", "))
		}
		add(path)
	}
	return files, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
