package block

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/descriptor"
)

// Module is implemented by every package that contributes builtin kinds.
type Module interface {
	Register(r *Registry)
}

// PluginResolver looks up kinds contributed by plugins.
type PluginResolver interface {
	Resolve(pluginID, blockID string) (Kind, error)
}

// Registry maps sources to kinds and reifies descriptors against them.
type Registry struct {
	kinds   map[descriptor.BuiltinKind]Kind
	plugins PluginResolver
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{kinds: make(map[descriptor.BuiltinKind]Kind)}
}

// RegisterKind binds a builtin kind id to its implementation.
func (r *Registry) RegisterKind(id descriptor.BuiltinKind, k Kind) {
	if _, exists := r.kinds[id]; exists {
		panic(fmt.Sprintf("block kind '%s' already registered", id))
	}
	slog.Debug("Registering block kind.", "kind", id)
	r.kinds[id] = k
}

// SetPluginResolver installs the collaborator that resolves plugin kinds.
// Without one, plugin-sourced descriptors fail with UnsupportedKindError.
func (r *Registry) SetPluginResolver(p PluginResolver) {
	r.plugins = p
}

// Kind returns the implementation registered for id.
func (r *Registry) Kind(id descriptor.BuiltinKind) (Kind, bool) {
	k, ok := r.kinds[id]
	return k, ok
}

// KindInfo describes a registered kind for tooling.
type KindInfo struct {
	ID          descriptor.BuiltinKind
	Description string
	Fields      []Field
}

// Kinds lists every registered kind, sorted by id.
func (r *Registry) Kinds() []KindInfo {
	out := make([]KindInfo, 0, len(r.kinds))
	for id, k := range r.kinds {
		out = append(out, KindInfo{ID: id, Description: k.Description(), Fields: k.Fields()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Validate checks that every builtin kind the descriptor model knows has an
// implementation, and that every implementation declares sane fields.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	known := make(map[descriptor.BuiltinKind]struct{})
	for _, id := range descriptor.BuiltinKinds() {
		known[id] = struct{}{}
		if _, ok := r.kinds[id]; !ok {
			errs = append(errs, fmt.Sprintf("builtin kind '%s' has no registered implementation", id))
		}
	}

	for id, k := range r.kinds {
		if _, ok := known[id]; !ok {
			errs = append(errs, fmt.Sprintf("kind '%s' is registered but is not a builtin kind", id))
		}
		seen := make(map[string]struct{})
		for _, f := range k.Fields() {
			switch {
			case f.Name == "":
				errs = append(errs, fmt.Sprintf("kind '%s': field with empty name", id))
			case f.Name == descriptor.SourceField:
				errs = append(errs, fmt.Sprintf("kind '%s': field name '%s' is reserved", id, f.Name))
			}
			if _, dup := seen[f.Name]; dup {
				errs = append(errs, fmt.Sprintf("kind '%s': field '%s' declared twice", id, f.Name))
			}
			seen[f.Name] = struct{}{}
		}
		logger.Debug("Validated block kind.", "kind", id, "fields", len(k.Fields()))
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Reify compiles d, and everything nested in it, into an executable block.
func (r *Registry) Reify(d descriptor.Instance) (Block, error) {
	k, err := r.resolve(d.Source)
	if err != nil {
		return nil, err
	}
	return k.FromDescriptor(r, d)
}

func (r *Registry) resolve(src descriptor.Source) (Kind, error) {
	if id, ok := src.Builtin(); ok {
		k, found := r.kinds[id]
		if !found {
			return nil, &UnsupportedKindError{Source: src}
		}
		return k, nil
	}

	pluginID, blockID, _ := src.Plugin()
	if r.plugins == nil {
		return nil, &UnsupportedKindError{Source: src, Err: ErrNoPluginResolver}
	}
	k, err := r.plugins.Resolve(pluginID, blockID)
	if err != nil {
		return nil, &UnsupportedKindError{Source: src, Err: err}
	}
	if k == nil {
		return nil, &UnsupportedKindError{Source: src}
	}
	return k, nil
}
