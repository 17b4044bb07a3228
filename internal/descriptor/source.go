package descriptor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuiltinNamespace is the reserved namespace of compiled-in block kinds.
const BuiltinNamespace = "builtin"

// BuiltinKind identifies a block kind compiled into the engine.
type BuiltinKind string

const (
	KindInt          BuiltinKind = "int"
	KindFloat        BuiltinKind = "float"
	KindText         BuiltinKind = "text"
	KindAdd          BuiltinKind = "add"
	KindSub          BuiltinKind = "sub"
	KindMul          BuiltinKind = "mul"
	KindIf           BuiltinKind = "if"
	KindLog          BuiltinKind = "log"
	KindChangeScreen BuiltinKind = "change_screen"
)

var builtinKinds = []BuiltinKind{
	KindInt, KindFloat, KindText,
	KindAdd, KindSub, KindMul,
	KindIf,
	KindLog, KindChangeScreen,
}

// BuiltinKinds returns every builtin kind in declaration order.
func BuiltinKinds() []BuiltinKind {
	out := make([]BuiltinKind, len(builtinKinds))
	copy(out, builtinKinds)
	return out
}

// ParseBuiltinKind resolves a kind id such as "add".
func ParseBuiltinKind(id string) (BuiltinKind, error) {
	for _, k := range builtinKinds {
		if string(k) == id {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown builtin block %q", id)
}

// Source says which block kind an Instance represents: either a builtin kind
// or a block contributed by a plugin.
type Source struct {
	builtin  BuiltinKind
	pluginID string
	blockID  string
}

// Builtin returns the source of a compiled-in kind.
func Builtin(kind BuiltinKind) Source {
	return Source{builtin: kind}
}

// Plugin returns the source of a plugin-contributed kind.
func Plugin(pluginID, blockID string) Source {
	return Source{pluginID: pluginID, blockID: blockID}
}

// Builtin returns the kind and true when s names a builtin kind.
func (s Source) Builtin() (BuiltinKind, bool) {
	return s.builtin, s.builtin != ""
}

// Plugin returns the plugin and block ids and true when s names a plugin kind.
func (s Source) Plugin() (pluginID, blockID string, ok bool) {
	return s.pluginID, s.blockID, s.builtin == ""
}

// String renders the "<namespace>:<id>" form.
func (s Source) String() string {
	if s.builtin != "" {
		return BuiltinNamespace + ":" + string(s.builtin)
	}
	return s.pluginID + ":" + s.blockID
}

// ParseSource parses the "<namespace>:<id>" form. The string must contain
// exactly one separator, and builtin ids must name a known kind.
func ParseSource(str string) (Source, error) {
	if strings.Count(str, ":") != 1 {
		return Source{}, fmt.Errorf("block source %q: expected a single ':' separator", str)
	}
	namespace, id, _ := strings.Cut(str, ":")
	if namespace == BuiltinNamespace {
		kind, err := ParseBuiltinKind(id)
		if err != nil {
			return Source{}, fmt.Errorf("block source %q: %w", str, err)
		}
		return Builtin(kind), nil
	}
	return Plugin(namespace, id), nil
}

func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Source) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("block source must be a string: %w", err)
	}
	parsed, err := ParseSource(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Equal reports whether both sources name the same kind.
func (s Source) Equal(o Source) bool { return s == o }
