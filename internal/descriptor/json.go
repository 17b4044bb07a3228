package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vk/rpgbaker/internal/value"
)

// MarshalJSON writes the instance as an object: "source" first, then every
// field in lexicographic order so saved scripts diff cleanly.
func (i Instance) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(i.Content))
	for name := range i.Content {
		if name == SourceField {
			return nil, fmt.Errorf("block %s: field name %q is reserved", i.Source, SourceField)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteByte('{')
	src, err := json.Marshal(i.Source)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"` + SourceField + `":`)
	buf.Write(src)

	for _, name := range names {
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(i.Content[name])
		if err != nil {
			return nil, fmt.Errorf("block %s, field %q: %w", i.Source, name, err)
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (i *Instance) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rawSource, ok := raw[SourceField]
	if !ok {
		return fmt.Errorf("block instance is missing %q", SourceField)
	}
	var src Source
	if err := json.Unmarshal(rawSource, &src); err != nil {
		return err
	}

	out := NewInstance(src)
	for name, msg := range raw {
		if name == SourceField {
			continue
		}
		var c Content
		if err := json.Unmarshal(msg, &c); err != nil {
			return fmt.Errorf("block %s, field %q: %w", src, name, err)
		}
		out.Content[name] = c
	}
	*i = out
	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.Slot == nil {
		return nil, fmt.Errorf("content has no slot")
	}
	return json.Marshal(*c.Slot)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var s Slot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	c.Slot = &s
	return nil
}

func (s Slot) MarshalJSON() ([]byte, error) {
	if s.Block != nil {
		return json.Marshal(*s.Block)
	}
	return json.Marshal(s.Literal)
}

// UnmarshalJSON treats objects as nested instances and anything else as a
// literal value.
func (s *Slot) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var child Instance
		if err := json.Unmarshal(trimmed, &child); err != nil {
			return err
		}
		*s = BlockSlot(child)
		return nil
	}
	var v value.Value
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*s = LiteralSlot(v)
	return nil
}
