package descriptor

import (
	"encoding/json"
	"fmt"
	"sync"
)

// ChangeKind says how a Scope was mutated.
type ChangeKind int

const (
	ChangeInsert ChangeKind = iota
	ChangeRemove
	ChangeSet
	ChangeReplace
)

// Change describes one mutation of a Scope. Index is the affected position;
// it is -1 for ChangeReplace, which swaps the whole sequence.
type Change struct {
	Kind     ChangeKind
	Index    int
	Instance Instance
}

// Scope is an ordered, observable sequence of top-level block instances.
// Order is statement execution order. It is safe for an editor to mutate a
// Scope while a runtime takes snapshots of it.
type Scope struct {
	mu          sync.RWMutex
	blocks      []Instance
	subscribers map[int]func(Change)
	nextSubID   int
}

// NewScope returns a scope holding blocks, in order.
func NewScope(blocks ...Instance) *Scope {
	s := &Scope{}
	s.blocks = append(s.blocks, blocks...)
	return s
}

// Snapshot returns a deep copy of the current sequence. Later mutations of
// the scope do not affect it, and writes into the copy do not reach the scope.
func (s *Scope) Snapshot() []Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Instance, len(s.blocks))
	for i, inst := range s.blocks {
		out[i] = inst.Clone()
	}
	return out
}

func (s *Scope) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}

// Push appends an instance at the end of the sequence.
func (s *Scope) Push(inst Instance) {
	s.mu.Lock()
	s.blocks = append(s.blocks, inst)
	idx := len(s.blocks) - 1
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeInsert, Index: idx, Instance: inst})
}

// Insert places inst at idx, shifting later instances back.
func (s *Scope) Insert(idx int, inst Instance) error {
	s.mu.Lock()
	if idx < 0 || idx > len(s.blocks) {
		s.mu.Unlock()
		return fmt.Errorf("insert index %d out of range [0, %d]", idx, len(s.blocks))
	}
	s.blocks = append(s.blocks, Instance{})
	copy(s.blocks[idx+1:], s.blocks[idx:])
	s.blocks[idx] = inst
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeInsert, Index: idx, Instance: inst})
	return nil
}

// Remove deletes the instance at idx and returns it.
func (s *Scope) Remove(idx int) (Instance, error) {
	s.mu.Lock()
	if idx < 0 || idx >= len(s.blocks) {
		s.mu.Unlock()
		return Instance{}, fmt.Errorf("remove index %d out of range [0, %d)", idx, len(s.blocks))
	}
	removed := s.blocks[idx]
	s.blocks = append(s.blocks[:idx:idx], s.blocks[idx+1:]...)
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeRemove, Index: idx, Instance: removed})
	return removed, nil
}

// Set replaces the instance at idx.
func (s *Scope) Set(idx int, inst Instance) error {
	s.mu.Lock()
	if idx < 0 || idx >= len(s.blocks) {
		s.mu.Unlock()
		return fmt.Errorf("set index %d out of range [0, %d)", idx, len(s.blocks))
	}
	s.blocks[idx] = inst
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeSet, Index: idx, Instance: inst})
	return nil
}

// Replace swaps the whole sequence.
func (s *Scope) Replace(blocks []Instance) {
	s.mu.Lock()
	s.blocks = append([]Instance(nil), blocks...)
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeReplace, Index: -1})
}

// Subscribe registers fn to be called after every mutation. Callbacks run on
// the mutating goroutine, outside the scope's lock. The returned function
// cancels the subscription.
func (s *Scope) Subscribe(fn func(Change)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers == nil {
		s.subscribers = make(map[int]func(Change))
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Scope) notify(c Change) {
	s.mu.RLock()
	fns := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(c)
	}
}

func (s *Scope) MarshalJSON() ([]byte, error) {
	blocks := s.Snapshot()
	if blocks == nil {
		blocks = []Instance{}
	}
	return json.Marshal(blocks)
}

func (s *Scope) UnmarshalJSON(data []byte) error {
	var blocks []Instance
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	s.Replace(blocks)
	return nil
}

// Recipe is a runnable routine: one ordered scope of top-level blocks.
type Recipe struct {
	Blocks *Scope `json:"blocks"`
}

// NewRecipe returns an empty recipe.
func NewRecipe(blocks ...Instance) *Recipe {
	return &Recipe{Blocks: NewScope(blocks...)}
}

func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		Blocks json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Blocks = NewScope()
	if len(raw.Blocks) == 0 {
		return nil
	}
	return r.Blocks.UnmarshalJSON(raw.Blocks)
}

func (r *Recipe) MarshalJSON() ([]byte, error) {
	blocks := r.Blocks
	if blocks == nil {
		blocks = NewScope()
	}
	return json.Marshal(struct {
		Blocks *Scope `json:"blocks"`
	}{blocks})
}
