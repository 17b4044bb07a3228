package testutil

import (
	"context"
	"sync"

	"github.com/vk/rpgbaker/internal/value"
)

// Effect is one side effect observed by a RecordingHost.
type Effect struct {
	Kind   string // "log" or "screen"
	Value  value.Value
	Screen string
}

// RecordingHost implements block.Host and records every effect in order.
type RecordingHost struct {
	mu      sync.Mutex
	effects []Effect
	// ScreenErr, when set, is returned by ChangeScreen.
	ScreenErr error
}

func (h *RecordingHost) Log(_ context.Context, v value.Value) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.effects = append(h.effects, Effect{Kind: "log", Value: v})
}

func (h *RecordingHost) ChangeScreen(_ context.Context, screen string) error {
	if h.ScreenErr != nil {
		return h.ScreenErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.effects = append(h.effects, Effect{Kind: "screen", Screen: screen})
	return nil
}

// Effects returns a copy of the recorded effects.
func (h *RecordingHost) Effects() []Effect {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Effect(nil), h.effects...)
}

// Logged returns only the logged values, in order.
func (h *RecordingHost) Logged() []value.Value {
	var out []value.Value
	for _, e := range h.Effects() {
		if e.Kind == "log" {
			out = append(out, e.Value)
		}
	}
	return out
}
