// Package game runs a project: it acts as the block.Host for the project's
// routines, printing logged values and tracking the current screen.
package game

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/executor"
	"github.com/vk/rpgbaker/internal/project"
	"github.com/vk/rpgbaker/internal/value"
)

// Observer is told about every effect after the game has applied it.
type Observer interface {
	ObserveLog(ctx context.Context, v value.Value)
	ObserveScreen(ctx context.Context, screen string)
}

// Game is a project that is currently running.
type Game struct {
	project *project.Project
	exec    *executor.Executor

	mu        sync.Mutex
	out       io.Writer
	screen    string
	history   []string
	observers []Observer
}

// New prepares p to run against reg. Logged values are written to out.
func New(p *project.Project, reg *block.Registry, out io.Writer, opts ...executor.Option) *Game {
	g := &Game{project: p, out: out}
	g.exec = executor.New(reg, g, opts...)
	return g
}

// Observe registers o for every effect of later runs.
func (g *Game) Observe(o Observer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, o)
}

func (g *Game) snapshotObservers() []Observer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Observer(nil), g.observers...)
}

// Start runs the project's startup routine.
func (g *Game) Start(ctx context.Context) (executor.Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🎮 Starting game.", "project", g.project.Name, "version", g.project.Version)
	report, err := g.exec.Run(ctx, g.project.StartupRoutine)
	if err != nil {
		return report, fmt.Errorf("startup routine failed: %w", err)
	}
	return report, nil
}

// Check reports the statements of the startup routine that cannot be
// reified, without running anything.
func (g *Game) Check(ctx context.Context) []error {
	return g.exec.Check(ctx, g.project.StartupRoutine)
}

// Log implements block.Host.
func (g *Game) Log(ctx context.Context, v value.Value) {
	g.mu.Lock()
	_, err := fmt.Fprintf(g.out, "LOG %s\n", v)
	g.mu.Unlock()
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to write log output.", "error", err)
	}
	for _, o := range g.snapshotObservers() {
		o.ObserveLog(ctx, v)
	}
}

// ChangeScreen implements block.Host.
func (g *Game) ChangeScreen(ctx context.Context, screen string) error {
	if screen == "" {
		return fmt.Errorf("change screen: empty screen name")
	}
	g.mu.Lock()
	ctxlog.FromContext(ctx).Debug("Screen changed.", "from", g.screen, "to", screen)
	g.screen = screen
	g.history = append(g.history, screen)
	g.mu.Unlock()

	for _, o := range g.snapshotObservers() {
		o.ObserveScreen(ctx, screen)
	}
	return nil
}

// Screen returns the current screen, or "" before any change.
func (g *Game) Screen() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.screen
}

// ScreenHistory returns every screen entered, in order.
func (g *Game) ScreenHistory() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.history...)
}
