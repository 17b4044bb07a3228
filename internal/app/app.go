package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/config"
	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/diag"
	"github.com/vk/rpgbaker/internal/hcl"
	"github.com/vk/rpgbaker/internal/jsonrecipe"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	registry *block.Registry
	formats  *config.Dispatcher
	diag     *diag.Renderer
}

// DefaultFormats returns a dispatcher with every script format the binary
// understands.
func DefaultFormats() *config.Dispatcher {
	d := config.NewDispatcher()
	d.Register(".hcl", hcl.New())
	d.Register(".json", jsonrecipe.New())
	return d
}

// NewApp is the constructor for the main application. Program output goes to
// outW; logs and diagnostics go to errW. It panics if the registry built from
// modules fails validation, which is a programmer error.
func NewApp(outW, errW io.Writer, appConfig *Config, formats *config.Dispatcher, modules ...block.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if formats == nil {
		formats = DefaultFormats()
	}

	reg := block.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All block modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		registry: reg,
		formats:  formats,
		diag:     diag.New(errW),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *block.Registry {
	return a.registry
}
