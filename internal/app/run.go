package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/executor"
	"github.com/vk/rpgbaker/internal/game"
	"github.com/vk/rpgbaker/internal/mirror"
	"github.com/vk/rpgbaker/internal/project"
)

// ErrCheckFailed is matched by errors.Is for failures reported by -check.
var ErrCheckFailed = errors.New("check failed")

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.ListKinds {
		_, err := fmt.Fprint(a.outW, a.diag.Kinds(a.registry.Kinds()))
		return err
	}

	p, err := a.loadProject(ctx, appConfig.Path)
	if err != nil {
		return err
	}

	if appConfig.Convert != "" {
		return a.convert(p, appConfig.Convert)
	}

	g := game.New(p, a.registry, a.outW, executor.WithPolicy(appConfig.Policy))

	if appConfig.Check {
		errs := g.Check(ctx)
		if len(errs) > 0 {
			fmt.Fprint(a.errW, a.diag.Errors(errs))
			return fmt.Errorf("%w: %d invalid statement(s)", ErrCheckFailed, len(errs))
		}
		a.logger.Info("✅ Check passed.", "statements", p.StartupRoutine.Blocks.Len())
		return nil
	}

	if appConfig.MirrorURL != "" {
		client, err := a.dialMirror(ctx, appConfig.MirrorURL)
		if err != nil {
			return err
		}
		defer client.Close()
		g.Observe(client)
	}

	a.logger.Debug("Game starting.")
	report, err := g.Start(ctx)
	if err != nil {
		fmt.Fprint(a.errW, a.diag.Error(err))
		return fmt.Errorf("execution failed: %w", err)
	}
	if len(report.Skipped) > 0 {
		fmt.Fprint(a.errW, a.diag.Errors(skippedErrors(report.Skipped)))
	}
	fmt.Fprint(a.errW, a.diag.Report(report))
	a.logger.Info("🏁 Execution finished.", "run_id", report.RunID, "executed", report.Executed())

	a.logger.Debug("App.Run method finished.")
	return nil
}

// loadProject opens path as a project, or wraps the scripts found at path in
// an unsaved project.
func (a *App) loadProject(ctx context.Context, path string) (*project.Project, error) {
	logger := ctxlog.FromContext(ctx)
	if project.IsProjectDir(path) {
		p, err := project.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Info("Project loaded.", "name", p.Name, "version", p.Version, "statements", p.StartupRoutine.Blocks.Len())
		return p, nil
	}

	recipe, err := a.formats.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scripts: %w", err)
	}
	logger.Info("Scripts loaded.", "path", path, "statements", recipe.Blocks.Len())
	return &project.Project{
		Name:           filepath.Base(path),
		Version:        "0.0.0",
		StartupRoutine: recipe,
	}, nil
}

func (a *App) convert(p *project.Project, target string) error {
	f, ok := a.formats.Format(target)
	if !ok {
		return fmt.Errorf("no writer for format %q", target)
	}
	out, err := f.Write(p.StartupRoutine)
	if err != nil {
		return fmt.Errorf("failed to convert to %s: %w", target, err)
	}
	_, err = a.outW.Write(out)
	return err
}

func (a *App) dialMirror(ctx context.Context, endpoint string) (*mirror.Client, error) {
	client, err := mirror.Dial(ctx, mirror.Options{URL: endpoint})
	if err != nil {
		return nil, fmt.Errorf("failed to connect mirror: %w", err)
	}
	return client, nil
}

func skippedErrors(skipped []*executor.StatementError) []error {
	errs := make([]error, 0, len(skipped))
	for _, s := range skipped {
		errs = append(errs, s)
	}
	return errs
}
