package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Policy decides what a run does with a statement that cannot be reified.
type Policy int

const (
	// FailFast aborts the run at the first failure.
	FailFast Policy = iota
	// SkipInvalid logs and skips statements that fail reification.
	// Evaluation failures still abort the run.
	SkipInvalid
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case SkipInvalid:
		return "skip_invalid"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses the names printed by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail_fast":
		return FailFast, nil
	case "skip_invalid":
		return SkipInvalid, nil
	}
	return FailFast, fmt.Errorf("unknown policy %q (want fail_fast or skip_invalid)", s)
}

// Result is the value one statement evaluated to.
type Result struct {
	Index int
	Value value.Value
}

// Report summarizes a run.
type Report struct {
	RunID      string
	Statements int
	Results    []Result
	Skipped    []*StatementError
}

// Executed is the number of statements that were evaluated successfully.
func (r Report) Executed() int { return len(r.Results) }

// Option configures an Executor.
type Option func(*Executor)

// WithPolicy sets the failure policy. The default is FailFast.
func WithPolicy(p Policy) Option {
	return func(e *Executor) { e.policy = p }
}

// WithRunIDs replaces the generator of run ids.
func WithRunIDs(next func() string) Option {
	return func(e *Executor) { e.nextID = next }
}

// Executor reifies and evaluates recipes against a registry, sending side
// effects to a host.
type Executor struct {
	registry *block.Registry
	host     block.Host
	policy   Policy
	nextID   func() string
}

// New creates an Executor.
func New(registry *block.Registry, host block.Host, opts ...Option) *Executor {
	e := &Executor{
		registry: registry,
		host:     host,
		policy:   FailFast,
		nextID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every top-level statement of recipe in order. The statement
// list is snapshotted once, so edits made to the recipe while it runs are
// not observed. The context is checked between statements only.
func (e *Executor) Run(ctx context.Context, recipe *descriptor.Recipe) (Report, error) {
	report := Report{RunID: e.nextID()}
	ctx = ctxlog.With(ctx, "run_id", report.RunID)
	logger := ctxlog.FromContext(ctx)

	statements := snapshot(recipe)
	report.Statements = len(statements)
	logger.Info("▶️ Starting run.", "statements", len(statements), "policy", e.policy.String())

	for i, d := range statements {
		if err := ctx.Err(); err != nil {
			logger.Warn("Run interrupted.", "next_statement", i, "error", err)
			return report, fmt.Errorf("run interrupted before statement %d: %w", i, err)
		}
		stmtLogger := logger.With("statement", i, "source", d.Source.String())

		b, err := e.registry.Reify(d)
		if err != nil {
			serr := &StatementError{Index: i, Source: d.Source, Phase: PhaseReify, Err: err}
			if e.policy == SkipInvalid {
				stmtLogger.Warn("Skipping statement that cannot be reified.", "error", err)
				report.Skipped = append(report.Skipped, serr)
				continue
			}
			stmtLogger.Error("Statement failed.", "phase", serr.Phase.String(), "error", err)
			return report, serr
		}

		stmtLogger.Debug("Evaluating statement.")
		v, err := b.Evaluate(ctx, e.host)
		if err != nil {
			serr := &StatementError{Index: i, Source: d.Source, Phase: PhaseEvaluate, Err: err}
			stmtLogger.Error("Statement failed.", "phase", serr.Phase.String(), "error", err)
			return report, serr
		}
		stmtLogger.Debug("Statement evaluated.", "value", v.String())
		report.Results = append(report.Results, Result{Index: i, Value: v})
	}

	logger.Info("✅ Finished run.", "executed", report.Executed(), "skipped", len(report.Skipped))
	return report, nil
}

// Check reifies every statement of recipe without evaluating anything and
// returns one StatementError per statement that would fail.
func (e *Executor) Check(ctx context.Context, recipe *descriptor.Recipe) []error {
	logger := ctxlog.FromContext(ctx)
	var errs []error
	for i, d := range snapshot(recipe) {
		if _, err := e.registry.Reify(d); err != nil {
			errs = append(errs, &StatementError{Index: i, Source: d.Source, Phase: PhaseReify, Err: err})
		}
	}
	logger.Debug("Recipe checked.", "problems", len(errs))
	return errs
}

func snapshot(recipe *descriptor.Recipe) []descriptor.Instance {
	if recipe == nil || recipe.Blocks == nil {
		return nil
	}
	return recipe.Blocks.Snapshot()
}
