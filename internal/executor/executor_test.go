package executor_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/executor"
	"github.com/vk/rpgbaker/internal/testutil"
	"github.com/vk/rpgbaker/internal/value"
)

func logInt(n int32) descriptor.Instance {
	return testutil.LogBlock(testutil.Lit(value.Int(n)))
}

func brokenAdd() descriptor.Instance {
	return testutil.Inst(descriptor.KindAdd, map[string]descriptor.Slot{"a": testutil.Lit(value.Int(1))})
}

func TestRun_ExecutesStatementsInOrder(t *testing.T) {
	reg := testutil.NewRegistry(t)
	host := &testutil.RecordingHost{}
	recipe := descriptor.NewRecipe(logInt(1), logInt(2), logInt(3))

	report, err := executor.New(reg, host).Run(context.Background(), recipe)
	require.NoError(t, err)

	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Int(3)}, host.Logged())
	assert.Equal(t, 3, report.Statements)
	assert.Equal(t, 3, report.Executed())
	assert.Empty(t, report.Skipped)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err, "run id is a uuid")
}

func TestRun_ResultsCarryStatementValues(t *testing.T) {
	reg := testutil.NewRegistry(t)
	recipe := descriptor.NewRecipe(
		testutil.AddBlock(testutil.Lit(value.Int(1)), testutil.Lit(value.Int(2))),
		testutil.IntBlock(7),
	)

	report, err := executor.New(reg, nil).Run(context.Background(), recipe)
	require.NoError(t, err)
	assert.Equal(t, []executor.Result{
		{Index: 0, Value: value.Int(3)},
		{Index: 1, Value: value.Int(7)},
	}, report.Results)
}

func TestRun_EmptyRecipes(t *testing.T) {
	reg := testutil.NewRegistry(t)
	host := &testutil.RecordingHost{}
	ex := executor.New(reg, host)

	for _, recipe := range []*descriptor.Recipe{nil, {}, descriptor.NewRecipe()} {
		report, err := ex.Run(context.Background(), recipe)
		require.NoError(t, err)
		assert.Zero(t, report.Statements)
	}
	assert.Empty(t, host.Effects())
}

func TestRun_ReifyFailureStopsLaterStatements(t *testing.T) {
	reg := testutil.NewRegistry(t)
	host := &testutil.RecordingHost{}
	recipe := descriptor.NewRecipe(logInt(1), brokenAdd(), logInt(3))

	report, err := executor.New(reg, host).Run(context.Background(), recipe)

	var serr *executor.StatementError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Index)
	assert.Equal(t, executor.PhaseReify, serr.Phase)
	assert.Equal(t, descriptor.Builtin(descriptor.KindAdd), serr.Source)
	assert.Equal(t, &block.MissingFieldError{Field: "b"}, serr.Err)

	assert.Equal(t, []value.Value{value.Int(1)}, host.Logged(), "statement 3 never runs")
	assert.Equal(t, 1, report.Executed())
}

func TestRun_EvaluationFailureStopsLaterStatements(t *testing.T) {
	reg := testutil.NewRegistry(t)
	host := &testutil.RecordingHost{}
	bad := testutil.LogBlock(testutil.Sub(testutil.AddBlock(testutil.Lit(value.Int(1)), testutil.Lit(value.Text("x")))))
	recipe := descriptor.NewRecipe(logInt(1), bad, logInt(3))

	for _, policy := range []executor.Policy{executor.FailFast, executor.SkipInvalid} {
		t.Run(policy.String(), func(t *testing.T) {
			host := &testutil.RecordingHost{}
			_, err := executor.New(reg, host, executor.WithPolicy(policy)).Run(context.Background(), recipe)

			var serr *executor.StatementError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, executor.PhaseEvaluate, serr.Phase)
			assert.Equal(t, 1, serr.Index)
			var operand *block.OperandError
			assert.ErrorAs(t, err, &operand)
			assert.Equal(t, []value.Value{value.Int(1)}, host.Logged())
		})
	}
	assert.Empty(t, host.Effects())
}

func TestRun_SkipInvalid(t *testing.T) {
	reg := testutil.NewRegistry(t)
	host := &testutil.RecordingHost{}
	recipe := descriptor.NewRecipe(logInt(1), brokenAdd(), descriptor.NewInstance(descriptor.Plugin("p", "b")), logInt(4))

	report, err := executor.New(reg, host, executor.WithPolicy(executor.SkipInvalid)).Run(context.Background(), recipe)
	require.NoError(t, err)

	assert.Equal(t, []value.Value{value.Int(1), value.Int(4)}, host.Logged())
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, 1, report.Skipped[0].Index)
	assert.Equal(t, 2, report.Skipped[1].Index)
	assert.ErrorIs(t, report.Skipped[1], block.ErrNoPluginResolver)
}

// editingHost appends a statement to the running recipe every time it logs.
type editingHost struct {
	testutil.RecordingHost
	scope *descriptor.Scope
}

func (h *editingHost) Log(ctx context.Context, v value.Value) {
	h.RecordingHost.Log(ctx, v)
	h.scope.Push(logInt(99))
}

func TestRun_UsesSnapshotOfScope(t *testing.T) {
	reg := testutil.NewRegistry(t)
	recipe := descriptor.NewRecipe(logInt(1), logInt(2))
	host := &editingHost{scope: recipe.Blocks}

	report, err := executor.New(reg, host).Run(context.Background(), recipe)
	require.NoError(t, err)

	assert.Equal(t, []value.Value{value.Int(1), value.Int(2)}, host.Logged())
	assert.Equal(t, 2, report.Statements)
	assert.Equal(t, 4, recipe.Blocks.Len(), "edits still land in the scope")
}

// cancelingHost cancels the run's context on its first log.
type cancelingHost struct {
	testutil.RecordingHost
	cancel context.CancelFunc
}

func (h *cancelingHost) Log(ctx context.Context, v value.Value) {
	h.RecordingHost.Log(ctx, v)
	h.cancel()
}

func TestRun_ContextCheckedBetweenStatements(t *testing.T) {
	reg := testutil.NewRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	host := &cancelingHost{cancel: cancel}

	// The host cancels while the first statement runs; that statement still
	// completes and the second never starts.
	first := testutil.Inst(descriptor.KindIf, map[string]descriptor.Slot{
		"cond": testutil.Lit(value.Int(1)),
		"then": testutil.Sub(logInt(1)),
		"else": testutil.Lit(value.Void()),
	})
	recipe := descriptor.NewRecipe(first, logInt(2))

	report, err := executor.New(reg, host).Run(ctx, recipe)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []value.Value{value.Int(1)}, host.Logged())
	assert.Equal(t, 1, report.Executed())
}

func TestRun_CanceledBeforeStart(t *testing.T) {
	reg := testutil.NewRegistry(t)
	host := &testutil.RecordingHost{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executor.New(reg, host).Run(ctx, descriptor.NewRecipe(logInt(1)))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, host.Effects())
}

func TestRun_LogRecordsCarryRunID(t *testing.T) {
	reg := testutil.NewRegistry(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	ex := executor.New(reg, &testutil.RecordingHost{}, executor.WithRunIDs(func() string { return "run-1" }))
	report, err := ex.Run(ctx, descriptor.NewRecipe(logInt(1)))
	require.NoError(t, err)
	assert.Equal(t, "run-1", report.RunID)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, "run-1", rec["run_id"], "record %s", line)
	}
}

func TestCheck_ReportsEveryInvalidStatement(t *testing.T) {
	reg := testutil.NewRegistry(t)
	host := &testutil.RecordingHost{}
	recipe := descriptor.NewRecipe(logInt(1), brokenAdd(), logInt(3), brokenAdd())

	errs := executor.New(reg, host).Check(context.Background(), recipe)
	require.Len(t, errs, 2)

	var serr *executor.StatementError
	require.ErrorAs(t, errs[0], &serr)
	assert.Equal(t, 1, serr.Index)
	require.ErrorAs(t, errs[1], &serr)
	assert.Equal(t, 3, serr.Index)
	assert.Empty(t, host.Effects(), "check never evaluates")

	assert.Empty(t, executor.New(reg, host).Check(context.Background(), descriptor.NewRecipe(logInt(1))))
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []executor.Policy{executor.FailFast, executor.SkipInvalid} {
		got, err := executor.ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := executor.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, executor.FailFast, got)

	_, err = executor.ParsePolicy("retry")
	assert.Error(t, err)
}
