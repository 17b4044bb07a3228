package integrationtests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/rpgbaker/internal/app"
	"github.com/vk/rpgbaker/internal/block"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files into a fresh directory and runs the app on
// it with cfg. An empty cfg.Path means the directory itself.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...block.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...block.Module) *HarnessResult {
	t.Helper()

	// 1. Write every file below a temporary root.
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	// 2. Point the config at the written files.
	if cfg.Path == "" {
		cfg.Path = root
	} else {
		cfg.Path = filepath.Join(root, cfg.Path)
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	out := &app.SafeBuffer{}
	logs := &app.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, logs, &cfg, nil, modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logs.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	// 3. Run.
	runErr := testApp.Run(ctx, &cfg)

	if os.Getenv("RPGBAKER_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}

// AssertLogged checks that the program printed exactly the given LOG lines,
// in order.
func AssertLogged(t *testing.T, result *HarnessResult, values ...string) {
	t.Helper()
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(result.Output), "\n") {
		if strings.HasPrefix(line, "LOG ") {
			lines = append(lines, strings.TrimPrefix(line, "LOG "))
		}
	}
	if len(values) == 0 {
		require.Empty(t, lines, "expected no LOG output")
		return
	}
	require.Equal(t, values, lines, "LOG output mismatch")
}
