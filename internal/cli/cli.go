package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/rpgbaker/internal/app"
	"github.com/vk/rpgbaker/internal/executor"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Values from a -config file fill in any option not given on the command
// line.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("rpgbaker", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
RPG Baker - runs and converts block scripts of RPG projects.

Usage:
  rpgbaker [options] PATH

Arguments:
  PATH
    A project directory (holding project.json), a single .hcl or .json
    script, or a directory of scripts.

Options:
`)
		flagSet.PrintDefaults()
	}

	checkFlag := flagSet.Bool("check", false, "Validate the scripts without running them.")
	convertFlag := flagSet.String("convert", "", "Print the scripts converted to another format. Options: 'json' or 'hcl'.")
	listKindsFlag := flagSet.Bool("list-kinds", false, "List the available block kinds and exit.")
	configFlag := flagSet.String("config", "", "Path to a TOML file with default option values.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	mirrorFlag := flagSet.String("mirror", "", "Socket.io URL of a live editor to mirror log and screen events to.")
	policyFlag := flagSet.String("policy", "fail_fast", "What to do with statements that cannot be built. Options: 'fail_fast' or 'skip_invalid'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *configFlag != "" {
		fc, err := app.LoadFileConfig(*configFlag)
		if err != nil {
			return nil, false, usageError("%v", err)
		}
		if fc.LogLevel != "" && !explicit["log-level"] {
			*logLevelFlag = fc.LogLevel
		}
		if fc.LogFormat != "" && !explicit["log-format"] {
			*logFormatFlag = fc.LogFormat
		}
		if fc.Policy != "" && !explicit["policy"] {
			*policyFlag = fc.Policy
		}
		// The file's mirror is a default for runs only.
		runs := !*checkFlag && *convertFlag == "" && !*listKindsFlag
		if fc.MirrorURL != "" && !explicit["mirror"] && runs {
			*mirrorFlag = fc.MirrorURL
		}
		slog.Debug("Config file applied.", "path", *configFlag)
	}

	path := ""
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected a single PATH, got %d arguments", flagSet.NArg())
	}
	if flagSet.NArg() == 1 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Path determined.", "path", path)

	if path == "" && !*listKindsFlag {
		slog.Debug("No path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if !app.ValidLogFormat(logFormat) {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	if !app.ValidLogLevel(logLevel) {
		return nil, false, usageError("invalid log-level %q: must be one of %s", logLevel, strings.Join(app.LogLevels(), ", "))
	}

	policy, err := executor.ParsePolicy(*policyFlag)
	if err != nil {
		return nil, false, usageError("invalid policy: %v", err)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Path:      path,
		Check:     *checkFlag,
		Convert:   *convertFlag,
		ListKinds: *listKindsFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Policy:    policy,
		MirrorURL: *mirrorFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
