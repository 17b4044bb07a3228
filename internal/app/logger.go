package app

import (
	"io"
	"log/slog"
	"sort"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevels returns the accepted -log-level names, sorted.
func LogLevels() []string {
	names := make([]string, 0, len(logLevels))
	for name := range logLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidLogLevel reports whether name is a level newLogger understands.
func ValidLogLevel(name string) bool {
	_, ok := logLevels[name]
	return ok
}

// ValidLogFormat reports whether name is a log output format.
func ValidLogFormat(name string) bool {
	return name == "text" || name == "json"
}

// newLogger builds an isolated slog.Logger writing to outW. Unknown levels
// fall back to info and unknown formats to text. The global logger is left
// alone.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, ok := logLevels[levelStr]
	if !ok {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
