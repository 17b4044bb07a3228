package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vk/rpgbaker/internal/executor"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Path is a project directory, a script file, or a directory of scripts.
	Path string

	Check     bool
	Convert   string // target format extension, "json" or "hcl"
	ListKinds bool

	LogFormat string
	LogLevel  string
	Policy    executor.Policy

	// MirrorURL, when set, is a socket.io endpoint of a live editor that
	// receives the effects of the run.
	MirrorURL string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" && !cfg.ListKinds {
		return nil, errors.New("a project or script path is required")
	}
	cfg.Convert = strings.TrimPrefix(strings.ToLower(cfg.Convert), ".")
	switch cfg.Convert {
	case "", "json", "hcl":
	default:
		return nil, fmt.Errorf("invalid convert target %q: must be 'json' or 'hcl'", cfg.Convert)
	}
	if cfg.Check && cfg.Convert != "" {
		return nil, errors.New("-check and -convert cannot be used together")
	}
	if cfg.MirrorURL != "" && (cfg.Check || cfg.Convert != "" || cfg.ListKinds) {
		return nil, errors.New("-mirror only applies when scripts are run")
	}
	return &cfg, nil
}

// FileConfig holds the defaults that can be set in a TOML config file.
// Empty fields were not set in the file.
type FileConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Policy    string `toml:"policy"`
	MirrorURL string `toml:"mirror_url"`
}

// LoadFileConfig reads a TOML config file. Unknown keys are an error.
func LoadFileConfig(path string) (*FileConfig, error) {
	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	fc.LogLevel = strings.ToLower(strings.TrimSpace(fc.LogLevel))
	fc.LogFormat = strings.ToLower(strings.TrimSpace(fc.LogFormat))
	fc.Policy = strings.TrimSpace(fc.Policy)
	fc.MirrorURL = strings.TrimSpace(fc.MirrorURL)
	return &fc, nil
}
