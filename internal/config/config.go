// Package config handles rsl.toml loading and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"rsl/internal/logging"
	"rsl/internal/source"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "rsl.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration structure.
type Config struct {
	Log         LogConfig         `toml:"log"`
	Imports     ImportsConfig     `toml:"imports"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Workspace   WorkspaceConfig   `toml:"workspace"`

	// Path is the file the configuration was read from, "" for defaults.
	Path string `toml:"-"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ImportsConfig controls how import statements are followed.
type ImportsConfig struct {
	Follow     bool     `toml:"follow"`
	Encoding   string   `toml:"encoding"`
	MaxDepth   int      `toml:"max_depth"`
	Extensions []string `toml:"extensions"`
	SearchDirs []string `toml:"search_dirs"`
}

// DiagnosticsConfig limits and toggles diagnostics.
type DiagnosticsConfig struct {
	Max          int  `toml:"max"`
	Deprecations bool `toml:"deprecations"`
}

// WorkspaceConfig controls workspace-wide indexing.
type WorkspaceConfig struct {
	Preload       bool `toml:"preload"`
	UppercaseURIs bool `toml:"uppercase_drive_letters"`
}

// Default returns the configuration used when no rsl.toml exists.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Imports: ImportsConfig{
			Follow:     true,
			Encoding:   source.DefaultEncoding,
			MaxDepth:   64,
			Extensions: []string{".mac", ".d32"},
		},
		Diagnostics: DiagnosticsConfig{
			Max:          100,
			Deprecations: true,
		},
	}
}

// Load reads path on top of the defaults and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config path is required")
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cfg, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	cfg.Path = path

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds rsl.toml above startDir and loads it; without one the
// defaults (with environment overrides) are returned.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Default(), err
	}
	if !ok {
		cfg := Default()
		applyEnvOverrides(&cfg)
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := source.LookupEncoding(c.Imports.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("imports.encoding: %w", err))
	}
	if c.Imports.MaxDepth < 1 || c.Imports.MaxDepth > 1024 {
		errs = append(errs, fmt.Errorf("imports.max_depth=%d must be between 1 and 1024", c.Imports.MaxDepth))
	}
	for _, ext := range c.Imports.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("imports.extensions: %q must start with a dot", ext))
		}
	}
	if c.Diagnostics.Max < 0 {
		errs = append(errs, fmt.Errorf("diagnostics.max=%d must not be negative", c.Diagnostics.Max))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"RSL_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"RSL_LOG_FILE", func(v string) {
			if v != "" {
				cfg.Log.File = v
			}
		}},
		{"RSL_ENCODING", func(v string) {
			if v != "" {
				cfg.Imports.Encoding = v
			}
		}},
		{"RSL_FOLLOW_IMPORTS", func(v string) {
			if b, err := strconv.ParseBool(v); err == nil {
				cfg.Imports.Follow = b
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}
