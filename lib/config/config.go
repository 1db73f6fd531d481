// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/hashlink/lib/hashlink"
)

// EnvVar names the environment variable Load reads the config path
// from.
const EnvVar = "HASHLINK_CONFIG"

// DefaultMaxSize bounds how much content the file resolver reads for a
// single URL.
const DefaultMaxSize = 64 << 20

// Config is the master configuration for the hashlink command.
type Config struct {
	// Link sets the defaults for newly created links.
	Link LinkConfig `yaml:"link"`

	// Resolve configures the file:// resolver used by remote
	// verification.
	Resolve ResolveConfig `yaml:"resolve"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// LinkConfig sets link construction defaults. Flags on the create
// command override both fields.
type LinkConfig struct {
	// Algorithm is a multihash name. Default: sha2-256
	Algorithm string `yaml:"algorithm"`

	// Encoding is a multibase name. Default: base58btc
	Encoding string `yaml:"encoding"`
}

// ResolveConfig configures remote verification.
type ResolveConfig struct {
	// Roots lists the directories file:// URLs may point into. An
	// empty list disables the file resolver.
	Roots []string `yaml:"roots"`

	// MaxSize is the largest file, in bytes, the resolver will read.
	// Default: 64 MiB
	MaxSize int64 `yaml:"max_size"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is one of auto, text, json. "auto" picks text for a
	// terminal and JSON otherwise. Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration. LoadFile starts from
// these values and overlays the file.
func Default() *Config {
	return &Config{
		Link: LinkConfig{
			Algorithm: hashlink.SHA256.String(),
			Encoding:  hashlink.DefaultEncoding.String(),
		},
		Resolve: ResolveConfig{
			MaxSize: DefaultMaxSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the HASHLINK_CONFIG environment
// variable. There is no fallback: if the variable is not set, this
// fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your hashlink.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path and validates
// it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// resolver roots.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	for index, root := range c.Resolve.Roots {
		c.Resolve.Roots[index] = expandVars(root, vars)
	}
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "text", "json"}
)

// Validate checks the configuration for errors. Every problem is
// reported, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if algorithm, err := hashlink.ParseAlgorithm(c.Link.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("link.algorithm: %w", err))
	} else if !algorithm.Implemented() {
		errs = append(errs, fmt.Errorf("link.algorithm: %s is not implemented", algorithm))
	}

	if _, err := hashlink.ParseEncoding(c.Link.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("link.encoding: %w", err))
	}

	for _, root := range c.Resolve.Roots {
		if root == "" {
			errs = append(errs, fmt.Errorf("resolve.roots must not contain empty entries"))
			break
		}
	}
	if c.Resolve.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("resolve.max_size must be positive, got %d", c.Resolve.MaxSize))
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", logFormats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Algorithm returns the configured default algorithm.
func (c *Config) Algorithm() (hashlink.Algorithm, error) {
	return hashlink.ParseAlgorithm(c.Link.Algorithm)
}

// Encoding returns the configured default encoding.
func (c *Config) Encoding() (hashlink.Encoding, error) {
	return hashlink.ParseEncoding(c.Link.Encoding)
}

// SlogLevel maps Log.Level to a slog level. Unknown values map to Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
