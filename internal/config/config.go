// Package config loads the raddict YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for the raddict CLI.
type Config struct {
	// Dictionaries lists the dictionary files to load, in order.
	// Relative paths are resolved against the config file's directory.
	Dictionaries []string `yaml:"dictionaries"`

	// Journal is the SQLite load journal path. Empty disables journaling.
	// Relative paths are resolved against the config file's directory.
	Journal string `yaml:"journal,omitempty"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultLogLevel is used when log_level is omitted.
const DefaultLogLevel = "info"

// Load reads and validates the config file at path.
// Unknown fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes and validates config YAML. Paths are left as written.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that at least one dictionary is listed and that the log
// level parses.
func (c *Config) Validate() error {
	if len(c.Dictionaries) == 0 {
		return errors.New("at least one dictionary is required")
	}
	for i, d := range c.Dictionaries {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("dictionaries[%d] is empty", i)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c *Config) resolve(dir string) {
	for i, d := range c.Dictionaries {
		c.Dictionaries[i] = resolvePath(dir, d)
	}
	if c.Journal != "" && c.Journal != ":memory:" {
		c.Journal = resolvePath(dir, c.Journal)
	}
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
