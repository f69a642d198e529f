package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all consensus service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Matching MatchingConfig `yaml:"matching"`
	Text     TextConfig     `yaml:"text"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // debug, release, test
}

// DatabaseConfig configures the consensus database.
type DatabaseConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// MatchingConfig selects the horizontal coverage test used to put lines in boxes.
type MatchingConfig struct {
	Coverage  string  `yaml:"coverage"` // overlap_fraction, line_over_overlap
	Threshold float64 `yaml:"threshold"`
}

// TextConfig controls the flat consensus text rendering.
type TextConfig struct {
	WordSeparator string `yaml:"word_separator"`
	LineBreak     string `yaml:"line_break"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8090",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Path:         "dcwConsensus.db",
			MaxOpenConns: 8,
		},
		Matching: MatchingConfig{
			Coverage:  "overlap_fraction",
			Threshold: 0.95,
		},
		Text: TextConfig{
			WordSeparator: " ",
			LineBreak:     "\n",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("DCW_DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if addr := os.Getenv("DCW_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("DCW_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks values the service cannot start with.
func (c *Config) Validate() error {
	switch c.Matching.Coverage {
	case "overlap_fraction", "line_over_overlap":
	default:
		return fmt.Errorf("matching.coverage: unknown predicate %q", c.Matching.Coverage)
	}
	if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("matching.threshold must be in (0, 1], got %v", c.Matching.Threshold)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode: unknown mode %q", c.Server.Mode)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}
