// Package config loads titleblock.yaml and its environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"titleblock/internal/logging"
	"titleblock/internal/retry"
)

// EnvConfigPath names the config file when no path is given
const EnvConfigPath = "TITLEBLOCK_CONFIG"

// DefaultConfigFile is read from the working directory when present
const DefaultConfigFile = "titleblock.yaml"

// Config is the tool configuration
type Config struct {
	MappingPath    string `yaml:"mapping_path" env:"TITLEBLOCK_MAPPING" env-default:"Dict/AttributeDictionary.yaml"`
	TablePath      string `yaml:"table_path" env:"TITLEBLOCK_TABLE" env-default:"Dict/ReferenceTable.yaml"`
	SettingsPath   string `yaml:"settings_path" env:"TITLEBLOCK_SETTINGS" env-default:"settings.yaml"`
	DatabasePath   string `yaml:"database_path" env:"TITLEBLOCK_DB"`
	DrawingPattern string `yaml:"drawing_pattern" env:"TITLEBLOCK_PATTERN" env-default:"*.dwg"`
	MetricsFile    string `yaml:"metrics_file" env:"TITLEBLOCK_METRICS_FILE"`

	Retry RetryConfig    `yaml:"retry"`
	Log   logging.Config `yaml:"log"`
	CAD   CADConfig      `yaml:"cad"`
}

// RetryConfig bounds the retries of CAD operations
type RetryConfig struct {
	Attempts int           `yaml:"attempts" env:"TITLEBLOCK_RETRY_ATTEMPTS" env-default:"3"`
	Delay    time.Duration `yaml:"delay" env:"TITLEBLOCK_RETRY_DELAY" env-default:"1s"`
}

// CADConfig selects the CAD application
type CADConfig struct {
	ProgID  string `yaml:"prog_id" env:"TITLEBLOCK_CAD_PROGID" env-default:"AutoCAD.Application"`
	Visible bool   `yaml:"visible" env:"TITLEBLOCK_CAD_VISIBLE"`
}

// Load reads the config file at path. An empty path falls back to
// TITLEBLOCK_CONFIG, then to titleblock.yaml. A missing file yields the
// defaults with environment overrides.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultConfigFile
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if explicit && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabasePath()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no run could work with
func (c *Config) Validate() error {
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("retry.delay must not be negative, got %s", c.Retry.Delay)
	}
	if c.MappingPath == "" {
		return errors.New("mapping_path is required")
	}
	return nil
}

// RetryPolicy returns the retry policy for CAD operations
func (c *Config) RetryPolicy() retry.Config {
	return retry.Config{Attempts: c.Retry.Attempts, Delay: c.Retry.Delay}
}

// defaultDatabasePath places the session database under XDG_DATA_HOME
func defaultDatabasePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "titleblock", "session.db")
	}
	return filepath.Join("~", ".local", "share", "titleblock", "session.db")
}
