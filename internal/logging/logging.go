// Package logging builds the zap loggers used by the binaries
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Config holds logging configuration
type Config struct {
	Level       string `yaml:"level" env:"TITLEBLOCK_LOG_LEVEL" env-default:"info"`
	Format      string `yaml:"format" env:"TITLEBLOCK_LOG_FORMAT" env-default:"console"` // "json" or "console"
	OutputPath  string `yaml:"output" env:"TITLEBLOCK_LOG_OUTPUT"`
	Development bool   `yaml:"development" env:"TITLEBLOCK_LOG_DEVELOPMENT"`
}

// New creates a logger from config. An unknown level falls back to info.
func New(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "json" {
		zapConfig.Encoding = "json"
	} else {
		zapConfig.Encoding = "console"
	}

	if config.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0755); err != nil {
			return nil, err
		}
		zapConfig.OutputPaths = []string{config.OutputPath}
		zapConfig.ErrorOutputPaths = []string{config.OutputPath}
	} else {
		zapConfig.OutputPaths = []string{"stderr"}
	}

	return zapConfig.Build()
}

// NewFileLogger creates a logger that never writes to the terminal. It is
// a no-op logger when path is empty.
func NewFileLogger(config Config, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	config.OutputPath = path
	return New(config)
}
