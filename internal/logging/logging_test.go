package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "titleblock.log")

	logger, err := New(Config{Level: "debug", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("layout processed")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"layout processed"`) {
		t.Errorf("expected json entry, got %s", data)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "loud", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Error("expected debug to be disabled")
	}
	if !logger.Core().Enabled(0) {
		t.Error("expected info to be enabled")
	}
}

func TestNewFileLogger_EmptyPathIsNop(t *testing.T) {
	logger, err := NewFileLogger(Config{}, "")
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if logger.Core().Enabled(2) {
		t.Error("expected a no-op logger")
	}
}
