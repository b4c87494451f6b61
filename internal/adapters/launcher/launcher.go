// Package launcher opens produced files, such as exported summaries and
// plotted PDFs, in the application the desktop registers for them.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"titleblock/internal/ports"
)

// Launcher implements ports.FileLauncher
type Launcher struct {
	goos  string
	start func(*exec.Cmd) error
}

var _ ports.FileLauncher = (*Launcher)(nil)

// New creates a launcher for the running operating system
func New() *Launcher {
	return &Launcher{goos: runtime.GOOS, start: (*exec.Cmd).Start}
}

// Open hands path to the desktop without waiting for the viewer to exit
func (l *Launcher) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	cmd, err := command(l.goos, path)
	if err != nil {
		return err
	}
	return l.start(cmd)
}

func command(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", path), nil
	case "windows":
		// the empty argument is the window title start expects first
		return exec.Command("cmd", "/c", "start", "", path), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
