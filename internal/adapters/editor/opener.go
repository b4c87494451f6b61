package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"titleblock/internal/ports"
)

// EnvEditor overrides $VISUAL and $EDITOR for this tool only
const EnvEditor = "TITLEBLOCK_EDITOR"

// Opener implements ports.EditorOpener
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
	goos     string
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath, goos: runtime.GOOS}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", cmd.Path, err)
	}
	return nil
}

// Command returns an exec.Cmd editing path, attached to the terminal.
// An editor setting may carry arguments, as in "code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.findEditor()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $%s or $EDITOR", EnvEditor)
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findEditor() []string {
	for _, name := range []string{EnvEditor, "VISUAL", "EDITOR"} {
		if fields := strings.Fields(o.getenv(name)); len(fields) > 0 {
			return fields
		}
	}

	editors := []string{"nvim", "vim", "vi", "nano"}
	if o.goos == "windows" {
		editors = []string{"notepad++", "notepad"}
	}
	for _, editor := range editors {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}
