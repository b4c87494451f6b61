package ports

import "os/exec"

// EditorOpener opens the YAML documents the user maintains by hand
type EditorOpener interface {
	// OpenFile edits path and returns when the editor exits
	OpenFile(path string) error

	// Command returns the editor process for path without starting it
	Command(path string) (*exec.Cmd, error)
}

// FileLauncher opens a produced file in the application registered for it
type FileLauncher interface {
	Open(path string) error
}
