package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrConnection       = errors.New("cad application unreachable")
	ErrOpen             = errors.New("cannot open drawing")
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrCommand          = errors.New("command failed")
	ErrNoDrawings       = errors.New("no drawing files found")
	ErrNoReferenceTable = errors.New("no reference table")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConnectionError is returned when the CAD application cannot be reached
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach the CAD application: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// NotFoundError is returned when a drawing path does not exist
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("drawing not found: %s", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// OpenError is returned when a drawing could not be opened
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

func (e *OpenError) Is(target error) bool {
	return target == ErrOpen
}

// LookupError is returned when a named layout is absent from a document
type LookupError struct {
	Layout string
	Path   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("layout %q not found in %s", e.Layout, e.Path)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLayoutNotFound
}

// CommandError is returned when a named CAD command fails
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("error executing %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

func (e *CommandError) Is(target error) bool {
	return target == ErrCommand
}
