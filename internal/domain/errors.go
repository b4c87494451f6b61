package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMissingField    = errors.New("missing field")
	ErrInvalidRevision = errors.New("invalid revision")
	ErrParse           = errors.New("parse error")
)

// ConfigError reports a run setting that cannot be used
type ConfigError struct {
	Setting string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Setting, e.Message)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// MissingFieldError reports a required row absent from the mapped data
type MissingFieldError struct {
	Role  Role
	Label string
}

func (e *MissingFieldError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("missing %s (%s) in layout data", e.Role, e.Label)
	}
	return fmt.Sprintf("missing %s in layout data", e.Role)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// RevisionError reports a prior revision value that cannot be incremented
type RevisionError struct {
	Type  RevisionType
	Prior string
}

func (e *RevisionError) Error() string {
	return fmt.Sprintf("cannot compute next %s revision from %q", e.Type, e.Prior)
}

func (e *RevisionError) Is(target error) bool {
	return target == ErrInvalidRevision
}

// SettingsError collects every problem found while validating run settings
type SettingsError struct {
	Problems []string
}

func (e *SettingsError) Error() string {
	if len(e.Problems) == 1 {
		return e.Problems[0]
	}
	return fmt.Sprintf("%d settings problems: %v", len(e.Problems), e.Problems)
}

func (e *SettingsError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ParseError reports a stored document that could not be decoded
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
