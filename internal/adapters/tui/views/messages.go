package views

import (
	"titleblock/internal/application"
	"titleblock/internal/application/commands"
	"titleblock/internal/ports"
)

// Run events, forwarded from the pipeline goroutine

type RunStartedMsg struct{ Info ports.RunInfo }

type FileStartedMsg struct {
	Path         string
	Index, Total int
}

type LayoutProcessedMsg struct {
	Path   string
	Layout string
	Entry  application.SummaryEntry
}

type SkippedMsg struct{ Entry application.SkippedEntry }

type ProgressMsg struct{ Percent int }

type RunErrorMsg struct{ Err error }

// RunEndedMsg is sent when the run finishes or is aborted
type RunEndedMsg struct{ Aborted bool }

// RunDoneMsg carries the result once Execute has returned
type RunDoneMsg struct {
	Result *commands.RunResult
	Err    error
}

// Requests that block the pipeline goroutine until answered on Reply

type ConfirmRequestMsg struct {
	File  string
	Reply chan<- bool
}

type ConflictRequestMsg struct {
	Conflict application.Conflict
	Reply    chan<- application.Resolution
}

// MapDoneMsg carries the result of a mapping update
type MapDoneMsg struct {
	Result *commands.MapFieldsResult
	Err    error
}

// Navigation

type SwitchToMonitorMsg struct{}
type SwitchToSkippedMsg struct{}
type SwitchToSummaryMsg struct{}
type SwitchToHelpMsg struct{}

// StopRequestMsg asks the run to stop after the current file
type StopRequestMsg struct{}

// StartMapMsg asks to store the reference table assignments in the mapping
type StartMapMsg struct{}
