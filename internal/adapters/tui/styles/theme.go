// Package styles holds the lipgloss styles of the run monitor. The palette
// follows drafting conventions: blue for the sheet, green for done, amber
// for skipped and red for failures.
package styles

import "github.com/charmbracelet/lipgloss"

const (
	colorSheet = lipgloss.Color("#2563EB")
	colorDone  = lipgloss.Color("#16A34A")
	colorSkip  = lipgloss.Color("#D97706")
	colorFail  = lipgloss.Color("#DC2626")
	colorDim   = lipgloss.Color("#6B7280")
	colorInk   = lipgloss.Color("#F9FAFB")
	colorBar   = lipgloss.Color("#1F2937")
)

// Progress bar gradient, as hex strings for bubbles/progress
const (
	ProgressFrom = "#2563EB"
	ProgressTo   = "#16A34A"
)

var (
	App   = lipgloss.NewStyle().Padding(1, 2)
	Title = lipgloss.NewStyle().Bold(true).Foreground(colorSheet)

	Subtitle    = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	RowHeader   = lipgloss.NewStyle().Foreground(colorSheet).Bold(true).Underline(true)
	RowSelected = lipgloss.NewStyle().Background(colorSheet).Foreground(colorInk).Bold(true)

	// Run log markers
	MarkOK   = lipgloss.NewStyle().Foreground(colorDone).SetString("✓")
	MarkSkip = lipgloss.NewStyle().Foreground(colorSkip).SetString("!")
	MarkFail = lipgloss.NewStyle().Foreground(colorFail).SetString("✗")

	StatusBar  = lipgloss.NewStyle().Background(colorBar).Foreground(colorInk).Padding(0, 1)
	StatusKey  = lipgloss.NewStyle().Background(colorSheet).Foreground(colorInk).Padding(0, 1).MarginRight(1)
	StatusText = lipgloss.NewStyle().Background(colorBar).Foreground(colorDim).MarginRight(1)

	InputLabel = lipgloss.NewStyle().Foreground(colorDone).Bold(true)

	// Prompt frames the questions the pipeline is waiting on
	Prompt = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSkip).
		Padding(0, 1)

	HelpKey       = lipgloss.NewStyle().Foreground(colorSheet).Bold(true)
	HelpDesc      = lipgloss.NewStyle().Foreground(colorDim)
	HelpSeparator = lipgloss.NewStyle().Foreground(colorDim).SetString(" • ")

	Success    = lipgloss.NewStyle().Foreground(colorDone).Bold(true)
	ErrorMsg   = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	WarningMsg = lipgloss.NewStyle().Foreground(colorSkip)
	MutedText  = lipgloss.NewStyle().Foreground(colorDim)
)
