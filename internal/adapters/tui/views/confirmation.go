package views

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"titleblock/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "continue"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "stop"),
	),
}

// ConfirmationModel holds a pending yes/no question from the pipeline
type ConfirmationModel struct {
	File  string
	Keys  ConfirmKeyMap
	reply chan<- bool
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// Ask records a pending question
func (m *ConfirmationModel) Ask(req ConfirmRequestMsg) {
	m.File = req.File
	m.reply = req.Reply
}

// Pending reports whether a question awaits an answer
func (m *ConfirmationModel) Pending() bool {
	return m.reply != nil
}

// HandleKeyMsg answers the pending question.
// Returns true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg) bool {
	if m.reply == nil {
		return false
	}
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		m.answer(true)
	case key.Matches(msg, m.Keys.Cancel):
		m.answer(false)
	default:
		return false
	}
	return true
}

func (m *ConfirmationModel) answer(ok bool) {
	m.reply <- ok
	m.reply = nil
	m.File = ""
}

// View renders the pending question, or nothing
func (m *ConfirmationModel) View() string {
	if m.reply == nil {
		return ""
	}
	return styles.Prompt.Render(RenderConfirmPrompt(
		"Check " + filepath.Base(m.File) + ". Continue with the remaining drawings?"))
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to continue, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to stop"))
	return b.String()
}
