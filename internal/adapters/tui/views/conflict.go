package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"titleblock/internal/adapters/tui/styles"
	"titleblock/internal/application"
	"titleblock/internal/domain"
)

// ConflictKeyMap defines the answers to a mapping conflict
type ConflictKeyMap struct {
	Keep       key.Binding
	Replace    key.Binding
	KeepAll    key.Binding
	ReplaceAll key.Binding
	Cancel     key.Binding
}

var ConflictKeys = ConflictKeyMap{
	Keep: key.NewBinding(
		key.WithKeys("k"),
		key.WithHelp("k", "keep"),
	),
	Replace: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "replace"),
	),
	KeepAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "keep all"),
	),
	ReplaceAll: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "replace all"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("c", "esc"),
		key.WithHelp("c/esc", "cancel"),
	),
}

// ConflictModel asks how to settle one mapping conflict
type ConflictModel struct {
	ViewState
	conflict application.Conflict
	reply    chan<- application.Resolution
}

// NewConflictModel creates a new conflict view model
func NewConflictModel() *ConflictModel {
	return &ConflictModel{}
}

// Ask shows req until it is answered
func (m *ConflictModel) Ask(req ConflictRequestMsg) {
	m.conflict = req.Conflict
	m.reply = req.Reply
}

// Init initializes the conflict view
func (m *ConflictModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the conflict view
func (m *ConflictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.reply == nil {
		return m, nil
	}
	var answer application.Resolution
	switch {
	case key.Matches(keyMsg, ConflictKeys.Keep):
		answer = domain.ResolveKeep
	case key.Matches(keyMsg, ConflictKeys.Replace):
		answer = domain.ResolveReplace
	case key.Matches(keyMsg, ConflictKeys.KeepAll):
		answer = domain.ResolveKeepAll
	case key.Matches(keyMsg, ConflictKeys.ReplaceAll):
		answer = domain.ResolveReplaceAll
	case key.Matches(keyMsg, ConflictKeys.Cancel):
		answer = domain.ResolveCancel
	default:
		return m, nil
	}
	m.reply <- answer
	m.reply = nil
	return m, func() tea.Msg { return SwitchToMonitorMsg{} }
}

// View renders the conflict view
func (m *ConflictModel) View() string {
	body := NewViewBuilder().
		Line(RenderLabelValue("Tag", m.conflict.Tag)).
		Line(RenderLabelValue("Stored", m.conflict.Existing)).
		Line(RenderLabelValue("Proposed", m.conflict.Proposed)).
		StringUnwrapped()

	return NewViewBuilder().
		Title("Mapping Conflict").
		Muted("This tag is already mapped to another role").
		Line(styles.Prompt.Render(body)).
		BlankLine().
		Help(ConflictKeys.Keep, ConflictKeys.Replace, ConflictKeys.KeepAll, ConflictKeys.ReplaceAll, ConflictKeys.Cancel).
		String()
}
