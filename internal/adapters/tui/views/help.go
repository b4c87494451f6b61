package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"titleblock/internal/adapters/tui/styles"
)

var HelpKeys = struct {
	Close key.Binding
}{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpSections lists every key map of the app so the help page never
// drifts from the bindings in use
func helpSections() []helpSection {
	return []helpSection{
		{"Run", []key.Binding{
			DefaultConfirmKeys.Confirm, DefaultConfirmKeys.Cancel,
			MonitorKeys.Stop, MonitorKeys.Map, MonitorKeys.Quit,
		}},
		{"Lists", []key.Binding{
			MonitorKeys.Skipped, MonitorKeys.Summary,
			ListKeys.Up, ListKeys.Down, ListKeys.PageUp, ListKeys.PageDown, ListKeys.Back,
			DetailKey, SummaryKeys.CopyRow, SummaryKeys.Copy,
		}},
		{"Mapping conflicts", []key.Binding{
			ConflictKeys.Keep, ConflictKeys.Replace, ConflictKeys.KeepAll, ConflictKeys.ReplaceAll, ConflictKeys.Cancel,
		}},
	}
}

// HelpModel shows every key binding
type HelpModel struct {
	ViewState
}

func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

func (m *HelpModel) Init() tea.Cmd {
	return nil
}

func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg { return SwitchToMonitorMsg{} }
		}
	}
	return m, nil
}

func (m *HelpModel) View() string {
	v := NewViewBuilder().Title("Title Block Help")
	keyCol := styles.HelpKey.Width(14)
	for _, s := range helpSections() {
		v.Line(styles.InputLabel.Render(s.title))
		for _, b := range s.bindings {
			h := b.Help()
			v.Line("  " + keyCol.Render(h.Key) + styles.HelpDesc.Render(h.Desc))
		}
		v.BlankLine()
	}
	v.Muted("Keep all and replace all answer every later conflict of the same update.").BlankLine()
	return v.Help(HelpKeys.Close).String()
}
