package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"titleblock/internal/adapters/tui/styles"
	"titleblock/internal/application"
)

var DetailKey = key.NewBinding(
	key.WithKeys("enter", "d"),
	key.WithHelp("enter", "detail"),
)

// SkippedModel lists the files and layouts skipped by the run
type SkippedModel struct {
	ViewState
	entries    []application.SkippedEntry
	pager      *Paginator
	showDetail bool
}

// NewSkippedModel creates a new skipped view model
func NewSkippedModel() *SkippedModel {
	return &SkippedModel{pager: NewPaginator(10)}
}

// SetEntries replaces the listed entries
func (m *SkippedModel) SetEntries(entries []application.SkippedEntry) {
	m.entries = entries
	m.pager.SetTotal(len(entries))
}

// SetSize updates the view dimensions
func (m *SkippedModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(pageSize(height))
}

// Init initializes the skipped view
func (m *SkippedModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the skipped view
func (m *SkippedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, ListKeys.Back):
		if m.showDetail {
			m.showDetail = false
			return m, nil
		}
		return m, func() tea.Msg { return SwitchToMonitorMsg{} }
	case key.Matches(keyMsg, DetailKey):
		m.showDetail = !m.showDetail && len(m.entries) > 0
	default:
		if navigate(m.pager, keyMsg) {
			m.showDetail = false
		}
	}
	return m, nil
}

// View renders the skipped view
func (m *SkippedModel) View() string {
	v := NewViewBuilder().Title("Skipped")
	if len(m.entries) == 0 {
		v.Muted("Nothing skipped").BlankLine()
		return v.Help(ListKeys.Back).String()
	}

	if m.showDetail {
		e := m.entries[m.pager.Cursor()]
		v.Line(RenderLabelValue("Item", e.Identifier)).
			Line(RenderLabelValue("Reason", e.Reason)).
			Line(RenderLabelValue("At", e.At.Format("2006-01-02 15:04:05"))).
			BlankLine().
			Muted(e.Detail).
			BlankLine()
		return v.Help(DetailKey, ListKeys.Back).String()
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		e := m.entries[i]
		row := fmt.Sprintf("%s  %s", e.Identifier, styles.WarningMsg.Render(e.Reason))
		if i == m.pager.Cursor() {
			row = styles.RowSelected.Render(e.Identifier + "  " + e.Reason)
		}
		v.Line(row)
	}
	v.BlankLine().
		Muted(fmt.Sprintf("page %d/%d, %d entries", m.pager.CurrentPage(), m.pager.TotalPages(), len(m.entries))).
		BlankLine().
		Help(ListKeys.Up, ListKeys.Down, DetailKey, ListKeys.Back)
	return v.String()
}
