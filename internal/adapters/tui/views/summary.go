package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"titleblock/internal/adapters/tui/styles"
	"titleblock/internal/application"
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// SummaryKeyMap defines key bindings for the summary view
type SummaryKeyMap struct {
	Copy    key.Binding
	CopyRow key.Binding
}

var SummaryKeys = SummaryKeyMap{
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy all"),
	),
	CopyRow: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "copy row"),
	),
}

// SummaryModel lists the summary entries of the run
type SummaryModel struct {
	ViewState
	entries []application.SummaryEntry
	pager   *Paginator
}

// NewSummaryModel creates a new summary view model
func NewSummaryModel() *SummaryModel {
	return &SummaryModel{pager: NewPaginator(10)}
}

// SetEntries replaces the listed entries
func (m *SummaryModel) SetEntries(entries []application.SummaryEntry) {
	m.entries = entries
	m.pager.SetTotal(len(entries))
}

// SetSize updates the view dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(pageSize(height))
}

// Init initializes the summary view
func (m *SummaryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the summary view
func (m *SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, ListKeys.Back):
		m.ClearMessage()
		return m, func() tea.Msg { return SwitchToMonitorMsg{} }
	case key.Matches(keyMsg, SummaryKeys.Copy):
		m.copy(m.entries)
	case key.Matches(keyMsg, SummaryKeys.CopyRow):
		if c := m.pager.Cursor(); c < len(m.entries) {
			m.copy(m.entries[c : c+1])
		}
	default:
		navigate(m.pager, keyMsg)
	}
	return m, nil
}

func (m *SummaryModel) copy(entries []application.SummaryEntry) {
	if len(entries) == 0 {
		m.SetMessage("Nothing to copy", true)
		return
	}
	if err := copyToClipboard(SummaryTSV(entries)); err != nil {
		m.SetMessage("Copy failed: "+err.Error(), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %d rows", len(entries)), false)
}

// SummaryTSV renders entries as tab separated rows with a header, ready to
// paste into a spreadsheet
func SummaryTSV(entries []application.SummaryEntry) string {
	var b strings.Builder
	b.WriteString("Revision\tRevision Description\tDrawing Number\tDrawing Title\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", e.Revision, e.RevisionDescription, e.DrawingNumber, e.DrawingTitle)
	}
	return b.String()
}

// View renders the summary view
func (m *SummaryModel) View() string {
	v := NewViewBuilder().Title("Summary")
	if len(m.entries) == 0 {
		v.Muted("No layouts processed yet").BlankLine()
		return v.Help(ListKeys.Back).String()
	}

	v.Line(styles.RowHeader.Render(fmt.Sprintf("%-6s %-28s %-16s %s", "REV", "DESCRIPTION", "DWG No.", "TITLE")))
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		e := m.entries[i]
		row := fmt.Sprintf("%-6s %-28s %-16s %s", e.Revision, truncate(e.RevisionDescription, 28), truncate(e.DrawingNumber, 16), e.DrawingTitle)
		if i == m.pager.Cursor() {
			row = styles.RowSelected.Render(row)
		}
		v.Line(row)
	}
	v.BlankLine().
		Muted(fmt.Sprintf("page %d/%d, %d rows", m.pager.CurrentPage(), m.pager.TotalPages(), len(m.entries))).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(ListKeys.Up, ListKeys.Down, SummaryKeys.CopyRow, SummaryKeys.Copy, ListKeys.Back)
	return v.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
