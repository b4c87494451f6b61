package views

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"titleblock/internal/adapters/tui/styles"
)

const logLines = 12

// MonitorKeyMap defines key bindings for the run monitor
type MonitorKeyMap struct {
	Stop    key.Binding
	Skipped key.Binding
	Summary key.Binding
	Map     key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var MonitorKeys = MonitorKeyMap{
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	Skipped: key.NewBinding(
		key.WithKeys("k"),
		key.WithHelp("k", "skipped"),
	),
	Summary: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "summary"),
	),
	Map: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "map fields"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// MonitorModel shows the progress of a batch run
type MonitorModel struct {
	ViewState
	folder   string
	progress progress.Model
	spinner  spinner.Model
	confirm  ConfirmationModel

	runID    string
	percent  int
	file     string
	index    int
	total    int
	layouts  int
	skipped  int
	log      []string
	running  bool
	stopping bool
	ended    bool
	aborted  bool
}

// NewMonitorModel creates a run monitor for folder
func NewMonitorModel(folder string) *MonitorModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Subtitle
	return &MonitorModel{
		folder:   folder,
		progress: progress.New(progress.WithGradient(styles.ProgressFrom, styles.ProgressTo)),
		spinner:  sp,
		confirm:  NewConfirmationModel(),
	}
}

// Init starts the spinner
func (m *MonitorModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Running reports whether the pipeline is still working
func (m *MonitorModel) Running() bool {
	return m.running && !m.ended
}

// Update handles run events and monitor keys
func (m *MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RunStartedMsg:
		m.running = true
		m.runID = msg.Info.ID
		m.total = msg.Info.Files
		return m, nil

	case FileStartedMsg:
		m.file = msg.Path
		m.index = msg.Index
		m.total = msg.Total
		return m, nil

	case LayoutProcessedMsg:
		m.layouts++
		line := fmt.Sprintf("%s %s  %s", styles.MarkOK, filepath.Base(msg.Path), msg.Layout)
		if msg.Entry.Revision != "" {
			line += styles.MutedText.Render("  rev " + msg.Entry.Revision)
		}
		m.appendLog(line)
		return m, nil

	case SkippedMsg:
		m.skipped++
		m.appendLog(fmt.Sprintf("%s %s: %s", styles.MarkSkip, msg.Entry.Identifier, msg.Entry.Reason))
		return m, nil

	case ProgressMsg:
		m.percent = msg.Percent
		return m, nil

	case RunErrorMsg:
		m.appendLog(fmt.Sprintf("%s %v", styles.MarkFail, msg.Err))
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case RunEndedMsg:
		m.ended = true
		m.aborted = msg.Aborted
		return m, nil

	case ConfirmRequestMsg:
		m.confirm.Ask(msg)
		return m, nil

	case tea.KeyMsg:
		if m.confirm.HandleKeyMsg(msg) {
			return m, nil
		}
		switch {
		case key.Matches(msg, MonitorKeys.Stop):
			if m.Running() && !m.stopping {
				m.stopping = true
				m.SetMessage("Stopping after the current drawing...", false)
				return m, func() tea.Msg { return StopRequestMsg{} }
			}
		case key.Matches(msg, MonitorKeys.Skipped):
			return m, func() tea.Msg { return SwitchToSkippedMsg{} }
		case key.Matches(msg, MonitorKeys.Summary):
			return m, func() tea.Msg { return SwitchToSummaryMsg{} }
		case key.Matches(msg, MonitorKeys.Map):
			if !m.Running() {
				return m, func() tea.Msg { return StartMapMsg{} }
			}
			m.SetMessage("Fields can be mapped once the run is over", true)
		case key.Matches(msg, MonitorKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}
	return m, nil
}

func (m *MonitorModel) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}

// View renders the monitor
func (m *MonitorModel) View() string {
	v := NewViewBuilder().
		Title("Title Block Run").
		Line(RenderLabelValue("Folder", m.folder))
	if m.runID != "" {
		v.Muted("run " + m.runID)
	}
	v.BlankLine()

	v.Line(m.status())
	v.Line(m.progress.ViewAs(float64(m.percent) / 100))
	v.Line(m.counts())
	v.BlankLine()

	for _, line := range m.log {
		v.Line(line)
	}
	if len(m.log) > 0 {
		v.BlankLine()
	}

	if prompt := m.confirm.View(); prompt != "" {
		v.Line(prompt).BlankLine()
	}
	v.Message(m.Message, m.MessageErr)

	if m.confirm.Pending() {
		v.Help(m.confirm.Keys.Confirm, m.confirm.Keys.Cancel)
	} else {
		v.Help(MonitorKeys.Stop, MonitorKeys.Skipped, MonitorKeys.Summary, MonitorKeys.Map, MonitorKeys.Help, MonitorKeys.Quit)
	}
	return v.String()
}

func (m *MonitorModel) counts() string {
	return styles.StatusBar.Render(
		styles.StatusKey.Render(fmt.Sprint(m.layouts)) + styles.StatusText.Render("layouts processed") + "  " +
			styles.StatusKey.Render(fmt.Sprint(m.skipped)) + styles.StatusText.Render("skipped"),
	)
}

func (m *MonitorModel) status() string {
	switch {
	case m.ended && m.aborted:
		return styles.ErrorMsg.Render("Run stopped")
	case m.ended:
		return styles.Success.Render("Run finished")
	case !m.running:
		return m.spinner.View() + " Connecting..."
	case m.file != "":
		return fmt.Sprintf("%s [%d/%d] %s", m.spinner.View(), m.index+1, m.total, filepath.Base(m.file))
	default:
		return m.spinner.View() + " Starting..."
	}
}
