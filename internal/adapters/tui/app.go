package tui

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"titleblock/internal/adapters/tui/views"
	"titleblock/internal/application"
	"titleblock/internal/application/commands"
	"titleblock/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewMonitor ViewState = iota
	ViewSkipped
	ViewSummary
	ViewConflict
	ViewHelp
)

// Runner is the batch run driven by the app
type Runner interface {
	Execute(ctx context.Context) (*commands.RunResult, error)
	RequestStop()
}

// Mapper stores the reference table assignments, asking resolver about
// conflicts
type Mapper func(resolver ports.ConflictResolver) (*commands.MapFieldsResult, error)

// App is the main TUI application model
type App struct {
	runner Runner
	mapper Mapper
	bridge *Bridge
	logger *zap.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	// claimed is taken by whichever comes first, the run or a quit
	claimed atomic.Bool

	state    ViewState
	monitor  *views.MonitorModel
	skipped  *views.SkippedModel
	summary  *views.SummaryModel
	conflict *views.ConflictModel
	help     *views.HelpModel

	skippedEntries []application.SkippedEntry
	summaryEntries []application.SummaryEntry
	mapping        bool

	width  int
	height int
}

// NewApp creates a new TUI application. bridge must be the observer and
// confirmer the runner was built with. mapper may be nil.
func NewApp(folder string, runner Runner, mapper Mapper, bridge *Bridge, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		runner:   runner,
		mapper:   mapper,
		bridge:   bridge,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		finished: make(chan struct{}),
		state:    ViewMonitor,
		monitor:  views.NewMonitorModel(folder),
		skipped:  views.NewSkippedModel(),
		summary:  views.NewSummaryModel(),
		conflict: views.NewConflictModel(),
		help:     views.NewHelpModel(),
	}
}

// Init starts the run
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.monitor.Init(), a.startRun())
}

// Wait blocks until the run has returned, so the current drawing is saved
// before the process exits. It returns at once when the app quit before
// the run started.
func (a *App) Wait() {
	<-a.finished
}

func (a *App) startRun() tea.Cmd {
	return func() tea.Msg {
		if !a.claimed.CompareAndSwap(false, true) {
			return nil
		}
		defer close(a.finished)
		res, err := a.runner.Execute(a.ctx)
		return views.RunDoneMsg{Result: res, Err: err}
	}
}

func (a *App) startMap() tea.Cmd {
	if a.mapper == nil || a.mapping {
		return nil
	}
	a.mapping = true
	return func() tea.Msg {
		res, err := a.mapper(a.bridge)
		return views.MapDoneMsg{Result: res, Err: err}
	}
}

var quitKey = key.NewBinding(key.WithKeys("ctrl+c"))

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.monitor.SetSize(msg.Width, msg.Height)
		a.skipped.SetSize(msg.Width, msg.Height)
		a.summary.SetSize(msg.Width, msg.Height)
		a.conflict.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, quitKey) || (a.state == ViewMonitor && key.Matches(msg, views.MonitorKeys.Quit)) {
			return a, a.quit()
		}

	// Run events also feed the lists
	case views.LayoutProcessedMsg:
		a.summaryEntries = append(a.summaryEntries, msg.Entry)
		a.summary.SetEntries(a.summaryEntries)
	case views.SkippedMsg:
		a.skippedEntries = append(a.skippedEntries, msg.Entry)
		a.skipped.SetEntries(a.skippedEntries)

	case views.ConfirmRequestMsg:
		a.state = ViewMonitor

	case views.RunDoneMsg:
		a.handleRunDone(msg)
		return a, nil

	case views.ConflictRequestMsg:
		a.conflict.Ask(msg)
		a.state = ViewConflict
		return a, nil

	case views.MapDoneMsg:
		a.mapping = false
		if msg.Err != nil {
			a.logger.Warn("mapping update failed", zap.Error(msg.Err))
			a.monitor.SetMessage(msg.Err.Error(), true)
		} else {
			a.monitor.SetMessage(msg.Result.Message, false)
		}
		a.state = ViewMonitor
		return a, nil

	// View switching messages
	case views.SwitchToMonitorMsg:
		a.state = ViewMonitor
		return a, nil
	case views.SwitchToSkippedMsg:
		a.state = ViewSkipped
		return a, nil
	case views.SwitchToSummaryMsg:
		a.state = ViewSummary
		return a, nil
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.StopRequestMsg:
		a.runner.RequestStop()
		return a, nil
	case views.StartMapMsg:
		return a, a.startMap()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewMonitor:
		_, cmd = a.monitor.Update(msg)
	case ViewSkipped:
		_, cmd = a.skipped.Update(msg)
	case ViewSummary:
		_, cmd = a.summary.Update(msg)
	case ViewConflict:
		_, cmd = a.conflict.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	if a.state != ViewMonitor {
		// the monitor keeps following the run behind other views
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			_, monitorCmd := a.monitor.Update(msg)
			cmd = tea.Batch(cmd, monitorCmd)
		}
	}
	return a, cmd
}

func (a *App) handleRunDone(msg views.RunDoneMsg) {
	switch {
	case msg.Err != nil && errors.Is(msg.Err, context.Canceled):
		a.logger.Info("run cancelled")
	case msg.Err != nil:
		a.logger.Error("run failed", zap.Error(msg.Err))
		a.monitor.SetMessage(msg.Err.Error(), true)
	case msg.Result != nil:
		a.logger.Info("run done",
			zap.String("run_id", msg.Result.RunID),
			zap.Int("files", msg.Result.FilesProcessed),
			zap.Int("skipped", len(msg.Result.Skipped)),
			zap.Bool("aborted", msg.Result.Aborted),
		)
		a.monitor.SetMessage(msg.Result.Message, false)
	}
	// a failure before the first event leaves the monitor without an end
	a.monitor.Update(views.RunEndedMsg{Aborted: msg.Err != nil || (msg.Result != nil && msg.Result.Aborted)})
}

// quit stops the run at the next file boundary and leaves the program.
// Pending questions are answered negatively.
func (a *App) quit() tea.Cmd {
	a.runner.RequestStop()
	a.bridge.Close()
	a.cancel()
	if a.claimed.CompareAndSwap(false, true) {
		close(a.finished)
	}
	return tea.Quit
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSkipped:
		return a.skipped.View()
	case ViewSummary:
		return a.summary.View()
	case ViewConflict:
		return a.conflict.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.monitor.View()
	}
}
