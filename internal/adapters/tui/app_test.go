package tui

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titleblock/internal/adapters/tui/views"
	"titleblock/internal/application/commands"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

type stubRunner struct {
	stopped  atomic.Bool
	executed atomic.Int32
	result   *commands.RunResult
}

func (r *stubRunner) Execute(ctx context.Context) (*commands.RunResult, error) {
	r.executed.Add(1)
	return r.result, nil
}

func (r *stubRunner) RequestStop() { r.stopped.Store(true) }

func TestBridgeConfirm(t *testing.T) {
	b := NewBridge()
	msgs := make(chan tea.Msg, 1)
	b.AttachFunc(func(m tea.Msg) { msgs <- m })

	go func() {
		req := (<-msgs).(views.ConfirmRequestMsg)
		req.Reply <- true
	}()
	ok, err := b.ConfirmContinue(context.Background(), "/jobs/A.dwg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBridgeCloseReleasesQuestions(t *testing.T) {
	b := NewBridge()
	b.Close()
	b.Close()

	ok, err := b.ConfirmContinue(context.Background(), "A.dwg")
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, ok)
	assert.Equal(t, domain.ResolveCancel, b.Resolve(domain.Conflict{Tag: "T1"}))
}

func TestBridgeForwardsEvents(t *testing.T) {
	b := NewBridge()
	var got []tea.Msg
	b.AttachFunc(func(m tea.Msg) { got = append(got, m) })

	b.RunStarted(ports.RunInfo{ID: "r1"})
	b.Skipped(domain.SkippedEntry{Identifier: "A.dwg"})
	b.Progress(50)
	b.Aborted()

	require.Len(t, got, 4)
	assert.Equal(t, views.ProgressMsg{Percent: 50}, got[2])
	assert.Equal(t, views.RunEndedMsg{Aborted: true}, got[3])
}

func TestAppCollectsListsAndQuits(t *testing.T) {
	runner := &stubRunner{result: &commands.RunResult{RunID: "r1", Message: "done"}}
	b := NewBridge()
	app := NewApp("/jobs", runner, nil, b, nil)

	app.Update(views.LayoutProcessedMsg{Path: "A.dwg", Layout: "L1", Entry: domain.SummaryEntry{File: "A.dwg", Revision: "C"}})
	app.Update(views.SkippedMsg{Entry: domain.SkippedEntry{Identifier: "B.dwg", Reason: "Error opening drawing"}})
	assert.Len(t, app.summaryEntries, 1)
	assert.Len(t, app.skippedEntries, 1)

	app.Update(views.SwitchToSummaryMsg{})
	assert.Equal(t, ViewSummary, app.state)
	assert.Contains(t, app.View(), "Summary")

	app.Update(views.StopRequestMsg{})
	assert.True(t, runner.stopped.Load())

	// the run goroutine is started by Init's command
	cmd := app.startRun()
	done := cmd().(views.RunDoneMsg)
	assert.Equal(t, "r1", done.Result.RunID)
	app.Wait()

	app.Update(views.SwitchToMonitorMsg{})
	_, quit := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, quit)
	assert.Equal(t, tea.Quit(), quit())
}

func TestAppConflictRoundTrip(t *testing.T) {
	b := NewBridge()
	app := NewApp("/jobs", &stubRunner{}, func(r ports.ConflictResolver) (*commands.MapFieldsResult, error) {
		return &commands.MapFieldsResult{Message: "Saved"}, nil
	}, b, nil)

	reply := make(chan domain.Resolution, 1)
	app.Update(views.ConflictRequestMsg{Conflict: domain.Conflict{Tag: "T1", Existing: "VARIABLE", Proposed: "DWG No."}, Reply: reply})
	assert.Equal(t, ViewConflict, app.state)
	assert.Contains(t, app.View(), "T1")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	select {
	case r := <-reply:
		assert.Equal(t, domain.ResolveReplaceAll, r)
	case <-time.After(time.Second):
		t.Fatal("no answer sent")
	}
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, ViewMonitor, app.state)

	mapCmd := app.startMap()
	require.NotNil(t, mapCmd)
	assert.Nil(t, app.startMap(), "one mapping update at a time")
	app.Update(mapCmd())
	assert.False(t, app.mapping)
	assert.Contains(t, app.View(), "Saved")
}

func TestAppQuitBeforeRunStarts(t *testing.T) {
	runner := &stubRunner{}
	app := NewApp("/jobs", runner, nil, NewBridge(), nil)
	run := app.startRun()

	_, quit := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, quit)

	waited := make(chan struct{})
	go func() {
		app.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on a run that never started")
	}

	assert.Nil(t, run())
	assert.Equal(t, int32(0), runner.executed.Load())
	assert.True(t, runner.stopped.Load())
}
