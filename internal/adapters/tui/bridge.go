package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"titleblock/internal/adapters/tui/views"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// ErrClosed is returned to the pipeline when the interface has gone away
var ErrClosed = errors.New("interface closed")

// Bridge carries run events from the pipeline goroutine into the program
// and blocks the pipeline on questions until the user answers them
type Bridge struct {
	mu     sync.Mutex
	send   func(tea.Msg)
	done   chan struct{}
	closed sync.Once
}

var (
	_ ports.RunObserver      = (*Bridge)(nil)
	_ ports.Confirmer        = (*Bridge)(nil)
	_ ports.ConflictResolver = (*Bridge)(nil)
)

// NewBridge creates a Bridge. Events are dropped until Attach is called.
func NewBridge() *Bridge {
	return &Bridge{done: make(chan struct{})}
}

// Attach delivers events to p
func (b *Bridge) Attach(p *tea.Program) {
	b.AttachFunc(p.Send)
}

// AttachFunc delivers events to send
func (b *Bridge) AttachFunc(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

// Close releases every pending and future question with a negative answer
func (b *Bridge) Close() {
	b.closed.Do(func() { close(b.done) })
}

func (b *Bridge) emit(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (b *Bridge) RunStarted(info ports.RunInfo) { b.emit(views.RunStartedMsg{Info: info}) }

func (b *Bridge) FileStarted(path string, index, total int) {
	b.emit(views.FileStartedMsg{Path: path, Index: index, Total: total})
}

func (b *Bridge) LayoutProcessed(path, layout string, entry domain.SummaryEntry) {
	b.emit(views.LayoutProcessedMsg{Path: path, Layout: layout, Entry: entry})
}

func (b *Bridge) Skipped(entry domain.SkippedEntry) { b.emit(views.SkippedMsg{Entry: entry}) }
func (b *Bridge) Progress(percent int)              { b.emit(views.ProgressMsg{Percent: percent}) }
func (b *Bridge) Error(err error)                   { b.emit(views.RunErrorMsg{Err: err}) }
func (b *Bridge) Finished()                         { b.emit(views.RunEndedMsg{}) }
func (b *Bridge) Aborted()                          { b.emit(views.RunEndedMsg{Aborted: true}) }

// ConfirmContinue shows the question and waits for the answer
func (b *Bridge) ConfirmContinue(ctx context.Context, firstFile string) (bool, error) {
	reply := make(chan bool, 1)
	b.emit(views.ConfirmRequestMsg{File: firstFile, Reply: reply})
	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-b.done:
		return false, ErrClosed
	}
}

// Resolve shows the conflict and waits for the answer. A closed interface
// cancels the merge.
func (b *Bridge) Resolve(conflict domain.Conflict) domain.Resolution {
	reply := make(chan domain.Resolution, 1)
	b.emit(views.ConflictRequestMsg{Conflict: conflict, Reply: reply})
	select {
	case r := <-reply:
		return r
	case <-b.done:
		return domain.ResolveCancel
	}
}
