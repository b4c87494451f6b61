package application

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// Run statuses kept by the session store
const (
	RunRunning  = "running"
	RunFinished = "finished"
	RunAborted  = "aborted"
)

// SessionRecorder persists run events into a session store. Store
// failures are logged and never interrupt the run.
type SessionRecorder struct {
	store  ports.SessionStore
	logger *zap.Logger
	ctx    context.Context

	mu    sync.Mutex
	runID string
}

var _ ports.RunObserver = (*SessionRecorder)(nil)

// NewSessionRecorder creates a recorder writing to store
func NewSessionRecorder(ctx context.Context, store ports.SessionStore, logger *zap.Logger) *SessionRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRecorder{
		store:  store,
		logger: logger,
		ctx:    context.WithoutCancel(ctx),
	}
}

// RunID returns the id of the run being recorded
func (r *SessionRecorder) RunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runID
}

func (r *SessionRecorder) RunStarted(info ports.RunInfo) {
	r.mu.Lock()
	r.runID = info.ID
	r.mu.Unlock()

	err := r.store.BeginRun(r.ctx, ports.RunRecord{
		ID:        info.ID,
		Folder:    info.Folder,
		Files:     info.Files,
		Status:    RunRunning,
		StartedAt: info.StartedAt,
	})
	r.check("begin run", err)
}

func (r *SessionRecorder) FileStarted(string, int, int) {}

func (r *SessionRecorder) LayoutProcessed(path, layout string, entry domain.SummaryEntry) {
	r.check("add summary", r.store.AddSummary(r.ctx, r.RunID(), entry))
}

func (r *SessionRecorder) Skipped(entry domain.SkippedEntry) {
	r.check("add skipped", r.store.AddSkipped(r.ctx, r.RunID(), entry))
}

func (r *SessionRecorder) Progress(int) {}

func (r *SessionRecorder) Error(error) {}

func (r *SessionRecorder) Finished() {
	r.end(RunFinished)
}

func (r *SessionRecorder) Aborted() {
	r.end(RunAborted)
}

func (r *SessionRecorder) end(status string) {
	id := r.RunID()
	if id == "" {
		return
	}
	r.check("end run", r.store.EndRun(r.ctx, id, status))
}

func (r *SessionRecorder) check(op string, err error) {
	if err != nil {
		r.logger.Warn("session store write failed", zap.String("op", op), zap.String("run_id", r.RunID()), zap.Error(err))
	}
}
