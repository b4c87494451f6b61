package ports

import (
	"context"
	"time"

	"titleblock/internal/domain"
)

// RunInfo identifies a batch run when it starts
type RunInfo struct {
	ID        string
	Folder    string
	Files     int
	StartedAt time.Time
}

// RunObserver receives batch run events. Calls are made from the run's
// goroutine in order; implementations must not block for long.
type RunObserver interface {
	RunStarted(info RunInfo)
	FileStarted(path string, index, total int)
	LayoutProcessed(path, layout string, entry domain.SummaryEntry)
	Skipped(entry domain.SkippedEntry)
	// Progress reports the share of files done, 0 to 100
	Progress(percent int)
	Error(err error)
	Finished()
	Aborted()
}

// Confirmer asks the user whether a run should continue after its first file
type Confirmer interface {
	ConfirmContinue(ctx context.Context, firstFile string) (bool, error)
}

// ConflictResolver asks the user how to settle a mapping conflict
type ConflictResolver interface {
	Resolve(conflict domain.Conflict) domain.Resolution
}
