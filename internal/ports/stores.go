package ports

import (
	"context"
	"time"

	"titleblock/internal/domain"
)

// MappingStore persists the tag to role dictionary
type MappingStore interface {
	// Load reads the mapping, creating an empty one if none exists
	Load() (domain.FieldMapping, error)
	Save(mapping domain.FieldMapping) error
	Path() string
}

// ReferenceTable is the reference table built from a sample drawing
type ReferenceTable struct {
	SampleFile string
	PlotStyle  string
	Rows       []domain.TableRow
}

// TableStore persists the reference table
type TableStore interface {
	Load() (*ReferenceTable, error)
	Save(table *ReferenceTable) error
}

// SettingsStore persists run settings
type SettingsStore interface {
	// Load returns the stored settings, or defaults when none are stored
	Load() (domain.RunSettings, error)
	Save(settings domain.RunSettings) error
}

// DrawingFinder lists the drawings of a folder
type DrawingFinder interface {
	// Find returns the matching files of folder, sorted
	Find(folder string) ([]string, error)
}

// RunRecord describes a stored run
type RunRecord struct {
	ID        string
	Folder    string
	Files     int
	Status    string
	StartedAt time.Time
	EndedAt   *time.Time
}

// SessionStore keeps skipped entries and summary entries across restarts
type SessionStore interface {
	Open(path string) error
	Close() error

	BeginRun(ctx context.Context, run RunRecord) error
	EndRun(ctx context.Context, runID, status string) error
	ListRuns(ctx context.Context) ([]RunRecord, error)

	AddSkipped(ctx context.Context, runID string, entry domain.SkippedEntry) error
	ListSkipped(ctx context.Context) ([]domain.SkippedEntry, error)
	ClearSkipped(ctx context.Context) error

	AddSummary(ctx context.Context, runID string, entry domain.SummaryEntry) error
	ListSummary(ctx context.Context) ([]domain.SummaryEntry, error)
	ClearSummary(ctx context.Context) error
}

// SummaryExporter writes summary entries to a spreadsheet document
type SummaryExporter interface {
	Export(path string, entries []domain.SummaryEntry) error
}
