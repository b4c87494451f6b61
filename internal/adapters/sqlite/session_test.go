package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Open(path))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "nested", "session.db"))

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, version)

	started := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.BeginRun(ctx, ports.RunRecord{ID: "run-1", Folder: "/jobs", Files: 2, Status: "running", StartedAt: started}))

	skipped := domain.SkippedEntry{Identifier: "A.dwg - L1", Reason: "missing", Detail: "stack", At: started.Add(time.Second)}
	require.NoError(t, s.AddSkipped(ctx, "run-1", skipped))
	summary := domain.SummaryEntry{File: "B.dwg", Layout: "L1", Revision: "C", RevisionDescription: "N/A", DrawingNumber: "B-1", DrawingTitle: "PLAN"}
	require.NoError(t, s.AddSummary(ctx, "run-1", summary))
	require.NoError(t, s.EndRun(ctx, "run-1", "finished"))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "finished", runs[0].Status)
	assert.True(t, runs[0].StartedAt.Equal(started))
	assert.NotNil(t, runs[0].EndedAt)

	gotSkipped, err := s.ListSkipped(ctx)
	require.NoError(t, err)
	require.Len(t, gotSkipped, 1)
	assert.Equal(t, skipped.Reason, gotSkipped[0].Reason)
	assert.True(t, gotSkipped[0].At.Equal(skipped.At))

	gotSummary, err := s.ListSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.SummaryEntry{summary}, gotSummary)

	assert.Error(t, s.EndRun(ctx, "nope", "finished"))
	assert.Error(t, s.AddSummary(ctx, "nope", summary), "entries need a known run")
}

func TestStoreClearPrunesRuns(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, MemoryPath)

	now := time.Now()
	require.NoError(t, s.BeginRun(ctx, ports.RunRecord{ID: "r1", Folder: "f", Files: 1, Status: "running", StartedAt: now}))
	require.NoError(t, s.AddSummary(ctx, "r1", domain.SummaryEntry{File: "A.dwg"}))
	require.NoError(t, s.AddSkipped(ctx, "r1", domain.SkippedEntry{Identifier: "B.dwg", At: now}))
	require.NoError(t, s.EndRun(ctx, "r1", "finished"))

	require.NoError(t, s.ClearSummary(ctx))
	summary, err := s.ListSummary(ctx)
	require.NoError(t, err)
	assert.Empty(t, summary)
	runs, _ := s.ListRuns(ctx)
	assert.Len(t, runs, 1, "run still owns a skipped entry")

	require.NoError(t, s.ClearSkipped(ctx))
	runs, _ = s.ListRuns(ctx)
	assert.Empty(t, runs)
}

func TestStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	s := NewStore()
	require.NoError(t, s.Open(path))
	require.NoError(t, s.BeginRun(ctx, ports.RunRecord{ID: "r1", Folder: "f", Status: "running", StartedAt: time.Now()}))
	require.NoError(t, s.AddSummary(ctx, "r1", domain.SummaryEntry{File: "A.dwg", Revision: "B"}))
	require.NoError(t, s.Close())

	again := openStore(t, path)
	entries, err := again.ListSummary(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "B", entries[0].Revision)
}
