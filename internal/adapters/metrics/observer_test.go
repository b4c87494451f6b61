package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

func TestObserverCounts(t *testing.T) {
	o := NewObserver()

	o.RunStarted(ports.RunInfo{ID: "r1"})
	o.FileStarted("A.dwg", 0, 2)
	o.LayoutProcessed("A.dwg", "L1", domain.SummaryEntry{})
	o.Skipped(domain.SkippedEntry{Reason: "The following fields are missing from the layout: T3"})
	o.Skipped(domain.SkippedEntry{Reason: "The following fields are missing from the layout: T4, T5"})
	o.Skipped(domain.SkippedEntry{Reason: "There was no layout data retrieved from the document."})
	o.Progress(50)
	o.Error(errors.New("boom"))
	o.Finished()

	assert.Equal(t, 1.0, testutil.ToFloat64(o.filesStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.layoutsDone))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.layoutsSkipped.WithLabelValues("The following fields are missing from the layout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.layoutsSkipped.WithLabelValues("There was no layout data retrieved from the document")))
	assert.Equal(t, 50.0, testutil.ToFloat64(o.progress))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.errors))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.runs.WithLabelValues("finished")))
}

func TestWriteTextfile(t *testing.T) {
	o := NewObserver()
	o.FileStarted("A.dwg", 0, 1)
	o.Aborted()

	path := filepath.Join(t.TempDir(), "titleblock.prom")
	require.NoError(t, o.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "titleblock_files_processed_total 1"), out)
	assert.True(t, strings.Contains(out, `titleblock_runs_total{status="aborted"} 1`), out)
}

func TestStage(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{"Error opening drawing: open failed after 3 attempts: boom", "Error opening drawing"},
		{"There was no layout data retrieved from the document.", "There was no layout data retrieved from the document"},
		{"Error processing file", "Error processing file"},
	}
	for _, tt := range tests {
		if got := Stage(tt.reason); got != tt.want {
			t.Errorf("Stage(%q) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
