package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titleblock/internal/application"
	"titleblock/internal/domain"
)

type memExporter struct {
	path    string
	entries []domain.SummaryEntry
	err     error
}

func (m *memExporter) Export(path string, entries []domain.SummaryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.path = path
	m.entries = entries
	return nil
}

func TestExportSummary(t *testing.T) {
	entries := []domain.SummaryEntry{{Revision: "B", DrawingNumber: "A-1"}}

	exp := &memExporter{}
	res, err := NewExportSummaryCommand(exp, "out/summary.XLSX", entries).Execute()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, "out/summary.XLSX", exp.path)
	assert.Equal(t, entries, exp.entries)

	_, err = NewExportSummaryCommand(&memExporter{err: errors.New("disk full")}, "s.xlsx", entries).Execute()
	assert.ErrorContains(t, err, "disk full")
}

func TestExportSummaryValidation(t *testing.T) {
	entries := []domain.SummaryEntry{{Revision: "B"}}
	tests := []struct {
		name    string
		path    string
		entries []domain.SummaryEntry
		field   string
	}{
		{"no path", "", entries, "outputPath"},
		{"wrong extension", "summary.csv", entries, "outputPath"},
		{"nothing to export", "summary.xlsx", nil, "summary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExportSummaryCommand(&memExporter{}, tt.path, tt.entries).Execute()
			var ve *application.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
