package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"titleblock/internal/domain"
)

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "summary.xlsx")
	entries := []domain.SummaryEntry{
		{Revision: "B", RevisionDescription: "ISSUED", DrawingNumber: "A-1", DrawingTitle: "SITE - PLAN"},
		{Revision: "1", RevisionDescription: "N/A", DrawingNumber: "A-2", DrawingTitle: "N/A"},
	}

	require.NoError(t, NewExporter().Export(path, entries))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		Header,
		{"B", "ISSUED", "A-1", "SITE - PLAN"},
		{"1", "N/A", "A-2", "N/A"},
	}, rows)
}

func TestExportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, NewExporter().Export(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header}, rows)
}
