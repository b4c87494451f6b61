// Package xlsx writes the summary ledger to an Excel workbook
package xlsx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// SheetName is the worksheet holding the summary
const SheetName = "Summary"

// Header is the first row of the summary sheet
var Header = []string{"Revision", "Revision Description", "Drawing Number", "Drawing Title"}

// Exporter implements ports.SummaryExporter
type Exporter struct{}

var _ ports.SummaryExporter = (*Exporter)(nil)

// NewExporter creates a new Exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes entries to a new workbook at path, one row per entry in
// ledger order
func (e *Exporter) Export(path string, entries []domain.SummaryEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{entry.Revision, entry.RevisionDescription, entry.DrawingNumber, entry.DrawingTitle}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(Header))
	if err := f.SetColWidth(SheetName, "A", lastCol, 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output folder: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
