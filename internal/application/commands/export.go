package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"titleblock/internal/application"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// SpreadsheetExt is the extension summaries are exported with
const SpreadsheetExt = ".xlsx"

// ExportSummaryResult contains the result of a summary export
type ExportSummaryResult struct {
	Path    string
	Rows    int
	Message string
}

// ExportSummaryCommand writes summary entries to a spreadsheet
type ExportSummaryCommand struct {
	exporter   ports.SummaryExporter
	OutputPath string
	Entries    []domain.SummaryEntry
}

// NewExportSummaryCommand creates a new ExportSummaryCommand
func NewExportSummaryCommand(exporter ports.SummaryExporter, outputPath string, entries []domain.SummaryEntry) *ExportSummaryCommand {
	return &ExportSummaryCommand{
		exporter:   exporter,
		OutputPath: outputPath,
		Entries:    entries,
	}
}

// Validate checks the output path and that there is something to export
func (c *ExportSummaryCommand) Validate() error {
	if err := application.ValidateRequired("outputPath", c.OutputPath); err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(c.OutputPath), SpreadsheetExt) {
		return &application.ValidationError{
			Field:   "outputPath",
			Message: fmt.Sprintf("output path must end in %s: %s", SpreadsheetExt, c.OutputPath),
		}
	}
	if len(c.Entries) == 0 {
		return &application.ValidationError{
			Field:   "summary",
			Message: "there is no summary data to export",
		}
	}
	return nil
}

// Execute writes the spreadsheet
func (c *ExportSummaryCommand) Execute() (*ExportSummaryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.exporter.Export(c.OutputPath, c.Entries); err != nil {
		return nil, fmt.Errorf("failed to export summary: %w", err)
	}
	return &ExportSummaryResult{
		Path:    c.OutputPath,
		Rows:    len(c.Entries),
		Message: fmt.Sprintf("Exported %d summary rows to %s", len(c.Entries), c.OutputPath),
	}, nil
}
