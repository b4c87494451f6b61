package commands

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"titleblock/internal/application"
	"titleblock/internal/application/extraction"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// ExtractSampleResult contains the result of extracting a sample drawing
type ExtractSampleResult struct {
	Table   *ports.ReferenceTable
	Samples []domain.SampleRow
	Records []domain.AttributeRecord
	Message string
}

// ExtractSampleCommand reads the active layout of a sample drawing and
// proposes a reference table from the stored field mapping
type ExtractSampleCommand struct {
	extractor  *extraction.Adapter
	mappings   ports.MappingStore
	tables     ports.TableStore
	SamplePath string
}

// NewExtractSampleCommand creates a new ExtractSampleCommand. tables may be
// nil, in which case the proposed table is returned but not stored.
func NewExtractSampleCommand(extractor *extraction.Adapter, mappings ports.MappingStore, tables ports.TableStore, samplePath string) *ExtractSampleCommand {
	return &ExtractSampleCommand{
		extractor:  extractor,
		mappings:   mappings,
		tables:     tables,
		SamplePath: samplePath,
	}
}

// Validate checks that the sample drawing exists
func (c *ExtractSampleCommand) Validate() error {
	return application.ValidateFile("samplePath", c.SamplePath)
}

// Execute extracts the sample. The drawing is saved and closed afterwards.
func (c *ExtractSampleCommand) Execute(ctx context.Context) (*ExtractSampleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	mapping, err := c.mappings.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load field mapping: %w", err)
	}

	app, err := c.extractor.AcquireApplication(ctx)
	if err != nil {
		return nil, err
	}
	defer app.Release()

	records, plotStyle, err := c.extractor.ExtractFile(ctx, app, c.SamplePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract sample: %w", err)
	}

	samples := domain.ProposeSample(records, mapping)
	table := &ports.ReferenceTable{
		SampleFile: c.SamplePath,
		PlotStyle:  plotStyle,
		Rows:       domain.ReferenceTable(samples),
	}

	if c.tables != nil {
		if err := c.tables.Save(table); err != nil {
			return nil, fmt.Errorf("failed to save reference table: %w", err)
		}
	}

	mapped := 0
	for _, s := range samples {
		if s.Role.IsAssigned() {
			mapped++
		}
	}

	return &ExtractSampleResult{
		Table:   table,
		Samples: samples,
		Records: records,
		Message: fmt.Sprintf("Extracted %d tags (%d assigned) from %s", len(samples), mapped, c.SamplePath),
	}, nil
}

// SampleDocument renders records as a YAML mapping of tag to value in
// extraction order. A repeated tag keeps its first value.
func SampleDocument(records []domain.AttributeRecord) (string, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.Tag] {
			continue
		}
		seen[r.Tag] = true
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Tag},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Value, Style: yaml.DoubleQuotedStyle},
		)
	}
	if len(doc.Content) == 0 {
		return "{}\n", nil
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render sample: %w", err)
	}
	return string(out), nil
}
