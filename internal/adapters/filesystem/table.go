package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"titleblock/internal/application"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

type tableFile struct {
	SampleFile string     `yaml:"sample_file"`
	PlotStyle  string     `yaml:"plot_style,omitempty"`
	Rows       []tableRow `yaml:"rows"`
}

type tableRow struct {
	Tag         string `yaml:"tag"`
	Value       string `yaml:"value"`
	Assignment  string `yaml:"assignment,omitempty"`
	StaticValue string `yaml:"static_value,omitempty"`
}

// TableStore implements ports.TableStore with a YAML document the user
// edits between extracting a sample and running a batch
type TableStore struct {
	path string
}

var _ ports.TableStore = (*TableStore)(nil)

// NewTableStore creates a table store backed by path
func NewTableStore(path string) *TableStore {
	return &TableStore{path: ExpandHome(path)}
}

// Path returns the table file location
func (s *TableStore) Path() string {
	return s.path
}

// Load reads the reference table. Unknown assignments and duplicate tags
// are parse errors.
func (s *TableStore) Load() (*ports.ReferenceTable, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", application.ErrNoReferenceTable, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reference table: %w", err)
	}

	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &domain.ParseError{File: s.path, Err: err}
	}

	table := &ports.ReferenceTable{SampleFile: f.SampleFile, PlotStyle: f.PlotStyle}
	for i, r := range f.Rows {
		assignment := strings.TrimSpace(r.Assignment)
		if assignment != "" && !domain.IsAssignmentOption(assignment) {
			return nil, &domain.ParseError{
				File: s.path,
				Err:  fmt.Errorf("row %d (%s): unknown assignment %q", i+1, r.Tag, assignment),
			}
		}
		table.Rows = append(table.Rows, domain.TableRow{
			Tag:         strings.TrimSpace(r.Tag),
			Role:        domain.ParseRole(assignment),
			Value:       r.Value,
			StaticValue: r.StaticValue,
		})
	}

	if err := domain.ValidateTable(table.Rows); err != nil {
		return nil, &domain.ParseError{File: s.path, Err: err}
	}
	return table, nil
}

// Save replaces the stored table
func (s *TableStore) Save(table *ports.ReferenceTable) error {
	if table == nil {
		return fmt.Errorf("no reference table to save")
	}
	f := tableFile{SampleFile: table.SampleFile, PlotStyle: table.PlotStyle}
	for _, r := range table.Rows {
		f.Rows = append(f.Rows, tableRow{
			Tag:         r.Tag,
			Value:       r.Value,
			Assignment:  r.Role.String(),
			StaticValue: r.StaticValue,
		})
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode reference table: %w", err)
	}
	return writeFile(s.path, data)
}
