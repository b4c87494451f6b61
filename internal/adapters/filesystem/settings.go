package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

type settingsFile struct {
	PurgeAll           bool              `yaml:"purge_all"`
	ETransmit          bool              `yaml:"e_transmit"`
	ZoomExtents        bool              `yaml:"zoom_extents"`
	RenameSheets       bool              `yaml:"rename_sheets"`
	PlotToPDF          bool              `yaml:"plot_to_pdf"`
	ReadReplaceEnabled bool              `yaml:"read_replace_enabled"`
	IncrementRevision  bool              `yaml:"increment_revision"`
	RevisionType       string            `yaml:"revision_type"`
	HardsetRevision    string            `yaml:"hardset_revision,omitempty"`
	PlotStyleTable     string            `yaml:"plot_style_table,omitempty"`
	Attributes         map[string]string `yaml:"attributes,omitempty"`
	ReadReplaceData    map[string]string `yaml:"read_replace_data,omitempty"`
}

func toSettingsFile(s domain.RunSettings) settingsFile {
	return settingsFile{
		PurgeAll:           s.PurgeAll,
		ETransmit:          s.ETransmit,
		ZoomExtents:        s.ZoomExtents,
		RenameSheets:       s.RenameSheets,
		PlotToPDF:          s.PlotToPDF,
		ReadReplaceEnabled: s.ReadReplaceEnabled,
		IncrementRevision:  s.IncrementRevision,
		RevisionType:       string(s.RevisionType),
		HardsetRevision:    s.HardsetRevision,
		PlotStyleTable:     s.PlotStyleTable,
		Attributes:         s.Attributes,
		ReadReplaceData:    s.ReadReplace,
	}
}

func (f settingsFile) settings() domain.RunSettings {
	s := domain.RunSettings{
		PurgeAll:           f.PurgeAll,
		ETransmit:          f.ETransmit,
		ZoomExtents:        f.ZoomExtents,
		RenameSheets:       f.RenameSheets,
		PlotToPDF:          f.PlotToPDF,
		ReadReplaceEnabled: f.ReadReplaceEnabled,
		IncrementRevision:  f.IncrementRevision,
		RevisionType:       domain.RevisionType(f.RevisionType),
		HardsetRevision:    f.HardsetRevision,
		PlotStyleTable:     f.PlotStyleTable,
		Attributes:         f.Attributes,
		ReadReplace:        f.ReadReplaceData,
	}
	if s.Attributes == nil {
		s.Attributes = map[string]string{}
	}
	if s.ReadReplace == nil {
		s.ReadReplace = map[string]string{}
	}
	return s
}

// SettingsStore implements ports.SettingsStore with a YAML document.
// Keys absent from the document keep their default.
type SettingsStore struct {
	path string
}

var _ ports.SettingsStore = (*SettingsStore)(nil)

// NewSettingsStore creates a settings store backed by path
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: ExpandHome(path)}
}

// Path returns the settings file location
func (s *SettingsStore) Path() string {
	return s.path
}

// Load reads the stored settings, or defaults when there is no file
func (s *SettingsStore) Load() (domain.RunSettings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultRunSettings(), nil
	}
	if err != nil {
		return domain.RunSettings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	f := toSettingsFile(domain.DefaultRunSettings())
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.RunSettings{}, &domain.ParseError{File: s.path, Err: err}
	}
	return f.settings(), nil
}

// Save replaces the stored settings
func (s *SettingsStore) Save(settings domain.RunSettings) error {
	data, err := yaml.Marshal(toSettingsFile(settings))
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return writeFile(s.path, data)
}
