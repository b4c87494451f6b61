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

// MappingStore implements ports.MappingStore with a YAML document of
// tag: role pairs
type MappingStore struct {
	path string
}

var _ ports.MappingStore = (*MappingStore)(nil)

// NewMappingStore creates a mapping store backed by path
func NewMappingStore(path string) *MappingStore {
	return &MappingStore{path: ExpandHome(path)}
}

// Path returns the mapping file location
func (s *MappingStore) Path() string {
	return s.path
}

// Load reads the mapping. A missing file is created empty.
func (s *MappingStore) Load() (domain.FieldMapping, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeFile(s.path, []byte("{}\n")); err != nil {
			return nil, err
		}
		return domain.FieldMapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ParseError{File: s.path, Err: err}
	}

	mapping := make(domain.FieldMapping, len(raw))
	for tag, role := range raw {
		mapping[tag] = role
	}
	return mapping, nil
}

// Save replaces the stored mapping. Tags are written in case-insensitive
// order so the document diffs cleanly.
func (s *MappingStore) Save(mapping domain.FieldMapping) error {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, tag := range mapping.Tags() {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: tag},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: mapping[tag]},
		)
	}

	data := []byte("{}\n")
	if len(doc.Content) > 0 {
		var err error
		data, err = yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode mapping: %w", err)
		}
	}
	return writeFile(s.path, data)
}
