package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"titleblock/internal/ports"
)

// DefaultDrawingPattern matches the drawings directly inside a folder
const DefaultDrawingPattern = "*.dwg"

// DrawingFinder implements ports.DrawingFinder with a doublestar pattern
// evaluated relative to the searched folder. Use **/*.dwg to descend into
// sub folders.
type DrawingFinder struct {
	pattern string
}

var _ ports.DrawingFinder = (*DrawingFinder)(nil)

// NewDrawingFinder creates a finder for pattern, DefaultDrawingPattern
// when empty
func NewDrawingFinder(pattern string) (*DrawingFinder, error) {
	if pattern == "" {
		pattern = DefaultDrawingPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid drawing pattern: %s", pattern)
	}
	return &DrawingFinder{pattern: pattern}, nil
}

// Pattern returns the pattern files are matched against
func (f *DrawingFinder) Pattern() string {
	return f.pattern
}

// Find returns the regular files of folder matching the pattern, sorted
func (f *DrawingFinder) Find(folder string) ([]string, error) {
	folder = ExpandHome(folder)
	fsys := os.DirFS(folder)

	matches, err := doublestar.Glob(fsys, f.pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", folder, err)
	}

	var files []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(folder, filepath.FromSlash(m)))
	}
	sort.Strings(files)
	return files, nil
}
