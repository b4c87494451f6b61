package fakecad

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"titleblock/internal/domain"
)

// Fixture is the YAML form of a set of drawings:
//
//	drawings:
//	  - file: A-100.dwg
//	    active: Layout1
//	    layouts:
//	      - name: Layout1
//	        plot_style: monochrome.ctb
//	        blocks:
//	          - name: TITLEBLOCK
//	            attributes:
//	              - {tag: DWGNO, value: A-100}
type Fixture struct {
	Drawings []DrawingFixture `yaml:"drawings"`
}

type DrawingFixture struct {
	File    string          `yaml:"file"`
	Active  string          `yaml:"active,omitempty"`
	Layouts []LayoutFixture `yaml:"layouts"`
}

type LayoutFixture struct {
	Name      string         `yaml:"name"`
	PlotStyle string         `yaml:"plot_style,omitempty"`
	Blocks    []BlockFixture `yaml:"blocks,omitempty"`
}

type BlockFixture struct {
	Name       string             `yaml:"name"`
	Attributes []AttributeFixture `yaml:"attributes"`
}

type AttributeFixture struct {
	Tag   string  `yaml:"tag"`
	Value string  `yaml:"value"`
	X     float64 `yaml:"x,omitempty"`
	Y     float64 `yaml:"y,omitempty"`
	Z     float64 `yaml:"z,omitempty"`
}

// LoadFixture reads a fixture file into a new App
func LoadFixture(path string) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML into a new App
func ParseFixture(data []byte) (*App, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	app := New()
	for _, df := range f.Drawings {
		if df.File == "" {
			return nil, fmt.Errorf("fixture drawing without a file name")
		}
		app.Add(df.toDrawing())
	}
	return app, nil
}

func (df DrawingFixture) toDrawing() *Drawing {
	d := &Drawing{File: df.File, Active: df.Active}
	for _, lf := range df.Layouts {
		l := &Layout{Name: lf.Name, PlotStyle: lf.PlotStyle}
		for _, bf := range lf.Blocks {
			b := &Block{Name: bf.Name}
			for _, af := range bf.Attributes {
				b.Attributes = append(b.Attributes, &Attribute{
					Tag:      af.Tag,
					Value:    af.Value,
					Position: domain.Point{X: af.X, Y: af.Y, Z: af.Z},
				})
			}
			l.Blocks = append(l.Blocks, b)
		}
		d.Layouts = append(d.Layouts, l)
	}
	return d
}

// Snapshot returns the current state of every drawing as a fixture
func (a *App) Snapshot() Fixture {
	var f Fixture
	for _, d := range a.Drawings() {
		a.mu.Lock()
		df := DrawingFixture{File: d.File, Active: d.Active}
		for _, l := range d.Layouts {
			lf := LayoutFixture{Name: l.Name, PlotStyle: l.PlotStyle}
			for _, b := range l.Blocks {
				bf := BlockFixture{Name: b.Name}
				for _, attr := range b.Attributes {
					bf.Attributes = append(bf.Attributes, AttributeFixture{
						Tag:   attr.Tag,
						Value: attr.Value,
						X:     attr.Position.X,
						Y:     attr.Position.Y,
						Z:     attr.Position.Z,
					})
				}
				lf.Blocks = append(lf.Blocks, bf)
			}
			df.Layouts = append(df.Layouts, lf)
		}
		a.mu.Unlock()
		f.Drawings = append(f.Drawings, df)
	}
	return f
}

// WriteFixture writes the current state of every drawing to path
func (a *App) WriteFixture(path string) error {
	data, err := yaml.Marshal(a.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fixture: %w", err)
	}
	return nil
}
