// Package fakecad is an in-memory CAD application. It backs the test suite
// and the simulate mode of the command line tools.
package fakecad

import (
	"fmt"
	"path/filepath"
	"sync"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// Op names an operation that can be made to fail
type Op string

const (
	OpConnect        Op = "connect"
	OpOpen           Op = "open"
	OpLayouts        Op = "layouts"
	OpActiveLayout   Op = "active-layout"
	OpLayoutName     Op = "layout-name"
	OpActivateLayout Op = "activate-layout"
	OpPlotStyle      Op = "plot-style"
	OpBlocks         Op = "blocks"
	OpAttributes     Op = "attributes"
	OpSetValue       Op = "set-value"
	OpActivate       Op = "activate"
	OpCommand        Op = "command"
	OpSave           Op = "save"
	OpClose          Op = "close"
)

// Attribute is a stored attribute
type Attribute struct {
	Tag      string
	Value    string
	Position domain.Point
}

// Block is a stored block reference
type Block struct {
	Name       string
	Attributes []*Attribute
}

// Layout is a stored layout
type Layout struct {
	Name      string
	PlotStyle string
	Blocks    []*Block
}

// Drawing is a stored drawing file
type Drawing struct {
	File    string
	Active  string
	Layouts []*Layout
}

// SentCommand is a command received by a document
type SentCommand struct {
	File    string
	Command string
}

type failure struct {
	times int
	panic bool
}

// App is an in-memory CAD application holding drawings by file name
type App struct {
	mu       sync.Mutex
	drawings map[string]*Drawing
	open     map[string]*document
	failures map[Op]*failure

	commands []SentCommand
	saves    map[string]int
	closes   map[string]int
	connects int
	releases int
}

var _ ports.CADConnector = (*App)(nil)

// New creates an App holding drawings
func New(drawings ...*Drawing) *App {
	a := &App{
		drawings: make(map[string]*Drawing),
		open:     make(map[string]*document),
		failures: make(map[Op]*failure),
		saves:    make(map[string]int),
		closes:   make(map[string]int),
	}
	for _, d := range drawings {
		a.Add(d)
	}
	return a
}

// Add stores d under its base file name
func (a *App) Add(d *Drawing) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.drawings[filepath.Base(d.File)] = d
}

// FailNext makes the next times calls of op return an error
func (a *App) FailNext(op Op, times int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[op] = &failure{times: times}
}

// PanicNext makes the next call of op panic
func (a *App) PanicNext(op Op) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[op] = &failure{times: 1, panic: true}
}

// check consumes an injected failure of op. Callers hold a.mu.
func (a *App) check(op Op) error {
	f, ok := a.failures[op]
	if !ok || f.times <= 0 {
		return nil
	}
	f.times--
	if f.panic {
		panic(fmt.Sprintf("fakecad: injected %s panic", op))
	}
	return fmt.Errorf("fakecad: injected %s failure", op)
}

// Connect returns a new application handle
func (a *App) Connect() (ports.CADApplication, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.check(OpConnect); err != nil {
		return nil, err
	}
	a.connects++
	return &handle{app: a}, nil
}

// Commands returns every command sent so far
func (a *App) Commands() []SentCommand {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]SentCommand, len(a.commands))
	copy(out, a.commands)
	return out
}

// Saves returns how many times file was saved
func (a *App) Saves(file string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves[filepath.Base(file)]
}

// Closes returns how many times file was closed
func (a *App) Closes(file string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closes[filepath.Base(file)]
}

// Connections returns how many handles were handed out and released
func (a *App) Connections() (connects, releases int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connects, a.releases
}

// IsOpen reports whether file is currently open
func (a *App) IsOpen(file string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.open[filepath.Base(file)]
	return ok
}

// Value returns the value of the first attribute tagged tag on a layout of file
func (a *App) Value(file, layout, tag string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.drawings[filepath.Base(file)]
	if !ok {
		return "", false
	}
	for _, l := range d.Layouts {
		if l.Name != layout {
			continue
		}
		for _, b := range l.Blocks {
			for _, attr := range b.Attributes {
				if attr.Tag == tag {
					return attr.Value, true
				}
			}
		}
	}
	return "", false
}

// Drawings returns the stored drawings sorted by file name
func (a *App) Drawings() []*Drawing {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Drawing, 0, len(a.drawings))
	for _, d := range a.drawings {
		out = append(out, d)
	}
	sortDrawings(out)
	return out
}

type handle struct {
	app *App
}

func (h *handle) Open(path string) (ports.Document, error) {
	h.app.mu.Lock()
	defer h.app.mu.Unlock()
	if err := h.app.check(OpOpen); err != nil {
		return nil, err
	}
	key := filepath.Base(path)
	if doc, ok := h.app.open[key]; ok {
		return doc, nil
	}
	d, ok := h.app.drawings[key]
	if !ok {
		return nil, fmt.Errorf("fakecad: no drawing named %s", key)
	}
	doc := &document{app: h.app, drawing: d, path: path}
	h.app.open[key] = doc
	return doc, nil
}

func (h *handle) ActiveDocument() (ports.Document, error) {
	h.app.mu.Lock()
	defer h.app.mu.Unlock()
	for _, doc := range h.app.open {
		if doc.active {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("fakecad: no active document")
}

func (h *handle) Activate(doc ports.Document) error {
	h.app.mu.Lock()
	defer h.app.mu.Unlock()
	if err := h.app.check(OpActivate); err != nil {
		return err
	}
	target, ok := doc.(*document)
	if !ok {
		return fmt.Errorf("fakecad: foreign document %T", doc)
	}
	for _, d := range h.app.open {
		d.active = d == target
	}
	return nil
}

func (h *handle) Release() {
	h.app.mu.Lock()
	defer h.app.mu.Unlock()
	h.app.releases++
}
