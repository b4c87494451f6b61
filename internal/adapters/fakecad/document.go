package fakecad

import (
	"fmt"
	"path/filepath"
	"sort"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

type document struct {
	app     *App
	drawing *Drawing
	path    string
	active  bool
	closed  bool
}

func (d *document) Path() string { return d.path }

func (d *document) Layouts() ([]ports.Layout, error) {
	d.app.mu.Lock()
	defer d.app.mu.Unlock()
	if err := d.usable(OpLayouts); err != nil {
		return nil, err
	}
	out := make([]ports.Layout, 0, len(d.drawing.Layouts))
	for _, l := range d.drawing.Layouts {
		out = append(out, &layout{app: d.app, data: l})
	}
	return out, nil
}

func (d *document) ActiveLayout() (ports.Layout, error) {
	d.app.mu.Lock()
	defer d.app.mu.Unlock()
	if err := d.usable(OpActiveLayout); err != nil {
		return nil, err
	}
	for _, l := range d.drawing.Layouts {
		if l.Name == d.drawing.Active {
			return &layout{app: d.app, data: l}, nil
		}
	}
	for _, l := range d.drawing.Layouts {
		if l.Name != domain.ModelLayoutName {
			return &layout{app: d.app, data: l}, nil
		}
	}
	return nil, fmt.Errorf("fakecad: %s has no paper space layout", d.path)
}

func (d *document) SetActiveLayout(l ports.Layout) error {
	d.app.mu.Lock()
	defer d.app.mu.Unlock()
	if err := d.usable(OpActivateLayout); err != nil {
		return err
	}
	fl, ok := l.(*layout)
	if !ok {
		return fmt.Errorf("fakecad: foreign layout %T", l)
	}
	d.drawing.Active = fl.data.Name
	return nil
}

func (d *document) SendCommand(command string) error {
	d.app.mu.Lock()
	defer d.app.mu.Unlock()
	if err := d.usable(OpCommand); err != nil {
		return err
	}
	d.app.commands = append(d.app.commands, SentCommand{File: filepath.Base(d.path), Command: command})
	return nil
}

func (d *document) Save() error {
	d.app.mu.Lock()
	defer d.app.mu.Unlock()
	if err := d.usable(OpSave); err != nil {
		return err
	}
	d.app.saves[filepath.Base(d.path)]++
	return nil
}

func (d *document) Close() error {
	d.app.mu.Lock()
	defer d.app.mu.Unlock()
	if err := d.usable(OpClose); err != nil {
		return err
	}
	d.closed = true
	key := filepath.Base(d.path)
	delete(d.app.open, key)
	d.app.closes[key]++
	return nil
}

// usable fails once the document is closed or when op has a failure
// queued. Callers hold app.mu.
func (d *document) usable(op Op) error {
	if d.closed {
		return fmt.Errorf("fakecad: %s is closed", d.path)
	}
	return d.app.check(op)
}

type layout struct {
	app  *App
	data *Layout
}

func (l *layout) Name() (string, error) {
	l.app.mu.Lock()
	defer l.app.mu.Unlock()
	if err := l.app.check(OpLayoutName); err != nil {
		return "", err
	}
	return l.data.Name, nil
}

func (l *layout) PlotStyle() (string, error) {
	l.app.mu.Lock()
	defer l.app.mu.Unlock()
	if err := l.app.check(OpPlotStyle); err != nil {
		return "", err
	}
	return l.data.PlotStyle, nil
}

func (l *layout) BlockReferences() ([]ports.BlockReference, error) {
	l.app.mu.Lock()
	defer l.app.mu.Unlock()
	if err := l.app.check(OpBlocks); err != nil {
		return nil, err
	}
	out := make([]ports.BlockReference, 0, len(l.data.Blocks))
	for _, b := range l.data.Blocks {
		out = append(out, &block{app: l.app, data: b})
	}
	return out, nil
}

type block struct {
	app  *App
	data *Block
}

func (b *block) Name() (string, error) { return b.data.Name, nil }

func (b *block) HasAttributes() (bool, error) {
	b.app.mu.Lock()
	defer b.app.mu.Unlock()
	return len(b.data.Attributes) > 0, nil
}

func (b *block) Attributes() ([]ports.Attribute, error) {
	b.app.mu.Lock()
	defer b.app.mu.Unlock()
	if err := b.app.check(OpAttributes); err != nil {
		return nil, err
	}
	out := make([]ports.Attribute, 0, len(b.data.Attributes))
	for _, a := range b.data.Attributes {
		out = append(out, &attribute{app: b.app, data: a, tag: a.Tag, value: a.Value, pos: a.Position})
	}
	return out, nil
}

type attribute struct {
	app   *App
	data  *Attribute
	tag   string
	value string
	pos   domain.Point
}

func (a *attribute) Tag() string            { return a.tag }
func (a *attribute) Value() string          { return a.value }
func (a *attribute) Position() domain.Point { return a.pos }

func (a *attribute) SetValue(value string) error {
	a.app.mu.Lock()
	defer a.app.mu.Unlock()
	if err := a.app.check(OpSetValue); err != nil {
		return err
	}
	a.data.Value = value
	a.value = value
	return nil
}

func sortDrawings(ds []*Drawing) {
	sort.Slice(ds, func(i, j int) bool {
		return filepath.Base(ds[i].File) < filepath.Base(ds[j].File)
	})
}
