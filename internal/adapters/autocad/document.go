package autocad

import (
	"errors"
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

const blockReferenceObject = "AcDbBlockReference"

// Document is an open AutoCAD drawing
type Document struct {
	app  *Application
	disp *ole.IDispatch
	path string
}

var _ ports.Document = (*Document)(nil)

func (d *Document) Path() string { return d.path }

func (d *Document) Layouts() ([]ports.Layout, error) {
	coll, err := getDispatch(d.disp, "Layouts")
	if err != nil {
		return nil, err
	}
	d.app.track(coll)

	count, err := intProperty(coll, "Count")
	if err != nil {
		return nil, err
	}
	layouts := make([]ports.Layout, 0, count)
	for i := 0; i < count; i++ {
		item, err := callDispatch(coll, "Item", i)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, &Layout{app: d.app, disp: d.app.track(item)})
	}
	return layouts, nil
}

func (d *Document) ActiveLayout() (ports.Layout, error) {
	disp, err := getDispatch(d.disp, "ActiveLayout")
	if err != nil {
		return nil, err
	}
	return &Layout{app: d.app, disp: d.app.track(disp)}, nil
}

func (d *Document) SetActiveLayout(layout ports.Layout) error {
	l, ok := layout.(*Layout)
	if !ok {
		return fmt.Errorf("autocad: foreign layout %T", layout)
	}
	return assignObject(
		func() error {
			_, err := oleutil.PutProperty(d.disp, "ActiveLayout", l.disp)
			return err
		},
		func() error {
			_, err := oleutil.PutPropertyRef(d.disp, "ActiveLayout", l.disp)
			return err
		},
	)
}

// assignObject sets an object property by value, which is how AutoCAD
// expects ActiveLayout to be assigned, and retries by reference when the
// server only implements PUTREF.
func assignObject(byValue, byRef func() error) error {
	err := byValue()
	if err == nil {
		return nil
	}
	if refErr := byRef(); refErr != nil {
		return errors.Join(err, refErr)
	}
	return nil
}

func (d *Document) SendCommand(command string) error {
	_, err := oleutil.CallMethod(d.disp, "SendCommand", command)
	return err
}

func (d *Document) Save() error {
	_, err := oleutil.CallMethod(d.disp, "Save")
	return err
}

func (d *Document) Close() error {
	_, err := oleutil.CallMethod(d.disp, "Close", false)
	return err
}

// Layout is a paper space or model space layout
type Layout struct {
	app  *Application
	disp *ole.IDispatch
}

var _ ports.Layout = (*Layout)(nil)

func (l *Layout) Name() (string, error) {
	return stringProperty(l.disp, "Name")
}

func (l *Layout) PlotStyle() (string, error) {
	return stringProperty(l.disp, "StyleSheet")
}

// BlockReferences returns the block references of the layout's block
func (l *Layout) BlockReferences() ([]ports.BlockReference, error) {
	block, err := getDispatch(l.disp, "Block")
	if err != nil {
		return nil, err
	}
	l.app.track(block)

	count, err := intProperty(block, "Count")
	if err != nil {
		return nil, err
	}
	var refs []ports.BlockReference
	for i := 0; i < count; i++ {
		item, err := callDispatch(block, "Item", i)
		if err != nil {
			return nil, err
		}
		l.app.track(item)
		kind, err := stringProperty(item, "ObjectName")
		if err != nil {
			return nil, err
		}
		if kind != blockReferenceObject {
			continue
		}
		refs = append(refs, &BlockReference{app: l.app, disp: item})
	}
	return refs, nil
}

// BlockReference is a placed block
type BlockReference struct {
	app  *Application
	disp *ole.IDispatch
}

var _ ports.BlockReference = (*BlockReference)(nil)

// Name returns the effective name, which dynamic blocks keep across edits
func (b *BlockReference) Name() (string, error) {
	name, err := stringProperty(b.disp, "EffectiveName")
	if err == nil && name != "" {
		return name, nil
	}
	return stringProperty(b.disp, "Name")
}

func (b *BlockReference) HasAttributes() (bool, error) {
	v, err := oleutil.GetProperty(b.disp, "HasAttributes")
	if err != nil {
		return false, err
	}
	defer v.Clear()
	has, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("autocad: HasAttributes returned %T", v.Value())
	}
	return has, nil
}

func (b *BlockReference) Attributes() ([]ports.Attribute, error) {
	v, err := oleutil.CallMethod(b.disp, "GetAttributes")
	if err != nil {
		return nil, err
	}
	defer v.Clear()

	disps, err := dispatchArray(v)
	if err != nil {
		return nil, err
	}
	attrs := make([]ports.Attribute, 0, len(disps))
	for _, d := range disps {
		b.app.track(d)
		attr, err := readAttribute(d)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// Attribute is an attribute reference of a placed block
type Attribute struct {
	disp     *ole.IDispatch
	tag      string
	value    string
	position domain.Point
}

var _ ports.Attribute = (*Attribute)(nil)

func readAttribute(d *ole.IDispatch) (*Attribute, error) {
	tag, err := stringProperty(d, "TagString")
	if err != nil {
		return nil, err
	}
	value, err := stringProperty(d, "TextString")
	if err != nil {
		return nil, err
	}
	v, err := oleutil.GetProperty(d, "InsertionPoint")
	if err != nil {
		return nil, err
	}
	defer v.Clear()
	coords, err := floatArray(v)
	if err != nil {
		return nil, err
	}
	return &Attribute{disp: d, tag: tag, value: value, position: toPoint(coords)}, nil
}

func (a *Attribute) Tag() string            { return a.tag }
func (a *Attribute) Value() string          { return a.value }
func (a *Attribute) Position() domain.Point { return a.position }

// SetValue writes value and redraws the attribute
func (a *Attribute) SetValue(value string) error {
	if _, err := oleutil.PutProperty(a.disp, "TextString", value); err != nil {
		return err
	}
	if _, err := oleutil.CallMethod(a.disp, "Update"); err != nil {
		return err
	}
	a.value = value
	return nil
}
