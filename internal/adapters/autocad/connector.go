// Package autocad drives a running AutoCAD through its COM automation
// interface.
//
// COM objects are bound to the thread that created them. Connect locks the
// calling goroutine to its OS thread until the handle is released, so a
// handle must be used and released from the goroutine that acquired it.
package autocad

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"go.uber.org/zap"

	"titleblock/internal/ports"
)

// DefaultProgID is the automation server of the current AutoCAD release
const DefaultProgID = "AutoCAD.Application"

// Connector reaches AutoCAD through COM
type Connector struct {
	progID  string
	visible bool
	logger  *zap.Logger
}

var _ ports.CADConnector = (*Connector)(nil)

// Option configures the Connector
type Option func(*Connector)

// WithVisible shows the application window after connecting
func WithVisible(visible bool) Option {
	return func(c *Connector) {
		c.visible = visible
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Connector) {
		c.logger = logger
	}
}

// NewConnector creates a Connector for progID, or DefaultProgID when empty
func NewConnector(progID string, opts ...Option) *Connector {
	if progID == "" {
		progID = DefaultProgID
	}
	c := &Connector{progID: progID, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect attaches to the running application, starting one if none runs
func (c *Connector) Connect() (ports.CADApplication, error) {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE means COM was already initialized on this thread
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("failed to initialize COM: %w", err)
		}
	}

	disp, err := c.attach()
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, err
	}

	if c.visible {
		if _, err := oleutil.PutProperty(disp, "Visible", true); err != nil {
			c.logger.Warn("failed to show application window", zap.Error(err))
		}
	}
	return &Application{disp: disp, logger: c.logger}, nil
}

func (c *Connector) attach() (*ole.IDispatch, error) {
	clsid, err := ole.CLSIDFromProgID(c.progID)
	if err != nil {
		return nil, fmt.Errorf("unknown automation server %s: %w", c.progID, err)
	}

	unknown, err := ole.GetActiveObject(clsid, ole.IID_IUnknown)
	if err != nil {
		c.logger.Info("no running instance, starting one", zap.String("prog_id", c.progID))
		unknown, err = oleutil.CreateObject(c.progID)
		if err != nil {
			return nil, fmt.Errorf("failed to start %s: %w", c.progID, err)
		}
	}
	defer unknown.Release()

	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("%s does not support automation: %w", c.progID, err)
	}
	return disp, nil
}

// Application is one COM handle to AutoCAD
type Application struct {
	disp   *ole.IDispatch
	logger *zap.Logger

	mu    sync.Mutex
	owned []*ole.IDispatch
}

var _ ports.CADApplication = (*Application)(nil)

// track keeps d for release with the handle
func (a *Application) track(d *ole.IDispatch) *ole.IDispatch {
	a.mu.Lock()
	a.owned = append(a.owned, d)
	a.mu.Unlock()
	return d
}

// Open returns the open document for path, opening it if needed
func (a *Application) Open(path string) (ports.Document, error) {
	docs, err := a.documents()
	if err != nil {
		return nil, err
	}

	count, err := intProperty(docs, "Count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		item, err := callDispatch(docs, "Item", i)
		if err != nil {
			return nil, err
		}
		a.track(item)
		name, err := stringProperty(item, "FullName")
		if err != nil {
			return nil, err
		}
		if samePath(name, path) {
			return &Document{app: a, disp: item, path: path}, nil
		}
	}

	disp, err := callDispatch(docs, "Open", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	a.logger.Debug("document opened", zap.String("path", path))
	return &Document{app: a, disp: a.track(disp), path: path}, nil
}

// ActiveDocument returns the document that has focus
func (a *Application) ActiveDocument() (ports.Document, error) {
	disp, err := getDispatch(a.disp, "ActiveDocument")
	if err != nil {
		return nil, err
	}
	a.track(disp)
	path, err := stringProperty(disp, "FullName")
	if err != nil {
		return nil, err
	}
	return &Document{app: a, disp: disp, path: path}, nil
}

// Activate gives doc the application focus
func (a *Application) Activate(doc ports.Document) error {
	d, ok := doc.(*Document)
	if !ok {
		return fmt.Errorf("autocad: foreign document %T", doc)
	}
	_, err := oleutil.CallMethod(d.disp, "Activate")
	return err
}

// Release drops every COM reference taken through the handle and unlocks
// the goroutine from its thread. The application keeps running.
func (a *Application) Release() {
	a.mu.Lock()
	for i := len(a.owned) - 1; i >= 0; i-- {
		a.owned[i].Release()
	}
	a.owned = nil
	a.mu.Unlock()

	a.disp.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

func (a *Application) documents() (*ole.IDispatch, error) {
	docs, err := getDispatch(a.disp, "Documents")
	if err != nil {
		return nil, err
	}
	return a.track(docs), nil
}

// samePath compares file paths the way Windows does
func samePath(a, b string) bool {
	norm := func(p string) string {
		return strings.ToLower(strings.ReplaceAll(p, "/", `\`))
	}
	return norm(a) == norm(b)
}
