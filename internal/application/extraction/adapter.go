// Package extraction wraps a CAD connection with bounded retries and the
// typed errors the batch pipeline reacts to.
package extraction

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"titleblock/internal/application"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
	"titleblock/internal/retry"
)

// Command strings sent to the CAD command line
const (
	CmdZoomExtents   = "ZOOM\nE\n"
	CmdPurgeAll      = "-PURGE\nALL\n*\nN\n"
	CmdETransmit     = "etrans\n"
	CmdRenameLayouts = "RENAMELAYOUTS\n"
)

// Adapter reads and writes title block attributes through a CAD connection
type Adapter struct {
	connector ports.CADConnector
	retry     retry.Config
	logger    *zap.Logger
}

// Option configures the Adapter
type Option func(*Adapter)

// WithRetry sets the retry policy applied to every retried operation
func WithRetry(cfg retry.Config) Option {
	return func(a *Adapter) {
		a.retry = cfg
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewAdapter creates an Adapter over connector
func NewAdapter(connector ports.CADConnector, opts ...Option) *Adapter {
	a := &Adapter{
		connector: connector,
		retry:     retry.DefaultConfig(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RetryConfig returns the policy in use
func (a *Adapter) RetryConfig() retry.Config {
	return a.retry
}

// AcquireApplication connects to the CAD application
func (a *Adapter) AcquireApplication(ctx context.Context) (ports.CADApplication, error) {
	app, err := a.connector.Connect()
	if err != nil {
		a.logger.Error("cad connection failed", zap.Error(err))
		return nil, &application.ConnectionError{Err: err}
	}
	return app, nil
}

// OpenDocument opens path, retrying on failure. A missing path fails
// immediately with NotFoundError.
func (a *Adapter) OpenDocument(ctx context.Context, app ports.CADApplication, path string) (ports.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &application.NotFoundError{Path: path}
		}
		return nil, &application.OpenError{Path: path, Err: err}
	}

	doc, err := retry.DoWithResult(ctx, a.retry, "open document", func() (ports.Document, error) {
		d, err := app.Open(path)
		if err != nil {
			a.logger.Warn("open attempt failed", zap.String("path", path), zap.Error(err))
		}
		return d, err
	})
	if err != nil {
		return nil, &application.OpenError{Path: path, Err: err}
	}
	a.logger.Debug("document opened", zap.String("path", path))
	return doc, nil
}

// Layouts enumerates the layouts of doc, retrying on failure
func (a *Adapter) Layouts(ctx context.Context, doc ports.Document) ([]ports.Layout, error) {
	return retry.DoWithResult(ctx, a.retry, "enumerate layouts", doc.Layouts)
}

// LayoutName reads the name of layout, retrying on failure
func (a *Adapter) LayoutName(ctx context.Context, layout ports.Layout) (string, error) {
	return retry.DoWithResult(ctx, a.retry, "read layout name", layout.Name)
}

// ActivateLayout makes layout the active layout of doc, retrying on failure
func (a *Adapter) ActivateLayout(ctx context.Context, doc ports.Document, layout ports.Layout) error {
	return retry.Do(ctx, a.retry, "activate layout", func() error {
		return doc.SetActiveLayout(layout)
	})
}

// ExtractLayoutAttributes reads every attribute of the block references on
// a layout of doc, with the layout's plot style. An empty layoutName reads
// the active layout; a name absent from doc fails with LookupError.
func (a *Adapter) ExtractLayoutAttributes(ctx context.Context, doc ports.Document, layoutName string) ([]domain.AttributeRecord, string, error) {
	type extracted struct {
		records   []domain.AttributeRecord
		plotStyle string
	}

	res, err := retry.DoWithResult(ctx, a.retry, "extract attributes", func() (extracted, error) {
		layout, name, err := a.findLayout(doc, layoutName)
		if err != nil {
			return extracted{}, err
		}
		style, err := layout.PlotStyle()
		if err != nil {
			return extracted{}, err
		}
		records, err := readLayout(layout, name)
		if err != nil {
			return extracted{}, err
		}
		return extracted{records: records, plotStyle: style}, nil
	})
	if err != nil {
		return nil, "", err
	}
	a.logger.Debug("attributes extracted",
		zap.String("path", doc.Path()),
		zap.String("layout", layoutName),
		zap.Int("count", len(res.records)),
	)
	return res.records, res.plotStyle, nil
}

// ExtractFile opens path, reads its active layout, then saves and closes it
func (a *Adapter) ExtractFile(ctx context.Context, app ports.CADApplication, path string) ([]domain.AttributeRecord, string, error) {
	doc, err := a.OpenDocument(ctx, app, path)
	if err != nil {
		return nil, "", err
	}
	records, style, extractErr := a.ExtractLayoutAttributes(ctx, doc, "")
	if err := a.SaveAndClose(ctx, doc); err != nil {
		a.logger.Warn("failed to save and close sample drawing", zap.String("path", path), zap.Error(err))
	}
	if extractErr != nil {
		return nil, "", extractErr
	}
	return records, style, nil
}

func (a *Adapter) findLayout(doc ports.Document, name string) (ports.Layout, string, error) {
	if name == "" {
		layout, err := doc.ActiveLayout()
		if err != nil {
			return nil, "", err
		}
		n, err := layout.Name()
		if err != nil {
			return nil, "", err
		}
		return layout, n, nil
	}

	layouts, err := doc.Layouts()
	if err != nil {
		return nil, "", err
	}
	for _, l := range layouts {
		n, err := l.Name()
		if err != nil {
			return nil, "", err
		}
		if n == name {
			return l, n, nil
		}
	}
	return nil, "", retry.Permanent(&application.LookupError{Layout: name, Path: doc.Path()})
}

func readLayout(layout ports.Layout, name string) ([]domain.AttributeRecord, error) {
	blocks, err := layout.BlockReferences()
	if err != nil {
		return nil, err
	}
	var records []domain.AttributeRecord
	for _, b := range blocks {
		has, err := b.HasAttributes()
		if err != nil {
			return nil, err
		}
		if !has {
			continue
		}
		blockName, err := b.Name()
		if err != nil {
			return nil, err
		}
		attrs, err := b.Attributes()
		if err != nil {
			return nil, err
		}
		for _, attr := range attrs {
			records = append(records, domain.AttributeRecord{
				Layout:    name,
				BlockName: blockName,
				Tag:       attr.Tag(),
				Value:     attr.Value(),
				Position:  attr.Position(),
			})
		}
	}
	return records, nil
}

// WriteAttributes sets every attribute matching an update. Each update is
// applied to its named layout (or all layouts) and its named block (or all
// blocks). Updates matching nothing are skipped without error. Any failure
// retries the whole batch. It returns the number of attributes written.
func (a *Adapter) WriteAttributes(ctx context.Context, doc ports.Document, updates []domain.AttributeUpdate) (int, error) {
	written, err := retry.DoWithResult(ctx, a.retry, "write attributes", func() (int, error) {
		return writeBatch(doc, updates)
	})
	if err != nil {
		return 0, err
	}
	if written == 0 && len(updates) > 0 {
		a.logger.Debug("no attribute matched the updates", zap.String("path", doc.Path()), zap.Int("updates", len(updates)))
	}
	return written, nil
}

func writeBatch(doc ports.Document, updates []domain.AttributeUpdate) (int, error) {
	layouts, err := doc.Layouts()
	if err != nil {
		return 0, err
	}
	written := 0
	for _, u := range updates {
		for _, layout := range layouts {
			if u.Layout != "" {
				name, err := layout.Name()
				if err != nil {
					return written, err
				}
				if name != u.Layout {
					continue
				}
			}
			n, err := writeLayout(layout, u)
			written += n
			if err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func writeLayout(layout ports.Layout, u domain.AttributeUpdate) (int, error) {
	blocks, err := layout.BlockReferences()
	if err != nil {
		return 0, err
	}
	written := 0
	for _, b := range blocks {
		if u.BlockName != "" {
			name, err := b.Name()
			if err != nil {
				return written, err
			}
			if name != u.BlockName {
				continue
			}
		}
		has, err := b.HasAttributes()
		if err != nil {
			return written, err
		}
		if !has {
			continue
		}
		attrs, err := b.Attributes()
		if err != nil {
			return written, err
		}
		for _, attr := range attrs {
			if attr.Tag() != u.Tag {
				continue
			}
			if err := attr.SetValue(u.Value); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

// SaveAndClose saves and closes doc, retrying the pair on failure
func (a *Adapter) SaveAndClose(ctx context.Context, doc ports.Document) error {
	return retry.Do(ctx, a.retry, "save and close", func() error {
		if err := doc.Save(); err != nil {
			return err
		}
		return doc.Close()
	})
}
