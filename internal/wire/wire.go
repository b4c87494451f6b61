// Package wire builds the stores, adapters and commands the binaries share
// from one loaded configuration.
package wire

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"titleblock/internal/adapters/autocad"
	"titleblock/internal/adapters/fakecad"
	"titleblock/internal/adapters/filesystem"
	"titleblock/internal/adapters/metrics"
	"titleblock/internal/adapters/sqlite"
	"titleblock/internal/adapters/xlsx"
	"titleblock/internal/application"
	"titleblock/internal/application/commands"
	"titleblock/internal/application/extraction"
	"titleblock/internal/config"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// Env holds the long lived dependencies of one process
type Env struct {
	Config   *config.Config
	Logger   *zap.Logger
	Mappings *filesystem.MappingStore
	Tables   *filesystem.TableStore
	Settings *filesystem.SettingsStore
	Finder   *filesystem.DrawingFinder
	Session  *sqlite.Store
	Exporter *xlsx.Exporter
	Metrics  *metrics.Observer
}

// Open builds an Env and opens the session database
func Open(cfg *config.Config, logger *zap.Logger) (*Env, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	finder, err := filesystem.NewDrawingFinder(cfg.DrawingPattern)
	if err != nil {
		return nil, fmt.Errorf("drawing_pattern: %w", err)
	}

	session := sqlite.NewStore()
	if err := session.Open(cfg.DatabasePath); err != nil {
		return nil, err
	}

	env := &Env{
		Config:   cfg,
		Logger:   logger,
		Mappings: filesystem.NewMappingStore(filesystem.ExpandHome(cfg.MappingPath)),
		Tables:   filesystem.NewTableStore(filesystem.ExpandHome(cfg.TablePath)),
		Settings: filesystem.NewSettingsStore(filesystem.ExpandHome(cfg.SettingsPath)),
		Finder:   finder,
		Session:  session,
		Exporter: xlsx.NewExporter(),
	}
	if cfg.MetricsFile != "" {
		env.Metrics = metrics.NewObserver()
	}
	return env, nil
}

// Close writes the metrics textfile and closes the session database
func (e *Env) Close() error {
	var errs []error
	if e.Metrics != nil {
		if err := e.Metrics.WriteTextfile(filesystem.ExpandHome(e.Config.MetricsFile)); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if err := e.Session.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CAD is a connection to the CAD application. Flush persists simulated
// drawings and does nothing for a real application.
type CAD struct {
	Connector ports.CADConnector
	Flush     func() error
}

// Connect returns the AutoCAD connector, or a simulated application loaded
// from fixture when fixture is set. The simulated drawings are written back
// to fixture by Flush.
func (e *Env) Connect(fixture string) (*CAD, error) {
	if fixture == "" {
		conn := autocad.NewConnector(e.Config.CAD.ProgID,
			autocad.WithVisible(e.Config.CAD.Visible),
			autocad.WithLogger(e.Logger.Named("autocad")),
		)
		return &CAD{Connector: conn, Flush: func() error { return nil }}, nil
	}

	app, err := fakecad.LoadFixture(fixture)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("simulating the CAD application", zap.String("fixture", fixture))
	return &CAD{
		Connector: app,
		Flush:     func() error { return app.WriteFixture(fixture) },
	}, nil
}

// Extractor wraps conn with the configured retry policy
func (e *Env) Extractor(conn ports.CADConnector) *extraction.Adapter {
	return extraction.NewAdapter(conn,
		extraction.WithRetry(e.Config.RetryPolicy()),
		extraction.WithLogger(e.Logger.Named("extraction")),
	)
}

// RunOptions tune a batch run
type RunOptions struct {
	Observers []ports.RunObserver
	Confirmer ports.Confirmer
	// Override adjusts the stored settings before the run
	Override func(*domain.RunSettings)
}

// NewRun builds the run command for folder from the stored reference table
// and settings. Run events are also recorded in the session database and
// the metrics. The session keeps recording after ctx is cancelled so an
// interrupted run is still closed as aborted.
func (e *Env) NewRun(ctx context.Context, folder string, conn ports.CADConnector, opts RunOptions) (*commands.RunCommand, error) {
	table, err := e.Tables.Load()
	if err != nil {
		return nil, err
	}
	settings, err := e.Settings.Load()
	if err != nil {
		return nil, err
	}
	if opts.Override != nil {
		opts.Override(&settings)
	}

	observers := application.Observers{
		application.NewSessionRecorder(context.WithoutCancel(ctx), e.Session, e.Logger.Named("session")),
	}
	if e.Metrics != nil {
		observers = append(observers, e.Metrics)
	}
	observers = append(observers, opts.Observers...)

	runOpts := []commands.RunOption{
		commands.WithObserver(observers),
		commands.WithLogger(e.Logger.Named("run")),
		commands.WithSample(table.SampleFile, table.PlotStyle),
	}
	if opts.Confirmer != nil {
		runOpts = append(runOpts, commands.WithConfirmer(opts.Confirmer))
	}

	return commands.NewRunCommand(e.Extractor(conn), e.Finder, folder, table.Rows, settings, runOpts...), nil
}

// MapTable stores the assignments of the reference table in the field
// mapping, asking resolver about conflicts
func (e *Env) MapTable(resolver ports.ConflictResolver) (*commands.MapFieldsResult, error) {
	table, err := e.Tables.Load()
	if err != nil {
		return nil, err
	}
	return commands.NewMapFieldsCommand(e.Mappings, resolver, commands.ProposalFromTable(table.Rows)).Execute()
}
