package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"titleblock/internal/application"
	"titleblock/internal/application/extraction"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// RunResult contains the outcome of a batch run
type RunResult struct {
	RunID          string
	FilesTotal     int
	FilesProcessed int
	Aborted        bool
	Skipped        []domain.SkippedEntry
	Summary        []domain.SummaryEntry
	Message        string
}

// RunCommand processes every drawing of a folder: each paper space layout
// is extracted, validated, mapped onto the reference table, given its new
// revision and static values, and written back. Drawings are processed one
// at a time and every failure short of losing the CAD connection skips
// the file or layout concerned and moves on.
type RunCommand struct {
	extractor *extraction.Adapter
	finder    ports.DrawingFinder
	observer  ports.RunObserver
	confirmer ports.Confirmer
	logger    *zap.Logger
	ledger    *domain.Ledger
	skipped   *domain.SkippedList
	validator *domain.Validator
	stop      atomic.Bool

	mu         sync.Mutex
	runSkipped []domain.SkippedEntry
	runSummary []domain.SummaryEntry

	FolderPath string
	Reference  []domain.TableRow
	Settings   domain.RunSettings
	// SampleFile is the drawing the reference table was extracted from
	SampleFile string
	// DefaultPlotStyle is used when Settings.PlotStyleTable is empty
	DefaultPlotStyle string
}

// RunOption configures a RunCommand
type RunOption func(*RunCommand)

// WithObserver sets the observer receiving run events
func WithObserver(o ports.RunObserver) RunOption {
	return func(c *RunCommand) {
		c.observer = o
	}
}

// WithConfirmer sets who is asked to continue after the first file
func WithConfirmer(cf ports.Confirmer) RunOption {
	return func(c *RunCommand) {
		c.confirmer = cf
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) RunOption {
	return func(c *RunCommand) {
		c.logger = logger
	}
}

// WithLedger records summaries into a session ledger
func WithLedger(l *domain.Ledger) RunOption {
	return func(c *RunCommand) {
		c.ledger = l
	}
}

// WithSkippedList records skipped entries into a session list
func WithSkippedList(s *domain.SkippedList) RunOption {
	return func(c *RunCommand) {
		c.skipped = s
	}
}

// WithSample sets the sample drawing and its plot style
func WithSample(path, plotStyle string) RunOption {
	return func(c *RunCommand) {
		c.SampleFile = path
		c.DefaultPlotStyle = plotStyle
	}
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	extractor *extraction.Adapter,
	finder ports.DrawingFinder,
	folderPath string,
	reference []domain.TableRow,
	settings domain.RunSettings,
	opts ...RunOption,
) *RunCommand {
	c := &RunCommand{
		extractor:  extractor,
		finder:     finder,
		observer:   application.NopObserver{},
		confirmer:  application.AlwaysConfirm{},
		logger:     zap.NewNop(),
		ledger:     domain.NewLedger(),
		skipped:    domain.NewSkippedList(),
		FolderPath: folderPath,
		Reference:  domain.CloneRows(reference),
		Settings:   settings,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestStop asks the run to stop before its next file. The file in
// progress is always finished.
func (c *RunCommand) RequestStop() {
	c.stop.Store(true)
}

// Validate checks the folder, the reference table and the settings
func (c *RunCommand) Validate() error {
	if err := application.ValidateDir("folderPath", c.FolderPath); err != nil {
		return err
	}
	if len(c.Reference) == 0 {
		return &application.ValidationError{
			Field:   "referenceTbl",
			Message: "reference table is empty, extract a sample drawing first",
		}
	}
	if err := domain.ValidateTable(c.Reference); err != nil {
		return &application.ValidationError{Field: "referenceTbl", Message: err.Error()}
	}
	return c.Settings.Validate(c.Reference)
}

// Execute runs the batch. It returns an error only when the run could not
// start or the CAD application could not be reached.
func (c *RunCommand) Execute(ctx context.Context) (*RunResult, error) {
	if err := c.Validate(); err != nil {
		c.observer.Error(err)
		return nil, err
	}

	files, err := c.finder.Find(c.FolderPath)
	if err != nil {
		err = fmt.Errorf("failed to list drawings: %w", err)
		c.observer.Error(err)
		return nil, err
	}
	if len(files) == 0 {
		err := fmt.Errorf("%w in %s", application.ErrNoDrawings, c.FolderPath)
		c.observer.Error(err)
		return nil, err
	}

	c.validator = domain.NewValidator(c.Reference)
	res := &RunResult{RunID: uuid.NewString(), FilesTotal: len(files)}
	logger := c.logger.With(zap.String("run_id", res.RunID))
	c.mu.Lock()
	c.runSkipped, c.runSummary = nil, nil
	c.mu.Unlock()

	c.observer.RunStarted(ports.RunInfo{
		ID:        res.RunID,
		Folder:    c.FolderPath,
		Files:     len(files),
		StartedAt: time.Now(),
	})
	logger.Info("run started", zap.String("folder", c.FolderPath), zap.Int("files", len(files)))

	for i, file := range files {
		if c.stop.Load() || ctx.Err() != nil {
			logger.Info("run stopped", zap.Int("processed", res.FilesProcessed))
			return c.abort(res), nil
		}

		app, err := c.extractor.AcquireApplication(ctx)
		if err != nil {
			logger.Error("cad application unavailable", zap.Error(err))
			c.observer.Error(err)
			c.abort(res)
			res.Message = err.Error()
			return res, err
		}

		// a started file runs to completion, so only the loop sees cancellation
		c.observer.FileStarted(file, i, len(files))
		if err := c.processFile(context.WithoutCancel(ctx), app, file, logger); err != nil {
			c.observer.Error(fmt.Errorf("error processing file %s: %w", file, err))
		}
		app.Release()

		res.FilesProcessed++
		c.observer.Progress((i + 1) * 100 / len(files))

		if i == 0 {
			ok, err := c.confirmer.ConfirmContinue(ctx, file)
			if err != nil {
				logger.Warn("confirmation failed", zap.Error(err))
			}
			if err != nil || !ok {
				logger.Info("run declined after first file")
				return c.abort(res), nil
			}
		}

		runtime.Gosched()
	}

	c.observer.Finished()
	c.collect(res)
	res.Message = fmt.Sprintf("Processed %d files, %d layouts summarized, %d skipped",
		res.FilesProcessed, len(res.Summary), len(res.Skipped))
	logger.Info("run finished",
		zap.Int("files", res.FilesProcessed),
		zap.Int("summarized", len(res.Summary)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

func (c *RunCommand) abort(res *RunResult) *RunResult {
	c.observer.Aborted()
	c.collect(res)
	res.Aborted = true
	res.Message = fmt.Sprintf("Aborted after %d of %d files", res.FilesProcessed, res.FilesTotal)
	return res
}

func (c *RunCommand) collect(res *RunResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res.Skipped = append([]domain.SkippedEntry(nil), c.runSkipped...)
	res.Summary = append([]domain.SummaryEntry(nil), c.runSummary...)
}

// processFile handles every layout of one drawing. The document is saved
// and closed on the way out whatever happened; a failure to do so is only
// logged.
func (c *RunCommand) processFile(ctx context.Context, app ports.CADApplication, file string, logger *zap.Logger) (ferr error) {
	var doc ports.Document
	defer func() {
		if r := recover(); r != nil {
			ferr = fmt.Errorf("panic: %v", r)
			c.skip(logger, domain.FileIdentifier(file), "Error processing file", ferr)
		}
		if doc == nil {
			return
		}
		if err := c.extractor.SaveAndClose(ctx, doc); err != nil {
			logger.Warn("failed to save and close drawing", zap.String("file", file), zap.Error(err))
		}
	}()

	opened, err := c.extractor.OpenDocument(ctx, app, file)
	if err != nil {
		c.skip(logger, domain.FileIdentifier(file), "Error opening drawing", err)
		return nil
	}
	doc = opened

	layouts, err := c.extractor.Layouts(ctx, doc)
	if err != nil {
		c.skip(logger, domain.FileIdentifier(file), "Failed to enumerate layouts", err)
		return nil
	}

	for _, layout := range layouts {
		c.processLayout(ctx, app, doc, file, layout, logger)
	}

	if c.Settings.ETransmit {
		if err := c.extractor.ETransmit(app, doc); err != nil {
			c.skip(logger, domain.FileIdentifier(file), "Error executing eTransmit", err)
		}
	}
	return nil
}

func (c *RunCommand) processLayout(ctx context.Context, app ports.CADApplication, doc ports.Document, file string, layout ports.Layout, logger *zap.Logger) {
	name := domain.UnknownLayout
	defer func() {
		if r := recover(); r != nil {
			c.skip(logger, domain.LayoutIdentifier(file, name), "Unexpected error processing layout", fmt.Errorf("panic: %v", r))
		}
	}()

	n, err := c.extractor.LayoutName(ctx, layout)
	if err != nil {
		c.skip(logger, domain.LayoutIdentifier(file, name), "Error accessing layout name", err)
		return
	}
	if n == "" || n == domain.ModelLayoutName {
		return
	}
	name = n
	id := domain.LayoutIdentifier(file, name)
	logger = logger.With(zap.String("file", file), zap.String("layout", name))

	if err := c.extractor.ActivateLayout(ctx, doc, layout); err != nil {
		c.skip(logger, id, "Error activating layout", err)
		return
	}

	if c.Settings.RenameSheets {
		if err := c.extractor.RenameLayouts(app, doc); err != nil {
			c.skip(logger, id, "Error renaming layouts", err)
			return
		}
	}

	records, _, err := c.extractor.ExtractLayoutAttributes(ctx, doc, name)
	if err != nil {
		c.skip(logger, id, "Error extracting attributes", err)
		return
	}
	if len(records) == 0 {
		c.skip(logger, id, "There was no layout data retrieved from the document.", nil)
		return
	}

	if missing := c.validator.Missing(records); len(missing) > 0 {
		c.skip(logger, id, fmt.Sprintf("The following fields are missing from the layout: %s", strings.Join(missing, ", ")), nil)
		return
	}

	mapped := domain.MapExtracted(c.Reference, records, name)
	if len(mapped) == 0 {
		logger.Debug("nothing mapped, layout left untouched")
		return
	}

	snapshot := mapped
	var updates []domain.TableRow
	if c.Settings.IncrementRevision {
		delta, err := domain.IncrementRevision(mapped, c.Settings, name)
		if err != nil {
			c.skip(logger, id, "Error modifying table data", err)
			return
		}
		updates = delta
		snapshot = domain.ApplyDelta(mapped, delta)
	}

	updates = append(updates, domain.StaticAssignments(c.Reference, name)...)

	if c.Settings.ReadReplaceEnabled {
		snapshot, updates = domain.ReadReplace(snapshot, updates, c.Settings.ReadReplace, name)
	}

	if len(updates) > 0 {
		written, err := c.extractor.WriteAttributes(ctx, doc, domain.Updates(updates))
		if err != nil {
			c.skip(logger, id, "Error writing attributes", err)
			return
		}
		logger.Debug("attributes written", zap.Int("updates", len(updates)), zap.Int("written", written))
	}

	if c.Settings.ZoomExtents {
		if err := c.extractor.ZoomExtents(app, doc); err != nil {
			c.skip(logger, id, "Error executing additional commands", err)
			return
		}
	}
	if c.Settings.PurgeAll {
		if err := c.extractor.PurgeAll(app, doc); err != nil {
			c.skip(logger, id, "Error executing additional commands", err)
			return
		}
	}

	if c.Settings.PlotToPDF {
		if err := c.plot(app, doc, file, snapshot, updates, logger); err != nil {
			c.skip(logger, id, "Error plotting to PDF", err)
			return
		}
	}

	entry := c.ledger.Record(file, name, snapshot, updates)
	c.mu.Lock()
	c.runSummary = append(c.runSummary, entry)
	c.mu.Unlock()
	c.observer.LayoutProcessed(file, name, entry)
	logger.Info("layout processed", zap.String("revision", entry.Revision))
}

// plot prints the layout next to its drawing as {DWG No.}_{REVISION}. A
// revision among the updates wins over the drawing's own. Nothing is
// plotted unless both values are known.
func (c *RunCommand) plot(app ports.CADApplication, doc ports.Document, file string, snapshot, updates []domain.TableRow, logger *zap.Logger) error {
	number, _ := domain.LastValue(snapshot, domain.RoleDrawingNumber)
	revision, _ := domain.LastValue(snapshot, domain.RoleRevision)
	if v, ok := domain.LastValue(updates, domain.RoleRevision); ok {
		revision = v
	}
	if number == "" || revision == "" {
		logger.Debug("plot skipped", zap.String("number", number), zap.String("revision", revision))
		return nil
	}

	style := c.Settings.PlotStyleTable
	if style == "" {
		style = c.DefaultPlotStyle
	}
	out := PlotOutputPath(file, number, revision)
	logger.Debug("plotting", zap.String("output", out), zap.String("style", style))
	return c.extractor.PlotToPDF(app, doc, out, style)
}

// PlotOutputPath returns where the plot of a drawing is written
func PlotOutputPath(file, number, revision string) string {
	return filepath.Join(filepath.Dir(file), fmt.Sprintf("%s_%s", number, revision))
}

// skip records identifier as skipped. A non-nil err is appended to the
// reason, and the detail carries the error chain and the current stack.
func (c *RunCommand) skip(logger *zap.Logger, identifier, reason string, err error) {
	entry := domain.SkippedEntry{
		Identifier: identifier,
		Reason:     reason,
		At:         time.Now(),
	}
	if err != nil {
		entry.Reason = fmt.Sprintf("%s: %v", reason, err)
		entry.Detail = fmt.Sprintf("%+v\n\n%s", err, debug.Stack())
	}

	c.skipped.Add(entry)
	c.mu.Lock()
	c.runSkipped = append(c.runSkipped, entry)
	c.mu.Unlock()
	c.observer.Skipped(entry)
	logger.Warn("skipped", zap.String("item", identifier), zap.String("reason", reason), zap.Error(err))
}
