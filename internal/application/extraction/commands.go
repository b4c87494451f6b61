package extraction

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"titleblock/internal/application"
	"titleblock/internal/ports"
)

// PlotCommand builds the command line that plots the current layout of the
// active document to outputPath with plotStyle
func PlotCommand(outputPath, plotStyle string) string {
	return fmt.Sprintf("PLOTCURRENTLAYOUT\n %s\n \"%s\"\n", outputPath, plotStyle)
}

// ZoomExtents zooms the active layout of doc to its extents
func (a *Adapter) ZoomExtents(app ports.CADApplication, doc ports.Document) error {
	return a.send(app, doc, "Zoom Extents", CmdZoomExtents)
}

// PurgeAll purges every unused named object from doc
func (a *Adapter) PurgeAll(app ports.CADApplication, doc ports.Document) error {
	return a.send(app, doc, "Purge All", CmdPurgeAll)
}

// ETransmit packages doc with its dependencies
func (a *Adapter) ETransmit(app ports.CADApplication, doc ports.Document) error {
	return a.send(app, doc, "eTransmit", CmdETransmit)
}

// RenameLayouts renames the layouts of doc after their drawing numbers
func (a *Adapter) RenameLayouts(app ports.CADApplication, doc ports.Document) error {
	return a.send(app, doc, "Rename Layouts", CmdRenameLayouts)
}

// PlotToPDF plots the active layout of doc to outputPath
func (a *Adapter) PlotToPDF(app ports.CADApplication, doc ports.Document, outputPath, plotStyle string) error {
	return a.send(app, doc, "Plot to PDF", PlotCommand(outputPath, plotStyle))
}

// send focuses doc and queues one command. Commands are not retried.
func (a *Adapter) send(app ports.CADApplication, doc ports.Document, name, command string) error {
	if doc == nil {
		return &application.CommandError{Command: name, Err: errors.New("no active document")}
	}
	if err := app.Activate(doc); err != nil {
		return &application.CommandError{Command: name, Err: err}
	}
	if err := doc.SendCommand(command); err != nil {
		a.logger.Warn("command failed", zap.String("command", name), zap.String("path", doc.Path()), zap.Error(err))
		return &application.CommandError{Command: name, Err: err}
	}
	a.logger.Debug("command sent", zap.String("command", name), zap.String("path", doc.Path()))
	return nil
}
