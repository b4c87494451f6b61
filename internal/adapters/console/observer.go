// Package console renders batch runs and prompts on a terminal
package console

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	skipMark = color.New(color.FgYellow).Sprint("!")
	errMark  = color.New(color.FgRed).Sprint("✗")
	dim      = color.New(color.Faint)
	bold     = color.New(color.Bold)
)

// Observer prints run events as they happen
type Observer struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
	skipped int
	done    int
}

var _ ports.RunObserver = (*Observer)(nil)

// NewObserver creates an Observer writing to out. Verbose prints the
// detail of every skipped entry.
func NewObserver(out io.Writer, verbose bool) *Observer {
	return &Observer{out: out, verbose: verbose}
}

func (o *Observer) RunStarted(info ports.RunInfo) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, "%s %d drawings in %s\n", bold.Sprint("Processing"), info.Files, info.Folder)
	dim.Fprintf(o.out, "run %s\n", info.ID)
}

func (o *Observer) FileStarted(path string, index, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, "[%d/%d] %s\n", index+1, total, filepath.Base(path))
}

func (o *Observer) LayoutProcessed(path, layout string, entry domain.SummaryEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done++
	fmt.Fprintf(o.out, "  %s %s", okMark, layout)
	if entry.DrawingNumber != "" || entry.Revision != "" {
		fmt.Fprintf(o.out, "  %s rev %s", entry.DrawingNumber, entry.Revision)
	}
	fmt.Fprintln(o.out)
}

func (o *Observer) Skipped(entry domain.SkippedEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipped++
	fmt.Fprintf(o.out, "  %s %s: %s\n", skipMark, entry.Identifier, entry.Reason)
	if o.verbose && entry.Detail != "" {
		dim.Fprintln(o.out, entry.Detail)
	}
}

func (o *Observer) Progress(percent int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	dim.Fprintf(o.out, "  %d%%\n", percent)
}

func (o *Observer) Error(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, "%s %v\n", errMark, err)
}

func (o *Observer) Finished() {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, "%s %d layouts processed, %d skipped\n", okMark, o.done, o.skipped)
}

func (o *Observer) Aborted() {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, "%s run stopped: %d layouts processed, %d skipped\n", errMark, o.done, o.skipped)
}
