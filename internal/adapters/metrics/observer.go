// Package metrics counts run events with Prometheus collectors and dumps
// them in the textfile exposition format
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// Observer implements ports.RunObserver by updating counters
type Observer struct {
	registry *prometheus.Registry

	runs           *prometheus.CounterVec
	filesStarted   prometheus.Counter
	layoutsDone    prometheus.Counter
	layoutsSkipped *prometheus.CounterVec
	errors         prometheus.Counter
	progress       prometheus.Gauge
}

var _ ports.RunObserver = (*Observer)(nil)

// NewObserver creates an observer with its own registry
func NewObserver() *Observer {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Observer{
		registry: reg,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "titleblock_runs_total",
				Help: "Batch runs by outcome",
			},
			[]string{"status"},
		),
		filesStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "titleblock_files_processed_total",
			Help: "Drawing files handed to the pipeline",
		}),
		layoutsDone: factory.NewCounter(prometheus.CounterOpts{
			Name: "titleblock_layouts_processed_total",
			Help: "Layouts written back and summarized",
		}),
		layoutsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "titleblock_skipped_total",
				Help: "Files and layouts skipped, by the stage that failed",
			},
			[]string{"stage"},
		),
		errors: factory.NewCounter(prometheus.CounterOpts{
			Name: "titleblock_run_errors_total",
			Help: "Errors reported by the pipeline",
		}),
		progress: factory.NewGauge(prometheus.GaugeOpts{
			Name: "titleblock_run_progress_percent",
			Help: "Share of files done in the current run",
		}),
	}
}

// Registry returns the registry holding the collectors
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// WriteTextfile writes every collector to path for a node exporter
// textfile collector
func (o *Observer) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, o.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func (o *Observer) RunStarted(ports.RunInfo) {
	o.progress.Set(0)
}

func (o *Observer) FileStarted(string, int, int) {
	o.filesStarted.Inc()
}

func (o *Observer) LayoutProcessed(string, string, domain.SummaryEntry) {
	o.layoutsDone.Inc()
}

func (o *Observer) Skipped(entry domain.SkippedEntry) {
	o.layoutsSkipped.WithLabelValues(Stage(entry.Reason)).Inc()
}

func (o *Observer) Progress(percent int) {
	o.progress.Set(float64(percent))
}

func (o *Observer) Error(error) {
	o.errors.Inc()
}

func (o *Observer) Finished() {
	o.runs.WithLabelValues("finished").Inc()
}

func (o *Observer) Aborted() {
	o.runs.WithLabelValues("aborted").Inc()
}

// Stage reduces a skip reason to its fixed leading text so it can be used
// as a label
func Stage(reason string) string {
	if i := strings.Index(reason, ":"); i >= 0 {
		reason = reason[:i]
	}
	return strings.TrimSuffix(strings.TrimSpace(reason), ".")
}
