package application

import (
	"context"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// NopObserver ignores every run event
type NopObserver struct{}

func (NopObserver) RunStarted(ports.RunInfo)                            {}
func (NopObserver) FileStarted(string, int, int)                        {}
func (NopObserver) LayoutProcessed(string, string, domain.SummaryEntry) {}
func (NopObserver) Skipped(domain.SkippedEntry)                         {}
func (NopObserver) Progress(int)                                        {}
func (NopObserver) Error(error)                                         {}
func (NopObserver) Finished()                                           {}
func (NopObserver) Aborted()                                            {}

var _ ports.RunObserver = NopObserver{}

// Observers fans every event out to each observer in order
type Observers []ports.RunObserver

var _ ports.RunObserver = Observers(nil)

func (o Observers) RunStarted(info ports.RunInfo) {
	for _, obs := range o {
		obs.RunStarted(info)
	}
}

func (o Observers) FileStarted(path string, index, total int) {
	for _, obs := range o {
		obs.FileStarted(path, index, total)
	}
}

func (o Observers) LayoutProcessed(path, layout string, entry domain.SummaryEntry) {
	for _, obs := range o {
		obs.LayoutProcessed(path, layout, entry)
	}
}

func (o Observers) Skipped(entry domain.SkippedEntry) {
	for _, obs := range o {
		obs.Skipped(entry)
	}
}

func (o Observers) Progress(percent int) {
	for _, obs := range o {
		obs.Progress(percent)
	}
}

func (o Observers) Error(err error) {
	for _, obs := range o {
		obs.Error(err)
	}
}

func (o Observers) Finished() {
	for _, obs := range o {
		obs.Finished()
	}
}

func (o Observers) Aborted() {
	for _, obs := range o {
		obs.Aborted()
	}
}

// AlwaysConfirm answers yes to every confirmation
type AlwaysConfirm struct{}

var _ ports.Confirmer = AlwaysConfirm{}

func (AlwaysConfirm) ConfirmContinue(ctx context.Context, firstFile string) (bool, error) {
	return true, nil
}
