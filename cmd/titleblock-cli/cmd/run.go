package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"titleblock/internal/adapters/console"
	"titleblock/internal/application"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
	"titleblock/internal/wire"
)

var (
	assumeYes bool

	incrementRevision bool
	revisionType      string
	hardsetRevision   string
	plotToPDF         bool
	purgeAll          bool
	zoomExtents       bool
	eTransmit         bool
	renameSheets      bool
	readReplace       bool
)

var runCmd = &cobra.Command{
	Use:   "run <folder>",
	Short: "Update the title blocks of every drawing in a folder",
	Long: `Process every drawing of a folder against the stored reference table and
run settings. Flags override the stored settings for this run only.

After the first drawing you are asked to check it before the rest of the
folder is processed. Interrupting the run stops it before the next drawing.

Examples:
  titleblock-cli run ./drawings
  titleblock-cli run ./drawings --increment --revision-type numerical --plot
  titleblock-cli run ./drawings --simulate fixture.yaml --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		override, err := settingsOverride(cmd.Flags().Changed)
		if err != nil {
			return err
		}

		cad, err := connect()
		if err != nil {
			return err
		}

		var confirmer ports.Confirmer = console.NewPrompter(os.Stdin, os.Stdout)
		if assumeYes {
			confirmer = application.AlwaysConfirm{}
		}

		run, err := GetEnv().NewRun(ctx, args[0], cad.Connector, wire.RunOptions{
			Observers: []ports.RunObserver{console.NewObserver(os.Stdout, verbose)},
			Confirmer: confirmer,
			Override:  override,
		})
		if err != nil {
			return err
		}

		result, err := run.Execute(ctx)
		if ferr := cad.Flush(); ferr != nil && err == nil {
			err = ferr
		}
		if err != nil {
			return err
		}
		if result.Message != "" {
			fmt.Println(result.Message)
		}
		return nil
	},
}

// settingsOverride returns the changes the run flags make to the stored
// settings. Only flags reported as changed apply.
func settingsOverride(changed func(flag string) bool) (func(*domain.RunSettings), error) {
	var kind domain.RevisionType
	if changed("revision-type") {
		var err error
		if kind, err = parseRevisionType(revisionType); err != nil {
			return nil, err
		}
	}

	toggles := []struct {
		flag  string
		value bool
		set   func(*domain.RunSettings, bool)
	}{
		{"increment", incrementRevision, func(s *domain.RunSettings, v bool) { s.IncrementRevision = v }},
		{"plot", plotToPDF, func(s *domain.RunSettings, v bool) { s.PlotToPDF = v }},
		{"purge", purgeAll, func(s *domain.RunSettings, v bool) { s.PurgeAll = v }},
		{"zoom", zoomExtents, func(s *domain.RunSettings, v bool) { s.ZoomExtents = v }},
		{"etransmit", eTransmit, func(s *domain.RunSettings, v bool) { s.ETransmit = v }},
		{"rename", renameSheets, func(s *domain.RunSettings, v bool) { s.RenameSheets = v }},
		{"read-replace", readReplace, func(s *domain.RunSettings, v bool) { s.ReadReplaceEnabled = v }},
	}

	return func(s *domain.RunSettings) {
		for _, t := range toggles {
			if changed(t.flag) {
				t.set(s, t.value)
			}
		}
		if kind != "" {
			s.RevisionType = kind
		}
		if changed("hardset") {
			s.HardsetRevision = hardsetRevision
			if kind == "" {
				s.RevisionType = domain.RevisionHardset
			}
		}
	}, nil
}

// parseRevisionType accepts a revision type by name or by its first word,
// ignoring case
func parseRevisionType(s string) (domain.RevisionType, error) {
	for _, t := range domain.RevisionTypes {
		name := string(t)
		first, _, _ := strings.Cut(name, " ")
		if strings.EqualFold(s, name) || strings.EqualFold(s, first) {
			return t, nil
		}
	}
	return "", &application.ValidationError{
		Field:   "revision-type",
		Message: fmt.Sprintf("unknown revision type %q (alphabetical, numerical or hardset)", s),
	}
}

func init() {
	runCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "continue after the first drawing without asking")
	runCmd.Flags().BoolVar(&incrementRevision, "increment", false, "write a new revision into the next free slot")
	runCmd.Flags().StringVar(&revisionType, "revision-type", "", "alphabetical, numerical or hardset")
	runCmd.Flags().StringVar(&hardsetRevision, "hardset", "", "revision label to write with the hardset revision type")
	runCmd.Flags().BoolVar(&plotToPDF, "plot", false, "plot every layout to PDF")
	runCmd.Flags().BoolVar(&purgeAll, "purge", false, "purge unused objects")
	runCmd.Flags().BoolVar(&zoomExtents, "zoom", true, "zoom every layout to its extents")
	runCmd.Flags().BoolVar(&eTransmit, "etransmit", false, "create an eTransmit package")
	runCmd.Flags().BoolVar(&renameSheets, "rename", false, "rename layouts after their drawing number")
	runCmd.Flags().BoolVar(&readReplace, "read-replace", false, "apply the stored read/replace pairs")
	rootCmd.AddCommand(runCmd)
}
