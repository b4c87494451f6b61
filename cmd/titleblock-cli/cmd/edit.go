package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"titleblock/internal/adapters/editor"
	"titleblock/internal/ports"
)

var editCmd = &cobra.Command{
	Use:   "edit <mapping|table|settings>",
	Short: "Edit a stored document in your editor",
	Long: `Open the field mapping, the reference table or the run settings in
$TITLEBLOCK_EDITOR, $VISUAL or $EDITOR. The document is read back when the
editor exits and any problem with it is reported.

Examples:
  titleblock-cli edit table
  TITLEBLOCK_EDITOR="code --wait" titleblock-cli edit settings`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"mapping", "table", "settings"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return editDocument(editor.NewOpener(), args[0])
	},
}

func editDocument(opener ports.EditorOpener, name string) error {
	e := GetEnv()

	var (
		path  string
		check func() error
	)
	switch name {
	case "mapping":
		// Load creates an empty mapping so there is a file to edit
		if _, err := e.Mappings.Load(); err != nil {
			return err
		}
		path = e.Mappings.Path()
		check = func() error { _, err := e.Mappings.Load(); return err }
	case "table":
		path = e.Tables.Path()
		check = func() error { _, err := e.Tables.Load(); return err }
	case "settings":
		settings, err := e.Settings.Load()
		if err != nil {
			return err
		}
		if err := e.Settings.Save(settings); err != nil {
			return err
		}
		path = e.Settings.Path()
		check = func() error { _, err := e.Settings.Load(); return err }
	default:
		return fmt.Errorf("unknown document %q: choose mapping, table or settings", name)
	}

	if err := opener.OpenFile(path); err != nil {
		return err
	}
	if err := check(); err != nil {
		return fmt.Errorf("%s was saved but cannot be used: %w", path, err)
	}
	fmt.Printf("%s is valid\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(editCmd)
}
