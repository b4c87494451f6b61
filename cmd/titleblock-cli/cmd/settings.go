package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [check]",
	Short: "Work with the stored run settings",
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the run settings against the reference table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := GetEnv()
		table, err := e.Tables.Load()
		if err != nil {
			return err
		}
		settings, err := e.Settings.Load()
		if err != nil {
			return err
		}
		if err := settings.Validate(table.Rows); err != nil {
			return err
		}
		fmt.Printf("Settings in %s are valid for %d reference rows\n", e.Settings.Path(), len(table.Rows))
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}
