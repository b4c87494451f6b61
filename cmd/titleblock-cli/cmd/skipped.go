package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"titleblock/internal/adapters/console"
)

var skippedCmd = &cobra.Command{
	Use:   "skipped [show|clear]",
	Short: "Work with the drawings and layouts that were skipped",
}

var skippedShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the skipped entries",
	Long: `List every skipped drawing or layout with the reason it was skipped.
With --verbose the error detail of each entry is printed too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := GetEnv().Session.ListSkipped(context.Background())
		if err != nil {
			return err
		}
		console.PrintSkipped(os.Stdout, entries, verbose)
		return nil
	},
}

var skippedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every skipped entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetEnv().Session.ClearSkipped(context.Background()); err != nil {
			return err
		}
		fmt.Println("Cleared skipped entries")
		return nil
	},
}

func init() {
	skippedCmd.AddCommand(skippedShowCmd)
	skippedCmd.AddCommand(skippedClearCmd)
	rootCmd.AddCommand(skippedCmd)
}
