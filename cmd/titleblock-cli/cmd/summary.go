package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"titleblock/internal/adapters/console"
	"titleblock/internal/adapters/launcher"
	"titleblock/internal/application/commands"
)

var openExport bool

var summaryCmd = &cobra.Command{
	Use:   "summary [show|export|clear]",
	Short: "Work with the summary of processed layouts",
	Long: `Show, export or clear the summary of every layout processed since the
summary was last cleared.

Examples:
  titleblock-cli summary show
  titleblock-cli summary export transmittal.xlsx
  titleblock-cli summary clear`,
}

var summaryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the summary entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := GetEnv().Session.ListSummary(context.Background())
		if err != nil {
			return err
		}
		console.PrintSummary(os.Stdout, entries)
		return nil
	},
}

var summaryExportCmd = &cobra.Command{
	Use:   "export <path.xlsx>",
	Short: "Export the summary to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := GetEnv()
		entries, err := e.Session.ListSummary(context.Background())
		if err != nil {
			return err
		}
		result, err := commands.NewExportSummaryCommand(e.Exporter, args[0], entries).Execute()
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		if openExport {
			return launcher.New().Open(result.Path)
		}
		return nil
	},
}

var summaryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every summary entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetEnv().Session.ClearSummary(context.Background()); err != nil {
			return err
		}
		fmt.Println("Cleared summary entries")
		return nil
	},
}

func init() {
	summaryExportCmd.Flags().BoolVar(&openExport, "open", false, "open the spreadsheet once written")
	summaryCmd.AddCommand(summaryShowCmd)
	summaryCmd.AddCommand(summaryExportCmd)
	summaryCmd.AddCommand(summaryClearCmd)
	rootCmd.AddCommand(summaryCmd)
}
