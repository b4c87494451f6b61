package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"titleblock/internal/adapters/console"
	"titleblock/internal/application/commands"
)

var copySample bool

var extractCmd = &cobra.Command{
	Use:   "extract <sample>",
	Short: "Build the reference table from a sample drawing",
	Long: `Extract the attributes of the active layout of a sample drawing and store
the proposed reference table. Each tag gets the role the field mapping
assigns it; unknown tags stay unassigned.

Examples:
  titleblock-cli extract Sample.dwg
  titleblock-cli extract Sample.dwg --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		e := GetEnv()

		cad, err := connect()
		if err != nil {
			return err
		}

		extractCmd := commands.NewExtractSampleCommand(e.Extractor(cad.Connector), e.Mappings, e.Tables, args[0])
		result, err := extractCmd.Execute(ctx)
		if err != nil {
			return err
		}
		if err := cad.Flush(); err != nil {
			return err
		}

		console.PrintTable(os.Stdout, result.Table.Rows)
		fmt.Println(result.Message)

		if copySample {
			doc, err := commands.SampleDocument(result.Records)
			if err != nil {
				return err
			}
			if err := clipboard.WriteAll(doc); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Println("Copied tag values to the clipboard")
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().BoolVar(&copySample, "copy", false, "copy the tag values to the clipboard")
	rootCmd.AddCommand(extractCmd)
}
