package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"titleblock/internal/adapters/console"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Save the reference table assignments to the field mapping",
	Long: `Merge the tag assignments of the stored reference table into the field
mapping. When a tag is already mapped to another role you are asked whether
to keep or replace it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := GetEnv().MapTable(console.NewPrompter(os.Stdin, os.Stdout))
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
}
