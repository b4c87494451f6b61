package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"titleblock/internal/application"
)

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "List the roles a tag can be assigned to",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, option := range application.AssignmentOptions() {
			fmt.Println(option)
		}
	},
}

func init() {
	rootCmd.AddCommand(assignmentsCmd)
}
