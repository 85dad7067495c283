package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	build "github.com/azindex/azindex/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "azindex %s (commit %s, built %s)\n",
			build.Version, build.Commit, build.Date)
	},
}
