package commands

import "github.com/azindex/azindex/cmd/azindex/commands/search"

func init() {
	rootCmd.AddCommand(search.Cmd)
}
