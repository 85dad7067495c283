package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/index"
	"github.com/azindex/azindex/internal/store"
)

var modulesJSON bool

func init() {
	modulesCmd.Flags().BoolVar(&modulesJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(modulesCmd)
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List indexed modules with command counts",
	Example: `  azindex modules
  azindex modules --json`,
	RunE: runModules,
}

// moduleSummary is one row of the modules listing.
type moduleSummary struct {
	Module   string `json:"module"`
	Category string `json:"category"`
	Commands int    `json:"commands"`
}

func runModules(cmd *cobra.Command, _ []string) error {
	return modulesWithWriter(cmd.OutOrStdout())
}

func modulesWithWriter(w io.Writer) error {
	manifest, err := store.LoadManifest(dataDir())
	if err != nil {
		return errors.NewUserError(err,
			"Run 'azindex extract <docs-root>' to build the index first")
	}

	counts := index.New(manifest).Modules()
	categories := make(map[string]string)
	for _, r := range manifest.Records {
		categories[r.Module] = r.Category
	}

	summaries := make([]moduleSummary, 0, len(counts))
	for module, n := range counts {
		summaries = append(summaries, moduleSummary{
			Module:   module,
			Category: categories[module],
			Commands: n,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Module < summaries[j].Module
	})

	if modulesJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	bold := color.New(color.Bold)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		bold.Sprint("MODULE"), bold.Sprint("CATEGORY"), bold.Sprint("COMMANDS"))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Module, s.Category, s.Commands)
	}
	return tw.Flush()
}
