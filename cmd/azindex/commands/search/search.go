// Package search provides the search command over the extracted
// cmdlet index.
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/index"
	"github.com/azindex/azindex/internal/logging"
	"github.com/azindex/azindex/internal/paths"
	"github.com/azindex/azindex/internal/store"
)

var (
	moduleFilter   []string
	categoryFilter []string
	verbFilter     []string
	sortFlag       string
	descending     bool
	pageFlag       int
	jsonOutput     bool
	interactive    bool
)

var (
	headerText = color.New(color.Bold)
	nameText   = color.New(color.FgGreen)
	dimText    = color.New(color.FgHiBlack)
)

func init() {
	Cmd.Flags().StringSliceVar(&moduleFilter, "module", nil, "filter by module, repeatable (e.g. Az.Compute)")
	Cmd.Flags().StringSliceVar(&categoryFilter, "category", nil, "filter by category, repeatable (e.g. Networking)")
	Cmd.Flags().StringSliceVar(&verbFilter, "verb", nil, "filter by verb, repeatable (e.g. Get)")
	Cmd.Flags().StringVar(&sortFlag, "sort", "", "sort by: name, module, verb, category (default: relevance)")
	Cmd.Flags().BoolVar(&descending, "desc", false, "reverse the sort order")
	Cmd.Flags().IntVar(&pageFlag, "page", 1, "result page, 50 records each")
	Cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	Cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a result with a fuzzy finder")
}

// Cmd is the search command.
var Cmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the extracted cmdlet index",
	Long: `Search matches the query against cmdlet names, module names, and
synopses. Every word of the query must match, by whole word, prefix,
substring, or character subsequence; closer matches rank higher.

Facet filters combine with AND across facets and OR within one facet.
Without a query, all records are listed in the requested order.`,
	Example: `  # Cmdlets mentioning virtual machines
  azindex search vm

  # All Get cmdlets of two networking modules
  azindex search --verb Get --module Az.Dns,Az.Cdn

  # Third page of the whole corpus, sorted by name
  azindex search --sort name --page 3

  # Pick interactively
  azindex search vm -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	return searchWithWriter(os.Stdout, logging.FromContext(cmd.Context()), args)
}

// searchWithWriter allows injecting a writer for testing.
func searchWithWriter(w io.Writer, logger *slog.Logger, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	sort := index.SortKey(sortFlag)
	if !index.ValidSortKey(sort) {
		return errors.NewUserError(errors.Newf("unknown sort key %q", sortFlag),
			"Valid sort keys are: name, module, verb, category")
	}
	if pageFlag < 1 {
		return errors.NewUserError(errors.Newf("page %d is out of range", pageFlag),
			"Pages are numbered from 1")
	}

	idx, descriptions, err := loadIndex(logger)
	if err != nil {
		return err
	}

	q := index.Query{
		Text: query,
		Filters: index.Filters{
			Modules:    moduleFilter,
			Categories: categoryFilter,
			Verbs:      verbFilter,
		},
		Sort:       sort,
		Descending: descending,
		Page:       pageFlag - 1,
	}

	if interactive {
		return runInteractive(w, idx, q, descriptions)
	}

	page := idx.Search(q)
	if jsonOutput {
		return outputJSON(w, page)
	}
	return outputTabular(w, page, descriptions)
}

// loadIndex builds the in-memory index from the stored artifacts. A
// missing or malformed manifest is fatal; missing descriptions only
// coarsen text matching.
func loadIndex(logger *slog.Logger) (*index.Index, map[string]string, error) {
	dir := dataDir()

	manifest, err := store.LoadManifest(dir)
	if err != nil {
		return nil, nil, errors.NewUserError(err,
			"Run 'azindex extract <docs-root>' to build the index first")
	}

	idx := index.New(manifest)
	descriptions, err := store.LoadDescriptions(dir)
	if err != nil {
		logger.Warn("descriptions unavailable, matching on names only", "error", err)
		return idx, nil, nil
	}
	idx.SetDescriptions(descriptions)
	return idx, descriptions, nil
}

func dataDir() string {
	if v := viper.GetString("data_dir"); v != "" {
		return v
	}
	return paths.DefaultDataDir()
}

// outputJSON outputs one result page in JSON format.
func outputJSON(w io.Writer, page index.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

// outputTabular outputs one result page in a human-readable table.
func outputTabular(w io.Writer, page index.Page, descriptions map[string]string) error {
	if page.Total == 0 {
		fmt.Fprintln(w, "No matching cmdlets.")
		return nil
	}

	pages := (page.Total + index.PageSize - 1) / index.PageSize
	fmt.Fprintf(w, "%d cmdlets (page %d of %d)\n", page.Total, page.Page+1, pages)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerText.Sprint("NAME"),
		headerText.Sprint("VERB"),
		headerText.Sprint("MODULE"),
		headerText.Sprint("CATEGORY"),
		headerText.Sprint("SYNOPSIS"))

	for _, r := range page.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			nameText.Sprint(r.Name),
			r.Verb,
			r.Module,
			r.Category,
			dimText.Sprint(truncate(descriptions[r.Name], 60)))
	}

	return tw.Flush()
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
