package search

import (
	"fmt"
	"io"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/azindex/azindex/internal/docs"
	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/index"
)

// runInteractive opens a fuzzy picker over the full (unpaginated)
// result set of the query.
func runInteractive(w io.Writer, idx *index.Index, q index.Query, descriptions map[string]string) error {
	records := collectAll(idx, q)
	if len(records) == 0 {
		fmt.Fprintln(w, "No matching cmdlets.")
		return nil
	}

	i, err := fuzzyfinder.Find(
		records,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", records[i].Name, records[i].Module)
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			r := records[i]
			return fmt.Sprintf("Name: %s\nModule: %s\nCategory: %s\nVerb: %s\n\n%s",
				r.Name,
				r.Module,
				r.Category,
				r.Verb,
				descriptions[r.Name],
			)
		}),
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive search failed")
	}

	r := records[i]
	fmt.Fprintf(w, "%s  %s  %s\n", r.Name, r.Module, r.Category)
	if d := descriptions[r.Name]; d != "" {
		fmt.Fprintln(w, d)
	}
	fmt.Fprintf(w, "\nSee 'azindex show %s' for syntax and examples.\n", r.Name)
	return nil
}

// collectAll walks every page of the query's result set.
func collectAll(idx *index.Index, q index.Query) []docs.CommandRecord {
	var records []docs.CommandRecord
	for page := 0; ; page++ {
		q.Page = page
		res := idx.Search(q)
		records = append(records, res.Records...)
		if len(records) >= res.Total || len(res.Records) == 0 {
			return records
		}
	}
}
