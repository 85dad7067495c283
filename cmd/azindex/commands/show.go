package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/azindex/azindex/internal/docs"
	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/logging"
	"github.com/azindex/azindex/internal/store"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var (
	showTitle   = color.New(color.Bold, color.FgGreen)
	showHeading = color.New(color.Bold)
	showDim     = color.New(color.FgHiBlack)
)

var showCmd = &cobra.Command{
	Use:   "show <cmdlet>",
	Short: "Show synopsis, syntax, and examples for one cmdlet",
	Long: `Show resolves a cmdlet from the manifest and prints its synopsis,
syntax grammar, and usage examples from the per-module detail file.

When the detail file is missing or unreadable, the command still
prints what the manifest alone provides.`,
	Example: `  azindex show Get-AzVM
  azindex show stop-azvm`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	return showWithWriter(cmd.OutOrStdout(), cmd, args[0])
}

func showWithWriter(w io.Writer, cmd *cobra.Command, name string) error {
	logger := logging.FromContext(cmd.Context())
	dir := dataDir()

	manifest, err := store.LoadManifest(dir)
	if err != nil {
		return errors.NewUserError(err,
			"Run 'azindex extract <docs-root>' to build the index first")
	}

	rec, ok := findRecord(manifest.Records, name)
	if !ok {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "cmdlet %q", name),
			fmt.Sprintf("Try 'azindex search %s'", name))
	}

	var detail docs.CmdletDetail
	var moduleVersion string
	md, err := store.LoadModuleDetail(dir, rec.Module)
	if err != nil {
		logger.Warn("module detail unavailable", "module", rec.Module, "error", err)
	} else {
		detail = md.Cmdlets[rec.Name]
		moduleVersion = md.Version
	}

	synopsis := ""
	if descriptions, err := store.LoadDescriptions(dir); err == nil {
		synopsis = descriptions[rec.Name]
	} else {
		logger.Warn("descriptions unavailable", "error", err)
	}

	fmt.Fprintln(w, showTitle.Sprint(rec.Name))
	module := rec.Module
	if moduleVersion != "" {
		module = fmt.Sprintf("%s (%s)", rec.Module, moduleVersion)
	}
	fmt.Fprintf(w, "  Module:   %s\n", module)
	fmt.Fprintf(w, "  Category: %s\n", rec.Category)
	fmt.Fprintf(w, "  Verb:     %s\n", rec.Verb)

	if synopsis != "" {
		fmt.Fprintf(w, "\n%s\n  %s\n", showHeading.Sprint("SYNOPSIS"), synopsis)
	}
	if detail.Syntax != "" {
		fmt.Fprintf(w, "\n%s\n  %s\n", showHeading.Sprint("SYNTAX"), detail.Syntax)
	}
	if len(detail.Examples) > 0 {
		fmt.Fprintf(w, "\n%s\n", showHeading.Sprint("EXAMPLES"))
		for i, ex := range detail.Examples {
			if i > 0 {
				fmt.Fprintln(w)
			}
			for _, line := range strings.Split(ex, "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	} else if rec.HasExamples {
		fmt.Fprintf(w, "\n%s\n", showDim.Sprint("Examples exist but the detail file is unavailable."))
	}

	return nil
}

// findRecord resolves a cmdlet by exact name first, then by a
// case-insensitive pass.
func findRecord(records []docs.CommandRecord, name string) (docs.CommandRecord, bool) {
	for _, r := range records {
		if r.Name == name {
			return r, true
		}
	}
	for _, r := range records {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return docs.CommandRecord{}, false
}
