package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/markdown"
	"github.com/azindex/azindex/internal/pipeline"
	"github.com/azindex/azindex/internal/store"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [docs-root]",
	Short: "Build the search artifacts from a documentation clone",
	Long: `Extract scans a clone of the azure-docs-powershell repository, picks
its newest azps-* release, and writes the manifest, description, and
per-module artifacts into the data directory.

The docs-root argument can be omitted when docs_root is set in the
config file or AZINDEX_DOCS_ROOT is exported.`,
	Example: `  # Extract from an explicit clone
  azindex extract ~/src/azure-docs-powershell

  # Extract from the configured docs_root
  azindex extract`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	root := viper.GetString("docs_root")
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		return errors.NewUserError(errors.New("no documentation root given"),
			"Pass a docs-root argument or set docs_root in the config file")
	}

	src, err := markdown.New(root)
	if err != nil {
		return errors.NewUserError(err,
			"Expected a clone of azure-docs-powershell with an azps-* release directory")
	}

	res, err := pipeline.Run(cmd.Context(), src, pipeline.Options{})
	if err != nil {
		if errors.Is(err, errors.ErrEmptyCorpus) {
			return errors.NewUserError(err,
				"No cmdlet documentation was found; check that the tree is a full clone")
		}
		return errors.Wrap(err, "extracting documentation")
	}

	dir := dataDir()
	if err := store.Write(dir, res.Manifest, res.Descriptions, res.Modules); err != nil {
		return errors.NewSystemError(err, "Check permissions on the data directory")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Indexed %d commands across %d modules (release %s)\n",
		res.Stats.Commands, res.Stats.Modules, res.Manifest.Version)
	if res.Stats.SkippedModules > 0 || res.Stats.Degraded > 0 {
		fmt.Fprintf(out, "Skipped %d empty modules; %d commands have partial documentation\n",
			res.Stats.SkippedModules, res.Stats.Degraded)
	}
	fmt.Fprintf(out, "Artifacts written to %s\n", dir)
	return nil
}
