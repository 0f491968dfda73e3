package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/corpus"
)

var indicesUnit string

func init() {
	indicesCmd.Flags().StringVar(&indicesUnit, "unit", "author", "Entity: author, country, institution or source")
	rootCmd.AddCommand(indicesCmd)
}

var indicesCmd = &cobra.Command{
	Use:   "indices NAME",
	Short: "Citation statistics and h/g/e/m indices for one entity",
	Long: `Compute total citations, self-citations (heuristic: the entity's
name occurring inside its own documents' reference strings), and the
h, g, e and m indices for one entity.

Examples:
  bibx indices "smith j."
  bibx indices --unit source "j clean prod"`,
	Args: cobra.ExactArgs(1),
	RunE: runIndices,
}

func runIndices(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	unit, err := corpus.ParseUnit(indicesUnit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	c := mustLoadCorpus(cfg)
	stats, ok := c.Stats(unit, args[0])
	if !ok {
		exitWithError(ExitDataError, "%s %q not found in corpus", unit, args[0])
	}

	if humanOutput {
		outputHuman("%s (%s): %d documents, %d citations (%d self)\n",
			stats.Name, stats.ID, stats.Documents, stats.TotalCitations, stats.SelfCitations)
		outputHuman("h=%.0f g=%.0f e=%.2f m=%.2f\n", stats.H, stats.G, stats.E, stats.M)
		return nil
	}
	return outputJSON(stats)
}
