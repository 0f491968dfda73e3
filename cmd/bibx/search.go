package main

import (
	"strings"

	"github.com/spf13/cobra"
)

const defaultSearchLimit = 50

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", defaultSearchLimit, "Maximum results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Full-text search over the query index",
	Long: `Search titles, abstracts, authors and keywords in the SQLite index.
Run 'bibx index rebuild' after changing the snapshot.

Examples:
  bibx search machine learning
  bibx search --limit 5 "circular economy"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenIndex(cfg)
	defer db.Close()

	hits, err := db.Search(strings.Join(args, " "), searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		for i, h := range hits {
			outputHuman("%d. [%d] %s (%s)\n   %s\n", i+1, h.Citations, h.ID, h.Year, truncateString(h.Title, 70))
		}
		if len(hits) == 0 {
			outputHuman("No matches.\n")
		}
		return nil
	}
	return outputJSON(hits)
}
