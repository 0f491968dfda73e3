package main

import (
	"github.com/spf13/cobra"
)

func init() {
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexInfoCmd)
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite query index",
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the corpus snapshot",
	Long: `Clear the SQLite index and repopulate it from the current corpus
snapshot: one row per document, the entity id dictionaries with
occurrence and citation aggregates, and a full-text table over
titles, abstracts, authors and keywords.`,
	RunE: runIndexRebuild,
}

var indexInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show index provenance",
	RunE:  runIndexInfo,
}

// IndexResult is the rebuild response.
type IndexResult struct {
	Documents  int    `json:"documents"`
	SnapshotID string `json:"snapshot_id"`
	Path       string `json:"path"`
}

func runIndexRebuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	c := mustLoadCorpus(cfg)

	db := mustOpenIndex(cfg)
	defer db.Close()

	n, snapshotID, err := db.Rebuild(c)
	if err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}

	result := IndexResult{Documents: n, SnapshotID: snapshotID, Path: cfg.IndexPath}
	if humanOutput {
		outputHuman("Indexed %d documents into %s (snapshot %s)\n", n, cfg.IndexPath, snapshotID)
		return nil
	}
	return outputJSON(result)
}

func runIndexInfo(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenIndex(cfg)
	defer db.Close()

	snapshotID, tag, documents, err := db.Meta()
	if err != nil {
		exitWithError(ExitDataError, "index is empty, run 'bibx index rebuild' first")
	}

	result := struct {
		SnapshotID string `json:"snapshot_id"`
		Database   string `json:"database"`
		Documents  int    `json:"documents"`
	}{snapshotID, tag, documents}
	if humanOutput {
		outputHuman("Index: %d documents (%s), snapshot %s\n", documents, tag, snapshotID)
		return nil
	}
	return outputJSON(result)
}
