// Package main provides the bibx CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/config"
	"github.com/matsen/bibx/internal/corpus"
	"github.com/matsen/bibx/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	configPath  string
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibx",
	Short: "Bibliometric corpus toolkit",
	Long: `bibx ingests bibliographic export files (Scopus CSV, Web of
Science plaintext, PubMed MEDLINE) and normalizes them into one
corpus snapshot for bibliometric analysis.

Core features:
  - Lenient per-database parsing onto a canonical column schema
  - Deduplication by DOI and normalized title
  - Stable per-snapshot entity identifiers (authors, countries,
    institutions, sources, keywords, references)
  - Citation statistics and h/g/e/m indices
  - Sparse co-occurrence and document-reference matrices
  - SQLite full-text query index

The corpus snapshot is a plain tab-delimited table; all derived
state is recomputed from it. Commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadCorpus reads the corpus snapshot and rebuilds derived
// state, exits on error.
func mustLoadCorpus(cfg *config.Config) *corpus.Corpus {
	t, err := corpus.Load(cfg.SnapshotPath)
	if err != nil {
		exitWithError(ExitDataError, "loading snapshot: %v", err)
	}
	c, err := corpus.Build(t, cfg.Database, corpus.BuildOptions{})
	if err != nil {
		exitWithError(ExitDataError, "building corpus: %v", err)
	}
	return c
}

// mustOpenIndex opens the SQLite query index, exits on error. The
// caller is responsible for calling Close() on the returned DB.
func mustOpenIndex(cfg *config.Config) *storage.DB {
	db, err := storage.OpenDB(cfg.IndexPath)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	return db
}
