// Package config handles toolkit configuration: a bibx.yml file with
// environment-variable overrides (a .env file is honored when
// present).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working
// directory.
const DefaultFile = "bibx.yml"

// Config holds the toolkit defaults. Every field has a usable zero
// default so a missing config file is not an error.
type Config struct {
	// SnapshotPath is the corpus TSV snapshot read and written by the
	// pipeline commands.
	SnapshotPath string `yaml:"snapshot_path"`
	// IndexPath is the SQLite query index location.
	IndexPath string `yaml:"index_path"`
	// Database is the default source database tag for ingest.
	Database string `yaml:"database"`
	// Dedupe enables duplicate-document removal at ingest.
	Dedupe bool `yaml:"dedupe"`
	// MinOccurrence is the default adjacency-matrix pruning threshold.
	MinOccurrence int `yaml:"min_occurrence"`
	// TopCited caps the most-cited listing in reports.
	TopCited int `yaml:"top_cited"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SnapshotPath:  "corpus.tsv",
		IndexPath:     "bibx.db",
		Database:      "scopus",
		Dedupe:        true,
		MinOccurrence: 0,
		TopCited:      10,
	}
}

// Load reads configuration: defaults, then the YAML file at path (a
// missing file at the default location is fine), then environment
// overrides. A .env file in the working directory is loaded first so
// both override routes behave the same.
func Load(path string) (*Config, error) {
	cfg := Default()

	// Missing .env is the normal case.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultFile:
		// fine, defaults stand
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv folds BIBX_* environment variables over the config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("BIBX_SNAPSHOT"); v != "" {
		cfg.SnapshotPath = v
	}
	if v := os.Getenv("BIBX_INDEX"); v != "" {
		cfg.IndexPath = v
	}
	if v := os.Getenv("BIBX_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("BIBX_DEDUPE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Dedupe = b
		}
	}
	if v := os.Getenv("BIBX_MIN_OCCURRENCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinOccurrence = n
		}
	}
	if v := os.Getenv("BIBX_TOP_CITED"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TopCited = n
		}
	}
}
