package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "bibtex", "Output format: bibtex or citations")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus as BibTeX or formatted citations",
	Long: `Render the corpus for external consumers: a BibTeX file, or the
document-id to formatted-citation-string dictionary (JSON) used by
reporting and summarization tooling.

Examples:
  bibx export --format bibtex --out corpus.bib
  bibx export --format citations`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	c := mustLoadCorpus(cfg)

	switch exportFormat {
	case "bibtex":
		out := export.ToBibTeXList(c)
		if exportOut == "" {
			outputHuman("%s", out)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(out), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOut, err)
		}
		if humanOutput {
			outputHuman("Wrote %d entries to %s\n", c.Table.Len(), exportOut)
			return nil
		}
		return outputJSON(StatusResponse{Status: "written", Path: exportOut})
	case "citations":
		return outputJSON(export.Citations(c))
	default:
		exitWithError(ExitError, "unknown format %q (want bibtex or citations)", exportFormat)
	}
	return nil
}
