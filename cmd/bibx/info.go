package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize the current corpus snapshot",
	Long: `Report corpus health: document and entity counts, year range,
documents and citations per year, the collaboration index, the Lotka
productivity distribution, most-cited documents, and per-column
UNKNOWN coverage.`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	c := mustLoadCorpus(cfg)
	report := c.Summarize(cfg.TopCited)

	if !humanOutput {
		return outputJSON(report)
	}

	outputHuman("Corpus: %d documents (%s), %d-%d\n", report.Documents, report.Tag, report.YearMin, report.YearMax)
	outputHuman("Entities: %d authors, %d countries, %d institutions, %d sources\n",
		report.Authors, report.Countries, report.Institutions, report.Sources)
	outputHuman("Keywords: %d author, %d plus; references: %d (%d resolved locally)\n",
		report.AuthorKeywords, report.KeywordsPlus, report.References, report.LocalRefs)
	outputHuman("Collaboration index: %.2f\n", report.CollaborationIndex)
	if len(report.MostCited) > 0 {
		outputHuman("\nMost cited:\n")
		for i, d := range report.MostCited {
			outputHuman("%d. [%d] %s (%s) %s\n", i+1, d.Citations, d.ID, d.Year, truncateString(d.Title, 70))
		}
	}
	return nil
}
