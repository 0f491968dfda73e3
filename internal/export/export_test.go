package export

import (
	"strings"
	"testing"

	"github.com/matsen/bibx/internal/corpus"
)

func buildExportCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	tbl := corpus.NewTable()
	tbl.AppendRow(map[string]string{
		corpus.ColTitle:        "Signal & Noise in Measurement",
		corpus.ColAuthor:       "Smith J.; Doe A.",
		corpus.ColYear:         "2018",
		corpus.ColJournal:      "Journal of Testing",
		corpus.ColVolume:       "12",
		corpus.ColNumber:       "3",
		corpus.ColPages:        "100-110",
		corpus.ColDOI:          "10.1000/alpha",
		corpus.ColDocumentType: "Article",
	})
	tbl.AppendRow(map[string]string{
		corpus.ColTitle:        "Workshop Findings",
		corpus.ColAuthor:       "Zed Q.",
		corpus.ColDocumentType: "Conference Paper",
	})

	c, err := corpus.Build(tbl, "scopus", corpus.BuildOptions{CurrentYear: 2025})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

func TestToBibTeX(t *testing.T) {
	c := buildExportCorpus(t)
	entry := ToBibTeX(c, 0)

	for _, want := range []string{
		"@article{d_0,",
		"author = {Smith J. and Doe A.},",
		`title = {Signal \& Noise in Measurement},`,
		"journal = {Journal of Testing},",
		"year = {2018},",
		"pages = {100-110},",
		"doi = {10.1000/alpha},",
	} {
		if !strings.Contains(entry, want) {
			t.Errorf("entry missing %q:\n%s", want, entry)
		}
	}
}

func TestToBibTeX_ConferencePaperUsesBooktitle(t *testing.T) {
	c := buildExportCorpus(t)
	entry := ToBibTeX(c, 1)

	if !strings.HasPrefix(entry, "@inproceedings{d_1,") {
		t.Errorf("entry type wrong:\n%s", entry)
	}
	// UNKNOWN fields are skipped, never rendered.
	if strings.Contains(entry, corpus.Unknown) {
		t.Errorf("entry leaks UNKNOWN:\n%s", entry)
	}
	if strings.Contains(entry, "year =") {
		t.Errorf("missing year still rendered:\n%s", entry)
	}
}

func TestToBibTeXList(t *testing.T) {
	c := buildExportCorpus(t)
	all := ToBibTeXList(c)
	if strings.Count(all, "@") != 2 {
		t.Errorf("expected 2 entries:\n%s", all)
	}
}

func TestFormatCitation(t *testing.T) {
	c := buildExportCorpus(t)

	got := FormatCitation(c, 0)
	want := "Smith J., Doe A. (2018). Signal & Noise in Measurement. Journal of Testing. doi:10.1000/alpha"
	if got != want {
		t.Errorf("citation = %q, want %q", got, want)
	}

	// Missing year and journal degrade gracefully.
	got = FormatCitation(c, 1)
	want = "Zed Q. (n.d.). Workshop Findings."
	if got != want {
		t.Errorf("citation = %q, want %q", got, want)
	}
}

func TestFormatCitation_TruncatesLongAuthorLists(t *testing.T) {
	tbl := corpus.NewTable()
	tbl.AppendRow(map[string]string{
		corpus.ColTitle:  "Crowded Paper",
		corpus.ColAuthor: "A1 X.; A2 X.; A3 X.; A4 X.; A5 X.; A6 X.; A7 X.; A8 X.",
		corpus.ColYear:   "2020",
	})
	c, err := corpus.Build(tbl, "scopus", corpus.BuildOptions{CurrentYear: 2025})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := FormatCitation(c, 0)
	if !strings.Contains(got, "et al.") {
		t.Errorf("long author list not truncated: %q", got)
	}
	if strings.Contains(got, "A7 X.") {
		t.Errorf("authors past the cap still rendered: %q", got)
	}
}

func TestCitations(t *testing.T) {
	c := buildExportCorpus(t)
	dict := Citations(c)
	if len(dict) != 2 {
		t.Fatalf("dictionary size = %d, want 2", len(dict))
	}
	if _, ok := dict["d_0"]; !ok {
		t.Error("d_0 missing from citation dictionary")
	}
}
