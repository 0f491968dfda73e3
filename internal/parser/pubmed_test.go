package parser

import (
	"strings"
	"testing"

	"github.com/matsen/bibx/internal/corpus"
)

const medlineExport = `PMID- 123456
TI  - Gene expression in
      stressed cells
AB  - We measured expression under
      heat stress.
AU  - Smith J
AU  - Doe A
AD  - Department of Biology, Example University, Boston, United States.
TA  - J Cell Stress
DP  - 2020 Jan 15
PT  - Journal Article
PT  - Research Support, Non-U.S. Gov't
LID - 10.1000/pub123 [doi]
LA  - eng

PMID- 789
TI  - Second record
DP  - Jan 2, 2006
PT  - Review
`

func TestParsePubMed(t *testing.T) {
	tbl, err := Parse(strings.NewReader(medlineExport), PubMed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tbl.Len())
	}

	if got := tbl.Cell(0, corpus.ColTitle); got != "Gene expression in stressed cells" {
		t.Errorf("title = %q", got)
	}
	if got := tbl.Cell(0, corpus.ColAuthor); got != "Smith J; Doe A" {
		t.Errorf("author = %q", got)
	}
	if got := tbl.Cell(0, corpus.ColYear); got != "2020" {
		t.Errorf("year = %q, want 2020", got)
	}
	if got := tbl.Cell(0, corpus.ColDOI); got != "10.1000/pub123" {
		t.Errorf("doi = %q", got)
	}
	// The first PT segment that maps onto the taxonomy wins.
	if got := tbl.Cell(0, corpus.ColDocumentType); got != "Article" {
		t.Errorf("document type = %q, want Article", got)
	}
	if got := tbl.Cell(0, corpus.ColPubmedID); got != "123456" {
		t.Errorf("pmid = %q", got)
	}

	// Year sniffing for DP values that do not lead with the year.
	if got := tbl.Cell(1, corpus.ColYear); got != "2006" {
		t.Errorf("sniffed year = %q, want 2006", got)
	}
	if got := tbl.Cell(1, corpus.ColDocumentType); got != "Review" {
		t.Errorf("second document type = %q, want Review", got)
	}
}

func TestParsePubMed_WrappedListValueStaysOneItem(t *testing.T) {
	// A six-space continuation of an AD line is one wrapped value, not
	// a new affiliation segment; only a repeated AD tag starts one.
	export := `PMID- 42
AU  - Smith J
AU  - Doe A
AD  - Department of Very Long Names, Example
      University, Boston.
AD  - Institute of Short Names, Oslo.
`
	tbl, err := Parse(strings.NewReader(export), PubMed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := "Department of Very Long Names, Example University, Boston.; Institute of Short Names, Oslo."
	if got := tbl.Cell(0, corpus.ColAffiliation); got != want {
		t.Errorf("affiliation = %q, want %q", got, want)
	}
}

func TestCutMedlineTag(t *testing.T) {
	cases := []struct {
		line       string
		tag, value string
		ok         bool
	}{
		{"PMID- 123", "PMID", "123", true},
		{"TI  - Some Title", "TI", "Some Title", true},
		{"no dash here", "", "", false},
		{"- leading dash", "", "", false},
		{"TOOLONG - value", "", "", false},
	}
	for _, c := range cases {
		tag, value, ok := cutMedlineTag(c.line)
		if tag != c.tag || value != c.value || ok != c.ok {
			t.Errorf("cutMedlineTag(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.line, tag, value, ok, c.tag, c.value, c.ok)
		}
	}
}

func TestPubmedYear(t *testing.T) {
	cases := []struct {
		dp   string
		want string
	}{
		{"2019 Dec", "2019"},
		{"1999", "1999"},
		{"Jan 2, 2006", "2006"},
		{"garbage", corpus.Unknown},
	}
	for _, c := range cases {
		if got := pubmedYear(c.dp); got != c.want {
			t.Errorf("pubmedYear(%q) = %q, want %q", c.dp, got, c.want)
		}
	}
}
