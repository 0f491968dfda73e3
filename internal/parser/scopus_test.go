package parser

import (
	"strings"
	"testing"

	"github.com/matsen/bibx/internal/corpus"
)

const scopusCSV = `Authors,Title,Year,Source title,Abbreviated Source Title,Cited by,DOI,Page start,Page end,Document Type,Language of Original Document
"Smith J.; Doe A.","Alpha Study of Networks",2018,"Journal of Testing","J Test",12,10.1000/alpha,100,110,Article,English
"Zed Q.","Beta Results",2020,"Proceedings of Things","Proc Things",3,,,,Conference Paper,English
`

func TestParseScopus(t *testing.T) {
	tbl, err := Parse(strings.NewReader(scopusCSV), Scopus)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tbl.Len())
	}

	if got := tbl.Cell(0, corpus.ColAuthor); got != "Smith J.; Doe A." {
		t.Errorf("author = %q", got)
	}
	if got := tbl.Cell(0, corpus.ColTitle); got != "Alpha Study of Networks" {
		t.Errorf("title = %q", got)
	}
	if got := tbl.Cell(0, corpus.ColNote); got != "12" {
		t.Errorf("cited-by note = %q, want 12", got)
	}
	if got := tbl.Cell(0, corpus.ColPages); got != "100-110" {
		t.Errorf("pages = %q, want 100-110", got)
	}
	if got := tbl.Cell(0, corpus.ColAbbrevSourceTitle); got != "J Test" {
		t.Errorf("abbrev source = %q", got)
	}

	// Row 2 has no DOI and no pages.
	if got := tbl.Cell(1, corpus.ColDOI); got != corpus.Unknown {
		t.Errorf("missing doi = %q, want %q", got, corpus.Unknown)
	}
	if got := tbl.Cell(1, corpus.ColPages); got != corpus.Unknown {
		t.Errorf("missing pages = %q, want %q", got, corpus.Unknown)
	}
}

func TestParseScopus_BOMHeader(t *testing.T) {
	csv := "\uFEFFAuthors,Title\n\"Solo S.\",\"BOM Title\"\n"
	tbl, err := Parse(strings.NewReader(csv), Scopus)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := tbl.Cell(0, corpus.ColAuthor); got != "Solo S." {
		t.Errorf("author under BOM header = %q", got)
	}
}

func TestParseScopus_UnknownHeadersDropped(t *testing.T) {
	csv := "Title,Mystery Column\n\"Kept\",\"discarded value\"\n"
	tbl, err := Parse(strings.NewReader(csv), Scopus)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := tbl.Cell(0, corpus.ColTitle); got != "Kept" {
		t.Errorf("title = %q", got)
	}
}

func TestParseScopus_FullNamesNotMisfiled(t *testing.T) {
	// "Author full names" has no canonical column; it must not leak
	// into the address column used for publisher/place data.
	csv := "Authors,Author full names,Title\n\"Smith J.\",\"Smith, John (12345)\",\"Kept\"\n"
	tbl, err := Parse(strings.NewReader(csv), Scopus)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := tbl.Cell(0, corpus.ColAddress); got != corpus.Unknown {
		t.Errorf("address = %q, want %q", got, corpus.Unknown)
	}
	if got := tbl.Cell(0, corpus.ColAuthor); got != "Smith J." {
		t.Errorf("author = %q", got)
	}
}

func TestParseDatabase(t *testing.T) {
	for _, tag := range []string{"scopus", "wos", "pubmed"} {
		if _, err := ParseDatabase(tag); err != nil {
			t.Errorf("ParseDatabase(%q): %v", tag, err)
		}
	}
	if _, err := ParseDatabase("dimensions"); err == nil {
		t.Error("invalid tag accepted")
	}
}
