package parser

import (
	"strings"
	"testing"

	"github.com/matsen/bibx/internal/corpus"
)

const wosExport = `FN Clarivate Analytics Web of Science
VR 1.0
PT J
AU Smith, J.
   Doe, A.
TI A Long Title Split
   Across Two Lines
SO JOURNAL OF EXAMPLES
J9 J EXAMPL
LA English
DT Article; Early Access
CR Jones B, 2001, SOME J, V1, P1
   Brown C, 2005, OTHER J, V2, P2
TC 7
DI 10.1000/wos1
PY 2019
BP 10
EP 20
ER

PT J
AU Solo, S.
TI Second Record
PY 2021
ER
EF
`

func TestParseWoS(t *testing.T) {
	tbl, err := Parse(strings.NewReader(wosExport), WoS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tbl.Len())
	}

	// List-tag continuations rejoin with "; ".
	if got := tbl.Cell(0, corpus.ColAuthor); got != "Smith, J.; Doe, A." {
		t.Errorf("author = %q", got)
	}
	if got := tbl.Cell(0, corpus.ColReferences); got != "Jones B, 2001, SOME J, V1, P1; Brown C, 2005, OTHER J, V2, P2" {
		t.Errorf("references = %q", got)
	}
	// Scalar-tag continuations rejoin with a space.
	if got := tbl.Cell(0, corpus.ColTitle); got != "A Long Title Split Across Two Lines" {
		t.Errorf("title = %q", got)
	}
	if got := tbl.Cell(0, corpus.ColPages); got != "10-20" {
		t.Errorf("pages = %q, want 10-20", got)
	}
	if got := tbl.Cell(0, corpus.ColNote); got != "7" {
		t.Errorf("times-cited note = %q, want 7", got)
	}
	// Composite type collapses onto its base type.
	if got := tbl.Cell(0, corpus.ColDocumentType); got != "Article" {
		t.Errorf("document type = %q, want Article", got)
	}

	if got := tbl.Cell(1, corpus.ColTitle); got != "Second Record" {
		t.Errorf("second title = %q", got)
	}
	if got := tbl.Cell(1, corpus.ColAuthor); got != "Solo, S." {
		t.Errorf("second author = %q", got)
	}
}

func TestParseWoS_TruncatedRecordStillFlushed(t *testing.T) {
	truncated := "PT J\nAU Last, L.\nTI Cut Off Mid Record\nPY 2020\n"
	tbl, err := Parse(strings.NewReader(truncated), WoS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (record without ER must flush at EOF)", tbl.Len())
	}
	if got := tbl.Cell(0, corpus.ColTitle); got != "Cut Off Mid Record" {
		t.Errorf("title = %q", got)
	}
	if got := tbl.Cell(0, corpus.ColAbstract); got != corpus.Unknown {
		t.Errorf("abstract = %q, want %q", got, corpus.Unknown)
	}
}

func TestParseWoS_Empty(t *testing.T) {
	tbl, err := Parse(strings.NewReader("FN Something\nVR 1.0\nEF\n"), WoS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len = %d, want 0", tbl.Len())
	}
}
