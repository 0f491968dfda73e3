package parser

import (
	"testing"

	"github.com/matsen/bibx/internal/corpus"
)

func TestNormalizeDocumentTypes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Article; Early Access", "Article"},
		{"Proceedings Paper", "Conference Paper"},
		{"Meeting Abstract", "Conference Abstract"},
		{"Journal Article", "Article"},
		{"Clinical Trial, Phase III", "Article"},
		{"Meta-Analysis", "Review"},
		{"Editorial Material", "Editorial"},
		{"Correction", "Erratum"},
		{"Short Survey", "Review"},
		// Composite where only one segment maps.
		{"Letter; Research Support, N.I.H., Extramural", "Letter"},
		// Unmapped values pass through untouched.
		{"Patent", "Patent"},
	}

	tbl := corpus.NewTable()
	for _, c := range cases {
		tbl.AppendRow(map[string]string{corpus.ColDocumentType: c.raw})
	}
	NormalizeDocumentTypes(tbl)

	for i, c := range cases {
		if got := tbl.Cell(i, corpus.ColDocumentType); got != c.want {
			t.Errorf("normalize(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeDocumentTypes_UnknownLeftAlone(t *testing.T) {
	tbl := corpus.NewTable()
	tbl.AppendRow(map[string]string{})
	NormalizeDocumentTypes(tbl)
	if got := tbl.Cell(0, corpus.ColDocumentType); got != corpus.Unknown {
		t.Errorf("unknown type = %q, want %q", got, corpus.Unknown)
	}
}
