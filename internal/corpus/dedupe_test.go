package corpus

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "A Study of Things", "a study of things"},
		{"punctuation and digits", "Water, treatment: 2nd edition!", "water treatment nd edition"},
		{"accents", "Écologie générale", "ecologie generale"},
		{"whitespace collapse", "  deep\t\tlearning   now ", "deep learning now"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeduplicate_DOIAndTitle(t *testing.T) {
	// Two rows share a DOI, a third has no DOI but a title that
	// normalizes equal to the first. Exactly one row survives.
	tbl := NewTable()
	tbl.AppendRow(map[string]string{ColDOI: "10.1/abc", ColTitle: "Alpha Study"})
	tbl.AppendRow(map[string]string{ColDOI: "10.1/abc", ColTitle: "Completely Different"})
	tbl.AppendRow(map[string]string{ColTitle: "alpha study!"})

	out, stats := Deduplicate(tbl)
	if out.Len() != 1 {
		t.Fatalf("remaining rows = %d, want 1", out.Len())
	}
	if stats.ByDOI != 1 {
		t.Errorf("ByDOI = %d, want 1", stats.ByDOI)
	}
	if stats.ByTitle != 1 {
		t.Errorf("ByTitle = %d, want 1", stats.ByTitle)
	}
	if got := out.Cell(0, ColTitle); got != "Alpha Study" {
		t.Errorf("surviving title = %q, want first occurrence", got)
	}
}

func TestDeduplicate_SignalsIndependent(t *testing.T) {
	// A row dropped by the DOI signal still registers its title, so a
	// later row duplicating that title is dropped too.
	tbl := NewTable()
	tbl.AppendRow(map[string]string{ColDOI: "10.1/abc", ColTitle: "Alpha Study"})
	tbl.AppendRow(map[string]string{ColDOI: "10.1/abc", ColTitle: "Completely Different"})
	tbl.AppendRow(map[string]string{ColTitle: "completely different!"})

	out, stats := Deduplicate(tbl)
	if out.Len() != 1 {
		t.Fatalf("remaining rows = %d, want 1", out.Len())
	}
	if got := out.Cell(0, ColTitle); got != "Alpha Study" {
		t.Errorf("surviving title = %q, want first occurrence", got)
	}
	if stats.ByDOI != 1 || stats.ByTitle != 1 {
		t.Errorf("stats = %+v, want one drop per signal", stats)
	}
}

func TestDeduplicate_UnknownDOINeverDuplicate(t *testing.T) {
	tbl := NewTable()
	tbl.AppendRow(map[string]string{ColTitle: "First"})
	tbl.AppendRow(map[string]string{ColTitle: "Second"})

	out, stats := Deduplicate(tbl)
	if out.Len() != 2 {
		t.Fatalf("remaining rows = %d, want 2 (UNKNOWN DOI must not match itself)", out.Len())
	}
	if stats.ByDOI != 0 {
		t.Errorf("ByDOI = %d, want 0", stats.ByDOI)
	}
}

func TestDeduplicate_SurvivorsShareNothing(t *testing.T) {
	tbl := NewTable()
	tbl.AppendRow(map[string]string{ColDOI: "10.1/a", ColTitle: "One"})
	tbl.AppendRow(map[string]string{ColDOI: "10.1/b", ColTitle: "Two"})
	tbl.AppendRow(map[string]string{ColDOI: "10.1/a", ColTitle: "Three"})
	tbl.AppendRow(map[string]string{ColDOI: "10.1/c", ColTitle: "two"})

	out, _ := Deduplicate(tbl)
	seenDOI := map[string]bool{}
	seenTitle := map[string]bool{}
	for i := 0; i < out.Len(); i++ {
		doi := out.Cell(i, ColDOI)
		title := NormalizeTitle(out.Cell(i, ColTitle))
		if doi != Unknown && seenDOI[doi] {
			t.Errorf("row %d: duplicate DOI %q survived", i, doi)
		}
		if title != "" && seenTitle[title] {
			t.Errorf("row %d: duplicate normalized title %q survived", i, title)
		}
		seenDOI[doi] = true
		seenTitle[title] = true
	}
}
