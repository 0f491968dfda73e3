package corpus

import "testing"

func TestSummarize(t *testing.T) {
	c := buildTestCorpus(t)
	r := c.Summarize(2)

	if r.Documents != 3 || r.Tag != "scopus" {
		t.Errorf("documents/tag = %d/%q", r.Documents, r.Tag)
	}
	if r.YearMin != 2015 || r.YearMax != 2021 {
		t.Errorf("year span = %d..%d, want 2015..2021", r.YearMin, r.YearMax)
	}
	if r.DocsPerYear[2018] != 1 {
		t.Errorf("docs in 2018 = %d, want 1", r.DocsPerYear[2018])
	}
	if r.CitationsPerYear[2018] != 10 {
		t.Errorf("citations in 2018 = %d, want 10", r.CitationsPerYear[2018])
	}

	// One multi-authored document with two authors.
	if r.CollaborationIndex != 2 {
		t.Errorf("collaboration index = %v, want 2", r.CollaborationIndex)
	}

	// Lotka: doe a. has 2 papers; smith j. and zed q. have 1 each.
	if r.Lotka[1] != 2 || r.Lotka[2] != 1 {
		t.Errorf("lotka = %v, want map[1:2 2:1]", r.Lotka)
	}

	if len(r.MostCited) != 2 {
		t.Fatalf("most cited length = %d, want 2", len(r.MostCited))
	}
	if r.MostCited[0].Title != "Alpha Study of Networks" || r.MostCited[0].Citations != 10 {
		t.Errorf("top cited = %+v", r.MostCited[0])
	}
}

func TestTopCited_TiesKeepRowOrder(t *testing.T) {
	tbl := NewTable()
	tbl.AppendRow(map[string]string{ColTitle: "first", ColNote: "cited by: 5"})
	tbl.AppendRow(map[string]string{ColTitle: "second", ColNote: "cited by: 5"})
	c, err := Build(tbl, "scopus", BuildOptions{CurrentYear: 2025})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	top := c.TopCited(10)
	if len(top) != 2 {
		t.Fatalf("length = %d, want 2 (n clipped to corpus size)", len(top))
	}
	if top[0].Title != "first" || top[1].Title != "second" {
		t.Errorf("tie order = %q, %q", top[0].Title, top[1].Title)
	}
	if top[0].ID != "d_0" {
		t.Errorf("id = %q, want d_0", top[0].ID)
	}
}
