package corpus

import "sort"

// DocSummary is one document in a ranked report listing.
type DocSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      string `json:"year"`
	Source    string `json:"source"`
	Citations int    `json:"citations"`
}

// Report is the corpus health summary behind the info command.
type Report struct {
	Documents  int    `json:"documents"`
	Tag        string `json:"database"`
	YearMin    int    `json:"year_min"`
	YearMax    int    `json:"year_max"`

	Authors        int `json:"authors"`
	Countries      int `json:"countries"`
	Institutions   int `json:"institutions"`
	Sources        int `json:"sources"`
	AuthorKeywords int `json:"author_keywords"`
	KeywordsPlus   int `json:"keywords_plus"`
	References     int `json:"references"`
	LocalRefs      int `json:"local_references"`

	DocsPerYear      map[int]int `json:"docs_per_year"`
	CitationsPerYear map[int]int `json:"citations_per_year"`

	// CollaborationIndex is the mean author count over multi-authored
	// documents.
	CollaborationIndex float64 `json:"collaboration_index"`
	// Lotka maps papers-per-author to the number of authors with that
	// productivity (Lotka's law distribution).
	Lotka map[int]int `json:"lotka"`

	MostCited     []DocSummary   `json:"most_cited"`
	UnknownCounts map[string]int `json:"unknown_counts"`
}

// Summarize computes the health report for a corpus snapshot.
func (c *Corpus) Summarize(topCited int) Report {
	r := Report{
		Documents:      c.Table.Len(),
		Tag:            c.Tag,
		Authors:        c.AuthorIDs.Len(),
		Countries:      c.CountryIDs.Len(),
		Institutions:   c.InstitutionIDs.Len(),
		Sources:        c.SourceIDs.Len(),
		AuthorKeywords: c.AuthorKWIDs.Len(),
		KeywordsPlus:   c.KeywordPlusIDs.Len(),
		References:     c.ReferenceIDs.Len(),
		LocalRefs:      len(c.LocalRefs),

		DocsPerYear:      make(map[int]int),
		CitationsPerYear: make(map[int]int),
		Lotka:            make(map[int]int),
		UnknownCounts:    c.Table.UnknownCounts(),
	}

	for d, y := range c.Years {
		if y < 0 {
			continue
		}
		if r.YearMin == 0 || y < r.YearMin {
			r.YearMin = y
		}
		if y > r.YearMax {
			r.YearMax = y
		}
		r.DocsPerYear[y]++
		r.CitationsPerYear[y] += c.Citations[d]
	}

	// Collaboration index over multi-authored documents.
	multiDocs, multiAuthors := 0, 0
	for _, authors := range c.AuthorsPerDoc {
		if len(authors) > 1 {
			multiDocs++
			multiAuthors += len(authors)
		}
	}
	if multiDocs > 0 {
		r.CollaborationIndex = float64(multiAuthors) / float64(multiDocs)
	}

	// Lotka distribution: papers-per-author histogram.
	perAuthor := Frequencies(c.AuthorsPerDoc)
	delete(perAuthor, "unknown")
	for _, n := range perAuthor {
		r.Lotka[n]++
	}

	r.MostCited = c.TopCited(topCited)
	return r
}

// TopCited returns the n most-cited documents, citation-descending
// with row order breaking ties.
func (c *Corpus) TopCited(n int) []DocSummary {
	rows := make([]int, c.Table.Len())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return c.Citations[rows[i]] > c.Citations[rows[j]]
	})
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]DocSummary, 0, n)
	for _, row := range rows[:n] {
		out = append(out, DocSummary{
			ID:        c.DocID(row).String(),
			Title:     c.Table.Cell(row, ColTitle),
			Author:    c.Table.Cell(row, ColAuthor),
			Year:      c.Table.Cell(row, ColYear),
			Source:    c.Table.Cell(row, ColAbbrevSourceTitle),
			Citations: c.Citations[row],
		})
	}
	return out
}
