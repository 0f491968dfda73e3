package export

import (
	"fmt"
	"strings"

	"github.com/matsen/bibx/internal/corpus"
)

// FormatCitation renders one document as a compact reference string:
// "Authors (Year). Title. Journal. doi:DOI". Missing pieces degrade
// gracefully rather than leaving UNKNOWN sentinels in the output.
func FormatCitation(c *corpus.Corpus, row int) string {
	t := c.Table

	authors := t.Cell(row, corpus.ColAuthor)
	if authors == corpus.Unknown {
		authors = "Unknown Authors"
	} else {
		authors = truncateAuthors(authors, 6)
	}

	year := t.Cell(row, corpus.ColYear)
	if year == corpus.Unknown {
		year = "n.d."
	}

	title := t.Cell(row, corpus.ColTitle)
	if title == corpus.Unknown {
		title = "Untitled"
	}

	parts := []string{fmt.Sprintf("%s (%s). %s.", authors, year, title)}
	if journal := t.Cell(row, corpus.ColJournal); journal != corpus.Unknown {
		parts = append(parts, journal+".")
	}
	if doi := t.Cell(row, corpus.ColDOI); doi != corpus.Unknown {
		parts = append(parts, "doi:"+doi)
	}
	return strings.Join(parts, " ")
}

// Citations builds the document-id to formatted-citation dictionary
// consumed by reporting and summarization collaborators.
func Citations(c *corpus.Corpus) map[string]string {
	out := make(map[string]string, c.Table.Len())
	for row := 0; row < c.Table.Len(); row++ {
		out[c.DocID(row).String()] = FormatCitation(c, row)
	}
	return out
}

// truncateAuthors caps a semicolon-joined author list at n names,
// appending "et al." past the cap.
func truncateAuthors(raw string, n int) string {
	var names []string
	for _, name := range strings.Split(raw, ";") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) > n {
		return strings.Join(names[:n], ", ") + ", et al."
	}
	return strings.Join(names, ", ")
}
