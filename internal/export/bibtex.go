// Package export renders corpus documents for external consumers:
// BibTeX entries and the document-id to formatted-citation-string
// dictionary used by reporting and summarization collaborators.
package export

import (
	"fmt"
	"strings"

	"github.com/matsen/bibx/internal/corpus"
)

// ToBibTeX renders one document row as a BibTeX entry keyed by its
// document id.
func ToBibTeX(c *corpus.Corpus, row int) string {
	t := c.Table
	entryType := determineEntryType(t.Cell(row, corpus.ColDocumentType))
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, c.DocID(row)))
	writeField(&b, "author", bibtexAuthors(t.Cell(row, corpus.ColAuthor)))
	writeField(&b, "title", escapeLatex(t.Cell(row, corpus.ColTitle)))

	venue := t.Cell(row, corpus.ColJournal)
	if venue == corpus.Unknown {
		venue = t.Cell(row, corpus.ColAbbrevSourceTitle)
	}
	fieldName := "journal"
	if entryType == "inproceedings" {
		fieldName = "booktitle"
	}
	if venue != corpus.Unknown {
		writeField(&b, fieldName, escapeLatex(venue))
	}

	writeField(&b, "year", t.Cell(row, corpus.ColYear))
	writeField(&b, "volume", t.Cell(row, corpus.ColVolume))
	writeField(&b, "number", t.Cell(row, corpus.ColNumber))
	writeField(&b, "pages", t.Cell(row, corpus.ColPages))
	writeField(&b, "doi", t.Cell(row, corpus.ColDOI))
	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList renders every document in the corpus.
func ToBibTeXList(c *corpus.Corpus) string {
	var entries []string
	for row := 0; row < c.Table.Len(); row++ {
		entries = append(entries, ToBibTeX(c, row))
	}
	return strings.Join(entries, "\n")
}

// writeField emits one BibTeX field, skipping UNKNOWN values.
func writeField(b *strings.Builder, name, value string) {
	if value == "" || value == corpus.Unknown {
		return
	}
	fmt.Fprintf(b, "  %s = {%s},\n", name, value)
}

// determineEntryType maps a normalized document type onto a BibTeX
// entry type.
func determineEntryType(docType string) string {
	switch strings.ToLower(docType) {
	case "conference paper", "conference abstract":
		return "inproceedings"
	case "book":
		return "book"
	case "book chapter", "chapter":
		return "incollection"
	default:
		return "article"
	}
}

// bibtexAuthors rewrites a semicolon-joined author list into BibTeX's
// " and "-joined form.
func bibtexAuthors(raw string) string {
	if raw == corpus.Unknown {
		return ""
	}
	var names []string
	for _, n := range strings.Split(raw, ";") {
		n = strings.TrimSpace(n)
		if n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, " and ")
}

// escapeLatex escapes characters with special meaning in LaTeX.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
	)
	return replacer.Replace(s)
}
