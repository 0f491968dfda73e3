package parser

import (
	"strings"

	"github.com/matsen/bibx/internal/corpus"
)

// docTypeTaxonomy maps source-specific document-type strings
// (lowercased) onto the shared taxonomy. WoS composite types and
// PubMed clinical-trial phases collapse onto their base type.
// Unmapped types pass through unchanged.
var docTypeTaxonomy = map[string]string{
	// Web of Science
	"article; early access":          "Article",
	"article; proceedings paper":     "Conference Paper",
	"article; book chapter":          "Book Chapter",
	"article; data paper":            "Data Paper",
	"article; retracted publication": "Article",
	"proceedings paper":              "Conference Paper",
	"meeting abstract":               "Conference Abstract",
	"review; early access":           "Review",
	"review; book chapter":           "Review",
	"editorial material":             "Editorial",
	"book review":                    "Review",
	"correction":                     "Erratum",
	"correction, addition":           "Erratum",
	"news item":                      "Note",
	"reprint":                        "Article",

	// PubMed
	"journal article":                   "Article",
	"clinical trial":                    "Article",
	"clinical trial, phase i":           "Article",
	"clinical trial, phase ii":          "Article",
	"clinical trial, phase iii":         "Article",
	"clinical trial, phase iv":          "Article",
	"randomized controlled trial":       "Article",
	"controlled clinical trial":         "Article",
	"multicenter study":                 "Article",
	"comparative study":                 "Article",
	"case reports":                      "Article",
	"systematic review":                 "Review",
	"meta-analysis":                     "Review",
	"introductory journal article":      "Article",
	"research support, n.i.h., extramural":  "Article",
	"research support, non-u.s. gov't":      "Article",
	"research support, u.s. gov't, p.h.s.":  "Article",
	"research support, u.s. gov't, non-p.h.s.": "Article",
	"published erratum":                 "Erratum",
	"retracted publication":             "Article",
	"comment":                           "Note",
	"letter":                            "Letter",
	"editorial":                         "Editorial",
	"historical article":                "Article",
	"congress":                          "Conference Paper",
	"english abstract":                  "Abstract",

	// Scopus variants already close to the taxonomy
	"conference review": "Conference Paper",
	"book":              "Book",
	"chapter":           "Book Chapter",
	"short survey":      "Review",
}

// NormalizeDocumentTypes rewrites the document_type column onto the
// shared taxonomy. For multi-valued types (PubMed PT lists) the first
// segment that maps wins; otherwise the raw value passes through.
func NormalizeDocumentTypes(t *corpus.Table) {
	for i := 0; i < t.Len(); i++ {
		raw := t.Cell(i, corpus.ColDocumentType)
		if raw == corpus.Unknown {
			continue
		}
		if mapped, ok := docTypeTaxonomy[strings.ToLower(strings.TrimSpace(raw))]; ok {
			t.SetCell(i, corpus.ColDocumentType, mapped)
			continue
		}
		// Per-segment lookup for semicolon-joined composites.
		for _, seg := range strings.Split(raw, ";") {
			if mapped, ok := docTypeTaxonomy[strings.ToLower(strings.TrimSpace(seg))]; ok {
				t.SetCell(i, corpus.ColDocumentType, mapped)
				break
			}
		}
	}
}
