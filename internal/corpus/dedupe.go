package corpus

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DedupeStats reports what Deduplicate removed.
type DedupeStats struct {
	Original  int `json:"original"`
	ByDOI     int `json:"dropped_by_doi"`
	ByTitle   int `json:"dropped_by_title"`
	Remaining int `json:"remaining"`
}

// accentStripper decomposes to NFD, drops combining marks, recomposes.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeTitle reduces a title to its dedup key: lowercased,
// accents stripped, punctuation and digits removed, whitespace
// collapsed.
func NormalizeTitle(title string) string {
	stripped, _, err := transform.String(accentStripper, title)
	if err != nil {
		stripped = title
	}
	var b strings.Builder
	b.Grow(len(stripped))
	lastSpace := true
	for _, r := range strings.ToLower(stripped) {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Deduplicate drops duplicate documents. The DOI signal (exact,
// case-sensitive, non-UNKNOWN) and the normalized-title signal are
// each computed over the full row set: within each signal the first
// occurrence survives and every row registers its key regardless of
// the other signal. A row is dropped when either signal flags it; the
// returned table is densely reindexed.
func Deduplicate(t *Table) (*Table, DedupeStats) {
	stats := DedupeStats{Original: t.Len()}
	seenDOI := make(map[string]bool)
	seenTitle := make(map[string]bool)
	keep := make([]int, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		doi := t.Cell(i, ColDOI)
		title := NormalizeTitle(t.Cell(i, ColTitle))

		dupDOI := doi != Unknown && seenDOI[doi]
		dupTitle := title != "" && seenTitle[title]
		if doi != Unknown {
			seenDOI[doi] = true
		}
		if title != "" {
			seenTitle[title] = true
		}

		switch {
		case dupDOI:
			stats.ByDOI++
		case dupTitle:
			stats.ByTitle++
		default:
			keep = append(keep, i)
		}
	}

	stats.Remaining = len(keep)
	if stats.ByDOI+stats.ByTitle > 0 {
		logrus.WithFields(logrus.Fields{
			"by_doi":   stats.ByDOI,
			"by_title": stats.ByTitle,
		}).Info("dropped duplicate documents")
	}
	return t.Select(keep), stats
}
