package corpus

import (
	"regexp"
	"sort"
	"strings"
)

var (
	wsRe = regexp.MustCompile(`\s+`)
	// A token that is nothing but a parenthesized 4-digit year, e.g.
	// "(1998)". These are shrapnel from malformed reference lists.
	bareYearRe = regexp.MustCompile(`^\(\d{4}\)$`)
)

// TokenizeOptions controls how a delimited multi-value column is
// split into per-document token lists.
type TokenizeOptions struct {
	Delimiter string
	Lower     bool
	Sort      bool // sort the unique set
	// KeepUnknown retains the UNKNOWN sentinel in the unique set, so
	// frequency tables over languages/countries/institutions can
	// report an UNKNOWN bucket. Per-document lists always keep it.
	KeepUnknown bool
	// References enables the bare-parenthesized-year drop rule.
	References bool
}

// Tokenize splits one column of the table into a per-document ordered
// token list (index-aligned with the table rows; empty sub-list, not
// missing entry, for rows with nothing usable) and the corpus-wide
// unique token set.
func Tokenize(t *Table, col string, opts TokenizeOptions) (perDoc [][]string, unique []string) {
	if opts.Delimiter == "" {
		opts.Delimiter = ";"
	}
	seen := make(map[string]bool)
	perDoc = make([][]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		raw := t.Cell(i, col)
		tokens := make([]string, 0, 4)
		for _, tok := range strings.Split(raw, opts.Delimiter) {
			tok = wsRe.ReplaceAllString(strings.TrimSpace(tok), " ")
			if tok == "" || strings.EqualFold(tok, "note") {
				continue
			}
			if opts.References && bareYearRe.MatchString(tok) {
				continue
			}
			if opts.Lower {
				tok = strings.ToLower(tok)
			}
			tokens = append(tokens, tok)
			if strings.EqualFold(tok, Unknown) && !opts.KeepUnknown {
				continue
			}
			seen[tok] = true
		}
		perDoc[i] = tokens
	}
	unique = make([]string, 0, len(seen))
	for tok := range seen {
		unique = append(unique, tok)
	}
	if opts.Sort {
		sort.Strings(unique)
	}
	return perDoc, unique
}

// Frequencies counts, per unique token, the number of documents it
// occurs in (a repeat within one document counts once).
func Frequencies(perDoc [][]string) map[string]int {
	freq := make(map[string]int)
	for _, tokens := range perDoc {
		inDoc := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if !inDoc[tok] {
				inDoc[tok] = true
				freq[tok]++
			}
		}
	}
	return freq
}
