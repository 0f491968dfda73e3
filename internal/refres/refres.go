// Package refres resolves raw reference strings: a publication year
// per unique reference, and a best-effort back-match of references
// against the corpus's own documents so citations inside the corpus
// unify with internal document identifiers.
package refres

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// MinYear is the historical lower bound of scientific publishing
// (Journal des sçavans, 1665). Year tokens below it are noise.
const MinYear = 1665

var yearTokenRe = regexp.MustCompile(`\d{4}`)

// Years extracts a publication year for each unique reference string.
// All 4-digit tokens within [MinYear, maxYear] are candidates and the
// maximum wins; a reference with no plausible token gets -1.
func Years(refs []string, maxYear int) []int {
	if maxYear < MinYear {
		maxYear = MinYear
	}
	out := make([]int, len(refs))
	for i, ref := range refs {
		out[i] = -1
		for _, tok := range yearTokenRe.FindAllString(ref, -1) {
			y, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			if y >= MinYear && y <= maxYear && y > out[i] {
				out[i] = y
			}
		}
	}
	return out
}

// DocKey is one document's match key for back-matching: its title for
// Scopus/PubMed corpora, its DOI for WoS corpora.
type DocKey struct {
	Doc int
	Key string
}

// MatchFunc tests one document key against the unique reference set
// and reports the indices of matching references. It exists so the
// matching heuristic can be swapped or tested independently of the
// resolution pipeline.
type MatchFunc func(key string, refs []string) []int

// RegexMatch is the default MatchFunc: the key is compiled as a
// case-insensitive regex and tested against each reference string.
// Keys that fail to compile (pathological titles) are skipped.
func RegexMatch(key string, refs []string) []int {
	key = strings.TrimSpace(key)
	if len(key) < 10 {
		// Too-short keys (e.g. one-word titles) match everything.
		return nil
	}
	re, err := regexp.Compile(`(?i)` + key)
	if err != nil {
		logrus.WithField("key", key).Debug("skipping uncompilable match key")
		return nil
	}
	var hits []int
	for i, ref := range refs {
		if re.MatchString(ref) {
			hits = append(hits, i)
		}
	}
	return hits
}

// ResolveLocal back-matches unique reference strings against the
// corpus's own documents. The returned map sends a unique-reference
// index to the internal document index whose key matched it; each
// matching pass is injective per reference (first document wins) but
// not total.
func ResolveLocal(refs []string, keys []DocKey, match MatchFunc) map[int]int {
	if match == nil {
		match = RegexMatch
	}
	// Cheap pre-check against the concatenated reference corpus saves
	// a per-reference scan for keys that appear nowhere.
	blob := strings.ToLower(strings.Join(refs, "\n"))

	resolved := make(map[int]int)
	for _, dk := range keys {
		key := strings.TrimSpace(dk.Key)
		if key == "" || strings.EqualFold(key, "UNKNOWN") {
			continue
		}
		if !strings.Contains(blob, strings.ToLower(key)) && !containsMeta(key) {
			continue
		}
		for _, ri := range match(key, refs) {
			if _, taken := resolved[ri]; !taken {
				resolved[ri] = dk.Doc
			}
		}
	}
	return resolved
}

// containsMeta reports whether a key uses regex metacharacters, in
// which case the literal substring pre-check is not conclusive.
func containsMeta(key string) bool {
	return strings.ContainsAny(key, `\.+*?()|[]{}^$`)
}
