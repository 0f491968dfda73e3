package corpus

import (
	"sort"
	"strings"
)

// Filter describes a corpus-shrinking selection. Zero values mean
// "no constraint"; set constraints apply sequentially, each narrowing
// the surviving row set.
type Filter struct {
	Rows            []int    `json:"rows,omitempty"`
	DocTypes        []string `json:"doc_types,omitempty"`
	YearMin         int      `json:"year_min,omitempty"`
	YearMax         int      `json:"year_max,omitempty"`
	Sources         []string `json:"sources,omitempty"`
	BradfordCore    int      `json:"bradford_core,omitempty"` // 1..3: keep tiers <= this
	Countries       []string `json:"countries,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	RequireAbstract bool     `json:"require_abstract,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Rows == nil && f.DocTypes == nil && f.YearMin == 0 && f.YearMax == 0 &&
		f.Sources == nil && f.BradfordCore == 0 && f.Countries == nil &&
		f.Languages == nil && !f.RequireAbstract
}

// Apply filters the corpus and rebuilds every piece of derived state
// from the surviving rows. The receiver is untouched; ids in the
// returned corpus are freshly assigned and must not be compared with
// the old ones. Returns ErrEmptyCorpus when nothing survives.
func (c *Corpus) Apply(f Filter, opts BuildOptions) (*Corpus, error) {
	keep := make([]int, c.Table.Len())
	for i := range keep {
		keep[i] = i
	}

	if f.Rows != nil {
		valid := make(map[int]bool, len(f.Rows))
		for _, r := range f.Rows {
			valid[r] = true
		}
		keep = filterRows(keep, func(r int) bool { return valid[r] })
	}
	if f.DocTypes != nil {
		want := lowerSet(f.DocTypes)
		keep = filterRows(keep, func(r int) bool {
			return want[strings.ToLower(c.Table.Cell(r, ColDocumentType))]
		})
	}
	if f.YearMin != 0 || f.YearMax != 0 {
		keep = filterRows(keep, func(r int) bool {
			y := c.Years[r]
			if y < 0 {
				return false
			}
			if f.YearMin != 0 && y < f.YearMin {
				return false
			}
			if f.YearMax != 0 && y > f.YearMax {
				return false
			}
			return true
		})
	}
	if f.Sources != nil {
		want := lowerSet(f.Sources)
		keep = filterRows(keep, func(r int) bool {
			return anyIn(c.SourcesPerDoc[r], want)
		})
	}
	if f.BradfordCore >= 1 && f.BradfordCore <= 3 {
		tiers := c.BradfordTiers()
		keep = filterRows(keep, func(r int) bool {
			for _, s := range c.SourcesPerDoc[r] {
				if tier, ok := tiers[s]; ok && tier <= f.BradfordCore {
					return true
				}
			}
			return false
		})
	}
	if f.Countries != nil {
		want := lowerSet(f.Countries)
		keep = filterRows(keep, func(r int) bool {
			return anyIn(c.CountriesPerDoc[r], want)
		})
	}
	if f.Languages != nil {
		want := lowerSet(f.Languages)
		keep = filterRows(keep, func(r int) bool {
			return anyIn(c.LanguagesPerDoc[r], want)
		})
	}
	if f.RequireAbstract {
		keep = filterRows(keep, func(r int) bool {
			return c.Table.Cell(r, ColAbstract) != Unknown
		})
	}

	if len(keep) == 0 {
		return nil, ErrEmptyCorpus
	}
	if opts.CurrentYear == 0 {
		opts.CurrentYear = c.CurrentYear
	}
	return Build(c.Table.Select(keep), c.Tag, opts)
}

// Merge concatenates two corpora and rebuilds derived state over the
// union, deduplicating across the seam. Tags must agree for the
// source-specific affiliation rules to hold; differing tags fall back
// to the positional rules under a "mixed" tag.
func Merge(a, b *Corpus, opts BuildOptions) (*Corpus, error) {
	tag := a.Tag
	if b.Tag != tag {
		tag = "mixed"
	}
	opts.Dedupe = true
	if opts.CurrentYear == 0 {
		opts.CurrentYear = a.CurrentYear
	}
	merged, err := Build(a.Table.Append(b.Table), tag, opts)
	if err != nil {
		return nil, err
	}
	if merged.Table.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	return merged, nil
}

// BradfordTiers partitions sources into three tiers by cumulative
// document-count contribution (Bradford's law of scatter): tier 1 is
// the core third of documents, tiers 2 and 3 the middle and outer
// thirds. Returns source -> tier (1..3).
func (c *Corpus) BradfordTiers() map[string]int {
	freq := Frequencies(c.SourcesPerDoc)
	delete(freq, Unknown)
	delete(freq, strings.ToLower(Unknown))

	type sc struct {
		name  string
		count int
	}
	ranked := make([]sc, 0, len(freq))
	total := 0
	for name, n := range freq {
		ranked = append(ranked, sc{name, n})
		total += n
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})

	tiers := make(map[string]int, len(ranked))
	cum := 0
	for _, s := range ranked {
		cum += s.count
		switch {
		case cum*3 <= total:
			tiers[s.name] = 1
		case cum*3 <= 2*total:
			tiers[s.name] = 2
		default:
			tiers[s.name] = 3
		}
	}
	// The top source always belongs to the core even when it alone
	// overshoots a third of the corpus.
	if len(ranked) > 0 {
		tiers[ranked[0].name] = 1
	}
	return tiers
}

func filterRows(rows []int, pred func(int) bool) []int {
	out := rows[:0]
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}

func anyIn(tokens []string, want map[string]bool) bool {
	for _, tok := range tokens {
		if want[strings.ToLower(tok)] {
			return true
		}
	}
	return false
}
