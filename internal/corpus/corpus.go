package corpus

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matsen/bibx/internal/affil"
	"github.com/matsen/bibx/internal/refres"
)

// ErrEmptyCorpus is returned when filtering (or merging) eliminates
// every document row.
var ErrEmptyCorpus = errors.New("empty corpus: no documents remain")

// Unit names one dictionary-entity kind.
type Unit string

const (
	UnitAuthor      Unit = "author"
	UnitCountry     Unit = "country"
	UnitInstitution Unit = "institution"
	UnitSource      Unit = "source"
	UnitAuthorKW    Unit = "author_keyword"
	UnitKeywordPlus Unit = "keyword_plus"
	UnitReference   Unit = "reference"
)

// ParseUnit validates a user-supplied unit name.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitAuthor, UnitCountry, UnitInstitution, UnitSource,
		UnitAuthorKW, UnitKeywordPlus, UnitReference:
		return Unit(s), nil
	}
	return "", errors.New("unknown unit: " + s)
}

// BuildOptions configures corpus construction.
type BuildOptions struct {
	// Dedupe drops duplicate documents (by DOI and normalized title)
	// before any derived state is computed.
	Dedupe bool
	// CurrentYear anchors the m-index career length; zero means the
	// wall-clock year.
	CurrentYear int
	// Match overrides the reference back-matching heuristic; nil uses
	// refres.RegexMatch.
	Match refres.MatchFunc
}

// Corpus is the document table plus every piece of derived
// bibliometric state, computed once at construction. It is an
// immutable value: filters and merges return new Corpus values, so a
// Corpus can never hold stale derived caches.
type Corpus struct {
	Table       *Table
	Tag         string // source database: scopus, wos, pubmed, mixed
	CurrentYear int

	DedupeStats DedupeStats

	// Per-document scalars, index-aligned with the table.
	Citations []int
	Years     []int // -1 when unparsable

	// Per-document derived token lists, index-aligned with the table.
	AuthorsPerDoc      [][]string
	CountriesPerDoc    [][]string
	InstitutionsPerDoc [][]string
	SourcesPerDoc      [][]string
	AuthorKWPerDoc     [][]string
	KeywordsPlusPerDoc [][]string
	LanguagesPerDoc    [][]string
	RefsPerDoc         [][]string

	// Frozen id assignments per dictionary entity.
	AuthorIDs      *IDTable
	CountryIDs     *IDTable
	InstitutionIDs *IDTable
	SourceIDs      *IDTable
	AuthorKWIDs    *IDTable
	KeywordPlusIDs *IDTable
	ReferenceIDs   *IDTable

	// Reference resolution, indexed by ReferenceIDs position.
	RefYears  []int       // -1 unresolved
	LocalRefs map[int]int // unique reference index -> document index

	// Affiliation assignment maps (author name, lowercased).
	Affiliations *affil.Result
}

// Build derives a complete Corpus from a document table. This is the
// only constructor; every mutation path (dedupe, filter, merge) runs
// through it, which is what keeps derived state consistent.
func Build(t *Table, tag string, opts BuildOptions) (*Corpus, error) {
	if opts.CurrentYear == 0 {
		opts.CurrentYear = time.Now().Year()
	}

	c := &Corpus{Tag: tag, CurrentYear: opts.CurrentYear}
	if opts.Dedupe {
		t, c.DedupeStats = Deduplicate(t)
	} else {
		c.DedupeStats = DedupeStats{Original: t.Len(), Remaining: t.Len()}
	}
	c.Table = t

	// Per-document scalars.
	c.Citations = make([]int, t.Len())
	c.Years = make([]int, t.Len())
	maxYear := opts.CurrentYear
	for i := 0; i < t.Len(); i++ {
		c.Citations[i] = ParseCitationCount(t.Cell(i, ColNote))
		c.Years[i] = ParseYear(t.Cell(i, ColYear))
		if c.Years[i] > maxYear {
			maxYear = c.Years[i]
		}
	}

	// Tokenized entity lists. Identity strings are lowercased; the
	// unique sets are sorted so ids are stable for a given snapshot.
	var authors, sources, authorKW, kwPlus, refs []string
	c.AuthorsPerDoc, authors = Tokenize(t, ColAuthor, TokenizeOptions{Lower: true, Sort: true})
	c.SourcesPerDoc, sources = Tokenize(t, ColAbbrevSourceTitle, TokenizeOptions{Lower: true, Sort: true})
	c.AuthorKWPerDoc, authorKW = Tokenize(t, ColAuthorKeywords, TokenizeOptions{Lower: true, Sort: true})
	c.KeywordsPlusPerDoc, kwPlus = Tokenize(t, ColKeywords, TokenizeOptions{Lower: true, Sort: true})
	c.LanguagesPerDoc, _ = Tokenize(t, ColLanguage, TokenizeOptions{Lower: true, Sort: true, KeepUnknown: true})
	c.RefsPerDoc, refs = Tokenize(t, ColReferences, TokenizeOptions{Lower: true, Sort: true, References: true})

	// Affiliation resolution wants the raw (pre-lowercase) author
	// order, but identity maps are keyed lowercased, which the
	// resolver does internally.
	c.Affiliations = affil.Resolve(tag, c.AuthorsPerDoc, t.Column(ColAffiliation), t.Column(ColCorrespondence))
	c.CountriesPerDoc = c.Affiliations.Countries
	c.InstitutionsPerDoc = c.Affiliations.Institutions

	c.AuthorIDs = AssignIDs(PrefixAuthor, authors)
	c.CountryIDs = AssignIDs(PrefixCountry, uniqueSorted(c.CountriesPerDoc))
	c.InstitutionIDs = AssignIDs(PrefixInstitution, uniqueSorted(c.InstitutionsPerDoc))
	c.SourceIDs = AssignIDs(PrefixSource, sources)
	c.AuthorKWIDs = AssignIDs(PrefixAuthorKW, authorKW)
	c.KeywordPlusIDs = AssignIDs(PrefixKeywordPlus, kwPlus)
	c.ReferenceIDs = AssignIDs(PrefixReference, refs)

	// Reference resolution: year per unique reference, then
	// back-matching against the corpus's own documents.
	c.RefYears = refres.Years(refs, maxYear)
	c.LocalRefs = refres.ResolveLocal(refs, c.matchKeys(), opts.Match)
	for ri, di := range c.LocalRefs {
		if y := c.Years[di]; y > 0 {
			c.RefYears[ri] = y
		}
	}

	logrus.WithFields(logrus.Fields{
		"documents":  t.Len(),
		"authors":    c.AuthorIDs.Len(),
		"references": c.ReferenceIDs.Len(),
		"local_refs": len(c.LocalRefs),
	}).Debug("corpus built")
	return c, nil
}

// matchKeys builds the per-document back-matching keys: titles for
// Scopus/PubMed corpora, DOIs for WoS corpora.
func (c *Corpus) matchKeys() []refres.DocKey {
	col := ColTitle
	if c.Tag == "wos" {
		col = ColDOI
	}
	keys := make([]refres.DocKey, 0, c.Table.Len())
	for i := 0; i < c.Table.Len(); i++ {
		v := c.Table.Cell(i, col)
		if v == Unknown {
			continue
		}
		keys = append(keys, refres.DocKey{Doc: i, Key: strings.ToLower(v)})
	}
	return keys
}

// DocID returns the ordinal identifier of a document row.
func (c *Corpus) DocID(row int) Ordinal {
	return Ordinal{Prefix: PrefixDocument, Index: row}
}

// RefID returns the identifier string for a unique reference: the
// internal document id when the reference back-matched a corpus
// document, otherwise its synthetic r_<n> id.
func (c *Corpus) RefID(refIndex int) string {
	if doc, ok := c.LocalRefs[refIndex]; ok {
		return c.DocID(doc).String()
	}
	return Ordinal{Prefix: PrefixReference, Index: refIndex}.String()
}

// PerDoc returns the per-document token lists for one unit.
func (c *Corpus) PerDoc(unit Unit) [][]string {
	switch unit {
	case UnitAuthor:
		return c.AuthorsPerDoc
	case UnitCountry:
		return c.CountriesPerDoc
	case UnitInstitution:
		return c.InstitutionsPerDoc
	case UnitSource:
		return c.SourcesPerDoc
	case UnitAuthorKW:
		return c.AuthorKWPerDoc
	case UnitKeywordPlus:
		return c.KeywordsPlusPerDoc
	case UnitReference:
		return c.RefsPerDoc
	}
	return nil
}

// IDs returns the frozen id table for one unit.
func (c *Corpus) IDs(unit Unit) *IDTable {
	switch unit {
	case UnitAuthor:
		return c.AuthorIDs
	case UnitCountry:
		return c.CountryIDs
	case UnitInstitution:
		return c.InstitutionIDs
	case UnitSource:
		return c.SourceIDs
	case UnitAuthorKW:
		return c.AuthorKWIDs
	case UnitKeywordPlus:
		return c.KeywordPlusIDs
	case UnitReference:
		return c.ReferenceIDs
	}
	return nil
}

// DocsOf returns the document rows in which an entity occurs, in row
// order.
func (c *Corpus) DocsOf(unit Unit, name string) []int {
	name = strings.ToLower(name)
	var docs []int
	for d, tokens := range c.PerDoc(unit) {
		for _, tok := range tokens {
			if tok == name {
				docs = append(docs, d)
				break
			}
		}
	}
	return docs
}

// EntityCitations sums document citation counts per entity over the
// documents each entity appears in.
func (c *Corpus) EntityCitations(unit Unit) map[string]int {
	out := make(map[string]int)
	for d, tokens := range c.PerDoc(unit) {
		inDoc := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if tok == strings.ToLower(Unknown) || tok == Unknown {
				continue
			}
			if !inDoc[tok] {
				inDoc[tok] = true
				out[tok] += c.Citations[d]
			}
		}
	}
	return out
}

// SelfCitations counts how many of an entity's own documents carry
// the entity's lowercased name as a substring of one of their
// reference strings. Heuristic, not a verified authorship match.
func (c *Corpus) SelfCitations(unit Unit, name string) int {
	name = strings.ToLower(name)
	count := 0
	for _, d := range c.DocsOf(unit, name) {
		for _, ref := range c.RefsPerDoc[d] {
			if strings.Contains(ref, name) {
				count++
				break
			}
		}
	}
	return count
}

// EntityStats bundles the per-entity impact numbers surfaced by the
// indices command.
type EntityStats struct {
	Name           string  `json:"name"`
	ID             string  `json:"id"`
	Documents      int     `json:"documents"`
	TotalCitations int     `json:"total_citations"`
	SelfCitations  int     `json:"self_citations"`
	Indices
}

// Stats computes citation statistics and h/g/e/m indices for one
// entity of one unit. The boolean is false when the entity does not
// exist in this corpus snapshot.
func (c *Corpus) Stats(unit Unit, name string) (EntityStats, bool) {
	name = strings.ToLower(name)
	ids := c.IDs(unit)
	ord, ok := ids.ID(name)
	if !ok {
		return EntityStats{}, false
	}
	docs := c.DocsOf(unit, name)
	cites := make([]int, len(docs))
	years := make([]int, len(docs))
	total := 0
	for i, d := range docs {
		cites[i] = c.Citations[d]
		years[i] = c.Years[d]
		total += c.Citations[d]
	}
	return EntityStats{
		Name:           name,
		ID:             ord.String(),
		Documents:      len(docs),
		TotalCitations: total,
		SelfCitations:  c.SelfCitations(unit, name),
		Indices:        ComputeIndices(cites, years, c.CurrentYear),
	}, true
}

// uniqueSorted collects the sorted unique token set from per-document
// lists, excluding the UNKNOWN sentinel.
func uniqueSorted(perDoc [][]string) []string {
	seen := make(map[string]bool)
	for _, tokens := range perDoc {
		for _, tok := range tokens {
			if tok == Unknown || strings.EqualFold(tok, Unknown) {
				continue
			}
			seen[tok] = true
		}
	}
	out := make([]string, 0, len(seen))
	for tok := range seen {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}
