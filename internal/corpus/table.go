// Package corpus holds the canonical document table and the derived
// bibliometric state computed from it (entity sets, identifiers,
// citation statistics). A Corpus is an immutable value: filtering or
// merging always produces a new Corpus, never mutates one in place.
package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Unknown is the sentinel for any canonical field missing from a
// source record. Every cell in a Table is non-empty: absent values
// are stored as Unknown, never as "".
const Unknown = "UNKNOWN"

// Canonical column names. Every parsed document carries exactly this
// column set, in this (sorted) order.
const (
	ColAbbrevSourceTitle = "abbrev_source_title"
	ColAbstract          = "abstract"
	ColAddress           = "address"
	ColAffiliation       = "affiliation"
	ColArtNumber         = "art_number"
	ColAuthor            = "author"
	ColAuthorKeywords    = "author_keywords"
	ColChemicalsCAS      = "chemicals_cas"
	ColCoden             = "coden"
	ColCorrespondence    = "correspondence_address1"
	ColDocumentType      = "document_type"
	ColDOI               = "doi"
	ColEditor            = "editor"
	ColFundingDetails    = "funding_details"
	ColFundingText1      = "funding_text 1"
	ColFundingText2      = "funding_text 2"
	ColFundingText3      = "funding_text 3"
	ColISBN              = "isbn"
	ColISSN              = "issn"
	ColJournal           = "journal"
	ColKeywords          = "keywords"
	ColLanguage          = "language"
	ColNote              = "note"
	ColNumber            = "number"
	ColPageCount         = "page_count"
	ColPages             = "pages"
	ColPublisher         = "publisher"
	ColPubmedID          = "pubmed_id"
	ColReferences        = "references"
	ColSource            = "source"
	ColSponsors          = "sponsors"
	ColTitle             = "title"
	ColTradenames        = "tradenames"
	ColURL               = "url"
	ColVolume            = "volume"
	ColYear              = "year"
)

// Columns is the canonical column superset in sorted order.
var Columns = []string{
	ColAbbrevSourceTitle,
	ColAbstract,
	ColAddress,
	ColAffiliation,
	ColArtNumber,
	ColAuthor,
	ColAuthorKeywords,
	ColChemicalsCAS,
	ColCoden,
	ColCorrespondence,
	ColDocumentType,
	ColDOI,
	ColEditor,
	ColFundingDetails,
	ColFundingText1,
	ColFundingText2,
	ColFundingText3,
	ColISBN,
	ColISSN,
	ColJournal,
	ColKeywords,
	ColLanguage,
	ColNote,
	ColNumber,
	ColPageCount,
	ColPages,
	ColPublisher,
	ColPubmedID,
	ColReferences,
	ColSource,
	ColSponsors,
	ColTitle,
	ColTradenames,
	ColURL,
	ColVolume,
	ColYear,
}

var colIndex = func() map[string]int {
	m := make(map[string]int, len(Columns))
	for i, c := range Columns {
		m[c] = i
	}
	return m
}()

// Table is the flat document table: one row per publication, all
// cells strings, canonical column set. Row indices are always dense
// 0..N-1; any operation that drops rows builds a fresh Table.
type Table struct {
	rows [][]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of document rows.
func (t *Table) Len() int { return len(t.rows) }

// AppendRow adds a document from a field map. Unlisted canonical
// columns and empty values are filled with Unknown; keys outside the
// canonical set are dropped.
func (t *Table) AppendRow(fields map[string]string) {
	row := make([]string, len(Columns))
	for i := range row {
		row[i] = Unknown
	}
	for k, v := range fields {
		i, ok := colIndex[k]
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		row[i] = v
	}
	t.rows = append(t.rows, row)
}

// Cell returns the value at (row, column). Unknown column names yield
// the Unknown sentinel rather than an error; the canonical set is
// fixed and callers use the Col* constants.
func (t *Table) Cell(row int, col string) string {
	i, ok := colIndex[col]
	if !ok {
		return Unknown
	}
	return t.rows[row][i]
}

// SetCell overwrites the value at (row, column). Empty values are
// stored as Unknown to preserve the no-empty-cell invariant.
func (t *Table) SetCell(row int, col, value string) {
	i, ok := colIndex[col]
	if !ok {
		return
	}
	if strings.TrimSpace(value) == "" {
		value = Unknown
	}
	t.rows[row][i] = value
}

// Column returns a copy of one column, index-aligned with the rows.
func (t *Table) Column(col string) []string {
	i, ok := colIndex[col]
	if !ok {
		return nil
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out
}

// Select returns a new table holding copies of the given rows, in the
// given order, reindexed densely from zero.
func (t *Table) Select(rows []int) *Table {
	out := &Table{rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		row := make([]string, len(Columns))
		copy(row, t.rows[r])
		out.rows = append(out.rows, row)
	}
	return out
}

// Append returns a new table holding the rows of t followed by the
// rows of other.
func (t *Table) Append(other *Table) *Table {
	out := &Table{rows: make([][]string, 0, len(t.rows)+len(other.rows))}
	for _, src := range [][][]string{t.rows, other.rows} {
		for _, r := range src {
			row := make([]string, len(Columns))
			copy(row, r)
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// UnknownCounts reports, per canonical column, how many rows carry
// the Unknown sentinel. Used for corpus health reporting.
func (t *Table) UnknownCounts() map[string]int {
	counts := make(map[string]int, len(Columns))
	for _, row := range t.rows {
		for i, v := range row {
			if v == Unknown {
				counts[Columns[i]]++
			}
		}
	}
	return counts
}

// Save writes the table as a tab-delimited text file with a header
// row. All cells are written as strings; this is the only persistence
// format for a corpus snapshot.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for r, row := range t.rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", r, err)
		}
	}
	w.Flush()
	return w.Error()
}

// Load reads a tab-delimited snapshot written by Save. Columns are
// matched by header name, so column order in the file is free; fields
// missing from the file come back as Unknown.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return NewTable(), nil
	}

	header := records[0]
	t := NewTable()
	for _, rec := range records[1:] {
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				fields[name] = rec[i]
			}
		}
		t.AppendRow(fields)
	}
	return t, nil
}
