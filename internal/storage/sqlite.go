// Package storage maintains the SQLite query index over a corpus
// snapshot. The index is derived state: it is rebuilt wholesale from
// a Corpus and never written to incrementally, so the TSV snapshot
// stays the single source of truth.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matsen/bibx/internal/corpus"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error { return d.db.Close() }

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS docs (
			id TEXT PRIMARY KEY,
			doi TEXT,
			title TEXT NOT NULL,
			author TEXT,
			source TEXT,
			year TEXT,
			doc_type TEXT,
			language TEXT,
			citations INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_docs_doi ON docs(doi) WHERE doi IS NOT NULL AND doi != '';

		-- One row per (unit, entity): the id dictionaries plus
		-- occurrence and citation aggregates.
		CREATE TABLE IF NOT EXISTS entities (
			unit TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			documents INTEGER NOT NULL,
			citations INTEGER NOT NULL,
			PRIMARY KEY (unit, id)
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts USING fts5(
			id,
			title,
			abstract,
			author,
			keywords
		);

		-- Snapshot provenance for staleness checks.
		CREATE TABLE IF NOT EXISTS meta (
			snapshot_id TEXT NOT NULL,
			database_tag TEXT NOT NULL,
			documents INTEGER NOT NULL,
			built_at TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the index and repopulates it from a corpus. Returns
// the number of documents indexed and the snapshot id stamped into
// the meta table.
func (d *DB) Rebuild(c *corpus.Corpus) (int, string, error) {
	for _, table := range []string{"docs", "entities", "docs_fts", "meta"} {
		if _, err := d.db.Exec("DELETE FROM " + table); err != nil {
			return 0, "", fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	docStmt, err := d.db.Prepare(`
		INSERT INTO docs (id, doi, title, author, source, year, doc_type, language, citations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, "", fmt.Errorf("preparing docs insert: %w", err)
	}
	defer docStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO docs_fts (id, title, abstract, author, keywords)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, "", fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	t := c.Table
	for row := 0; row < t.Len(); row++ {
		id := c.DocID(row).String()
		_, err = docStmt.Exec(
			id,
			blankUnknown(t.Cell(row, corpus.ColDOI)),
			t.Cell(row, corpus.ColTitle),
			blankUnknown(t.Cell(row, corpus.ColAuthor)),
			blankUnknown(t.Cell(row, corpus.ColAbbrevSourceTitle)),
			blankUnknown(t.Cell(row, corpus.ColYear)),
			blankUnknown(t.Cell(row, corpus.ColDocumentType)),
			blankUnknown(t.Cell(row, corpus.ColLanguage)),
			c.Citations[row],
		)
		if err != nil {
			return 0, "", fmt.Errorf("inserting doc %s: %w", id, err)
		}
		_, err = ftsStmt.Exec(
			id,
			blankUnknown(t.Cell(row, corpus.ColTitle)),
			blankUnknown(t.Cell(row, corpus.ColAbstract)),
			blankUnknown(t.Cell(row, corpus.ColAuthor)),
			blankUnknown(t.Cell(row, corpus.ColAuthorKeywords)),
		)
		if err != nil {
			return 0, "", fmt.Errorf("inserting fts for %s: %w", id, err)
		}
	}

	if err := d.insertEntities(c); err != nil {
		return 0, "", err
	}

	snapshotID := uuid.NewString()
	_, err = d.db.Exec(
		`INSERT INTO meta (snapshot_id, database_tag, documents, built_at) VALUES (?, ?, ?, ?)`,
		snapshotID, c.Tag, t.Len(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, "", fmt.Errorf("stamping meta: %w", err)
	}
	return t.Len(), snapshotID, nil
}

// insertEntities writes the id dictionaries with occurrence and
// citation aggregates for every unit.
func (d *DB) insertEntities(c *corpus.Corpus) error {
	stmt, err := d.db.Prepare(`
		INSERT INTO entities (unit, id, name, documents, citations)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing entities insert: %w", err)
	}
	defer stmt.Close()

	units := []corpus.Unit{
		corpus.UnitAuthor, corpus.UnitCountry, corpus.UnitInstitution,
		corpus.UnitSource, corpus.UnitAuthorKW, corpus.UnitKeywordPlus,
	}
	for _, unit := range units {
		freq := corpus.Frequencies(c.PerDoc(unit))
		cites := c.EntityCitations(unit)
		ids := c.IDs(unit)
		for i, name := range ids.Names {
			ord := corpus.Ordinal{Prefix: ids.Prefix, Index: i}
			if _, err := stmt.Exec(string(unit), ord.String(), name, freq[name], cites[name]); err != nil {
				return fmt.Errorf("inserting entity %s/%s: %w", unit, name, err)
			}
		}
	}
	return nil
}

// DocHit is one search result row.
type DocHit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Source    string `json:"source"`
	Year      string `json:"year"`
	Citations int    `json:"citations"`
}

// Search runs a full-text query over titles, abstracts, authors and
// keywords.
func (d *DB) Search(query string, limit int) ([]DocHit, error) {
	rows, err := d.db.Query(`
		SELECT d.id, d.title, d.author, d.source, d.year, d.citations
		FROM docs d
		WHERE d.id IN (SELECT id FROM docs_fts WHERE docs_fts MATCH ?)
		ORDER BY d.citations DESC
		LIMIT ?`, prepareFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var hits []DocHit
	for rows.Next() {
		var h DocHit
		if err := rows.Scan(&h.ID, &h.Title, &h.Author, &h.Source, &h.Year, &h.Citations); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Meta reports the snapshot provenance stamped at the last rebuild.
func (d *DB) Meta() (snapshotID, tag string, documents int, err error) {
	row := d.db.QueryRow(`SELECT snapshot_id, database_tag, documents FROM meta LIMIT 1`)
	if err := row.Scan(&snapshotID, &tag, &documents); err != nil {
		return "", "", 0, fmt.Errorf("reading meta: %w", err)
	}
	return snapshotID, tag, documents, nil
}

// prepareFTSQuery quotes each term so FTS5 operators in user input
// cannot break the query.
func prepareFTSQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, ``) + `"`
	}
	return strings.Join(terms, " ")
}

func blankUnknown(v string) string {
	if v == corpus.Unknown {
		return ""
	}
	return v
}
