// Package parser ingests bibliographic export files (Scopus CSV, Web
// of Science plaintext, PubMed MEDLINE) and normalizes them into the
// canonical document table. Parsing is lenient: malformed or
// truncated records yield rows with UNKNOWN fields, never errors.
// The only hard failures are unreadable files and unknown database
// tags.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matsen/bibx/internal/corpus"
)

// Database identifies the source database of an export file.
type Database string

const (
	Scopus Database = "scopus"
	WoS    Database = "wos"
	PubMed Database = "pubmed"
)

// ErrUnsupportedDatabase is returned for a database tag outside
// {scopus, wos, pubmed}.
var ErrUnsupportedDatabase = errors.New("unsupported database tag")

// ParseDatabase validates a user-supplied database tag.
func ParseDatabase(tag string) (Database, error) {
	switch Database(tag) {
	case Scopus, WoS, PubMed:
		return Database(tag), nil
	}
	return "", fmt.Errorf("%w: %q (want scopus, wos or pubmed)", ErrUnsupportedDatabase, tag)
}

// ParseFile reads one export file and returns the canonical table.
// Document types are normalized onto the shared taxonomy before the
// table is returned.
func ParseFile(path string, db Database) (*corpus.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, db)
}

// Parse reads one export stream and returns the canonical table.
func Parse(r io.Reader, db Database) (*corpus.Table, error) {
	var (
		t   *corpus.Table
		err error
	)
	switch db {
	case Scopus:
		t, err = parseScopus(r)
	case WoS:
		t, err = parseWoS(r)
	case PubMed:
		t, err = parsePubMed(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, db)
	}
	if err != nil {
		return nil, err
	}
	NormalizeDocumentTypes(t)
	return t, nil
}
