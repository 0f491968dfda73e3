package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/matsen/bibx/internal/corpus"
)

// wosTags maps Web of Science two-letter field tags onto canonical
// column names. Tags with no entry are ignored.
var wosTags = map[string]string{
	"AU": corpus.ColAuthor,
	"TI": corpus.ColTitle,
	"SO": corpus.ColJournal,
	"J9": corpus.ColAbbrevSourceTitle,
	"JI": corpus.ColAbbrevSourceTitle,
	"LA": corpus.ColLanguage,
	"DT": corpus.ColDocumentType,
	"DE": corpus.ColAuthorKeywords,
	"ID": corpus.ColKeywords,
	"AB": corpus.ColAbstract,
	"C1": corpus.ColAffiliation,
	"RP": corpus.ColCorrespondence,
	"FU": corpus.ColFundingDetails,
	"FX": corpus.ColFundingText1,
	"CR": corpus.ColReferences,
	"TC": corpus.ColNote,
	"PU": corpus.ColPublisher,
	"PA": corpus.ColAddress,
	"SN": corpus.ColISSN,
	"BN": corpus.ColISBN,
	"DI": corpus.ColDOI,
	"PY": corpus.ColYear,
	"VL": corpus.ColVolume,
	"IS": corpus.ColNumber,
	"AR": corpus.ColArtNumber,
	"PG": corpus.ColPageCount,
	"PM": corpus.ColPubmedID,
	"UR": corpus.ColURL,
	"SP": corpus.ColSponsors,
	"ED": corpus.ColEditor,
}

// wosListTags are tags whose repeated/continued values are distinct
// items (one author, one cited reference per line) and are rejoined
// with "; " so downstream tokenization sees one delimiter.
var wosListTags = map[string]bool{
	"AU": true,
	"AF": true,
	"CR": true,
	"C1": true,
	"ED": true,
}

// parseWoS reads a Web of Science plaintext export. A record runs
// from its "PT" line to the next "ER" line; a line with a blank tag
// column continues the previous field. Truncated records (EOF before
// "ER") are still flushed, with whatever fields they carried.
func parseWoS(r io.Reader) (*corpus.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	t := corpus.NewTable()
	fields := make(map[string]string)
	pageStart, pageEnd := "", ""
	lastTag := ""
	inRecord := false

	flush := func() {
		if !inRecord {
			return
		}
		if pageStart != "" {
			pages := pageStart
			if pageEnd != "" {
				pages += "-" + pageEnd
			}
			fields[corpus.ColPages] = pages
		}
		t.AppendRow(fields)
		fields = make(map[string]string)
		pageStart, pageEnd = "", ""
		lastTag = ""
		inRecord = false
	}

	appendField := func(tag, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		switch tag {
		case "BP":
			pageStart = value
			return
		case "EP":
			pageEnd = value
			return
		case "ER", "EF", "FN", "VR", "PT":
			return
		}
		col, ok := wosTags[tag]
		if !ok {
			return
		}
		if prev, ok := fields[col]; ok && prev != "" {
			if wosListTags[tag] {
				fields[col] = prev + "; " + value
			} else {
				fields[col] = prev + " " + value
			}
			return
		}
		fields[col] = value
	}

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		tag := ""
		value := line
		if len(line) >= 2 {
			tag = strings.TrimSpace(line[:2])
			if len(line) > 3 {
				value = line[3:]
			} else {
				value = ""
			}
		}
		switch {
		case tag == "PT" || strings.HasPrefix(line, "@"):
			flush()
			inRecord = true
			lastTag = "PT"
		case tag == "ER":
			flush()
		case tag == "EF", tag == "FN", tag == "VR":
			// file envelope
		case tag == "":
			// Continuation of the previous field.
			if inRecord && lastTag != "" {
				appendField(lastTag, value)
			}
		default:
			if !inRecord {
				// Lenient: a stray tag line before any PT still
				// opens a record rather than being lost.
				inRecord = true
			}
			lastTag = tag
			appendField(tag, value)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return t, nil
}
