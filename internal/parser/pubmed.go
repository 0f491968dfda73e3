package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/matsen/bibx/internal/corpus"
)

// pubmedTags maps MEDLINE field tags onto canonical column names.
var pubmedTags = map[string]string{
	"PMID": corpus.ColPubmedID,
	"TI":   corpus.ColTitle,
	"AB":   corpus.ColAbstract,
	"AU":   corpus.ColAuthor,
	"AD":   corpus.ColAffiliation,
	"TA":   corpus.ColAbbrevSourceTitle,
	"JT":   corpus.ColJournal,
	"LA":   corpus.ColLanguage,
	"PT":   corpus.ColDocumentType,
	"MH":   corpus.ColKeywords,
	"OT":   corpus.ColAuthorKeywords,
	"VI":   corpus.ColVolume,
	"IP":   corpus.ColNumber,
	"PG":   corpus.ColPages,
	"IS":   corpus.ColISSN,
	"RN":   corpus.ColChemicalsCAS,
	"GR":   corpus.ColFundingDetails,
	"PL":   corpus.ColAddress,
	"SO":   corpus.ColSource,
	"CN":   corpus.ColEditor,
}

// pubmedListTags are multi-valued tags that repeat as separate tag
// lines; their values are rejoined with "; ".
var pubmedListTags = map[string]bool{
	"AU": true,
	"AD": true,
	"PT": true,
	"MH": true,
	"OT": true,
	"RN": true,
	"GR": true,
	"LA": true,
}

// parsePubMed reads a PubMed/MEDLINE plaintext export. Records start
// at a PMID line; a tag occupies the first four columns followed by
// "- ", and lines indented six spaces continue the previous field.
func parsePubMed(r io.Reader) (*corpus.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	t := corpus.NewTable()
	fields := make(map[string]string)
	lastTag := ""
	inRecord := false

	flush := func() {
		if !inRecord {
			return
		}
		t.AppendRow(fields)
		fields = make(map[string]string)
		lastTag = ""
		inRecord = false
	}

	// cont marks a wrapped continuation of the previous physical
	// value: it always joins with a space. A new "; " list item only
	// starts on a repeated tag line.
	appendValue := func(tag, value string, cont bool) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if tag == "DP" {
			fields[corpus.ColYear] = pubmedYear(value)
			return
		}
		if tag == "LID" || tag == "AID" {
			if doi, ok := strings.CutSuffix(value, " [doi]"); ok {
				fields[corpus.ColDOI] = strings.TrimSpace(doi)
			}
			return
		}
		col, ok := pubmedTags[tag]
		if !ok {
			return
		}
		if prev, ok := fields[col]; ok && prev != "" {
			if !cont && pubmedListTags[tag] {
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
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		// Continuation lines are indented six spaces.
		if strings.HasPrefix(line, "      ") {
			if inRecord && lastTag != "" {
				appendValue(lastTag, line, true)
			}
			continue
		}
		tag, value, ok := cutMedlineTag(line)
		if !ok {
			continue
		}
		if tag == "PMID" {
			flush()
			inRecord = true
		}
		if !inRecord {
			inRecord = true
		}
		lastTag = tag
		appendValue(tag, value, false)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return t, nil
}

// cutMedlineTag splits "TAG - value". Tags are 1-4 characters padded
// to four columns before the dash.
func cutMedlineTag(line string) (tag, value string, ok bool) {
	i := strings.Index(line, "- ")
	if i < 1 || i > 5 {
		return "", "", false
	}
	tag = strings.TrimSpace(line[:i])
	if tag == "" {
		return "", "", false
	}
	return tag, line[i+2:], true
}

// pubmedYear extracts the publication year from a DP value. The first
// four characters are the year in well-formed exports; anything else
// goes through a date sniffer before giving up with UNKNOWN.
func pubmedYear(dp string) string {
	if len(dp) >= 4 {
		if _, err := strconv.Atoi(dp[:4]); err == nil {
			return dp[:4]
		}
	}
	if ts, err := dateparse.ParseAny(dp); err == nil {
		return strconv.Itoa(ts.Year())
	}
	return corpus.Unknown
}
