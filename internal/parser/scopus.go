package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/matsen/bibx/internal/corpus"
)

// scopusAliases maps lowercased Scopus CSV header names (across the
// header variants Scopus has shipped over the years) onto canonical
// column names. Headers with no entry are dropped.
var scopusAliases = map[string]string{
	"authors":                       corpus.ColAuthor,
	"author(s)":                     corpus.ColAuthor,
	"title":                         corpus.ColTitle,
	"document title":                corpus.ColTitle,
	"year":                          corpus.ColYear,
	"source title":                  corpus.ColJournal,
	"abbreviated source title":      corpus.ColAbbrevSourceTitle,
	"volume":                        corpus.ColVolume,
	"issue":                         corpus.ColNumber,
	"art. no.":                      corpus.ColArtNumber,
	"page count":                    corpus.ColPageCount,
	"cited by":                      corpus.ColNote,
	"doi":                           corpus.ColDOI,
	"link":                          corpus.ColURL,
	"affiliations":                  corpus.ColAffiliation,
	"abstract":                      corpus.ColAbstract,
	"author keywords":               corpus.ColAuthorKeywords,
	"index keywords":                corpus.ColKeywords,
	"keywords":                      corpus.ColKeywords,
	"correspondence address":        corpus.ColCorrespondence,
	"editors":                       corpus.ColEditor,
	"sponsors":                      corpus.ColSponsors,
	"publisher":                     corpus.ColPublisher,
	"issn":                          corpus.ColISSN,
	"isbn":                          corpus.ColISBN,
	"coden":                         corpus.ColCoden,
	"pubmed id":                     corpus.ColPubmedID,
	"language of original document": corpus.ColLanguage,
	"language":                      corpus.ColLanguage,
	"document type":                 corpus.ColDocumentType,
	"source":                        corpus.ColSource,
	"references":                    corpus.ColReferences,
	"funding details":               corpus.ColFundingDetails,
	"funding text 1":                corpus.ColFundingText1,
	"funding text 2":                corpus.ColFundingText2,
	"funding text 3":                corpus.ColFundingText3,
	"funding texts":                 corpus.ColFundingText1,
	"chemicals/cas":                 corpus.ColChemicalsCAS,
	"tradenames":                    corpus.ColTradenames,
}

// parseScopus reads a Scopus CSV export. Column resolution is a
// direct header rename against the alias table; ragged rows are
// tolerated and short cells default to UNKNOWN.
func parseScopus(r io.Reader) (*corpus.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading scopus header: %w", err)
	}

	// Map CSV column position -> canonical column name.
	targets := make([]string, len(header))
	pageStart, pageEnd := -1, -1
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		switch h {
		case "page start":
			pageStart = i
		case "page end":
			pageEnd = i
		default:
			targets[i] = scopusAliases[h]
		}
	}

	t := corpus.NewTable()
	dropped := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A torn row does not abort the batch.
			dropped++
			continue
		}
		fields := make(map[string]string, len(rec))
		for i, v := range rec {
			if i >= len(targets) || targets[i] == "" {
				continue
			}
			fields[targets[i]] = v
		}
		if pageStart >= 0 && pageStart < len(rec) {
			pages := strings.TrimSpace(rec[pageStart])
			if pageEnd >= 0 && pageEnd < len(rec) && strings.TrimSpace(rec[pageEnd]) != "" {
				if pages != "" {
					pages += "-"
				}
				pages += strings.TrimSpace(rec[pageEnd])
			}
			fields[corpus.ColPages] = pages
		}
		t.AppendRow(fields)
	}
	if dropped > 0 {
		logrus.WithField("rows", dropped).Warn("scopus: skipped malformed csv rows")
	}
	return t, nil
}
