package affil

import "strings"

// institutionKeywords weights the substrings that identify an
// institution inside an affiliation segment. When several chunks of a
// segment match, the chunk holding the highest-weight keyword wins;
// ties break toward the longer matched chunk.
var institutionKeywords = map[string]int{
	"university":   100,
	"universidad":  100,
	"universidade": 100,
	"universita":   100,
	"universität":  100,
	"université":   100,
	"univ":         95,
	"institute":    90,
	"instituto":    90,
	"institut":     90,
	"inst":         85,
	"college":      80,
	"polytechnic":  80,
	"politecnico":  80,
	"academy":      75,
	"school":       70,
	"faculty":      65,
	"hospital":     60,
	"clinic":       55,
	"foundation":   50,
	"center":       45,
	"centre":       45,
	"department":   40,
	"dept":         40,
	"laboratory":   30,
	"lab":          30,
	"company":      20,
	"corporation":  20,
	"ltd":          15,
	"inc":          15,
	"agency":       10,
}

// DetectInstitution picks the institution chunk out of one
// affiliation segment. The segment is split on commas; each chunk is
// scored by its best keyword match and the winning chunk is returned
// lowercased and trimmed, or UNKNOWN when nothing matches.
func DetectInstitution(segment string) string {
	best := unknown
	bestWeight := 0
	bestLen := 0
	for _, chunk := range strings.Split(segment, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		lower := strings.ToLower(chunk)
		weight := 0
		for kw, w := range institutionKeywords {
			if w > weight && containsWordish(lower, kw) {
				weight = w
			}
		}
		if weight == 0 {
			continue
		}
		if weight > bestWeight || (weight == bestWeight && len(lower) > bestLen) {
			best = lower
			bestWeight = weight
			bestLen = len(lower)
		}
	}
	return best
}
