package corpus

import (
	"math"
	"regexp"
	"sort"
	"strconv"
)

var (
	citedByRe  = regexp.MustCompile(`(?i)cited\s*by[:\s]\s*(\d+)`)
	firstIntRe = regexp.MustCompile(`\d+`)
	yearRe     = regexp.MustCompile(`\d{4}`)
)

// ParseCitationCount extracts an integer citation count from a raw
// "cited by"/note field. The explicit "cited by: N" pattern wins;
// otherwise the first integer in the string; otherwise zero.
func ParseCitationCount(raw string) int {
	if raw == "" || raw == Unknown {
		return 0
	}
	if m := citedByRe.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	if m := firstIntRe.FindString(raw); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return n
		}
	}
	return 0
}

// ParseYear extracts a 4-digit publication year from the year column,
// returning -1 when nothing parses.
func ParseYear(raw string) int {
	if m := yearRe.FindString(raw); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			return y
		}
	}
	return -1
}

// Indices bundles the standard bibliometric indices for one entity.
type Indices struct {
	H float64 `json:"h_index"`
	G float64 `json:"g_index"`
	E float64 `json:"e_index"`
	M float64 `json:"m_index"`
}

// HIndex computes the h-index: the largest rank k (1-based, citations
// sorted descending) with citations[k-1] >= k.
func HIndex(citations []int) int {
	sorted := descending(citations)
	h := 0
	for i, c := range sorted {
		if c >= i+1 {
			h = i + 1
		} else {
			break
		}
	}
	return h
}

// GIndex computes the g-index: the largest rank k with cumulative
// citations through rank k >= k*k.
func GIndex(citations []int) int {
	sorted := descending(citations)
	sum, g := 0, 0
	for i, c := range sorted {
		sum += c
		if sum >= (i+1)*(i+1) {
			g = i + 1
		}
	}
	return g
}

// EIndex computes the e-index: sqrt of the citation surplus over h^2
// within the h-core, clipped at zero.
func EIndex(citations []int) float64 {
	sorted := descending(citations)
	h := HIndex(citations)
	surplus := 0
	for i := 0; i < h; i++ {
		surplus += sorted[i] - h
	}
	if surplus < 0 {
		surplus = 0
	}
	return math.Sqrt(float64(surplus))
}

// MIndex computes the m-index: h divided by career length in years,
// with a floor career length of one year.
func MIndex(h int, firstYear, currentYear int) float64 {
	career := currentYear - firstYear + 1
	if career < 1 {
		career = 1
	}
	return float64(h) / float64(career)
}

// ComputeIndices evaluates h/g/e/m for one entity's per-document
// citation counts and publication years (year -1 = unknown, ignored
// for the career span).
func ComputeIndices(citations []int, years []int, currentYear int) Indices {
	h := HIndex(citations)
	first := currentYear
	for _, y := range years {
		if y > 0 && y < first {
			first = y
		}
	}
	return Indices{
		H: float64(h),
		G: float64(GIndex(citations)),
		E: EIndex(citations),
		M: MIndex(h, first, currentYear),
	}
}

func descending(v []int) []int {
	out := make([]int, len(v))
	copy(out, v)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
