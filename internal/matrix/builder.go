package matrix

import (
	"runtime"
	"sync"
)

// CoOccurrence builds the square symmetric co-occurrence matrix for
// one entity type from its per-document token lists. Within one
// document each unordered token pair counts once regardless of
// repeats (boolean co-occurrence per document); self-pairs are
// excluded, so the diagonal is zero. minOcc > 0 prunes nodes whose
// total co-occurrence degree falls below it.
//
// Edge generation is sharded by document range; each shard fills its
// own sparse map and the partials are merged at the end.
func CoOccurrence(perDoc [][]string, labels []string, minOcc int) *Sparse {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	shards := runtime.GOMAXPROCS(0)
	if shards > len(perDoc) {
		shards = len(perDoc)
	}
	if shards < 1 {
		shards = 1
	}

	partials := make([]map[cell]int, shards)
	var wg sync.WaitGroup
	chunk := (len(perDoc) + shards - 1) / shards
	for s := 0; s < shards; s++ {
		lo := s * chunk
		hi := lo + chunk
		if hi > len(perDoc) {
			hi = len(perDoc)
		}
		wg.Add(1)
		go func(s, lo, hi int) {
			defer wg.Done()
			part := make(map[cell]int)
			for d := lo; d < hi; d++ {
				nodes := docNodes(perDoc[d], index)
				for i := 0; i < len(nodes); i++ {
					for j := i + 1; j < len(nodes); j++ {
						a, b := nodes[i], nodes[j]
						part[cell{a, b}]++
						part[cell{b, a}]++
					}
				}
			}
			partials[s] = part
		}(s, lo, hi)
	}
	wg.Wait()

	m := New(labels, labels)
	for _, part := range partials {
		for k, v := range part {
			m.cells[k] += v
		}
	}
	return m.PruneSquare(minOcc)
}

// docNodes maps one document's tokens to deduplicated node indices.
func docNodes(tokens []string, index map[string]int) []int {
	seen := make(map[int]bool, len(tokens))
	nodes := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		i, ok := index[tok]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		nodes = append(nodes, i)
	}
	return nodes
}

// IncidenceOptions controls the document-reference matrix.
type IncidenceOptions struct {
	// MinCitations keeps only reference columns cited by at least
	// this many documents.
	MinCitations int
	// LocalOnly keeps only columns whose label passes Local (i.e.
	// references resolved to internal documents).
	LocalOnly bool
	Local     func(label string) bool
}

// Incidence builds the rectangular document-reference matrix: rows
// are documents (by id label), columns unique references, cells the
// raw incidence count of that reference in that document.
func Incidence(docLabels []string, perDocRefs [][]string, refLabels []string, opts IncidenceOptions) *Sparse {
	index := make(map[string]int, len(refLabels))
	for i, l := range refLabels {
		index[l] = i
	}

	m := New(docLabels, refLabels)
	for d, refs := range perDocRefs {
		for _, ref := range refs {
			if c, ok := index[ref]; ok {
				m.Add(d, c, 1)
			}
		}
	}
	if opts.LocalOnly && opts.Local != nil {
		m = m.KeepColumns(opts.Local)
	}
	return m.PruneColumns(opts.MinCitations)
}
