// Package matrix builds the sparse co-occurrence and incidence
// matrices behind every network feature: author-author,
// country-country, institution-institution, keyword-keyword, and
// document-reference. Same-entity matrices are symmetric with a zero
// diagonal; a minimum-occurrence threshold prunes (not masks)
// low-frequency nodes.
package matrix

import "sort"

type cell struct{ r, c int }

// Sparse is a sparse integer matrix with labeled rows and columns.
// Square matrices share one label set; the document-reference variant
// is rectangular.
type Sparse struct {
	RowLabels []string
	ColLabels []string
	cells     map[cell]int
}

// New returns an empty matrix over the given label sets.
func New(rowLabels, colLabels []string) *Sparse {
	return &Sparse{
		RowLabels: rowLabels,
		ColLabels: colLabels,
		cells:     make(map[cell]int),
	}
}

// At returns the value at (r, c); absent cells are zero.
func (m *Sparse) At(r, c int) int { return m.cells[cell{r, c}] }

// Add accumulates v at (r, c).
func (m *Sparse) Add(r, c, v int) {
	if v == 0 {
		return
	}
	m.cells[cell{r, c}] += v
}

// NNZ returns the number of stored nonzero cells.
func (m *Sparse) NNZ() int { return len(m.cells) }

// RowSum returns the sum over one row.
func (m *Sparse) RowSum(r int) int {
	sum := 0
	for k, v := range m.cells {
		if k.r == r {
			sum += v
		}
	}
	return sum
}

// ColSums returns the per-column totals.
func (m *Sparse) ColSums() []int {
	sums := make([]int, len(m.ColLabels))
	for k, v := range m.cells {
		sums[k.c] += v
	}
	return sums
}

// Degrees returns, per row node, its total co-occurrence weight.
func (m *Sparse) Degrees() []int {
	deg := make([]int, len(m.RowLabels))
	for k, v := range m.cells {
		deg[k.r] += v
	}
	return deg
}

// Edge is one nonzero cell as an edge-list row.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Edges returns the nonzero cells as a deterministic edge list,
// sorted by (row, col). For symmetric matrices each undirected pair
// appears once (upper triangle).
func (m *Sparse) Edges(upperOnly bool) []Edge {
	keys := make([]cell, 0, len(m.cells))
	for k := range m.cells {
		if upperOnly && k.c <= k.r {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].r != keys[j].r {
			return keys[i].r < keys[j].r
		}
		return keys[i].c < keys[j].c
	})
	edges := make([]Edge, len(keys))
	for i, k := range keys {
		edges[i] = Edge{
			Source: m.RowLabels[k.r],
			Target: m.ColLabels[k.c],
			Weight: m.cells[k],
		}
	}
	return edges
}

// PruneSquare removes rows/columns of a square matrix whose node
// degree is below min. Labels are dropped with the node: zeroed
// entries are pruned, not masked.
func (m *Sparse) PruneSquare(min int) *Sparse {
	if min <= 0 {
		return m
	}
	deg := m.Degrees()
	remap := make([]int, len(m.RowLabels))
	var labels []string
	for i, d := range deg {
		if d >= min {
			remap[i] = len(labels)
			labels = append(labels, m.RowLabels[i])
		} else {
			remap[i] = -1
		}
	}
	out := New(labels, labels)
	for k, v := range m.cells {
		r, c := remap[k.r], remap[k.c]
		if r >= 0 && c >= 0 {
			out.cells[cell{r, c}] = v
		}
	}
	return out
}

// PruneColumns removes columns of a rectangular matrix whose column
// sum is below min. Rows are kept (documents are never pruned here).
func (m *Sparse) PruneColumns(min int) *Sparse {
	if min <= 0 {
		return m
	}
	colSum := make([]int, len(m.ColLabels))
	for k, v := range m.cells {
		colSum[k.c] += v
	}
	remap := make([]int, len(m.ColLabels))
	var labels []string
	for i, s := range colSum {
		if s >= min {
			remap[i] = len(labels)
			labels = append(labels, m.ColLabels[i])
		} else {
			remap[i] = -1
		}
	}
	out := New(m.RowLabels, labels)
	for k, v := range m.cells {
		if c := remap[k.c]; c >= 0 {
			out.cells[cell{k.r, c}] = v
		}
	}
	return out
}

// KeepColumns restricts a rectangular matrix to the columns whose
// label passes keep, preserving relative order.
func (m *Sparse) KeepColumns(keep func(label string) bool) *Sparse {
	remap := make([]int, len(m.ColLabels))
	var labels []string
	for i, l := range m.ColLabels {
		if keep(l) {
			remap[i] = len(labels)
			labels = append(labels, l)
		} else {
			remap[i] = -1
		}
	}
	out := New(m.RowLabels, labels)
	for k, v := range m.cells {
		if c := remap[k.c]; c >= 0 {
			out.cells[cell{k.r, c}] = v
		}
	}
	return out
}
