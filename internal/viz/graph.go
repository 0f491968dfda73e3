package viz

import (
	"github.com/matsen/bibx/internal/corpus"
	"github.com/matsen/bibx/internal/matrix"
)

// FromCoOccurrence builds renderable graph data from a square
// co-occurrence matrix. Node ids come from the entity's id table so
// downstream tooling can join back to the corpus tables; nodes with
// no surviving edges are omitted.
func FromCoOccurrence(m *matrix.Sparse, ids *corpus.IDTable, nodeType string) *GraphData {
	degrees := m.Degrees()
	g := &GraphData{}
	for i, label := range m.RowLabels {
		if degrees[i] == 0 {
			continue
		}
		id := label
		if ord, ok := ids.ID(label); ok {
			id = ord.String()
		}
		g.Nodes = append(g.Nodes, Node{
			ID:         id,
			Label:      label,
			Type:       nodeType,
			Occurrence: degrees[i],
		})
	}
	for _, e := range m.Edges(true) {
		g.Edges = append(g.Edges, Edge(e))
	}
	// Rewrite edge endpoints onto the id space used for nodes.
	for i := range g.Edges {
		if ord, ok := ids.ID(g.Edges[i].Source); ok {
			g.Edges[i].Source = ord.String()
		}
		if ord, ok := ids.ID(g.Edges[i].Target); ok {
			g.Edges[i].Target = ord.String()
		}
	}
	return g
}

// FromIncidence builds a bipartite document-reference graph from the
// rectangular incidence matrix. Document and reference labels are
// already id strings, so they pass through unchanged.
func FromIncidence(m *matrix.Sparse) *GraphData {
	g := &GraphData{}
	for _, e := range m.Edges(false) {
		g.Edges = append(g.Edges, Edge(e))
	}
	rowDeg := m.Degrees()
	colDeg := m.ColSums()
	for i, label := range m.RowLabels {
		if rowDeg[i] == 0 {
			continue
		}
		g.Nodes = append(g.Nodes, Node{ID: label, Label: label, Type: "document", Occurrence: rowDeg[i]})
	}
	for i, label := range m.ColLabels {
		if colDeg[i] == 0 {
			continue
		}
		g.Nodes = append(g.Nodes, Node{ID: label, Label: label, Type: "reference", Occurrence: colDeg[i]})
	}
	return g
}
