// Package viz turns adjacency matrices into plain graph data for
// external rendering collaborators. The core never draws anything;
// it exposes nodes and weighted edges with stable naming so the
// presentation layer can be swapped independently.
package viz

// GraphData contains all data needed to render a network.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one entity (author, country, institution, keyword, or
// document) in the network.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	// Occurrence sizes the node: the entity's total co-occurrence
	// degree, or a document's reference count.
	Occurrence int `json:"occurrence"`
}

// Edge is one weighted co-occurrence link.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// IsEmpty reports whether the graph has no nodes.
func (g *GraphData) IsEmpty() bool { return len(g.Nodes) == 0 }
