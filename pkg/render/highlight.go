package render

// Highlight is the set of nodes and edges covered by a path.
type Highlight struct {
	nodes map[string]struct{}
	edges map[[2]string]struct{}
}

// NewHighlight computes the highlight sets for path. Edges are stored
// undirected: consecutive entries a, b match the edge a→b and b→a.
func NewHighlight(path []string) Highlight {
	h := Highlight{
		nodes: make(map[string]struct{}, len(path)),
		edges: make(map[[2]string]struct{}, 2*len(path)),
	}
	for i, id := range path {
		h.nodes[id] = struct{}{}
		if i > 0 {
			prev := path[i-1]
			h.edges[[2]string{prev, id}] = struct{}{}
			h.edges[[2]string{id, prev}] = struct{}{}
		}
	}
	return h
}

// Node reports whether id is on the path.
func (h Highlight) Node(id string) bool {
	_, ok := h.nodes[id]
	return ok
}

// Edge reports whether from and to are adjacent on the path.
func (h Highlight) Edge(from, to string) bool {
	_, ok := h.edges[[2]string{from, to}]
	return ok
}

// Empty reports whether nothing is highlighted.
func (h Highlight) Empty() bool { return len(h.nodes) == 0 }
