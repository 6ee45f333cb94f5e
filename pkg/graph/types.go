package graph

import (
	"fmt"

	"github.com/matzehuels/flighttree/pkg/dag"
)

// Scene is the canonical serialization of one rendered view.
type Scene struct {
	Title string   `json:"title"`
	Nodes []Node   `json:"nodes"`
	Edges []Edge   `json:"edges"`
	Path  []string `json:"path"`
}

// Node is a positioned tree node.
type Node struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Depth       int     `json:"depth"`
	Highlighted bool    `json:"highlighted"`
}

// Edge is a parent→child connection.
type Edge struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Highlighted bool   `json:"highlighted"`
}

// ToDAG rebuilds the graph described by s, using Depth as the row. The
// result must be a rooted tree whose edges connect consecutive depths.
func (s Scene) ToDAG() (*dag.DAG, error) {
	g := dag.New()
	for _, n := range s.Nodes {
		if err := g.AddNode(dag.Node{ID: n.ID, Row: n.Depth}); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range s.Edges {
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	if err := g.ValidateTree(); err != nil {
		return nil, err
	}
	return g, nil
}
