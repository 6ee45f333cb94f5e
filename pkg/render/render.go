package render

import (
	"github.com/matzehuels/flighttree/pkg/dag"
	"github.com/matzehuels/flighttree/pkg/layout"
)

// Adapter is a drawing backend. Calls arrive in the order AddNode for every
// node, AddEdge for every edge, SetPosition for every node, SetHighlight
// once, then Render once.
type Adapter interface {
	AddNode(id string)
	AddEdge(from, to string)
	SetPosition(id string, p layout.Point)
	SetHighlight(path []string)
	Render(title string) ([]byte, error)
}

// Scene is everything needed to draw one view of a tree.
type Scene struct {
	Graph     *dag.DAG
	Positions map[string]layout.Point
	Path      []string
	Title     string
}

// NewScene combines a layout with the path to highlight.
func NewScene(res *layout.Result, path []string, title string) Scene {
	return Scene{
		Graph:     res.Graph,
		Positions: res.Positions,
		Path:      path,
		Title:     title,
	}
}

// Draw feeds s to a and returns the rendered output. Nodes and edges are
// added in graph insertion order.
func Draw(a Adapter, s Scene) ([]byte, error) {
	if s.Graph != nil {
		nodes := s.Graph.Nodes()
		for _, n := range nodes {
			a.AddNode(n.ID)
		}
		for _, e := range s.Graph.Edges() {
			a.AddEdge(e.From, e.To)
		}
		for _, n := range nodes {
			if p, ok := s.Positions[n.ID]; ok {
				a.SetPosition(n.ID, p)
			}
		}
	}
	a.SetHighlight(s.Path)
	return a.Render(s.Title)
}
