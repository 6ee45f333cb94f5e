package layout

import (
	"github.com/matzehuels/flighttree/pkg/bst"
	"github.com/matzehuels/flighttree/pkg/dag"
)

// DefaultSpread is the horizontal distance between the root's children.
const DefaultSpread = 3.0

// Point is a node coordinate. Y decreases with depth.
type Point struct {
	X, Y float64
}

// Result is the output of Compute.
type Result struct {
	Graph     *dag.DAG
	Positions map[string]Point
}

type config struct {
	originX, originY float64
	spread           float64
}

// Option configures Compute.
type Option func(*config)

// WithOrigin places the root at (x, y).
func WithOrigin(x, y float64) Option {
	return func(c *config) { c.originX, c.originY = x, y }
}

// WithSpread sets the initial horizontal spread. Values that are not
// positive are ignored.
func WithSpread(w float64) Option {
	return func(c *config) {
		if w > 0 {
			c.spread = w
		}
	}
}

// Compute lays out the tree rooted at root. An empty tree yields an empty
// graph and position map.
func Compute(root *bst.Node, opts ...Option) *Result {
	cfg := config{spread: DefaultSpread}
	for _, opt := range opts {
		opt(&cfg)
	}

	res := &Result{
		Graph:     dag.New(),
		Positions: make(map[string]Point),
	}
	if root != nil {
		res.place(root, cfg.originX, cfg.originY, cfg.spread, 0)
	}
	return res
}

func (r *Result) place(n *bst.Node, x, y, spread float64, depth int) {
	// Codes are unique, so AddNode and AddEdge cannot fail here.
	_ = r.Graph.AddNode(dag.Node{ID: n.Data, Row: depth})
	r.Positions[n.Data] = Point{X: x, Y: y}

	half := spread / 2
	if n.Left != nil {
		r.place(n.Left, x-half, y-1, half, depth+1)
		_ = r.Graph.AddEdge(dag.Edge{From: n.Data, To: n.Left.Data})
	}
	if n.Right != nil {
		r.place(n.Right, x+half, y-1, half, depth+1)
		_ = r.Graph.AddEdge(dag.Edge{From: n.Data, To: n.Right.Data})
	}
}
