package render

import (
	"math"
	"slices"

	"github.com/matzehuels/flighttree/pkg/dag"
	"github.com/matzehuels/flighttree/pkg/layout"
)

// Canvas records the calls of the [Adapter] interface. Adapters embed it
// and implement only Render.
type Canvas struct {
	nodes     []string
	edges     []dag.Edge
	positions map[string]layout.Point
	highlight Highlight
}

// AddNode records a node.
func (c *Canvas) AddNode(id string) { c.nodes = append(c.nodes, id) }

// AddEdge records a parent→child edge.
func (c *Canvas) AddEdge(from, to string) {
	c.edges = append(c.edges, dag.Edge{From: from, To: to})
}

// SetPosition records the coordinate of a node.
func (c *Canvas) SetPosition(id string, p layout.Point) {
	if c.positions == nil {
		c.positions = make(map[string]layout.Point)
	}
	c.positions[id] = p
}

// SetHighlight records the path to highlight.
func (c *Canvas) SetHighlight(path []string) { c.highlight = NewHighlight(path) }

// Nodes returns the recorded node IDs in call order.
func (c *Canvas) Nodes() []string { return c.nodes }

// Edges returns the recorded edges in call order.
func (c *Canvas) Edges() []dag.Edge { return c.edges }

// Position returns the coordinate recorded for id.
func (c *Canvas) Position(id string) (layout.Point, bool) {
	p, ok := c.positions[id]
	return p, ok
}

// Positions returns all recorded coordinates.
func (c *Canvas) Positions() map[string]layout.Point { return c.positions }

// Highlighted returns the recorded highlight sets.
func (c *Canvas) Highlighted() Highlight { return c.highlight }

// Bounds returns the box around all recorded positions.
func (c *Canvas) Bounds() layout.Bounds { return layout.BoundsOf(c.positions) }

// MinRowGap returns the smallest horizontal distance between two nodes of
// the same depth, or +Inf when no row holds more than one node.
func (c *Canvas) MinRowGap() float64 {
	rows := make(map[float64][]float64)
	for _, p := range c.positions {
		rows[p.Y] = append(rows[p.Y], p.X)
	}

	gap := math.Inf(1)
	for _, xs := range rows {
		slices.Sort(xs)
		for i := 1; i < len(xs); i++ {
			gap = min(gap, xs[i]-xs[i-1])
		}
	}
	return gap
}
