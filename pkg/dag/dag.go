package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is
	// empty. Every node is identified by its flight code.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrNonConsecutiveRows is returned by [DAG.Validate] when an edge does
	// not connect a node to a node exactly one row (depth) below it.
	ErrNonConsecutiveRows = errors.New("edges must connect consecutive rows")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a directed cycle
	// is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrNotTree is returned by [DAG.ValidateTree] when the graph has more
	// than one source or a node with more than one parent.
	ErrNotTree = errors.New("graph is not a rooted tree")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
type Metadata map[string]any

// Node is a vertex of the graph. Row is the depth of the node in the tree it
// was derived from (0 for the root).
type Node struct {
	ID   string
	Row  int
	Meta Metadata // never nil after AddNode
}

// Edge is a directed parent to child connection.
type Edge struct {
	From string
	To   string
}

// DAG is a directed acyclic graph with nodes indexed by row. Layout derives
// one from a search tree for every render request, so rows are tree depths
// and every edge goes from row r to row r+1.
//
// The zero value is not usable; use New. A DAG is not safe for concurrent
// mutation.
type DAG struct {
	nodes    map[string]*Node
	order    []string // insertion order of node IDs
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	rows     map[int][]*Node
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		rows:     make(map[int][]*Node),
	}
}

// AddNode adds n to the graph and indexes it by its Row.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	d.rows[node.Row] = append(d.rows[node.Row], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Row consistency
// is checked by Validate, not here.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (d *DAG) NodeIDs() []string { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs the node has edges to. The slice must not be
// modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs with edges to the node. The slice must not be
// modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// HasEdge reports whether the directed edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	return slices.Contains(d.outgoing[from], to)
}

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NodesInRow returns the nodes assigned to row in insertion order.
func (d *DAG) NodesInRow(row int) []*Node { return d.rows[row] }

// RowIDs returns all row indices in ascending order.
func (d *DAG) RowIDs() []int {
	return slices.Sorted(maps.Keys(d.rows))
}

// MaxRow returns the highest row index, or 0 if the graph is empty.
func (d *DAG) MaxRow() int {
	ids := d.RowIDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Validate checks that every edge connects existing nodes in consecutive
// rows and that the graph is acyclic.
func (d *DAG) Validate() error {
	if err := d.validateEdgeConsistency(); err != nil {
		return err
	}
	return d.detectCycles()
}

// ValidateTree runs Validate and additionally requires a single source and
// at most one parent per node. An empty graph is a valid (empty) tree.
func (d *DAG) ValidateTree() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if len(d.nodes) == 0 {
		return nil
	}
	if len(d.Sources()) != 1 {
		return ErrNotTree
	}
	for _, parents := range d.incoming {
		if len(parents) > 1 {
			return ErrNotTree
		}
	}
	return nil
}

func (d *DAG) validateEdgeConsistency() error {
	for _, e := range d.edges {
		src, okS := d.nodes[e.From]
		dst, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
		if dst.Row != src.Row+1 {
			return ErrNonConsecutiveRows
		}
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
