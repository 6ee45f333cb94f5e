// Package dag provides the directed graph handed to renderers.
//
// A search tree is turned into a DAG by the layout package on every render
// request: one node per flight code, one edge from each parent to each of
// its children, and the node's depth stored as its Row. Because every edge
// runs from row r to row r+1, [DAG.Validate] doubles as a structural check
// on the layout output, and [DAG.ValidateTree] additionally checks that the
// graph has exactly one root and no shared children.
//
//	g := dag.New()
//	_ = g.AddNode(dag.Node{ID: "GA100", Row: 0})
//	_ = g.AddNode(dag.Node{ID: "GA039", Row: 1})
//	_ = g.AddEdge(dag.Edge{From: "GA100", To: "GA039"})
//
// Nodes and edges are returned in insertion order, which for layout output
// is pre-order. Renderers rely on this for deterministic output.
//
// DAG instances are not safe for concurrent mutation. Read-only use from
// several goroutines is fine once construction is complete.
package dag
