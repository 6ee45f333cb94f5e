// Package graph provides the JSON wire format for rendered trees.
//
// A [Scene] carries everything a client needs to draw a tree itself: node
// coordinates and depths, parent→child edges, the highlighted path and the
// title. It is the "json" output format of the pipeline and the body of
// the HTTP API's JSON responses.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Scene], [Node], [Edge]: serialization types (this package)
//   - dag.DAG and layout.Result: internal representation
//
// [Adapter] implements render.Adapter, so JSON is produced through the same
// drawing path as every other format. [Scene.ToDAG] rebuilds and validates
// the graph from decoded JSON.
//
// # Determinism
//
// Nodes are sorted by ID and edges by (From, To) so that the same tree
// always serializes to identical bytes.
package graph
