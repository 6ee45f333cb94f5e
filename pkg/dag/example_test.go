package dag_test

import (
	"fmt"

	"github.com/matzehuels/flighttree/pkg/dag"
)

func ExampleDAG_basic() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "GA100", Row: 0})
	_ = g.AddNode(dag.Node{ID: "GA039", Row: 1})
	_ = g.AddNode(dag.Node{ID: "GA305", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "GA100", To: "GA039"})
	_ = g.AddEdge(dag.Edge{From: "GA100", To: "GA305"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Children of GA100:", g.Children("GA100"))
	fmt.Println("Tree:", g.ValidateTree() == nil)
	// Output:
	// Nodes: 3
	// Edges: 2
	// Children of GA100: [GA039 GA305]
	// Tree: true
}

func ExampleDAG_Validate() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "GA100", Row: 0})
	_ = g.AddNode(dag.Node{ID: "GA010", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "GA100", To: "GA010"})

	fmt.Println(g.Validate())
	// Output:
	// edges must connect consecutive rows
}
