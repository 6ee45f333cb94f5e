package bst_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/flighttree/pkg/bst"
)

func ExampleBuild() {
	root := bst.Build([]string{"GA010", "GA039", "GA100", "GA201", "GA305"})

	fmt.Println("root:", root.Data)
	fmt.Println("left:", root.Left.Data)
	fmt.Println("right:", root.Right.Data)
	fmt.Println("height:", bst.Height(root))
	// Output:
	// root: GA100
	// left: GA039
	// right: GA305
	// height: 3
}

func ExampleInOrder() {
	root := bst.Build([]string{"GA010", "GA039", "GA100", "GA201", "GA305"})

	for code := range bst.InOrder(root) {
		fmt.Println(code)
	}
	// Output:
	// GA010
	// GA039
	// GA100
	// GA201
	// GA305
}

func ExampleSearchPath() {
	root := bst.Build([]string{"GA010", "GA039", "GA100", "GA201", "GA305"})

	if path, ok := bst.SearchPath(root, "GA010"); ok {
		fmt.Println(strings.Join(path, " -> "))
	}
	if _, ok := bst.SearchPath(root, "GA999"); !ok {
		fmt.Println("GA999 not found")
	}
	// Output:
	// GA100 -> GA039 -> GA010
	// GA999 not found
}
