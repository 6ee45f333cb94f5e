package bst

import "iter"

// InOrder returns a sequence over the codes of the tree in left, node, right
// order. The sequence is lazy and may be ranged over any number of times.
func InOrder(root *Node) iter.Seq[string] {
	return func(yield func(string) bool) {
		walk(root, yield)
	}
}

func walk(n *Node, yield func(string) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.Left, yield) && yield(n.Data) && walk(n.Right, yield)
}

// Collect returns the in-order traversal of the tree as a slice.
func Collect(root *Node) []string {
	out := make([]string, 0, Len(root))
	for code := range InOrder(root) {
		out = append(out, code)
	}
	return out
}

// SearchPath looks up target starting at root. When target is present it
// returns the codes visited from the root down to target, inclusive, and
// true. When target is absent it returns nil and false.
func SearchPath(root *Node, target string) ([]string, bool) {
	var path []string
	for n := root; n != nil; {
		path = append(path, n.Data)
		switch {
		case target == n.Data:
			return path, true
		case target < n.Data:
			n = n.Left
		default:
			n = n.Right
		}
	}
	return nil, false
}

// Contains reports whether target is stored in the tree.
func Contains(root *Node, target string) bool {
	_, ok := SearchPath(root, target)
	return ok
}
