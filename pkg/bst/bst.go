package bst

// Node is a single flight code in the tree. A node owns its children
// exclusively; there are no parent links.
type Node struct {
	Data  string
	Left  *Node
	Right *Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Build returns the root of a balanced tree over codes, or nil when codes is
// empty. codes must be sorted ascending without duplicates.
func Build(codes []string) *Node {
	if len(codes) == 0 {
		return nil
	}
	mid := len(codes) / 2
	return &Node{
		Data:  codes[mid],
		Left:  Build(codes[:mid]),
		Right: Build(codes[mid+1:]),
	}
}

// Height returns the number of nodes on the longest root-to-leaf path.
// An empty tree has height 0.
func Height(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(Height(n.Left), Height(n.Right))
}

// Len returns the number of nodes in the tree.
func Len(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + Len(n.Left) + Len(n.Right)
}

// Equal reports whether a and b have the same shape and the same codes at
// every position.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Data == b.Data && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
}
