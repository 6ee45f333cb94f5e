// Package layout assigns plane coordinates to the nodes of a search tree.
//
// [Compute] places the root at the origin and each child one unit below its
// parent, offset horizontally by half of the parent's spread. The spread
// halves at every level, so subtrees of a balanced tree never share a
// horizontal coordinate at the same depth:
//
//	res := layout.Compute(root, layout.WithSpread(3))
//	res.Positions["GA100"] // {0 0}
//	res.Positions["GA039"] // {-1.5 -1}
//
// The result also carries the tree as a [dag.DAG] with one edge per
// parent/child pair, which is what render adapters consume. Both are
// derived fresh on every call and hold no reference to the tree.
package layout
