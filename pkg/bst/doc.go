// Package bst builds and queries height-balanced binary search trees of
// flight codes.
//
// # Construction
//
// [Build] takes a slice that is already sorted ascending and free of
// duplicates and returns the root of a balanced tree. The root of every
// subtree is the element at index len/2 of its slice, so for an even number
// of elements the root leans towards the right half:
//
//	root := bst.Build([]string{"GA010", "GA039", "GA100", "GA201", "GA305"})
//	root.Data // "GA100"
//
// Build performs no validation. Unsorted or duplicated input produces a
// tree that violates the search ordering, and searches on it may miss
// codes that are present.
//
// # Traversal and Search
//
// [InOrder] yields codes left subtree first, then the node, then the right
// subtree. For a tree returned by Build it reproduces the input slice.
// [SearchPath] walks from the root towards a target and returns every code
// it visited when the target is found.
//
// Codes are compared with Go's string ordering, which is byte-wise. Input
// must be sorted with the same ordering (slices.Sort or sort.Strings).
//
// Trees are immutable once built. Callers that need a different set of
// codes build a new tree.
package bst
