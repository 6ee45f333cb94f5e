// Package svg renders a tree as a standalone SVG document.
//
// Nodes are circles labelled with their flight code, edges are straight
// lines without arrowheads. Highlighted nodes are filled light green and
// highlighted edges are drawn thicker in dark green; everything else uses
// light blue nodes and grey edges.
//
// Layout units are mapped to pixels with a fixed row height. The horizontal
// scale grows when the deepest rows would otherwise overlap, so large trees
// produce wide documents rather than unreadable ones.
package svg
