// Package nodelink renders trees as Graphviz node-link diagrams.
//
// # Overview
//
// The adapter writes Graphviz DOT in which every node position is pinned
// to the coordinate computed by the layout engine, so Graphviz only draws
// and never rearranges the tree. The neato engine honours pinned positions.
//
// # Usage
//
// Through the adapter interface:
//
//	dot, err := render.Draw(nodelink.NewDOT(), scene) // DOT source
//	svg, err := render.Draw(nodelink.New(), scene)    // SVG via Graphviz
//
// Or directly from DOT source:
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Highlighted nodes are filled light green, highlighted edges are drawn
// thick and dark green. Edges have no arrowheads.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
