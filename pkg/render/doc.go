// Package render draws laid-out search trees.
//
// # Overview
//
// Rendering is decoupled from the tree core through the [Adapter]
// interface. An adapter receives nodes, edges, positions and the path to
// highlight, then produces bytes in its own format:
//
//   - [svg]: standalone SVG drawn directly
//   - [nodelink]: Graphviz DOT with pinned positions, rendered to SVG
//   - [text]: an indented terminal tree styled with lipgloss
//
// [Draw] feeds a [Scene] to any adapter in a fixed order so that output is
// deterministic:
//
//	res := layout.Compute(root)
//	scene := render.NewScene(res, path, "Search Path to 'GA010'")
//	out, err := render.Draw(svg.New(), scene)
//
// # Highlighting
//
// A node is highlighted when it appears in the path. An edge is highlighted
// when its endpoints are adjacent in the path, in either order. A nil path
// draws the plain structure. [Highlight] computes both sets once.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg).
//
// [svg]: github.com/matzehuels/flighttree/pkg/render/svg
// [nodelink]: github.com/matzehuels/flighttree/pkg/render/nodelink
// [text]: github.com/matzehuels/flighttree/pkg/render/text
package render
