// Package pkg provides the core libraries for flighttree.
//
// # Overview
//
// Flighttree reads the flight codes of a schedule, arranges them in a
// balanced binary search tree and draws the tree: its plain structure, its
// in-order traversal, or the path a search for one code takes from the root.
// The pkg directory is organized into four areas:
//
//  1. Domain logic: [bst], [layout], [dag]
//  2. Rendering: [render] and its adapters
//  3. Orchestration: [pipeline], [server]
//  4. Infrastructure: [dataset], [cache], [config], [errors], [observability]
//
// # Architecture
//
// The data flow through flighttree:
//
//	CSV schedule (Kode column)
//	         ↓
//	    [dataset] package (parse, sort, dedupe; optional store)
//	         ↓
//	    [bst] package (balanced tree over the first N codes)
//	         ↓
//	    [layout] package (coordinates + row-indexed graph)
//	         ↓
//	    [render] package (adapters: svg, nodelink, text, graph)
//	         ↓
//	    SVG/PNG/PDF/DOT/TXT/JSON output
//
// # Quick Start
//
//	ds, _ := dataset.LoadFile("Jadwal_Penerbangan.csv")
//	root := bst.Build(ds.Prefix(10))
//	path, found := bst.SearchPath(root, "GA201")
//
//	res := layout.Compute(root)
//	out, _ := render.Draw(svg.New(), render.NewScene(res, path, "Search Path to 'GA201'"))
//
// Most callers go through [pipeline] instead, which runs the same steps for a
// [pipeline.Request] and renders several formats at once.
//
// # Main Packages
//
// ## Domain Logic
//
// [bst] - Balanced search tree construction from sorted codes, lazy in-order
// traversal and root-to-target search paths.
//
// [layout] - Assigns every tree node a position. The root sits at the origin,
// each level is one unit lower and the horizontal offset of children halves
// with depth.
//
// [dag] - Row-indexed directed graph produced by layout. Rows are tree
// depths and edges connect consecutive rows only.
//
// ## Visualization
//
// [render] - The Adapter interface every output format implements, the Scene
// handed to it, and SVG to PDF/PNG conversion.
//
//   - [render/svg]: native SVG drawing
//   - [render/nodelink]: Graphviz DOT and Graphviz-drawn SVG
//   - [render/text]: terminal tree with highlighted path
//
// [graph] - JSON node-link serialization of a drawn scene.
//
// ## Orchestration
//
// [pipeline] - Build, layout, action and render for one request. Used by the
// CLI, the HTTP server and the terminal browser.
//
// [server] - HTTP API over chi.
//
// ## Infrastructure
//
// [dataset] - CSV loading and the dataset store.
//
// [cache] - Byte caches backing the store: memory, file, redis, MongoDB, null.
//
// [config] - TOML configuration and backend selection.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hook registry for pipeline, store and HTTP events.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test ./pkg/bst/...                # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis and MongoDB cache tests run only when FLIGHTTREE_TEST_REDIS_ADDR or
// FLIGHTTREE_TEST_MONGO_URI is set.
package pkg
