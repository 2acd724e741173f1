// Package pkg provides the libraries behind sketchgrid, a line-art sketch
// drawn on a toroidal grid of edges.
//
// # Overview
//
// A sketch is a square grid of cells. Every cell owns four edges (a
// horizontal, a vertical and two diagonals) that are lit or unlit, and the
// grid wraps at its borders. The grid is split into divisions; one of them
// is the focus that collaborators work on. The pkg directory is organized
// into these areas:
//
//  1. [grid] - the edge grid, focus selection and text encoding
//  2. [codec] - the bit-packed binary encoding
//  3. [input] - pointer drags to edge toggles
//  4. [render] - scenes and their SVG, PNG, PDF and Graphviz outputs
//  5. [session] - locked grids with edit history, registry and sketch files
//  6. [server] - the HTTP API, metrics and websocket endpoint
//  7. [cache], [config], [errors], [observability], [buildinfo] - support
//
// # Architecture
//
// The typical data flow:
//
//	pointer drag / CLI path / HTTP toggle
//	         ↓
//	    [input] package (snap to nodes, pick the edge)
//	         ↓
//	    [session] package (lock, toggle, record the edit)
//	         ↓
//	    [render] package (scene of lines and rects)
//	         ↓
//	    SVG/PNG/PDF/DOT output, cached by grid content
//
// # Quick Start
//
//	g, _ := grid.New(64, 8)
//	g.Toggle(0, 0, 1, 1)
//	svg := sink.RenderSVG(render.Build(g, render.ModeWhole))
//
// [grid]: github.com/matzehuels/sketchgrid/pkg/grid
// [codec]: github.com/matzehuels/sketchgrid/pkg/codec
// [input]: github.com/matzehuels/sketchgrid/pkg/input
// [render]: github.com/matzehuels/sketchgrid/pkg/render
// [session]: github.com/matzehuels/sketchgrid/pkg/session
// [server]: github.com/matzehuels/sketchgrid/pkg/server
// [cache]: github.com/matzehuels/sketchgrid/pkg/cache
// [config]: github.com/matzehuels/sketchgrid/pkg/config
// [errors]: github.com/matzehuels/sketchgrid/pkg/errors
// [observability]: github.com/matzehuels/sketchgrid/pkg/observability
// [buildinfo]: github.com/matzehuels/sketchgrid/pkg/buildinfo
package pkg
