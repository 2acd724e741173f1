// Package nodelink renders the lit edges of a sketch as a node-link diagram.
//
// # Overview
//
// Each grid node touched by a lit edge becomes a Graphviz node, and each lit
// edge an undirected link. Nodes are pinned at their scene position and laid
// out with neato, so the output is the drawing itself traced as a graph.
// It is useful for checking connectivity of strokes or for feeding the
// sketch into other Graphviz tooling.
//
// # Usage
//
//	scene := render.Build(g, render.ModeWhole)
//	dot := nodelink.ToDOT(scene, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
