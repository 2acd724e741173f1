// Package render turns grid state into draw instructions.
//
// # Overview
//
// The grid never draws. A host UI pulls a [Scene] at its own cadence and
// paints it:
//
//	scene := render.Build(g, render.ModeSubgrid)
//	svg := sink.RenderSVG(scene, sink.WithScale(32))
//
// A scene is expressed in grid units: one unit per cell. [Whole] covers the
// full torus with the focus division outlined. [Subgrid] covers a window
// twice the size of a division, centred on the focus and wrapped around the
// torus, with everything outside the focus division dimmed.
//
// # Outputs
//
//   - [sink]: SVG and PNG painters for scenes
//   - [nodelink]: Graphviz node-link view of the lit edges
//   - [ToPDF]: SVG to PDF conversion via rsvg-convert
//
// [sink]: github.com/matzehuels/sketchgrid/pkg/render/sink
// [nodelink]: github.com/matzehuels/sketchgrid/pkg/render/nodelink
package render
