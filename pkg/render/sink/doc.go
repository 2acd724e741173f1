// Package sink paints a [render.Scene] into an output format.
//
// # Overview
//
//   - SVG: [RenderSVG], vector output sized by a pixels-per-cell scale
//   - PNG: [RenderPNG], rasterised in process with golang.org/x/image/vector
//   - PDF: [RenderPDF], the SVG converted by rsvg-convert
//
// Both sinks share a [Palette]. The default is the classic canvas look:
// white lit edges and faint grey guides on black, a red focus outline, and
// a half transparent black overlay outside the focus.
//
//	scene := render.Build(g, render.ModeWhole)
//	svg := sink.RenderSVG(scene, sink.WithScale(8))
//	png, err := sink.RenderPNG(scene, sink.WithPNGScale(8))
//
// [render.Scene]: github.com/matzehuels/sketchgrid/pkg/render.Scene
package sink
