package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sketchgrid/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale     float64
	lineWidth float64
	palette   Palette
	guides    bool
}

// WithScale sets the number of pixels per grid cell (default 8).
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithLineWidth sets the stroke width in grid units (default 0.08).
func WithLineWidth(w float64) SVGOption { return func(r *svgRenderer) { r.lineWidth = w } }

// WithPalette replaces the default colours.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithoutGuides leaves unlit edges out of the output.
func WithoutGuides() SVGOption { return func(r *svgRenderer) { r.guides = false } }

// RenderSVG paints s as an SVG document. The viewBox is in grid units.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 8, lineWidth: 0.08, palette: DefaultPalette, guides: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width*r.scale, s.Height*r.scale)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%g" height="%g" fill="%s"/>`+"\n",
		s.Width, s.Height, svgColor(r.palette.Background))

	r.renderLines(&buf, s)
	r.renderRects(&buf, s)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderLines(buf *bytes.Buffer, s render.Scene) {
	lit := s.Lit()
	if r.guides {
		fmt.Fprintf(buf, `  <g class="guides" stroke="%s" stroke-width="%g" stroke-linecap="round">`+"\n",
			svgColor(r.palette.Light), r.lineWidth/2)
		for _, l := range s.Lines[:len(s.Lines)-len(lit)] {
			writeLine(buf, l)
		}
		buf.WriteString("  </g>\n")
	}
	fmt.Fprintf(buf, `  <g class="edges" stroke="%s" stroke-width="%g" stroke-linecap="round">`+"\n",
		svgColor(r.palette.Dark), r.lineWidth)
	for _, l := range lit {
		writeLine(buf, l)
	}
	buf.WriteString("  </g>\n")
}

func writeLine(buf *bytes.Buffer, l render.Line) {
	fmt.Fprintf(buf, `    <line class="%s" x1="%g" y1="%g" x2="%g" y2="%g"/>`+"\n", l.Layer, l.X0, l.Y0, l.X1, l.Y1)
}

func (r *svgRenderer) renderRects(buf *bytes.Buffer, s render.Scene) {
	for _, rect := range s.Rects {
		if rect.Kind != render.RectDim || rect.W <= 0 || rect.H <= 0 {
			continue
		}
		fmt.Fprintf(buf, `  <rect class="dim" x="%g" y="%g" width="%g" height="%g" fill="%s" stroke="none"/>`+"\n",
			rect.X, rect.Y, rect.W, rect.H, svgColor(r.palette.Dim))
	}
	if f, ok := s.Focus(); ok {
		fmt.Fprintf(buf, `  <rect class="focus" x="%g" y="%g" width="%g" height="%g" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
			f.X, f.Y, f.W, f.H, svgColor(r.palette.Focus), r.lineWidth*0.6)
	}
}
