package sink

import (
	"context"

	"github.com/matzehuels/sketchgrid/pkg/render"
)

// RenderPDF paints s as SVG and converts it with rsvg-convert.
func RenderPDF(ctx context.Context, s render.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(s, opts...))
}
