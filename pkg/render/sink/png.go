package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/render"
)

// MaxPNGSide caps the pixel width and height of a PNG.
const MaxPNGSide = 16384

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale     float64
	lineWidth float64
	palette   Palette
	guides    bool
}

// WithPNGScale sets the number of pixels per grid cell (default 8).
func WithPNGScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGLineWidth sets the stroke width in grid units (default 0.08).
func WithPNGLineWidth(w float64) PNGOption { return func(r *pngRenderer) { r.lineWidth = w } }

// WithPNGPalette replaces the default colours.
func WithPNGPalette(p Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithoutPNGGuides leaves unlit edges out of the image.
func WithoutPNGGuides() PNGOption { return func(r *pngRenderer) { r.guides = false } }

// RenderPNG rasterises s and encodes it as PNG.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	img, err := Rasterize(s, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Rasterize paints s into a new RGBA image.
func Rasterize(s render.Scene, opts ...PNGOption) (*image.RGBA, error) {
	r := pngRenderer{scale: 8, lineWidth: 0.08, palette: DefaultPalette, guides: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "scale must be positive, got %g", r.scale)
	}
	w, h := int(math.Ceil(s.Width*r.scale)), int(math.Ceil(s.Height*r.scale))
	if w <= 0 || h <= 0 || w > MaxPNGSide || h > MaxPNGSide {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "image size %dx%d out of range (max %d)", w, h, MaxPNGSide)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.palette.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	lit := s.Lit()
	if r.guides {
		r.strokeLines(z, img, s.Lines[:len(s.Lines)-len(lit)], r.lineWidth/2, r.palette.Light)
	}
	r.strokeLines(z, img, lit, r.lineWidth, r.palette.Dark)

	for _, rect := range s.Rects {
		if rect.Kind == render.RectDim {
			draw.Draw(img, r.pixelRect(rect), image.NewUniform(r.palette.Dim), image.Point{}, draw.Over)
		}
	}
	if f, ok := s.Focus(); ok {
		r.outline(img, f)
	}
	return img, nil
}

// strokeLines fills one quad per line. All quads share a winding so their
// coverage never cancels.
func (r *pngRenderer) strokeLines(z *vector.Rasterizer, dst draw.Image, lines []render.Line, width float64, c color.NRGBA) {
	if len(lines) == 0 {
		return
	}
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	// Keep hairlines at least a pixel wide.
	half := math.Max(width*r.scale, 1) / 2
	for _, l := range lines {
		x0, y0 := l.X0*r.scale, l.Y0*r.scale
		x1, y1 := l.X1*r.scale, l.Y1*r.scale
		dx, dy := x1-x0, y1-y0
		n := math.Hypot(dx, dy)
		if n == 0 {
			continue
		}
		// Extend each end by half a width for square caps.
		ex, ey := dx/n*half, dy/n*half
		px, py := -ey, ex
		x0, y0, x1, y1 = x0-ex, y0-ey, x1+ex, y1+ey
		z.MoveTo(float32(x0+px), float32(y0+py))
		z.LineTo(float32(x1+px), float32(y1+py))
		z.LineTo(float32(x1-px), float32(y1-py))
		z.LineTo(float32(x0-px), float32(y0-py))
		z.ClosePath()
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func (r *pngRenderer) pixelRect(rect render.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(rect.X*r.scale)), int(math.Round(rect.Y*r.scale)),
		int(math.Round((rect.X+rect.W)*r.scale)), int(math.Round((rect.Y+rect.H)*r.scale)),
	)
}

func (r *pngRenderer) outline(dst draw.Image, rect render.Rect) {
	p := r.pixelRect(rect)
	t := max(1, int(math.Round(r.lineWidth*0.6*r.scale)))
	src := image.NewUniform(r.palette.Focus)
	for _, side := range []image.Rectangle{
		image.Rect(p.Min.X, p.Min.Y, p.Max.X, p.Min.Y+t),
		image.Rect(p.Min.X, p.Max.Y-t, p.Max.X, p.Max.Y),
		image.Rect(p.Min.X, p.Min.Y, p.Min.X+t, p.Max.Y),
		image.Rect(p.Max.X-t, p.Min.Y, p.Max.X, p.Max.Y),
	} {
		draw.Draw(dst, side.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
	}
}
