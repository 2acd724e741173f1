// Package artifact renders a scene into a finished file in one of the
// supported output formats. It is shared by the CLI and the HTTP server so
// both produce identical bytes, and identical cache keys, for the same
// options.
package artifact

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/sketchgrid/pkg/cache"
	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/render"
	"github.com/matzehuels/sketchgrid/pkg/render/nodelink"
	"github.com/matzehuels/sketchgrid/pkg/render/sink"
)

// Output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatDOT   = "dot"
	FormatGraph = "graph" // node-link SVG laid out by Graphviz
)

// Formats lists every format in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatGraph}

var contentTypes = map[string]string{
	FormatSVG:   "image/svg+xml",
	FormatPNG:   "image/png",
	FormatPDF:   "application/pdf",
	FormatDOT:   "text/vnd.graphviz; charset=utf-8",
	FormatGraph: "image/svg+xml",
}

// Options controls rendering. The zero value is not usable; start from
// [DefaultOptions].
type Options struct {
	Format    string
	Mode      render.Mode
	Scale     float64
	LineWidth float64
	Palette   string
	Guides    bool
	Labels    bool
}

// DefaultOptions returns SVG of the whole grid with the default look.
func DefaultOptions() Options {
	return Options{Format: FormatSVG, Scale: 8, LineWidth: 0.08, Palette: "dark", Guides: true}
}

// ContentType returns the MIME type of format, or "" when unknown.
func ContentType(format string) string { return contentTypes[format] }

// FormatFromPath guesses the format from a file extension. ".gv" is DOT.
func FormatFromPath(path string) (string, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "gv" {
		return FormatDOT, true
	}
	if ext == FormatGraph || !slices.Contains(Formats, ext) {
		return "", false
	}
	return ext, true
}

// Validate checks o before rendering.
func (o Options) Validate() error {
	if _, ok := contentTypes[o.Format]; !ok {
		return apperr.New(apperr.ErrCodeInvalidFormat, "unknown format %q (want %s)", o.Format, strings.Join(Formats, ", "))
	}
	if o.Scale <= 0 || o.LineWidth <= 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "scale and line width must be positive")
	}
	if _, ok := sink.PaletteByName(o.Palette); !ok {
		return apperr.New(apperr.ErrCodeInvalidInput, "unknown palette %q (want dark or paper)", o.Palette)
	}
	return nil
}

// KeyOpts returns the cache key options for o.
func (o Options) KeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    o.Format,
		Mode:      o.Mode.String(),
		Scale:     o.Scale,
		LineWidth: o.LineWidth,
		Palette:   o.Palette,
		Guides:    o.Guides,
		Labels:    o.Labels,
	}
}

// Render produces the artifact bytes for scene.
func Render(ctx context.Context, scene render.Scene, o Options) ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	palette, _ := sink.PaletteByName(o.Palette)
	svgOpts := []sink.SVGOption{sink.WithScale(o.Scale), sink.WithLineWidth(o.LineWidth), sink.WithPalette(palette)}
	if !o.Guides {
		svgOpts = append(svgOpts, sink.WithoutGuides())
	}

	switch o.Format {
	case FormatSVG:
		return sink.RenderSVG(scene, svgOpts...), nil
	case FormatPDF:
		return sink.RenderPDF(ctx, scene, svgOpts...)
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithPNGScale(o.Scale), sink.WithPNGLineWidth(o.LineWidth), sink.WithPNGPalette(palette)}
		if !o.Guides {
			pngOpts = append(pngOpts, sink.WithoutPNGGuides())
		}
		return sink.RenderPNG(scene, pngOpts...)
	case FormatDOT:
		return []byte(nodelink.ToDOT(scene, nodelink.Options{Labels: o.Labels})), nil
	default: // FormatGraph
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(scene, nodelink.Options{Labels: o.Labels}))
	}
}

// Cached returns the artifact from c when present, rendering and storing it
// otherwise. stateHash identifies the grid state the scene was built from.
// Cache failures are not fatal; they are reported through onCacheErr.
func Cached(ctx context.Context, c cache.Cache, k cache.Keyer, stateHash string, scene render.Scene, o Options, ttl time.Duration, onCacheErr func(error)) (data []byte, hit bool, err error) {
	key := k.ArtifactKey(stateHash, o.KeyOpts())
	if data, hit, err := c.Get(ctx, key); err != nil {
		onCacheErr(err)
	} else if hit {
		return data, true, nil
	}
	if data, err = Render(ctx, scene, o); err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		onCacheErr(err)
	}
	return data, false, nil
}
