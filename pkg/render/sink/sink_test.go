package sink

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/render"
)

func testScene(t *testing.T, m render.Mode) render.Scene {
	t.Helper()
	g, err := grid.New(4, 2, grid.WithSeed(1))
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}
	g.SetFocus(0, 0)
	if _, _, err := g.Toggle(0, 0, 1, 0); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, _, err := g.Toggle(1, 1, 2, 2); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	return render.Build(g, m)
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene(t, render.ModeWhole), WithScale(10)))

	checks := []string{
		`viewBox="0 0 4 4"`,
		`width="40"`,
		`height="40"`,
		`class="h" x1="0" y1="0" x2="1" y2="0"`,
		`class="se" x1="1" y1="1" x2="2" y2="2"`,
		`class="focus" x="0" y="0" width="2" height="2"`,
		`stroke="#ffffff"`,
	}
	for _, c := range checks {
		if !strings.Contains(svg, c) {
			t.Errorf("RenderSVG() missing %q", c)
		}
	}
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() is not a complete svg element")
	}
	if got := strings.Count(svg, "<line "); got != 4*4*4 {
		t.Errorf("line count = %d, want 64", got)
	}
}

func TestRenderSVGWithoutGuides(t *testing.T) {
	svg := string(RenderSVG(testScene(t, render.ModeWhole), WithoutGuides()))
	if got := strings.Count(svg, "<line "); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
	if strings.Contains(svg, `class="guides"`) {
		t.Error("guides group rendered")
	}
}

func TestRenderSVGSubgridDims(t *testing.T) {
	svg := string(RenderSVG(testScene(t, render.ModeSubgrid), WithPalette(PaperPalette)))
	if got := strings.Count(svg, `class="dim"`); got != 4 {
		t.Errorf("dim rects = %d, want 4", got)
	}
	if !strings.Contains(svg, "rgba(255,255,255,0.63)") {
		t.Error("paper palette dim colour not used")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testScene(t, render.ModeWhole), WithPNGScale(10), WithPNGLineWidth(0.3), WithoutPNGGuides())
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("bounds = %v, want 40x40", b)
	}

	// The lit horizontal edge lies under the focus outline; sample the diagonal.
	if r, g, b, _ := img.At(15, 15).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("pixel on lit diagonal = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(35, 25).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("background pixel = (%d,%d,%d), want black", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(10, 0).RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("focus outline pixel = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestRasterizeRejectsBadScale(t *testing.T) {
	s := testScene(t, render.ModeWhole)
	for _, scale := range []float64{0, -1, 1e6} {
		if _, err := Rasterize(s, WithPNGScale(scale)); err == nil {
			t.Errorf("Rasterize(scale=%g) error = nil, want error", scale)
		}
	}
}

func TestPaletteByName(t *testing.T) {
	tests := []struct {
		name string
		want color.NRGBA
		ok   bool
	}{
		{"", DefaultPalette.Background, true},
		{"dark", DefaultPalette.Background, true},
		{"paper", PaperPalette.Background, true},
		{"neon", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		p, ok := PaletteByName(tt.name)
		if ok != tt.ok || p.Background != tt.want {
			t.Errorf("PaletteByName(%q) = %v, %v, want %v, %v", tt.name, p.Background, ok, tt.want, tt.ok)
		}
	}
}

func TestSVGColor(t *testing.T) {
	if got := svgColor(color.NRGBA{255, 0, 16, 255}); got != "#ff0010" {
		t.Errorf("svgColor(opaque) = %q, want #ff0010", got)
	}
	if got := svgColor(color.NRGBA{0, 0, 0, 128}); got != "rgba(0,0,0,0.50)" {
		t.Errorf("svgColor(translucent) = %q, want rgba(0,0,0,0.50)", got)
	}
}
