package render

import (
	"cmp"
	"slices"
	"strings"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
)

// Mode selects which part of the grid a scene shows.
type Mode int

const (
	ModeWhole   Mode = iota // the full torus
	ModeSubgrid             // a window around the focus division
)

func (m Mode) String() string {
	if m == ModeSubgrid {
		return "subgrid"
	}
	return "whole"
}

// ParseMode parses "whole" or "subgrid" ("single" and "focus" are accepted
// as aliases of subgrid).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "whole":
		return ModeWhole, nil
	case "subgrid", "single", "focus":
		return ModeSubgrid, nil
	}
	return 0, apperr.New(apperr.ErrCodeInvalidMode, "unknown mode %q (want whole or subgrid)", s)
}

// Tone is how an edge is painted.
type Tone int

const (
	ToneLight Tone = iota // unlit edge, drawn as a faint guide
	ToneDark              // lit edge
)

// Line is one edge in scene coordinates.
type Line struct {
	X0, Y0, X1, Y1 float64
	Layer          grid.Layer
	Tone           Tone
}

// RectKind says what a rectangle marks.
type RectKind int

const (
	RectFocus RectKind = iota // outline of the focus division
	RectDim                   // translucent overlay outside the focus
)

// Rect is an axis aligned rectangle in scene coordinates.
type Rect struct {
	X, Y, W, H float64
	Kind       RectKind
}

// Scene is a full set of draw instructions for one frame.
type Scene struct {
	Mode          Mode
	Width, Height float64
	// Origin is the grid node drawn at scene coordinate (0, 0).
	Origin grid.Point
	// GridSize and CellsPerDivision are copied from the grid for input
	// mapping.
	GridSize         int
	CellsPerDivision int
	Lines            []Line
	Rects            []Rect
}

// Build returns the scene for mode m.
func Build(g *grid.Grid, m Mode) Scene {
	if m == ModeSubgrid {
		return Subgrid(g)
	}
	return Whole(g)
}

// Whole draws every cell of the torus with the focus division outlined.
func Whole(g *grid.Grid) Scene {
	n, cpd := g.Size(), g.CellsPerDivision()
	f := g.Focus()
	s := Scene{
		Mode:             ModeWhole,
		Width:            float64(n),
		Height:           float64(n),
		GridSize:         n,
		CellsPerDivision: cpd,
		Lines:            make([]Line, 0, 4*n*n),
		Rects: []Rect{{
			X: float64(f.X * cpd), Y: float64(f.Y * cpd),
			W: float64(cpd), H: float64(cpd),
			Kind: RectFocus,
		}},
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			s.Lines = appendCell(s.Lines, g, x, y, x, y)
		}
	}
	sortLines(s.Lines)
	return s
}

// Subgrid draws a window of 2×CellsPerDivision cells centred on the focus
// division. Window cell (x, y) shows grid cell
// (fx*cpd - cpd/2 + x, fy*cpd - cpd/2 + y), wrapped around the torus.
func Subgrid(g *grid.Grid) Scene {
	cpd := g.CellsPerDivision()
	half := cpd / 2
	w := 2 * cpd
	f := g.Focus()
	origin := grid.Point{
		X: grid.Wrap(f.X*cpd-half, g.Size()),
		Y: grid.Wrap(f.Y*cpd-half, g.Size()),
	}

	s := Scene{
		Mode:             ModeSubgrid,
		Width:            float64(w),
		Height:           float64(w),
		Origin:           origin,
		GridSize:         g.Size(),
		CellsPerDivision: cpd,
		Lines:            make([]Line, 0, 4*w*w),
	}
	for x := 0; x < w; x++ {
		for y := 0; y < w; y++ {
			s.Lines = appendCell(s.Lines, g, origin.X+x, origin.Y+y, x, y)
		}
	}
	sortLines(s.Lines)

	h, c, W := float64(half), float64(cpd), float64(w)
	s.Rects = []Rect{
		{X: h, Y: h, W: c, H: c, Kind: RectFocus},
		{X: 0, Y: 0, W: W, H: h, Kind: RectDim},
		{X: 0, Y: h + c, W: W, H: W - h - c, Kind: RectDim},
		{X: 0, Y: h, W: h, H: c, Kind: RectDim},
		{X: h + c, Y: h, W: W - h - c, H: c, Kind: RectDim},
	}
	return s
}

// appendCell adds the four edges of grid cell (gx, gy) drawn at scene cell (sx, sy).
func appendCell(lines []Line, g *grid.Grid, gx, gy, sx, sy int) []Line {
	for _, l := range grid.Layers {
		x0, y0, x1, y1 := l.Segment(sx, sy)
		tone := ToneLight
		if g.Edge(l, gx, gy) {
			tone = ToneDark
		}
		lines = append(lines, Line{
			X0: float64(x0), Y0: float64(y0), X1: float64(x1), Y1: float64(y1),
			Layer: l, Tone: tone,
		})
	}
	return lines
}

// sortLines puts light lines first so lit edges are painted on top.
func sortLines(lines []Line) {
	slices.SortStableFunc(lines, func(a, b Line) int { return cmp.Compare(a.Tone, b.Tone) })
}

// Lit returns only the lit edges of the scene.
func (s Scene) Lit() []Line {
	i, _ := slices.BinarySearchFunc(s.Lines, ToneDark, func(l Line, t Tone) int { return cmp.Compare(l.Tone, t) })
	return s.Lines[i:]
}

// GridNode maps scene node (sx, sy) to the grid node it shows.
func (s Scene) GridNode(sx, sy int) grid.Point {
	return grid.Point{X: grid.Wrap(s.Origin.X+sx, s.GridSize), Y: grid.Wrap(s.Origin.Y+sy, s.GridSize)}
}

// Focus returns the focus outline, if the scene has one.
func (s Scene) Focus() (Rect, bool) {
	for _, r := range s.Rects {
		if r.Kind == RectFocus {
			return r, true
		}
	}
	return Rect{}, false
}
