// Package input turns pointer drags into edge toggles.
//
// A [Tracker] maps pixel positions on a canvas showing a [render.Scene]
// back to grid coordinates, snaps them to the nearest grid node and
// toggles the edge between consecutive snapped nodes.
//
// [render.Scene]: github.com/matzehuels/sketchgrid/pkg/render.Scene
package input

import (
	"math"

	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/render"
)

// DefaultCellWidth is the width of one cell in whole mode, in pixels.
const DefaultCellWidth = 8

// snapRadius is how close a point must be to a node to snap onto it.
const snapRadius = 0.5

// Toggler is the part of a grid a Tracker writes to.
type Toggler interface {
	Toggle(x0, y0, x1, y1 int) (grid.Layer, grid.Point, error)
	Focus() grid.Point
	CellsPerDivision() int
	Divisions() int
}

// Stroke is one edge toggled by a drag.
type Stroke struct {
	From, To grid.Point
	Layer    grid.Layer
	Cell     grid.Point
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCellWidth sets the pixel width of a cell in whole mode.
func WithCellWidth(w float64) Option { return func(t *Tracker) { t.cellWidth = w } }

// WithMode sets the initial draw mode.
func WithMode(m render.Mode) Option { return func(t *Tracker) { t.mode = m } }

// Tracker follows one pointer drag at a time. It is not safe for
// concurrent use.
type Tracker struct {
	g         Toggler
	cellWidth float64
	mode      render.Mode

	origin    grid.Point
	hasOrigin bool
}

// NewTracker returns a Tracker writing to g.
func NewTracker(g Toggler, opts ...Option) *Tracker {
	t := &Tracker{g: g, cellWidth: DefaultCellWidth}
	for _, opt := range opts {
		opt(t)
	}
	if t.cellWidth <= 0 {
		t.cellWidth = DefaultCellWidth
	}
	return t
}

// Mode returns the current draw mode.
func (t *Tracker) Mode() render.Mode { return t.mode }

// SetMode switches the draw mode. The drag origin is dropped since its
// pixel mapping no longer holds.
func (t *Tracker) SetMode(m render.Mode) {
	t.mode = m
	t.Release()
}

// Scale returns the number of pixels per cell in the current mode.
func (t *Tracker) Scale() float64 {
	if t.mode == render.ModeSubgrid {
		return t.cellWidth * float64(t.g.Divisions()) * 0.5
	}
	return t.cellWidth
}

// Normalize maps a pixel position to grid coordinates. In subgrid mode
// points outside the focus division are rejected.
func (t *Tracker) Normalize(px, py float64) (x, y float64, ok bool) {
	s := t.Scale()
	if t.mode != render.ModeSubgrid {
		return px / s, py / s, true
	}
	f, cpd := t.g.Focus(), float64(t.g.CellsPerDivision())
	x = (float64(f.X)-0.5)*cpd + px/s
	y = (float64(f.Y)-0.5)*cpd + py/s
	minX, minY := float64(f.X)*cpd, float64(f.Y)*cpd
	if x < minX || x > minX+cpd || y < minY || y > minY+cpd {
		return 0, 0, false
	}
	return x, y, true
}

// Snap returns the grid node nearest to (x, y) when it lies within half a
// cell.
func Snap(x, y float64) (grid.Point, bool) {
	nx, ny := math.Floor(x+0.5), math.Floor(y+0.5)
	if math.Hypot(nx-x, ny-y) >= snapRadius {
		return grid.Point{}, false
	}
	return grid.Point{X: int(nx), Y: int(ny)}, true
}

// Drag feeds one pointer position. The first snapped node becomes the drag
// origin; each later snapped node toggles the edge from the origin and
// becomes the new origin. It reports the stroke when an edge was toggled.
// A jump to a non-adjacent node only moves the origin.
func (t *Tracker) Drag(px, py float64) (Stroke, bool) {
	x, y, ok := t.Normalize(px, py)
	if !ok {
		return Stroke{}, false
	}
	nearest, ok := Snap(x, y)
	if !ok {
		return Stroke{}, false
	}
	if !t.hasOrigin {
		t.origin, t.hasOrigin = nearest, true
		return Stroke{}, false
	}
	if nearest == t.origin {
		return Stroke{}, false
	}

	from := t.origin
	t.origin = nearest
	layer, cell, err := t.g.Toggle(from.X, from.Y, nearest.X, nearest.Y)
	if err != nil {
		return Stroke{}, false
	}
	return Stroke{From: from, To: nearest, Layer: layer, Cell: cell}, true
}

// Release ends the current drag.
func (t *Tracker) Release() {
	t.hasOrigin = false
}

// Origin returns the current drag origin, if any.
func (t *Tracker) Origin() (grid.Point, bool) { return t.origin, t.hasOrigin }
