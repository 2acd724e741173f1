package grid

import (
	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

// Toggle flips the edge between nodes (x0, y0) and (x1, y1) and returns the
// layer and cell it lives in.
//
// The two nodes must be one horizontal, vertical or diagonal step apart;
// anything else fails with INVALID_EDGE_SHAPE and leaves the grid untouched.
// The cell is located on the nodes as given and only then wrapped onto the
// torus, so a step across the seam such as (7,0)-(8,0) on an 8 grid
// addresses H at (7,0), and (0,0)-(1,-1) addresses the SW edge of
// (0,size-1), whose segment runs from (0,size) to (1,size-1).
//
// The division holding (x0, y0) is marked as started.
func (g *Grid) Toggle(x0, y0, x1, y1 int) (Layer, Point, error) {
	dx, dy := x1-x0, y1-y0
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
		return 0, Point{}, apperr.New(apperr.ErrCodeInvalidEdgeShape,
			"(%d,%d)-(%d,%d) is not a unit step", x0, y0, x1, y1)
	}

	layer := LayerSW
	switch {
	case dx == 0:
		layer = LayerV
	case dy == 0:
		layer = LayerH
	case dx == dy:
		layer = LayerSE
	}
	cell := Point{Wrap(min(x0, x1), g.size), Wrap(min(y0, y1), g.size)}

	i := g.index(cell.X, cell.Y)
	g.layers[layer][i] = !g.layers[layer][i]

	ox, oy := Wrap(x0, g.size), Wrap(y0, g.size)
	if g.boundarySkip && (ox%g.cpd == 0 || oy%g.cpd == 0) {
		return layer, cell, nil
	}
	g.markStarted(g.DivisionOf(ox, oy))
	return layer, cell, nil
}

// DivisionOf returns the division containing node (x, y), wrapped.
func (g *Grid) DivisionOf(x, y int) Point {
	return Point{Wrap(x, g.size) / g.cpd, Wrap(y, g.size) / g.cpd}
}

// DivisionStarted reports whether division d has been drawn in.
// d wraps around the division torus.
func (g *Grid) DivisionStarted(d Point) bool {
	return g.started[g.divIndex(d)]
}

// StartedCount returns how many divisions have been started.
func (g *Grid) StartedCount() int {
	n := 0
	for _, s := range g.started {
		if s {
			n++
		}
	}
	return n
}

// MarkStarted marks division d, wrapped, as started. Sketch files use it to
// restore marks that no lit edge implies, for example after Clear.
func (g *Grid) MarkStarted(d Point) { g.markStarted(d) }

func (g *Grid) markStarted(d Point) {
	g.started[g.divIndex(d)] = true
}

func (g *Grid) divIndex(d Point) int {
	return Wrap(d.X, g.divisions)*g.divisions + Wrap(d.Y, g.divisions)
}
