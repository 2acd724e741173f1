package grid

// maxPickAttempts bounds the frontier search of PickUnstartedDivision.
const maxPickAttempts = 500

// neighbours are the orthogonal division offsets tried by the frontier search.
var neighbours = [4]Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Focus returns the division shown in the zoomed view.
func (g *Grid) Focus() Point { return g.focus }

// SetFocus moves the focus to division (x, y). Each component is brought
// back into range by adding or subtracting the division count once, so
// SetFocus(divisions, 0) focuses (0, 0) and SetFocus(-1, 0) focuses
// (divisions-1, 0). Values more than one lap out of range stay out of range.
func (g *Grid) SetFocus(x, y int) {
	g.focus = Point{stepWrap(x, g.divisions), stepWrap(y, g.divisions)}
}

func stepWrap(v, n int) int {
	if v < 0 {
		v += n
	}
	if v >= n {
		v -= n
	}
	return v
}

// PickUnstartedDivision looks for an unstarted division next to one that has
// been started. It seeds from a random started division, steps to a random
// orthogonal neighbour and returns the neighbour if it is unstarted, giving
// up after a bounded number of attempts.
//
// It returns (0, 0) when nothing has been started yet or when the search
// is exhausted.
func (g *Grid) PickUnstartedDivision() Point {
	var seeds []Point
	for x := 0; x < g.divisions; x++ {
		for y := 0; y < g.divisions; y++ {
			if g.started[x*g.divisions+y] {
				seeds = append(seeds, Point{x, y})
			}
		}
	}
	if len(seeds) == 0 {
		return Point{}
	}

	for range maxPickAttempts {
		src := seeds[g.rng.IntN(len(seeds))]
		dir := neighbours[g.rng.IntN(len(neighbours))]
		n := Point{stepWrap(src.X+dir.X, g.divisions), stepWrap(src.Y+dir.Y, g.divisions)}
		if !g.DivisionStarted(n) {
			return n
		}
	}
	return Point{}
}

// SetRandomFocus moves the focus to the frontier of started work, using
// [Grid.PickUnstartedDivision]. When no division or every division has been
// started there is no frontier and the focus lands on a uniformly random
// division instead.
func (g *Grid) SetRandomFocus() {
	if n := g.StartedCount(); n == 0 || n == len(g.started) {
		g.focus = g.randomDivision()
		return
	}
	g.focus = g.PickUnstartedDivision()
}

func (g *Grid) randomDivision() Point {
	return Point{g.rng.IntN(g.divisions), g.rng.IntN(g.divisions)}
}
