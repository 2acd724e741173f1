package grid

import (
	"math/rand/v2"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

// Grid is a square toroidal grid of toggleable edges.
type Grid struct {
	size      int
	divisions int
	cpd       int // cells per division

	layers  [4][]bool // index x*size + y
	started []bool    // index dx*divisions + dy
	focus   Point

	boundarySkip bool
	rng          *rand.Rand
}

type config struct {
	onProbability float64
	boundarySkip  bool
	rng           *rand.Rand
}

// Option configures a Grid at construction.
type Option func(*config)

// WithOnProbability sets the probability that each edge starts lit.
// The default is 0, an empty sketch.
func WithOnProbability(p float64) Option {
	return func(c *config) { c.onProbability = p }
}

// WithSeed makes every random choice of the grid reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithRand uses r as the random source.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rng = r }
}

// WithBoundarySkip restores the legacy canvas behaviour where a toggle
// starting on a division boundary row or column does not mark the
// division as started.
func WithBoundarySkip() Option {
	return func(c *config) { c.boundarySkip = true }
}

// New creates a size×size grid split into divisions×divisions regions.
// It fails with INVALID_CONFIGURATION when size or divisions is not
// positive, divisions does not divide size, or the on probability is
// outside [0, 1].
func New(size, divisions int, opts ...Option) (*Grid, error) {
	if err := apperr.ValidateDimensions(size, divisions); err != nil {
		return nil, err
	}
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if err := apperr.ValidateProbability(c.onProbability); err != nil {
		return nil, err
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g := &Grid{
		size:         size,
		divisions:    divisions,
		cpd:          size / divisions,
		started:      make([]bool, divisions*divisions),
		boundarySkip: c.boundarySkip,
		rng:          c.rng,
	}
	for i := range g.layers {
		g.layers[i] = make([]bool, size*size)
	}
	if c.onProbability > 0 {
		for i := 0; i < size*size; i++ {
			for l := range g.layers {
				g.layers[l][i] = g.rng.Float64() < c.onProbability
			}
		}
	}
	g.focus = g.randomDivision()
	return g, nil
}

// Size returns the side length of the grid in cells.
func (g *Grid) Size() int { return g.size }

// Divisions returns the number of divisions per side.
func (g *Grid) Divisions() int { return g.divisions }

// CellsPerDivision returns the side length of one division in cells.
func (g *Grid) CellsPerDivision() int { return g.cpd }

// BoundarySkip reports whether the grid was built with [WithBoundarySkip].
func (g *Grid) BoundarySkip() bool { return g.boundarySkip }

// Edge reports whether the layer's edge at cell (x, y) is lit.
// Coordinates wrap around the torus.
func (g *Grid) Edge(l Layer, x, y int) bool {
	return g.layers[l][g.index(Wrap(x, g.size), Wrap(y, g.size))]
}

// OnCount returns the number of lit edges across all layers.
func (g *Grid) OnCount() int {
	n := 0
	for _, layer := range g.layers {
		for _, on := range layer {
			if on {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy of g. The copy shares the random source.
func (g *Grid) Clone() *Grid {
	c := *g
	for i := range g.layers {
		c.layers[i] = append([]bool(nil), g.layers[i]...)
	}
	c.started = append([]bool(nil), g.started...)
	return &c
}

func (g *Grid) index(x, y int) int { return x*g.size + y }

// Wrap maps v onto [0, n), the torus coordinate of v.
func Wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
