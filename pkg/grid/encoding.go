package grid

import (
	"strings"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

// Serialize returns the canonical text form of the edges.
func (g *Grid) Serialize() Encoding {
	var e Encoding
	var b strings.Builder
	for l, layer := range g.layers {
		b.Reset()
		b.Grow(len(layer))
		for _, on := range layer {
			if on {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		e[l] = b.String()
	}
	return e
}

// Load replaces every edge with the state held in e.
//
// All four layers are checked before anything changes; a layer with the
// wrong length or a character other than '0' and '1' fails with
// MALFORMED_ENCODING. Divisions holding a lit edge are marked started;
// divisions that were already started stay started.
func (g *Grid) Load(e Encoding) error {
	n := g.size * g.size
	for _, l := range Layers {
		if err := apperr.ValidateBits("layer "+l.String(), e[l], n); err != nil {
			return err
		}
	}

	for x := 0; x < g.size; x++ {
		for y := 0; y < g.size; y++ {
			i := g.index(x, y)
			lit := false
			for l := range g.layers {
				on := e[l][i] == '1'
				g.layers[l][i] = on
				lit = lit || on
			}
			if lit {
				g.markStarted(Point{x / g.cpd, y / g.cpd})
			}
		}
	}
	return nil
}

// Clear turns every edge off. Started divisions and the focus are kept.
func (g *Grid) Clear() {
	for _, layer := range g.layers {
		clear(layer)
	}
}
