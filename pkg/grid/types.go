package grid

import (
	"fmt"
	"strings"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

// Layer identifies one of the four edge orientations of a cell.
// The numeric order is the serialization order.
type Layer int

const (
	LayerH  Layer = iota // horizontal, (x,y)-(x+1,y)
	LayerV               // vertical, (x,y)-(x,y+1)
	LayerSE              // south-east diagonal, (x,y)-(x+1,y+1)
	LayerSW              // south-west diagonal, (x,y+1)-(x+1,y)
)

// Layers lists every layer in serialization order.
var Layers = [4]Layer{LayerH, LayerV, LayerSE, LayerSW}

func (l Layer) String() string {
	switch l {
	case LayerH:
		return "h"
	case LayerV:
		return "v"
	case LayerSE:
		return "se"
	case LayerSW:
		return "sw"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// Segment returns the endpoints of the layer's edge for cell (x, y),
// unwrapped: a segment may end at coordinate size.
func (l Layer) Segment(x, y int) (x0, y0, x1, y1 int) {
	switch l {
	case LayerH:
		return x, y, x + 1, y
	case LayerV:
		return x, y, x, y + 1
	case LayerSE:
		return x, y, x + 1, y + 1
	default:
		return x, y + 1, x + 1, y
	}
}

// Point is a pair of integer coordinates: a grid node, a cell or a division.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Encoding is the canonical text form of a grid: one string per layer in
// H, V, SE, SW order, each size*size characters of '0' and '1'.
type Encoding [4]string

// MarshalText writes the four layers as newline separated lines.
func (e Encoding) MarshalText() ([]byte, error) {
	return []byte(strings.Join(e[:], "\n") + "\n"), nil
}

// UnmarshalText reads four newline separated layers. Blank trailing lines
// and carriage returns are ignored; contents are checked by [Grid.Load].
func (e *Encoding) UnmarshalText(text []byte) error {
	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(string(text), "\r", ""), "\n"), "\n")
	if len(lines) != len(e) {
		return apperr.New(apperr.ErrCodeMalformedEncoding, "encoding has %d layers, want %d", len(lines), len(e))
	}
	copy(e[:], lines)
	return nil
}
