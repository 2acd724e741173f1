// Package codec provides a compact binary form of a grid.
//
// The text [grid.Encoding] spends one byte per edge. The binary form packs
// eight edges per byte and wraps them, with the grid dimensions and focus,
// in a protobuf wire message:
//
//	1: size        varint
//	2: divisions   varint
//	3: focus x     zigzag varint
//	4: focus y     zigzag varint
//	5: layer H     bytes
//	6: layer V     bytes
//	7: layer SE    bytes
//	8: layer SW    bytes
//	9: started     bytes
//
// Bit i of a layer (the cell at index x*size+y) is bit i%8 of byte i/8,
// least significant bit first. Started divisions pack the same way with
// index dx*divisions+dy; the field is optional. Unknown fields are skipped
// when decoding.
package codec

import (
	"google.golang.org/protobuf/encoding/protowire"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
)

const (
	fieldSize      protowire.Number = 1
	fieldDivisions protowire.Number = 2
	fieldFocusX    protowire.Number = 3
	fieldFocusY    protowire.Number = 4
	fieldLayerH    protowire.Number = 5 // followed by V, SE, SW
	fieldStarted   protowire.Number = 9
)

// MaxSize is the largest grid side accepted by UnmarshalBinary.
const MaxSize = 4096

// MarshalBinary encodes g, edges, focus and started divisions, in the
// binary form.
func MarshalBinary(g *grid.Grid) []byte {
	layers := Pack(g.Serialize())
	f := g.Focus()

	var b []byte
	b = protowire.AppendTag(b, fieldSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Size()))
	b = protowire.AppendTag(b, fieldDivisions, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Divisions()))
	b = protowire.AppendTag(b, fieldFocusX, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(f.X)))
	b = protowire.AppendTag(b, fieldFocusY, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(f.Y)))
	for i, l := range layers {
		b = protowire.AppendTag(b, fieldLayerH+protowire.Number(i), protowire.BytesType)
		b = protowire.AppendBytes(b, l)
	}
	b = protowire.AppendTag(b, fieldStarted, protowire.BytesType)
	b = protowire.AppendBytes(b, packStarted(g))
	return b
}

func packStarted(g *grid.Grid) []byte {
	d := g.Divisions()
	b := make([]byte, (d*d+7)/8)
	for dx := 0; dx < d; dx++ {
		for dy := 0; dy < d; dy++ {
			if g.DivisionStarted(grid.Point{X: dx, Y: dy}) {
				i := dx*d + dy
				b[i/8] |= 1 << (i % 8)
			}
		}
	}
	return b
}

// unpackStarted marks the divisions set in b. A nil b marks nothing.
func unpackStarted(g *grid.Grid, b []byte) error {
	if b == nil {
		return nil
	}
	d := g.Divisions()
	if want := (d*d + 7) / 8; len(b) != want {
		return apperr.New(apperr.ErrCodeMalformedEncoding, "started has %d bytes, want %d", len(b), want)
	}
	for i := 0; i < d*d; i++ {
		if b[i/8]&(1<<(i%8)) != 0 {
			g.MarkStarted(grid.Point{X: i / d, Y: i % d})
		}
	}
	return nil
}

// UnmarshalBinary decodes data into a new grid built with opts.
// Wire errors and layers of the wrong length fail with MALFORMED_ENCODING;
// bad dimensions fail with INVALID_CONFIGURATION.
func UnmarshalBinary(data []byte, opts ...grid.Option) (*grid.Grid, error) {
	var (
		size, divisions int
		focus           grid.Point
		layers          [4][]byte
		started         []byte
	)

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, wireError(n)
		}
		data = data[n:]

		switch {
		case num >= fieldSize && num <= fieldFocusY && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, wireError(n)
			}
			data = data[n:]
			switch num {
			case fieldSize:
				size = int(v)
			case fieldDivisions:
				divisions = int(v)
			case fieldFocusX:
				focus.X = int(protowire.DecodeZigZag(v))
			case fieldFocusY:
				focus.Y = int(protowire.DecodeZigZag(v))
			}
		case num >= fieldLayerH && num < fieldLayerH+4 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, wireError(n)
			}
			data = data[n:]
			layers[num-fieldLayerH] = v
		case num == fieldStarted && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, wireError(n)
			}
			data = data[n:]
			if v == nil {
				v = []byte{}
			}
			started = v
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, wireError(n)
			}
			data = data[n:]
		}
	}

	if size > MaxSize {
		return nil, apperr.New(apperr.ErrCodeMalformedEncoding, "size %d exceeds %d", size, MaxSize)
	}
	g, err := grid.New(size, divisions, opts...)
	if err != nil {
		return nil, err
	}
	enc, err := Unpack(size, layers)
	if err != nil {
		return nil, err
	}
	if err := g.Load(enc); err != nil {
		return nil, err
	}
	if err := unpackStarted(g, started); err != nil {
		return nil, err
	}
	g.SetFocus(focus.X, focus.Y)
	return g, nil
}

// Pack converts each text layer into packed bits. Characters other than
// '1' pack as 0; validate with [grid.Grid.Load] first when that matters.
func Pack(e grid.Encoding) [4][]byte {
	var out [4][]byte
	for i, s := range e {
		b := make([]byte, (len(s)+7)/8)
		for j := 0; j < len(s); j++ {
			if s[j] == '1' {
				b[j/8] |= 1 << (j % 8)
			}
		}
		out[i] = b
	}
	return out
}

// Unpack expands packed layers of a size×size grid into the text form.
// A layer that is not exactly ceil(size*size/8) bytes long fails with
// MALFORMED_ENCODING.
func Unpack(size int, layers [4][]byte) (grid.Encoding, error) {
	var e grid.Encoding
	n := size * size
	want := (n + 7) / 8
	for i, b := range layers {
		if len(b) != want {
			return e, apperr.New(apperr.ErrCodeMalformedEncoding,
				"layer %s has %d bytes, want %d", grid.Layers[i], len(b), want)
		}
		s := make([]byte, n)
		for j := range s {
			if b[j/8]&(1<<(j%8)) != 0 {
				s[j] = '1'
			} else {
				s[j] = '0'
			}
		}
		e[i] = string(s)
	}
	return e, nil
}

func wireError(n int) error {
	return apperr.Wrap(apperr.ErrCodeMalformedEncoding, protowire.ParseError(n), "decode binary sketch")
}
