package sink

import (
	"fmt"
	"image/color"
)

// Palette holds the colours used by the sinks. Colours are not
// premultiplied.
type Palette struct {
	Background color.NRGBA
	Light      color.NRGBA
	Dark       color.NRGBA
	Focus      color.NRGBA
	Dim        color.NRGBA
}

// DefaultPalette is white ink on black.
var DefaultPalette = Palette{
	Background: color.NRGBA{0, 0, 0, 255},
	Light:      color.NRGBA{64, 64, 64, 255},
	Dark:       color.NRGBA{255, 255, 255, 255},
	Focus:      color.NRGBA{255, 0, 0, 255},
	Dim:        color.NRGBA{0, 0, 0, 128},
}

// PaperPalette is black ink on white.
var PaperPalette = Palette{
	Background: color.NRGBA{255, 255, 255, 255},
	Light:      color.NRGBA{220, 220, 220, 255},
	Dark:       color.NRGBA{0, 0, 0, 255},
	Focus:      color.NRGBA{220, 40, 40, 255},
	Dim:        color.NRGBA{255, 255, 255, 160},
}

// PaletteByName returns a named palette: "dark" (default) or "paper".
func PaletteByName(name string) (Palette, bool) {
	switch name {
	case "", "dark":
		return DefaultPalette, true
	case "paper":
		return PaperPalette, true
	}
	return Palette{}, false
}

// svgColor formats c for an SVG attribute, with opacity when translucent.
func svgColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}
