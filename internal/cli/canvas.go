package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/render"
)

// tone is how a canvas character is styled.
type tone uint8

const (
	toneBlank tone = iota
	toneNode
	toneLit
	toneFocus
	toneDimNode
	toneDimLit
	toneCursor
	tonePen
)

var toneStyles = map[tone]lipgloss.Style{
	toneNode:    fg(colorDim),
	toneLit:     fg(colorWhite).Bold(true),
	toneFocus:   fg(colorRed),
	toneDimNode: fg(lipgloss.Color("236")),
	toneDimLit:  fg(colorGray),
	toneCursor:  fg(colorCyan).Bold(true),
	tonePen:     fg(colorGreen).Bold(true),
}

// canvas is a character picture of a scene. Scene node (x, y) sits at
// column 2x, row 2y; edges take the characters between nodes.
type canvas struct {
	w, h  int
	runes []rune
	tones []tone
}

var layerRunes = map[grid.Layer]rune{
	grid.LayerH:  '─',
	grid.LayerV:  '│',
	grid.LayerSE: '╲',
	grid.LayerSW: '╱',
}

// newCanvas draws the lit edges, node dots, focus frame and dimmed region
// of s.
func newCanvas(s render.Scene) *canvas {
	c := &canvas{w: 2*int(s.Width) + 1, h: 2*int(s.Height) + 1}
	c.runes = make([]rune, c.w*c.h)
	c.tones = make([]tone, c.w*c.h)
	for i := range c.runes {
		c.runes[i] = ' '
	}
	for y := 0; y < c.h; y += 2 {
		for x := 0; x < c.w; x += 2 {
			c.set(x, y, '·', toneNode)
		}
	}

	for _, l := range s.Lit() {
		cx, cy := int(l.X0+l.X1), int(l.Y0+l.Y1)
		r := layerRunes[l.Layer]
		if prev := c.at(cx, cy); (prev == '╲' && r == '╱') || (prev == '╱' && r == '╲') {
			r = '╳'
		}
		c.set(cx, cy, r, toneLit)
	}

	focus, hasFocus := s.Focus()
	for _, rect := range s.Rects {
		if rect.Kind != render.RectDim {
			continue
		}
		c.eachIn(rect, func(x, y int) {
			if hasFocus && inRect(focus, x, y) {
				return
			}
			switch c.tones[y*c.w+x] {
			case toneNode:
				c.tones[y*c.w+x] = toneDimNode
			case toneLit:
				c.tones[y*c.w+x] = toneDimLit
			}
		})
	}
	if hasFocus {
		c.eachIn(focus, func(x, y int) {
			onBorder := x == 2*int(focus.X) || x == 2*int(focus.X+focus.W) || y == 2*int(focus.Y) || y == 2*int(focus.Y+focus.H)
			if onBorder && c.tones[y*c.w+x] == toneNode {
				c.tones[y*c.w+x] = toneFocus
			}
		})
	}
	return c
}

func (c *canvas) set(x, y int, r rune, t tone) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.tones[y*c.w+x] = t
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.runes[y*c.w+x]
}

// eachIn calls fn for every character inside r, borders included.
func (c *canvas) eachIn(r render.Rect, fn func(x, y int)) {
	for y := max(0, 2*int(r.Y)); y <= min(c.h-1, 2*int(r.Y+r.H)); y++ {
		for x := max(0, 2*int(r.X)); x <= min(c.w-1, 2*int(r.X+r.W)); x++ {
			fn(x, y)
		}
	}
}

func inRect(r render.Rect, x, y int) bool {
	return x >= 2*int(r.X) && x <= 2*int(r.X+r.W) && y >= 2*int(r.Y) && y <= 2*int(r.Y+r.H)
}

// mark draws the cursor on scene node p.
func (c *canvas) mark(p grid.Point, pen bool) {
	if pen {
		c.set(2*p.X, 2*p.Y, '●', tonePen)
		return
	}
	c.set(2*p.X, 2*p.Y, '○', toneCursor)
}

// Plain returns the canvas without styling.
func (c *canvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		b.WriteString(strings.TrimRight(string(c.runes[y*c.w:(y+1)*c.w]), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the canvas with lipgloss styles, one run per tone.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		row := c.runes[y*c.w : (y+1)*c.w]
		tones := c.tones[y*c.w : (y+1)*c.w]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && tones[end] == tones[start] {
				end++
			}
			run := string(row[start:end])
			if st, ok := toneStyles[tones[start]]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = end
		}
		b.WriteByte('\n')
	}
	return b.String()
}
