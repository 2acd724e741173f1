package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels shows the grid coordinate of every node.
	// When false, nodes are drawn as small dots.
	Labels bool
	// Spacing is the distance between adjacent nodes in inches.
	// Zero means 0.5.
	Spacing float64
}

type node struct{ x, y int }

// ToDOT converts the lit edges of a scene to Graphviz DOT. Every node is
// pinned at its scene position so the drawing keeps the sketch's shape.
// Nodes with no lit edge are left out.
func ToDOT(s render.Scene, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 0.5
	}

	lit := s.Lit()
	seen := make(map[node]bool, 2*len(lit))
	var nodes []node
	add := func(x, y float64) node {
		n := node{int(x), int(y)}
		if !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
		return n
	}
	type link struct{ a, b node }
	links := make([]link, 0, len(lit))
	for _, l := range lit {
		links = append(links, link{add(l.X0, l.Y0), add(l.X1, l.Y1)})
	}
	slices.SortFunc(nodes, func(a, b node) int {
		if c := cmp.Compare(a.y, b.y); c != 0 {
			return c
		}
		return cmp.Compare(a.x, b.x)
	})

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=8, width=0.3, fixedsize=true];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.06];\n")
	}
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := fmt.Sprintf("pos=\"%g,%g!\"", float64(n.x)*spacing, float64(-n.y)*spacing)
		if opts.Labels {
			attrs += fmt.Sprintf(", label=%q", s.GridNode(n.x, n.y).String())
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n), attrs)
	}

	buf.WriteString("\n")
	for _, l := range links {
		fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(l.a), nodeID(l.b))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(n node) string { return strconv.Itoa(n.x) + "_" + strconv.Itoa(n.y) }

// RenderSVG lays out a DOT graph with neato. Pinned positions are kept, so
// the picture matches the sketch.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "start graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "parse dot")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "neato layout")
	}
	return fitViewBox(buf.Bytes()), nil
}

// RenderPDF is RenderSVG followed by [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

var (
	rootTagRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitViewBox replaces graphviz's root element, which carries pt units and a
// translated origin, with one sized by the viewBox alone.
func fitViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[3]), 64)
	h, errH := strconv.ParseFloat(string(m[4]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return rootTagRe.ReplaceAll(svg, []byte(root))
}
