package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/render"
)

func sceneWithStroke(t *testing.T) render.Scene {
	t.Helper()
	g, err := grid.New(4, 2, grid.WithSeed(3))
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}
	for _, e := range [][4]int{{0, 0, 1, 0}, {1, 0, 2, 1}, {2, 1, 2, 2}} {
		if _, _, err := g.Toggle(e[0], e[1], e[2], e[3]); err != nil {
			t.Fatalf("Toggle(%v) error = %v", e, err)
		}
	}
	return render.Build(g, render.ModeWhole)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sceneWithStroke(t), Options{})

	checks := []string{
		"graph G {",
		`"0_0" [pos="0,0!"];`,
		`"1_0" [pos="0.5,0!"];`,
		`"2_2" [pos="1,-1!"];`,
		`"0_0" -- "1_0";`,
		`"1_0" -- "2_1";`,
		`"2_1" -- "2_2";`,
	}
	for _, c := range checks {
		if !strings.Contains(dot, c) {
			t.Errorf("ToDOT() missing %q\n%s", c, dot)
		}
	}
	if got := strings.Count(dot, " -- "); got != 3 {
		t.Errorf("link count = %d, want 3", got)
	}
	if got := strings.Count(dot, "pos="); got != 4 {
		t.Errorf("node count = %d, want 4", got)
	}
}

func TestToDOTLabels(t *testing.T) {
	dot := ToDOT(sceneWithStroke(t), Options{Labels: true, Spacing: 1})
	if !strings.Contains(dot, `"2_1" [pos="2,-1!", label="(2,1)"];`) {
		t.Errorf("ToDOT() missing labelled node\n%s", dot)
	}
	if !strings.Contains(dot, "shape=circle") {
		t.Error("labelled nodes should be circles")
	}
}

func TestToDOTEmpty(t *testing.T) {
	g, err := grid.New(2, 1, grid.WithSeed(1))
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}
	dot := ToDOT(render.Build(g, render.ModeWhole), Options{})
	if strings.Contains(dot, "pos=") || strings.Contains(dot, " -- ") {
		t.Errorf("ToDOT() of empty grid has nodes:\n%s", dot)
	}
}

func TestFitViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	got := string(fitViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("fitViewBox() = %q, want %q", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := fitViewBox(plain); string(got) != string(plain) {
		t.Errorf("fitViewBox() without viewBox = %q, want unchanged", got)
	}
}
