package artifact

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/sketchgrid/pkg/cache"
	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/render"
)

func testScene(t *testing.T) render.Scene {
	t.Helper()
	g, err := grid.New(8, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := g.Toggle(0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	return render.Build(g, render.ModeWhole)
}

func TestRender(t *testing.T) {
	scene := testScene(t)
	tests := []struct {
		format string
		prefix string
	}{
		{FormatSVG, "<svg"},
		{FormatPNG, "\x89PNG"},
		{FormatDOT, "graph G {"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			o := DefaultOptions()
			o.Format = tt.format
			data, err := Render(context.Background(), scene, o)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !bytes.HasPrefix(data, []byte(tt.prefix)) {
				t.Errorf("Render(%s) starts %q, want %q", tt.format, data[:min(len(data), 12)], tt.prefix)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Options)
		code apperr.Code
	}{
		{"format", func(o *Options) { o.Format = "gif" }, apperr.ErrCodeInvalidFormat},
		{"scale", func(o *Options) { o.Scale = 0 }, apperr.ErrCodeInvalidInput},
		{"line width", func(o *Options) { o.LineWidth = -1 }, apperr.ErrCodeInvalidInput},
		{"palette", func(o *Options) { o.Palette = "neon" }, apperr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.edit(&o)
			if err := o.Validate(); !apperr.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"out.svg", FormatSVG, true},
		{"OUT.PNG", FormatPNG, true},
		{"a/b.pdf", FormatPDF, true},
		{"g.gv", FormatDOT, true},
		{"g.dot", FormatDOT, true},
		{"g.graph", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatFromPath(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache(4)
	scene := testScene(t)
	o := DefaultOptions()
	fail := func(err error) { t.Errorf("cache error: %v", err) }

	first, hit, err := Cached(ctx, mem, cache.DefaultKeyer{}, "abc", scene, o, time.Hour, fail)
	if err != nil || hit {
		t.Fatalf("first Cached() hit=%v err=%v, want miss", hit, err)
	}
	second, hit, err := Cached(ctx, mem, cache.DefaultKeyer{}, "abc", scene, o, time.Hour, fail)
	if err != nil || !hit {
		t.Fatalf("second Cached() hit=%v err=%v, want hit", hit, err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached bytes differ from rendered bytes")
	}

	o.Format = "gif"
	if _, _, err := Cached(ctx, mem, cache.DefaultKeyer{}, "abc", scene, o, time.Hour, fail); !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("Cached(gif) = %v, want INVALID_FORMAT", err)
	}
}

type brokenCache struct{ *cache.NullCache }

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}

func TestCachedReportsCacheErrors(t *testing.T) {
	var reported int
	_, _, err := Cached(context.Background(), brokenCache{&cache.NullCache{}}, cache.DefaultKeyer{}, "abc", testScene(t), DefaultOptions(), time.Hour, func(error) { reported++ })
	if err != nil {
		t.Fatalf("Cached: %v", err)
	}
	if reported != 1 {
		t.Errorf("reported %d cache errors, want 1", reported)
	}
}
