package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name  string
		print func()
		want  []string
	}{
		{"success", func() { printSuccess("Created %d", 4) }, []string{"✓", "Created 4"}},
		{"warning", func() { printWarning("unsaved") }, []string{"!", "unsaved"}},
		{"info", func() { printInfo("empty") }, []string{"›", "empty"}},
		{"file", func() { printFile("art.json") }, []string{"→", "art.json"}},
		{"key value", func() { printKeyValue("Focus", "(1,2)") }, []string{"Focus", "(1,2)"}},
		{"next step", func() { printNextStep("Edit it", "sketchgrid edit a") }, []string{"Edit it:", "sketchgrid edit a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			tt.print()
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			if !strings.HasSuffix(out, "\n") {
				t.Errorf("output %q is not newline terminated", out)
			}
		})
	}
}

func TestStatsLine(t *testing.T) {
	fresh := statsLine(3, 1, 2, false)
	for _, w := range []string{"3 lit edges", "1/4 divisions started", "fresh"} {
		if !strings.Contains(fresh, w) {
			t.Errorf("statsLine() = %q, missing %q", fresh, w)
		}
	}
	if cached := statsLine(0, 0, 1, true); !strings.Contains(cached, "cached") {
		t.Errorf("statsLine(cached) = %q, want cached marker", cached)
	}
}
