package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	tests := []struct {
		name        string
		start       [3]string
		info        debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name:  "module version",
			start: [3]string{"dev", "none", "unknown"},
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.2.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			wantVersion: "v0.2.0",
			wantCommit:  "abc123",
		},
		{
			name:        "devel build",
			start:       [3]string{"dev", "none", "unknown"},
			info:        debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: "dev",
			wantCommit:  "none",
		},
		{
			name:  "ldflags win",
			start: [3]string{"v1.0.0", "deadbeef", "2024-01-01"},
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.2.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			wantVersion: "v1.0.0",
			wantCommit:  "deadbeef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.start[0], tt.start[1], tt.start[2]
			fill(&tt.info)
			if Version != tt.wantVersion || Commit != tt.wantCommit {
				t.Errorf("fill() = %s/%s, want %s/%s", Version, Commit, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
