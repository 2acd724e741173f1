package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, undecoded, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() || len(undecoded) != 0 {
		t.Errorf("Load(missing) = %+v, %v, want defaults", cfg, undecoded)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[grid]
size = 32
divisions = 4

[cache]
backend = "redis"
ttl = "90m"

[extra]
foo = 1
`)
	cfg, undecoded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Size != 32 || cfg.Grid.Divisions != 4 {
		t.Errorf("grid = %+v, want 32/4", cfg.Grid)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("cache = %+v, want redis 90m", cfg.Cache)
	}
	if cfg.Render != Default().Render {
		t.Errorf("render = %+v, want defaults", cfg.Render)
	}
	if len(undecoded) != 1 || undecoded[0] != "extra.foo" {
		t.Errorf("undecoded = %v, want [extra.foo]", undecoded)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[grid\nsize = 1"},
		{"bad duration", "[cache]\nttl = \"soon\""},
		{"dimensions", "[grid]\nsize = 10\ndivisions = 3"},
		{"backend", "[cache]\nbackend = \"s3\""},
		{"probability", "[grid]\non_probability = 2.0"},
		{"scale", "[render]\nscale = 0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.body))
			if !apperr.Is(err, apperr.ErrCodeInvalidConfiguration) {
				t.Errorf("Load() error = %v, want INVALID_CONFIGURATION", err)
			}
		})
	}
}

func TestPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "sketchgrid", "config.toml"); got != want {
		t.Errorf("Path() = %s, want %s", got, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grid.Size = 128
	cfg.Cache.TTL = Duration{time.Hour}
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, _, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
