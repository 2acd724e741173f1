// Package config loads sketchgrid settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/sketchgrid/config.toml (falling back to
// ~/.config/sketchgrid/config.toml). A missing file is not an error; every
// field has a default, and a file only needs the keys it changes:
//
//	[grid]
//	size = 128
//	divisions = 16
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

const appName = "sketchgrid"

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config is the full settings tree.
type Config struct {
	Grid   Grid   `toml:"grid"`
	Render Render `toml:"render"`
	Server Server `toml:"server"`
	Cache  Cache  `toml:"cache"`
}

// Grid holds construction parameters for new sketches.
type Grid struct {
	Size          int     `toml:"size"`
	Divisions     int     `toml:"divisions"`
	OnProbability float64 `toml:"on_probability"`
	BoundarySkip  bool    `toml:"boundary_skip"`
}

// Render holds output defaults.
type Render struct {
	CellWidth float64 `toml:"cell_width"`
	Scale     float64 `toml:"scale"`
	LineWidth float64 `toml:"line_width"`
	Palette   string  `toml:"palette"`
}

// Server holds HTTP settings.
type Server struct {
	Addr        string   `toml:"addr"`
	ReadTimeout Duration `toml:"read_timeout"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	TTL       Duration `toml:"ttl"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Prefix    string   `toml:"prefix"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Grid:   Grid{Size: 64, Divisions: 8},
		Render: Render{CellWidth: 8, Scale: 8, LineWidth: 0.08, Palette: "dark"},
		Server: Server{Addr: ":8080", ReadTimeout: Duration{10 * time.Second}},
		Cache:  Cache{Backend: BackendFile, TTL: Duration{24 * time.Hour}, RedisAddr: "localhost:6379", Prefix: appName + ":"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads path on top of the defaults. An empty path means [Path]. A
// missing file yields the defaults. Keys the schema does not know are
// returned in undecoded so callers can warn about them.
func Load(path string) (cfg Config, undecoded []string, err error) {
	cfg = Default()
	if path == "" {
		if path, err = Path(); err != nil {
			return cfg, nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil, nil
	}
	if err != nil {
		return cfg, nil, apperr.Wrap(apperr.ErrCodeInvalidConfiguration, err, "read config")
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), nil, apperr.Wrap(apperr.ErrCodeInvalidConfiguration, err, "parse %s", path)
	}
	for _, k := range md.Undecoded() {
		undecoded = append(undecoded, k.String())
	}
	if err := cfg.Validate(); err != nil {
		return Default(), undecoded, err
	}
	return cfg, undecoded, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := apperr.ValidateDimensions(c.Grid.Size, c.Grid.Divisions); err != nil {
		return err
	}
	if err := apperr.ValidateProbability(c.Grid.OnProbability); err != nil {
		return err
	}
	if c.Render.CellWidth <= 0 || c.Render.Scale <= 0 || c.Render.LineWidth <= 0 {
		return apperr.New(apperr.ErrCodeInvalidConfiguration,
			"render cell_width, scale and line_width must be positive")
	}
	if c.Server.Addr == "" {
		return apperr.New(apperr.ErrCodeInvalidConfiguration, "server addr must not be empty")
	}
	switch strings.ToLower(c.Cache.Backend) {
	case BackendFile, BackendMemory, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return apperr.New(apperr.ErrCodeInvalidConfiguration, "cache backend redis needs redis_addr")
		}
	default:
		return apperr.New(apperr.ErrCodeInvalidConfiguration,
			"unknown cache backend %q (want file, memory, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfiguration, "cache ttl must not be negative")
	}
	return nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
