// Package cli implements the sketchgrid command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchgrid/pkg/buildinfo"
	"github.com/matzehuels/sketchgrid/pkg/cache"
	"github.com/matzehuels/sketchgrid/pkg/config"
	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

const (
	appName = "sketchgrid"

	// memoryCacheEntries bounds the in-process cache backend.
	memoryCacheEntries = 256

	groupSketch = "sketch"
	groupTools  = "tools"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and the built-in
// settings. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "sketchgrid draws line art on a toroidal grid",
		Long:         `sketchgrid edits sketches made of straight and diagonal edges on a wrap-around grid split into divisions, renders them to SVG, PNG, PDF or Graphviz, and serves them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sketchgrid/config.toml)")

	root.AddGroup(
		&cobra.Group{ID: groupSketch, Title: "Sketch commands:"},
		&cobra.Group{ID: groupTools, Title: "Tools:"},
	)
	for _, cmd := range []*cobra.Command{
		c.newCommand(), c.toggleCommand(), c.focusCommand(), c.showCommand(), c.editCommand(), c.renderCommand(),
	} {
		cmd.GroupID = groupSketch
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		c.serveCommand(), c.cacheCommand(), c.configCommand(), c.completionCommand(),
	} {
		cmd.GroupID = groupTools
		root.AddCommand(cmd)
	}
	return root
}

// loadConfig reads the config file on top of the defaults.
func (c *CLI) loadConfig() error {
	cfg, undecoded, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	for _, key := range undecoded {
		c.Logger.Warn("unknown config key", "key", key)
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Sketch Files
// =============================================================================

// gridOptions returns the grid options every sketch loaded by the CLI uses.
func (c *CLI) gridOptions() []grid.Option {
	if c.cfg.Grid.BoundarySkip {
		return []grid.Option{grid.WithBoundarySkip()}
	}
	return nil
}

// openSketch reads a sketch file.
func (c *CLI) openSketch(path string) (*session.Session, error) {
	s, err := session.ReadFile(path, c.gridOptions()...)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened sketch", "path", path)
	return s, nil
}

// saveSketch writes s back to path.
func (c *CLI) saveSketch(path string, s *session.Session) error {
	if err := session.WriteFile(path, s); err != nil {
		return err
	}
	c.Logger.Debug("saved sketch", "path", path)
	return nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the artifact cache selected by cfg. noCache forces the
// null backend.
func newCache(cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		return cache.NewMemoryCache(memoryCacheEntries), nil
	case config.BackendRedis:
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: os.Getenv("SKETCHGRID_REDIS_PASSWORD"),
		}), nil
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newKeyer namespaces artifact keys with the configured prefix so several
// deployments can share one backend.
func newKeyer(cfg config.Cache) cache.Keyer {
	return cache.NewScopedKeyer(nil, cfg.Prefix)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sketchgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
