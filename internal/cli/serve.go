package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchgrid/pkg/cache"
	"github.com/matzehuels/sketchgrid/pkg/server"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

// serveCommand runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve [FILE...]",
		Short: "Serve sketches over HTTP",
		Long: `Serve the sketch API. Sketch files given as arguments are loaded at start
and keep the IDs stored in them, or get fresh ones.

Rendered artifacts are cached in the backend chosen by the [cache] config
section. Metrics are exposed at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			store, err := newCache(c.cfg.Cache, noCache)
			if err != nil {
				return err
			}
			defer store.Close()
			if rc, ok := store.(*cache.RedisCache); ok {
				if err := rc.Ping(ctx); err != nil {
					logger.Warn("redis unreachable, renders will not be cached until it is back", "addr", c.cfg.Cache.RedisAddr, "err", err)
				}
			}

			sessions := session.NewRegistry(logger)
			for _, path := range args {
				s, err := c.openSketch(path)
				if err != nil {
					return err
				}
				sessions.Add(s)
				logger.Info("loaded sketch", "path", path, "id", s.ID)
			}

			srv := server.New(
				server.WithConfig(c.cfg),
				server.WithLogger(logger),
				server.WithSessions(sessions),
				server.WithCache(store, c.cfg.Cache.TTL.Duration),
				server.WithKeyer(newKeyer(c.cfg.Cache)),
			)
			printInfo("Serving %d sketches on %s", sessions.Len(), StyleLink.Render(listenURL(addr)))
			logger.Debug("artifact cache", "backend", c.cfg.Cache.Backend, "ttl", c.cfg.Cache.TTL.Duration)

			if err := srv.Run(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			printSuccess("Server stopped")
			return ctx.Err()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.cfg.Server.Addr, "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not cache rendered artifacts")
	return cmd
}

// listenURL turns a listen address into a URL a browser can open.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
