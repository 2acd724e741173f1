// Package server exposes sketches over HTTP.
//
// Routes (all bodies are JSON unless noted):
//
//	GET    /healthz
//	GET    /metrics                              Prometheus exposition
//	POST   /api/sketches                         create
//	GET    /api/sketches                         list ids
//	GET    /api/sketches/{id}                    snapshot
//	DELETE /api/sketches/{id}
//	POST   /api/sketches/{id}/toggle             {x0,y0,x1,y1}
//	POST   /api/sketches/{id}/drag               {path:[{x,y}],mode,cell_width}
//	PUT    /api/sketches/{id}/focus              {x,y}
//	POST   /api/sketches/{id}/focus/random
//	POST   /api/sketches/{id}/clear
//	PUT    /api/sketches/{id}/edges              {edges:[h,v,se,sw]}
//	GET    /api/sketches/{id}/history
//	POST   /api/sketches/{id}/history/{seq}/invalidate
//	GET    /api/sketches/{id}/binary             protowire bytes
//	GET    /api/sketches/{id}/render.{format}    svg, png, pdf, dot or graph
//	GET    /api/sketches/{id}/ws                 websocket, receive only
//
// Errors are returned as {"code": ..., "message": ...} with 400 for bad
// input, 404 for unknown sketches and 500 otherwise.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sketchgrid/pkg/cache"
	"github.com/matzehuels/sketchgrid/pkg/config"
	"github.com/matzehuels/sketchgrid/pkg/observability"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Server serves the sketch API.
type Server struct {
	cfg      config.Config
	sessions *session.Registry
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	logger   *log.Logger
	hooks    observability.Hooks
	registry *prometheus.Registry
	upgrader websocket.Upgrader
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets grid and render defaults and the read timeout.
func WithConfig(cfg config.Config) Option { return func(s *Server) { s.cfg = cfg } }

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithSessions serves an existing registry.
func WithSessions(r *session.Registry) Option { return func(s *Server) { s.sessions = r } }

// WithCache caches rendered artifacts in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) { s.cache, s.ttl = c, ttl }
}

// WithKeyer replaces the default cache keyer.
func WithKeyer(k cache.Keyer) Option { return func(s *Server) { s.keyer = k } }

// WithPrometheus registers metrics on reg instead of a fresh registry.
func WithPrometheus(reg *prometheus.Registry) Option { return func(s *Server) { s.registry = reg } }

// WithHooks sends events to h instead of Prometheus metrics.
func WithHooks(h observability.Hooks) Option { return func(s *Server) { s.hooks = h } }

// New builds a server. Without options it keeps sketches in memory, does
// not cache, and records metrics on its own Prometheus registry.
func New(opts ...Option) *Server {
	s := &Server{cfg: config.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.sessions == nil {
		s.sessions = session.NewRegistry(s.logger)
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	if s.hooks == nil {
		s.hooks = observability.NewMetrics(s.registry)
	}
	s.router = s.routes()
	return s
}

// Sessions returns the registry the server reads from.
func (s *Server) Sessions() *session.Registry { return s.sessions }

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/sketches", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/toggle", s.handleToggle)
			r.Post("/drag", s.handleDrag)
			r.Put("/focus", s.handleFocus)
			r.Post("/focus/random", s.handleRandomFocus)
			r.Post("/clear", s.handleClear)
			r.Put("/edges", s.handleLoad)
			r.Get("/history", s.handleHistory)
			r.Post("/history/{seq}/invalidate", s.handleInvalidate)
			r.Get("/binary", s.handleBinary)
			r.Get("/render.{format}", s.handleRender)
			r.Get("/ws", s.handleSocket)
		})
	})
	return r
}

// logRequests logs one line per request at debug level, or warn for 5xx.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		kv := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if ww.Status() >= http.StatusInternalServerError {
			s.logger.Warn("request failed", kv...)
			return
		}
		s.logger.Debug("request", kv...)
	})
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout.Duration,
		ErrorLog:          s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel}),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
