package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sketchgrid/pkg/cache"
	"github.com/matzehuels/sketchgrid/pkg/codec"
	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/render"
	"github.com/matzehuels/sketchgrid/pkg/render/artifact"
)

func (s *Server) parseRenderOptions(r *http.Request) (artifact.Options, error) {
	q := r.URL.Query()
	o := artifact.Options{
		Format:    chi.URLParam(r, "format"),
		Scale:     s.cfg.Render.Scale,
		LineWidth: s.cfg.Render.LineWidth,
		Palette:   s.cfg.Render.Palette,
		Guides:    true,
	}

	var err error
	if o.Mode, err = render.ParseMode(q.Get("mode")); err != nil {
		return o, err
	}
	if v := q.Get("scale"); v != "" {
		if o.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return o, apperr.New(apperr.ErrCodeInvalidInput, "scale must be a positive number, got %q", v)
		}
	}
	if v := q.Get("line_width"); v != "" {
		if o.LineWidth, err = strconv.ParseFloat(v, 64); err != nil {
			return o, apperr.New(apperr.ErrCodeInvalidInput, "line_width must be a positive number, got %q", v)
		}
	}
	if v := q.Get("palette"); v != "" {
		o.Palette = v
	}
	for name, dst := range map[string]*bool{"guides": &o.Guides, "labels": &o.Labels} {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.ParseBool(v); err != nil {
				return o, apperr.New(apperr.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
			}
		}
	}
	return o, o.Validate()
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	opts, err := s.parseRenderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := r.Context()

	// State and scene come from one lock so the key matches the pixels.
	var state []byte
	var scene render.Scene
	_ = sess.Do(func(g *grid.Grid) error {
		state = codec.MarshalBinary(g)
		scene = render.Build(g, opts.Mode)
		return nil
	})
	key := s.keyer.ArtifactKey(cache.Hash(state), opts.KeyOpts())

	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get failed", "key", key, "err", err)
	}
	if hit {
		s.hooks.OnCacheHit(ctx, opts.Format)
		writeArtifact(w, opts.Format, "hit", data)
		return
	}
	s.hooks.OnCacheMiss(ctx, opts.Format)

	start := time.Now()
	data, err = artifact.Render(ctx, scene, opts)
	s.hooks.OnRender(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache set failed", "key", key, "err", err)
	}
	writeArtifact(w, opts.Format, "miss", data)
}

func writeArtifact(w http.ResponseWriter, format, cacheState string, data []byte) {
	w.Header().Set("Content-Type", artifact.ContentType(format))
	w.Header().Set("X-Cache", cacheState)
	_, _ = w.Write(data)
}
