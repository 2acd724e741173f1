package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sketchgrid/pkg/codec"
	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/input"
	"github.com/matzehuels/sketchgrid/pkg/render"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

type createRequest struct {
	Size          *int     `json:"size"`
	Divisions     *int     `json:"divisions"`
	OnProbability *float64 `json:"on_probability"`
	Seed          *uint64  `json:"seed"`
	BoundarySkip  *bool    `json:"boundary_skip"`
}

type toggleRequest struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

type dragRequest struct {
	Path      []session.Pointer `json:"path"`
	Mode      string            `json:"mode"`
	CellWidth float64           `json:"cell_width"`
}

type focusRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type focusResponse struct {
	Focus grid.Point `json:"focus"`
}

type edgesRequest struct {
	Edges [4]string `json:"edges"`
}

// lookup resolves the {id} route parameter.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	size, divisions := s.cfg.Grid.Size, s.cfg.Grid.Divisions
	if req.Size != nil {
		size = *req.Size
	}
	if req.Divisions != nil {
		divisions = *req.Divisions
	}
	if size > codec.MaxSize {
		s.writeError(w, r, apperr.New(apperr.ErrCodeInvalidConfiguration, "size %d exceeds %d", size, codec.MaxSize))
		return
	}
	p := s.cfg.Grid.OnProbability
	if req.OnProbability != nil {
		p = *req.OnProbability
	}
	opts := []grid.Option{grid.WithOnProbability(p)}
	if req.Seed != nil {
		opts = append(opts, grid.WithSeed(*req.Seed))
	}
	skip := s.cfg.Grid.BoundarySkip
	if req.BoundarySkip != nil {
		skip = *req.BoundarySkip
	}
	if skip {
		opts = append(opts, grid.WithBoundarySkip())
	}

	sess, err := s.sessions.Create(size, divisions, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.hooks.OnSketches(r.Context(), s.sessions.Len())
	s.logger.Info("sketch created", "id", sess.ID, "size", size, "divisions", divisions)
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sketches": s.sessions.List()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.hooks.OnSketches(r.Context(), s.sessions.Len())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	edit, err := sess.Toggle(req.X0, req.Y0, req.X1, req.Y1)
	s.hooks.OnToggle(r.Context(), edit.Layer, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, edit)
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req dragRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := render.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cw := req.CellWidth
	if cw <= 0 {
		cw = s.cfg.Render.CellWidth
	}
	edits := sess.Drag(req.Path, input.WithMode(mode), input.WithCellWidth(cw))
	for _, e := range edits {
		s.hooks.OnToggle(r.Context(), e.Layer, nil)
	}
	if edits == nil {
		edits = []session.Edit{}
	}
	writeJSON(w, http.StatusOK, map[string][]session.Edit{"edits": edits})
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req focusRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, focusResponse{Focus: sess.SetFocus(req.X, req.Y)})
}

func (s *Server) handleRandomFocus(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, focusResponse{Focus: sess.RandomFocus()})
	}
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.lookup(w, r); ok {
		sess.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req edgesRequest
	if err := decode(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.Load(grid.Encoding(req.Edges)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, map[string][]session.Edit{"history": sess.History()})
	}
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "bad edit sequence"))
		return
	}
	if err := sess.Invalidate(seq); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBinary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var data []byte
	_ = sess.Do(func(g *grid.Grid) error {
		data = codec.MarshalBinary(g)
		return nil
	})
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}
