package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/input"
	"github.com/matzehuels/sketchgrid/pkg/render"
)

// MaxHistory is the number of edits a session keeps. Older edits are
// dropped first.
const MaxHistory = 1024

// EditKind says what an edit did.
type EditKind string

const (
	EditToggle EditKind = "toggle"
	EditLoad   EditKind = "load"
	EditClear  EditKind = "clear"
)

// Edit is one entry of a session's history.
type Edit struct {
	Seq   int        `json:"seq"`
	Kind  EditKind   `json:"kind"`
	Layer string     `json:"layer,omitempty"`
	Cell  grid.Point `json:"cell"`
	At    time.Time  `json:"at"`
	// Valid is cleared by Invalidate, for example by a moderator. The
	// edit itself is not undone.
	Valid bool `json:"valid"`
}

// Snapshot is a point-in-time copy of a session's grid. Its JSON form is
// the sketch file format.
type Snapshot struct {
	ID        string       `json:"id,omitempty"`
	Size      int          `json:"size"`
	Divisions int          `json:"divisions"`
	Focus     grid.Point   `json:"focus"`
	Edges     [4]string    `json:"edges"`
	Started   []grid.Point `json:"started,omitempty"`
	OnCount   int          `json:"on_count,omitempty"`
}

// Session is a grid with a lock and an edit history.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	g       *grid.Grid
	history []Edit
	seq     int
}

// New creates a session around a fresh grid.
func New(size, divisions int, opts ...grid.Option) (*Session, error) {
	g, err := grid.New(size, divisions, opts...)
	if err != nil {
		return nil, err
	}
	return FromGrid(g), nil
}

// FromGrid creates a session owning g. The caller must not use g afterwards.
func FromGrid(g *grid.Grid) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		g:         g,
	}
}

// FromSnapshot rebuilds a session from a snapshot. Started divisions are
// restored on top of those the edges imply. The snapshot's ID, if any, is
// kept.
func FromSnapshot(snap Snapshot, opts ...grid.Option) (*Session, error) {
	g, err := grid.New(snap.Size, snap.Divisions, opts...)
	if err != nil {
		return nil, err
	}
	if err := g.Load(grid.Encoding(snap.Edges)); err != nil {
		return nil, err
	}
	for _, d := range snap.Started {
		if d.X < 0 || d.Y < 0 || d.X >= snap.Divisions || d.Y >= snap.Divisions {
			return nil, apperr.New(apperr.ErrCodeMalformedEncoding, "started division %s outside %dx%d", d, snap.Divisions, snap.Divisions)
		}
		g.MarkStarted(d)
	}
	g.SetFocus(snap.Focus.X, snap.Focus.Y)
	s := FromGrid(g)
	if snap.ID != "" {
		s.ID = snap.ID
	}
	return s, nil
}

// Toggle flips one edge and records it.
func (s *Session) Toggle(x0, y0, x1, y1 int) (Edit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, cell, err := s.g.Toggle(x0, y0, x1, y1)
	if err != nil {
		return Edit{}, err
	}
	return s.record(EditToggle, l.String(), cell), nil
}

// Pointer is one sampled pointer position in canvas pixels.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drag replays a pointer path over the canvas and records every toggled
// edge.
func (s *Session) Drag(path []Pointer, opts ...input.Option) []Edit {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := input.NewTracker(s.g, opts...)
	var edits []Edit
	for _, p := range path {
		if st, ok := t.Drag(p.X, p.Y); ok {
			edits = append(edits, s.record(EditToggle, st.Layer.String(), st.Cell))
		}
	}
	return edits
}

// SetFocus moves the focus and returns the new focus division.
func (s *Session) SetFocus(x, y int) grid.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.g.SetFocus(x, y)
	return s.g.Focus()
}

// RandomFocus moves the focus next to existing work.
func (s *Session) RandomFocus() grid.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.g.SetRandomFocus()
	return s.g.Focus()
}

// Focus returns the focus division.
func (s *Session) Focus() grid.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.Focus()
}

// Load replaces every edge.
func (s *Session) Load(e grid.Encoding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.g.Load(e); err != nil {
		return err
	}
	s.record(EditLoad, "", grid.Point{})
	return nil
}

// Clear turns every edge off.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.g.Clear()
	s.record(EditClear, "", grid.Point{})
}

// Snapshot copies the grid state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.ID,
		Size:      s.g.Size(),
		Divisions: s.g.Divisions(),
		Focus:     s.g.Focus(),
		Edges:     s.g.Serialize(),
		OnCount:   s.g.OnCount(),
	}
	for dx := 0; dx < s.g.Divisions(); dx++ {
		for dy := 0; dy < s.g.Divisions(); dy++ {
			if d := (grid.Point{X: dx, Y: dy}); s.g.DivisionStarted(d) {
				snap.Started = append(snap.Started, d)
			}
		}
	}
	return snap
}

// Scene builds draw instructions for mode m.
func (s *Session) Scene(m render.Mode) render.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Build(s.g, m)
}

// History returns a copy of the recorded edits, oldest first.
func (s *Session) History() []Edit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Edit, len(s.history))
	copy(out, s.history)
	return out
}

// Invalidate marks edit seq as invalid. It fails with NOT_FOUND when the
// edit is unknown or has aged out of the history.
func (s *Session) Invalidate(seq int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].Seq == seq {
			s.history[i].Valid = false
			return nil
		}
	}
	return apperr.New(apperr.ErrCodeNotFound, "edit %d not in history", seq)
}

// Do runs fn with the lock held. Changes made by fn are not recorded.
func (s *Session) Do(fn func(g *grid.Grid) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.g)
}

func (s *Session) record(kind EditKind, layer string, cell grid.Point) Edit {
	s.seq++
	e := Edit{Seq: s.seq, Kind: kind, Layer: layer, Cell: cell, At: time.Now(), Valid: true}
	s.history = append(s.history, e)
	if n := len(s.history); n > MaxHistory {
		s.history = append(s.history[:0], s.history[n-MaxHistory:]...)
	}
	return e
}
