package session

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
)

// Registry is an in-memory set of sessions. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *log.Logger
}

// NewRegistry returns an empty registry. A nil logger means log.Default().
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{sessions: make(map[string]*Session), logger: logger}
}

// Create starts a new session and registers it.
func (r *Registry) Create(size, divisions int, opts ...grid.Option) (*Session, error) {
	s, err := New(size, divisions, opts...)
	if err != nil {
		return nil, err
	}
	r.Add(s)
	return s, nil
}

// Add registers s, replacing any session with the same ID.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	r.logger.Debug("session added", "id", s.ID)
}

// Get returns the session with the given ID or a NOT_FOUND error.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, apperr.New(apperr.ErrCodeNotFound, "sketch %q not found", id)
	}
	return s, nil
}

// Delete removes a session. It fails with NOT_FOUND when id is unknown.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return apperr.New(apperr.ErrCodeNotFound, "sketch %q not found", id)
	}
	r.logger.Debug("session deleted", "id", id)
	return nil
}

// List returns all session IDs in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Len returns the number of sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
