package session

import (
	"errors"
	"sync"

	"github.com/LFroesch/pathfinder/internal/location"
)

// ErrSessionActive is returned when opening while a session is already
// showing.
var ErrSessionActive = errors.New("a browser session is already active")

// Registry owns the single live session. Opening while one is active is
// rejected rather than stacked.
type Registry struct {
	mu     sync.Mutex
	active *Session
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Open creates and registers a new session. The caller still has to
// Start it.
func (r *Registry) Open(start, workspace *location.Location, reveal string, cfg Config, deps Deps) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil && !r.active.dismissed {
		return nil, ErrSessionActive
	}
	s := New(start, workspace, reveal, cfg, deps)
	r.active = s
	return s, nil
}

// Active returns the live session, if any.
func (r *Registry) Active() (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil || r.active.dismissed {
		return nil, false
	}
	return r.active, true
}

// Close dismisses a session and releases the registry slot.
func (r *Registry) Close(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s != nil {
		s.dismissed = true
	}
	if r.active == s {
		r.active = nil
	}
}
