package gateway

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/quizmaster/internal/session"
)

type entry struct {
	ctrl     *session.Controller
	lastSeen atomic.Int64 // unix nanos
}

// Registry holds the live sessions keyed by a random id. Each lookup
// refreshes the session's idle timer.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// NewID returns a fresh session id.
func (r *Registry) NewID() string {
	return uuid.NewString()
}

func (r *Registry) Add(id string, ctrl *session.Controller) {
	e := &entry{ctrl: ctrl}
	e.lastSeen.Store(r.now().UnixNano())

	r.mu.Lock()
	r.sessions[id] = e
	r.mu.Unlock()
}

func (r *Registry) Get(id string) (*session.Controller, bool) {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	e.lastSeen.Store(r.now().UnixNano())
	return e.ctrl, true
}

// Remove reports whether a session with the id existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than ttl and returns their ids.
func (r *Registry) Sweep(ttl time.Duration) []string {
	cutoff := r.now().Add(-ttl).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, e := range r.sessions {
		if e.lastSeen.Load() < cutoff {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
