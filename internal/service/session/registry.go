package session

import (
	"sync"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// Registry maps session ids to machines. Sessions live in memory only and
// are gone after a restart.
type Registry struct {
	rules Rules

	mu       sync.RWMutex
	sessions map[string]*Machine
}

func NewRegistry(rules Rules) *Registry {
	return &Registry{
		rules:    rules,
		sessions: make(map[string]*Machine),
	}
}

func (r *Registry) Get(id string) (*Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return m, nil
}

// Open returns the session for id, creating it on first use.
func (r *Registry) Open(id string) *Machine {
	if m, err := r.Get(id); err == nil {
		return m
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.sessions[id]; ok {
		return m
	}
	m := New(id, r.rules)
	r.sessions[id] = m
	return m
}

// Acquire begins a turn on the session for id. It fails with
// ErrSessionNotFound when the session is unknown or was retired while the
// caller waited for the turn.
func (r *Registry) Acquire(id string) (*Machine, func(), error) {
	m, err := r.Get(id)
	if err != nil {
		return nil, nil, err
	}

	end := m.BeginTurn()
	if m.retired {
		end()
		return nil, nil, core.ErrSessionNotFound
	}
	return m, end, nil
}

// AcquireOrOpen is Acquire for a session that may be created on the spot.
// A session retired while waiting is replaced by a fresh one.
func (r *Registry) AcquireOrOpen(id string) (*Machine, func()) {
	for {
		m := r.Open(id)
		end := m.BeginTurn()
		if !m.retired {
			return m, end
		}
		end()
	}
}

// Retire removes m from the registry. The caller must hold m's turn, as
// returned by Acquire.
func (r *Registry) Retire(m *Machine) {
	m.retired = true

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[m.id] == m {
		delete(r.sessions, m.id)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
