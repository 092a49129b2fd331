// Package session keeps the ephemeral per-session view state: home feed
// selection, liked listings, open detail and profile toggles. Nothing in a
// session outlives its TTL.
package session

import (
	"context"
	"sync"
	"time"

	"neighborhood-share/internal/catalog"
)

// Profile setting keys that can be toggled.
const (
	SettingNotifications = "notifications"
	SettingEmergency     = "emergency"
	SettingLocation      = "location"
)

// State is everything the server remembers about one session.
type State struct {
	Home     catalog.View    `json:"home"`
	Settings map[string]bool `json:"settings"`
}

// NewState returns the state of a fresh session.
func NewState() State {
	return State{
		Home: catalog.NewView(),
		Settings: map[string]bool{
			SettingNotifications: true,
			SettingEmergency:     true,
			SettingLocation:      true,
		},
	}
}

// Store loads and mutates session state.
type Store interface {
	// Get returns the state for id, or a fresh state if the session is
	// unknown or expired.
	Get(ctx context.Context, id string) (State, error)
	// Update applies fn to the state for id and saves the result,
	// refreshing the session TTL.
	Update(ctx context.Context, id string, fn func(*State)) (State, error)
}

type memEntry struct {
	state   State
	expires time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*State)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load(id)
	fn(&st)
	s.sessions[id] = memEntry{state: st, expires: s.now().Add(s.ttl)}
	return clone(st), nil
}

// load must be called with mu held.
func (s *MemoryStore) load(id string) State {
	e, ok := s.sessions[id]
	if !ok {
		return NewState()
	}
	if s.now().After(e.expires) {
		delete(s.sessions, id)
		return NewState()
	}
	return clone(e.state)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := s.now()
	for id, e := range s.sessions {
		if now.After(e.expires) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func clone(st State) State {
	out := st
	out.Home.Liked = append([]string(nil), st.Home.Liked...)
	out.Settings = make(map[string]bool, len(st.Settings))
	for k, v := range st.Settings {
		out.Settings[k] = v
	}
	return out
}
