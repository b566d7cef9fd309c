package console

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	console  *Console
	lastSeen time.Time
}

// Sessions keeps one Console per browser session. A session unseen for longer
// than the TTL is dropped on the next Evict.
type Sessions struct {
	mu         sync.Mutex
	ttl        time.Duration
	newConsole func() *Console
	items      map[string]*session
	now        func() time.Time
}

func NewSessions(ttl time.Duration, newConsole func() *Console) *Sessions {
	return &Sessions{
		ttl:        ttl,
		newConsole: newConsole,
		items:      make(map[string]*session),
		now:        time.Now,
	}
}

// Get returns the console for id and marks the session as seen.
func (s *Sessions) Get(id string) (*Console, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.items[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.console, true
}

// Create starts a new session with a fresh, unmounted console.
func (s *Sessions) Create() (string, *Console) {
	id := uuid.NewString()
	c := s.newConsole()

	s.mu.Lock()
	s.items[id] = &session{console: c, lastSeen: s.now()}
	s.mu.Unlock()

	return id, c
}

// Evict removes idle sessions and returns how many were dropped.
func (s *Sessions) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.items {
		if sess.lastSeen.Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
