package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultSessionTTL = 24 * time.Hour

type session struct {
	username string
	expires  time.Time
}

// SessionStore keeps login sessions in memory, keyed by random uuid.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions live for ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session for username and returns its id.
func (s *SessionStore) Create(username string) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session{username: username, expires: s.now().Add(s.ttl)}
	return id
}

// Lookup returns the username for a live session. Expired sessions are
// dropped on sight.
func (s *SessionStore) Lookup(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return "", false
	}
	if s.now().After(sess.expires) {
		delete(s.sessions, id)
		return "", false
	}
	return sess.username, true
}

// Delete ends a session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// TTL returns the session lifetime.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}
