package tutorial

import "sync"

// SessionStore hands out one Progress value per session. The mutex only
// guards the map itself; a Progress is owned by its session and is never
// shared across sessions.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Progress
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Progress)}
}

// Progress returns the progress for a session, creating it in the start
// state on first use.
func (s *SessionStore) Progress(sessionID string) *Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.sessions[sessionID]
	if !ok {
		p = NewProgress()
		s.sessions[sessionID] = p
	}
	return p
}

// Drop removes a session's progress, if any.
func (s *SessionStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of tracked sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
