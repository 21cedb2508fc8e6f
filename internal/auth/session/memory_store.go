package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory; entries are lost on restart
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Get retrieves a live session, dropping it if it has expired
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	return &sess, nil
}

// Set stores a copy of the session
func (s *MemoryStore) Set(ctx context.Context, session *Session, ttl time.Duration) error {
	session.ExpiresAt = s.now().Add(ttl)

	s.mu.Lock()
	s.sessions[session.ID] = *session
	s.mu.Unlock()

	return nil
}

// Destroy removes a session
func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return nil
}

// Len returns the number of stored entries, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
