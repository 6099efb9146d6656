package memory

import (
	"context"
	"sync"

	"Backend-Schoolhub/src/services/attendance"
)

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]attendance.SessionSnapshot
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]attendance.SessionSnapshot)}
}

func (s *SessionStore) SaveSession(_ context.Context, snap attendance.SessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[snap.ID] = snap
	return nil
}

// LoadSession returns nil, nil for an unknown id.
func (s *SessionStore) LoadSession(_ context.Context, id string) (*attendance.SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}
