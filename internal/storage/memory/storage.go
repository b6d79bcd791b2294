package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *session
	s.sessions[session.ID] = &stored
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	found := *session
	return &found, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// DeleteExpired removes sessions that have expired at now and returns how many
// were removed. Redis expires keys itself; the memory store needs sweeping.
func (s *Storage) DeleteExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
