package profilestore

import (
	"context"
	"sync"

	"accounthub/models"
)

// MemoryStore keeps records for the lifetime of the process only.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]models.Profile)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (models.Profile, error) {
	id, err := normalizeID(userID)
	if err != nil {
		return models.Profile{}, err
	}
	s.mu.RLock()
	p, ok := s.profiles[id]
	s.mu.RUnlock()
	if !ok {
		return models.Profile{}, ErrNotFound
	}
	return p.Clone(), nil
}

// Set overwrites any existing record; concurrent writers resolve last-write-wins.
func (s *MemoryStore) Set(_ context.Context, userID string, p models.Profile) error {
	id, err := normalizeID(userID)
	if err != nil {
		return err
	}
	p = p.Clone()
	p.UserID = id
	s.mu.Lock()
	s.profiles[id] = p
	s.mu.Unlock()
	return nil
}
