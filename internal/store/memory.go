package store

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu       sync.Mutex
	snapshot []byte
	saved    bool

	// SaveCount is incremented on every Save; tests use it to assert
	// that mutations re-persist.
	SaveCount int
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, false, nil
	}
	out := make([]byte, len(s.snapshot))
	copy(out, s.snapshot)
	return out, true, nil
}

func (s *MemStore) Save(_ context.Context, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = make([]byte, len(snapshot))
	copy(s.snapshot, snapshot)
	s.saved = true
	s.SaveCount++
	return nil
}

func (s *MemStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.saved = false
	return nil
}
