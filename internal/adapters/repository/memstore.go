package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/pkg/metrics"
)

const defaultMaxMatches = 1_000

// MemoryStore is a map-backed Store safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	matches    map[string]*match.State
	maxMatches int
	newID      func() string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		matches:    make(map[string]*match.State),
		maxMatches: defaultMaxMatches,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers m under a fresh id.
func (s *MemoryStore) Create(_ context.Context, m *match.State) (string, error) {
	if m == nil {
		return "", fmt.Errorf("create: nil match")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxMatches > 0 && len(s.matches) >= s.maxMatches {
		metrics.RecordErrorByComponent("repository", "capacity")
		return "", fmt.Errorf("create: %d active: %w", len(s.matches), ErrCapacity)
	}
	id := s.newID()
	if _, exists := s.matches[id]; exists {
		return "", fmt.Errorf("create: duplicate id %q", id)
	}
	s.matches[id] = m
	metrics.UpdateActiveMatches(len(s.matches))
	return id, nil
}

// Get returns the match with id.
func (s *MemoryStore) Get(_ context.Context, id string) (*match.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %q: %w", id, ErrNotFound)
	}
	return m, nil
}

// Remove deletes and returns the match with id.
func (s *MemoryStore) Remove(_ context.Context, id string) (*match.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %q: %w", id, ErrNotFound)
	}
	delete(s.matches, id)
	metrics.UpdateActiveMatches(len(s.matches))
	return m, nil
}

// Count returns the number of active matches.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}
