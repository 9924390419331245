package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
)

// Ensure ProgressStore implements the interface.
var _ driven.ProgressStore = (*ProgressStore)(nil)

// ProgressStore is an in-memory implementation of driven.ProgressStore.
type ProgressStore struct {
	mu      sync.RWMutex
	records map[string][]string
}

// NewProgressStore creates a new in-memory progress store.
func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		records: make(map[string][]string),
	}
}

// Get returns a copy of the tokens stored under key.
func (s *ProgressStore) Get(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.records[key]...), nil
}

// Put replaces the tokens stored under key.
func (s *ProgressStore) Put(_ context.Context, key string, tokens []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append([]string(nil), tokens...)
	return nil
}

// Remove deletes the record for key.
func (s *ProgressStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// Len returns the number of stored records.
func (s *ProgressStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
