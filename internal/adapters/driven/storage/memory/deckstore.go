package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
)

// Ensure DeckStore implements the interface.
var _ driven.DeckStore = (*DeckStore)(nil)

type storedDeck struct {
	deck    domain.Deck
	content []byte
}

// DeckStore is an in-memory implementation of driven.DeckStore.
type DeckStore struct {
	mu    sync.RWMutex
	decks map[string]storedDeck
	now   func() time.Time
}

// NewDeckStore creates a new in-memory deck store.
func NewDeckStore() *DeckStore {
	return &DeckStore{
		decks: make(map[string]storedDeck),
		now:   time.Now,
	}
}

// Save stores content under the file name, replacing any deck with the same key.
func (s *DeckStore) Save(_ context.Context, name string, content []byte) (*domain.Deck, error) {
	key := domain.FileKey(name)
	if key == "" {
		return nil, domain.ErrInvalidInput
	}

	deck := domain.Deck{
		Key:        key,
		Name:       name,
		Path:       "memory://" + key + "/" + name,
		Format:     domain.FormatFromPath(name),
		SizeBytes:  int64(len(content)),
		ImportedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[key] = storedDeck{deck: deck, content: append([]byte(nil), content...)}
	return &deck, nil
}

// Get retrieves deck metadata by key.
func (s *DeckStore) Get(_ context.Context, key string) (*domain.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.decks[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	deck := stored.deck
	return &deck, nil
}

// Read returns the stored bytes of a deck.
func (s *DeckStore) Read(_ context.Context, key string) (*domain.RawDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.decks[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.RawDocument{
		URI:      stored.deck.Path,
		MIMEType: domain.MIMETypeForFormat(stored.deck.Format),
		Content:  append([]byte(nil), stored.content...),
	}, nil
}

// Delete removes a deck.
func (s *DeckStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.decks[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.decks, key)
	return nil
}

// List returns all decks ordered by key.
func (s *DeckStore) List(_ context.Context) ([]domain.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Deck, 0, len(s.decks))
	for _, stored := range s.decks {
		result = append(result, stored.deck)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}
