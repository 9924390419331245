package mcp

import (
	"context"
	"errors"
	"sort"

	"github.com/custodia-labs/quickprogress/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/services"
)

// mockDeckService is a mock implementation of driving.DeckService backed by a map.
type mockDeckService struct {
	decks map[string]domain.LoadedDeck
	err   error
}

func newMockDeckService(decks ...domain.LoadedDeck) *mockDeckService {
	m := &mockDeckService{decks: make(map[string]domain.LoadedDeck)}
	for _, d := range decks {
		m.decks[d.Deck.Key] = d
	}
	return m
}

func (m *mockDeckService) Import(_ context.Context, _ string) (*domain.Deck, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDeckService) ImportText(_ context.Context, _, _ string) (*domain.Deck, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDeckService) List(_ context.Context) ([]domain.Deck, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Deck, 0, len(m.decks))
	for _, d := range m.decks {
		out = append(out, d.Deck)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *mockDeckService) Get(_ context.Context, key string) (*domain.Deck, error) {
	d, ok := m.decks[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d.Deck, nil
}

func (m *mockDeckService) Load(_ context.Context, key string) (*domain.LoadedDeck, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.decks[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (m *mockDeckService) Delete(_ context.Context, key string) error {
	delete(m.decks, key)
	return nil
}

func (m *mockDeckService) Watch(_ context.Context) (<-chan domain.LibraryChange, error) {
	return nil, nil
}

// failingStore is a driven.ProgressStore whose writes fail.
type failingStore struct {
	*memory.ProgressStore
}

func (f failingStore) Put(_ context.Context, _ string, _ []string) error {
	return errors.New("disk full")
}

func (f failingStore) Remove(_ context.Context, _ string) error {
	return errors.New("disk full")
}

func biologyDeck() domain.LoadedDeck {
	return domain.LoadedDeck{
		Deck: domain.Deck{Key: "biology", Name: "biology.txt", Format: "txt"},
		Questions: domain.QuestionSet{
			{Text: "Q0?", Answer: "A0"},
			{Text: "Q1?", Answer: "A1"},
			{Text: "Q2?", Answer: "A2"},
		},
	}
}

// newTestServer wires a server over the biology deck and an in-memory progress store.
func newTestServer(store *memory.ProgressStore) *Server {
	server, err := NewServer(&Ports{
		Parser:   services.NewParser(),
		Decks:    newMockDeckService(biologyDeck()),
		Progress: services.NewProgressTracker(store, nil),
	})
	if err != nil {
		panic(err)
	}
	return server
}

func intPtr(i int) *int {
	return &i
}
