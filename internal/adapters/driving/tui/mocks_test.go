package tui

import (
	"context"

	"github.com/custodia-labs/quickprogress/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
	"github.com/custodia-labs/quickprogress/internal/core/services"
)

// MockDeckService implements driving.DeckService for testing.
type MockDeckService struct {
	ListFunc  func(ctx context.Context) ([]domain.Deck, error)
	WatchFunc func(ctx context.Context) (<-chan domain.LibraryChange, error)
}

func (m *MockDeckService) Import(context.Context, string) (*domain.Deck, error) {
	return nil, nil
}

func (m *MockDeckService) ImportText(context.Context, string, string) (*domain.Deck, error) {
	return nil, nil
}

func (m *MockDeckService) List(ctx context.Context) ([]domain.Deck, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockDeckService) Get(context.Context, string) (*domain.Deck, error) {
	return nil, domain.ErrNotFound
}

func (m *MockDeckService) Load(context.Context, string) (*domain.LoadedDeck, error) {
	return nil, domain.ErrNotFound
}

func (m *MockDeckService) Delete(context.Context, string) error {
	return nil
}

func (m *MockDeckService) Watch(ctx context.Context) (<-chan domain.LibraryChange, error) {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx)
	}
	return nil, nil
}

// MockStudyService implements driving.StudyService for testing.
type MockStudyService struct {
	OpenFunc func(ctx context.Context, key string) (driving.StudySession, error)
}

func (m *MockStudyService) Open(ctx context.Context, key string) (driving.StudySession, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, key)
	}
	return newTestSession(key), nil
}

func newTestSession(key string) driving.StudySession {
	set := domain.QuestionSet{
		{Text: "What is a cell?", Answer: "The unit of life"},
		{Text: "What is DNA?", Answer: "Genetic material"},
	}
	tracker := services.NewProgressTracker(memory.NewProgressStore(), nil)
	return services.NewSession(key, set, nil, tracker, nil, domain.DefaultAppSettings().Study)
}

func newTestPorts() *Ports {
	return NewPorts(&MockDeckService{}, &MockStudyService{})
}
