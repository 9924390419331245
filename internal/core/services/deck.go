package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
	"github.com/custodia-labs/quickprogress/internal/logger"
)

// Ensure DeckService implements the interface.
var _ driving.DeckService = (*DeckService)(nil)

// DeckService manages the deck library and turns decks into question sets.
type DeckService struct {
	store    driven.DeckStore
	registry driven.NormaliserRegistry
	parser   driving.Parser
	progress driving.ProgressService
	watcher  driven.LibraryWatcher
}

// NewDeckService creates a deck service. watcher may be nil.
func NewDeckService(
	store driven.DeckStore,
	registry driven.NormaliserRegistry,
	parser driving.Parser,
	progress driving.ProgressService,
	watcher driven.LibraryWatcher,
) *DeckService {
	return &DeckService{
		store:    store,
		registry: registry,
		parser:   parser,
		progress: progress,
		watcher:  watcher,
	}
}

// Import copies the file at path into the library.
// Files whose format no normaliser handles are rejected.
func (s *DeckService) Import(ctx context.Context, path string) (*domain.Deck, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	name := filepath.Base(path)
	if !s.supports(domain.FormatFromPath(name)) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	deck, err := s.store.Save(ctx, name, content)
	if err != nil {
		return nil, fmt.Errorf("save deck: %w", err)
	}

	logger.Info("Imported %s as deck %s (%d bytes)", path, deck.Key, deck.SizeBytes)
	return deck, nil
}

// ImportText stores manually entered text. A name without an extension gets ".txt".
func (s *DeckService) ImportText(ctx context.Context, name, text string) (*domain.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" || domain.FileKey(name) == "" {
		return nil, fmt.Errorf("%w: deck name is required", domain.ErrInvalidInput)
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: deck name must not contain path separators", domain.ErrInvalidInput)
	}
	if filepath.Ext(name) == "" {
		name += ".txt"
	}

	deck, err := s.store.Save(ctx, name, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("save deck: %w", err)
	}
	return deck, nil
}

// List returns all decks.
func (s *DeckService) List(ctx context.Context) ([]domain.Deck, error) {
	return s.store.List(ctx)
}

// Get retrieves deck metadata by key.
func (s *DeckService) Get(ctx context.Context, key string) (*domain.Deck, error) {
	if key == "" {
		return nil, domain.ErrNoActiveDeck
	}
	return s.store.Get(ctx, key)
}

// Load reads the deck, normalises it to text and parses the questions.
func (s *DeckService) Load(ctx context.Context, key string) (*domain.LoadedDeck, error) {
	deck, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	raw, err := s.store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", key, err)
	}

	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", deck.Name, err)
	}

	parsed := s.parser.Parse(result.Text)
	logger.Debug("Parsed %s with %s: %d questions, %d lines skipped",
		deck.Name, result.Normaliser, parsed.Questions.Len(), parsed.Skipped)

	return &domain.LoadedDeck{
		Deck:      *deck,
		Questions: parsed.Questions,
		Skipped:   parsed.Skipped,
	}, nil
}

// Delete removes the deck and then its progress record.
// The deck is gone even if clearing progress only produces a warning.
func (s *DeckService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrNoActiveDeck
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}
	logger.Info("Deleted deck %s", key)

	if s.progress == nil {
		return nil
	}
	return s.progress.ResetProgress(ctx, key)
}

// Watch reports library changes. It returns a nil channel when no watcher is configured.
func (s *DeckService) Watch(ctx context.Context) (<-chan domain.LibraryChange, error) {
	if s.watcher == nil {
		return nil, nil
	}
	return s.watcher.Watch(ctx)
}

func (s *DeckService) supports(format string) bool {
	return s.registry.Supports(domain.MIMETypeForFormat(format))
}
