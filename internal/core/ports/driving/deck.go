package driving

import (
	"context"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

// DeckService manages the library of imported question files.
type DeckService interface {
	// Import copies a file into the library.
	Import(ctx context.Context, path string) (*domain.Deck, error)

	// ImportText stores manually entered text as a deck named name.
	ImportText(ctx context.Context, name, text string) (*domain.Deck, error)

	// List returns all decks.
	List(ctx context.Context) ([]domain.Deck, error)

	// Get retrieves deck metadata by key.
	Get(ctx context.Context, key string) (*domain.Deck, error)

	// Load normalises and parses a deck.
	Load(ctx context.Context, key string) (*domain.LoadedDeck, error)

	// Delete removes a deck and its progress record.
	Delete(ctx context.Context, key string) error

	// Watch reports library changes. Returns nil channel if watching is unavailable.
	Watch(ctx context.Context) (<-chan domain.LibraryChange, error)
}
