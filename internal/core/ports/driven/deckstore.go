package driven

import (
	"context"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

// DeckStore persists imported files in the deck library.
type DeckStore interface {
	// Save stores content under the file name and returns the resulting deck.
	// An existing deck with the same key is replaced.
	Save(ctx context.Context, name string, content []byte) (*domain.Deck, error)

	// Get retrieves deck metadata by key.
	Get(ctx context.Context, key string) (*domain.Deck, error)

	// Read returns the stored bytes of a deck.
	Read(ctx context.Context, key string) (*domain.RawDocument, error)

	// Delete removes a deck and its stored file.
	Delete(ctx context.Context, key string) error

	// List returns all decks ordered by key.
	List(ctx context.Context) ([]domain.Deck, error)
}

// LibraryWatcher reports changes made to the deck library on disk.
type LibraryWatcher interface {
	// Watch starts watching and returns a channel of changes.
	// The channel is closed when ctx is cancelled or Close is called.
	Watch(ctx context.Context) (<-chan domain.LibraryChange, error)

	// Close stops watching.
	Close() error
}
