package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
)

// Ensure DeckStore implements the interface.
var _ driven.DeckStore = (*DeckStore)(nil)

// DeckStore keeps one folder per deck under a root directory.
type DeckStore struct {
	root string
}

// DefaultRoot returns ~/.quickprogress/library.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".quickprogress", "library"), nil
}

// NewDeckStore creates a deck store rooted at root, creating it if needed.
// If root is empty, defaults to ~/.quickprogress/library.
func NewDeckStore(root string) (*DeckStore, error) {
	if root == "" {
		r, err := DefaultRoot()
		if err != nil {
			return nil, err
		}
		root = r
	}

	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	return &DeckStore{root: root}, nil
}

// Root returns the library directory.
func (s *DeckStore) Root() string {
	return s.root
}

// Save writes content to <root>/<key>/<name>, replacing whatever the folder held.
func (s *DeckStore) Save(ctx context.Context, name string, content []byte) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = filepath.Base(name)
	key := domain.FileKey(name)
	if !validKey(key) {
		return nil, fmt.Errorf("%w: deck name %q", domain.ErrInvalidInput, name)
	}

	dir := filepath.Join(s.root, key)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating deck directory: %w", err)
	}

	// Write beside the target then rename so watchers only see complete files.
	tmp, err := os.CreateTemp(dir, ".import-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("writing deck: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("writing deck: %w", err)
	}

	target := filepath.Join(dir, name)
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("storing deck: %w", err)
	}

	// A re-import under another extension replaces the old file.
	if err := s.removeSiblings(dir, name); err != nil {
		return nil, err
	}

	return s.Get(ctx, key)
}

func (s *DeckStore) removeSiblings(dir, keep string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading deck directory: %w", err)
	}
	for _, e := range entries {
		if e.Name() == keep || isHidden(e.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("removing old deck file: %w", err)
		}
	}
	return nil
}

// Get retrieves deck metadata by key.
func (s *DeckStore) Get(_ context.Context, key string) (*domain.Deck, error) {
	if !validKey(key) {
		return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, key)
	}

	dir := filepath.Join(s.root, key)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("reading deck directory: %w", err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() || isHidden(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat deck file: %w", err)
		}
		return &domain.Deck{
			Key:        key,
			Name:       e.Name(),
			Path:       filepath.Join(dir, e.Name()),
			Format:     domain.FormatFromPath(e.Name()),
			SizeBytes:  info.Size(),
			ImportedAt: info.ModTime(),
		}, nil
	}

	return nil, fmt.Errorf("%w: deck %q", domain.ErrNotFound, key)
}

// Read returns the stored bytes of a deck.
func (s *DeckStore) Read(ctx context.Context, key string) (*domain.RawDocument, error) {
	deck, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(deck.Path)
	if err != nil {
		return nil, fmt.Errorf("reading deck file: %w", err)
	}

	return &domain.RawDocument{
		URI:      deck.Path,
		MIMEType: domain.MIMETypeForFormat(deck.Format),
		Content:  content,
	}, nil
}

// Delete removes the deck folder.
func (s *DeckStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: deck %q", domain.ErrNotFound, key)
	}

	dir := filepath.Join(s.root, key)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: deck %q", domain.ErrNotFound, key)
		}
		return fmt.Errorf("stat deck directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing deck: %w", err)
	}
	return nil
}

// List returns all decks ordered by key. Empty folders are skipped.
func (s *DeckStore) List(ctx context.Context) ([]domain.Deck, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}

	decks := make([]domain.Deck, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || isHidden(e.Name()) {
			continue
		}
		deck, err := s.Get(ctx, e.Name())
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		decks = append(decks, *deck)
	}

	sort.Slice(decks, func(i, j int) bool { return decks[i].Key < decks[j].Key })
	return decks, nil
}

// validKey rejects keys that would escape the library root.
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." || isHidden(key) {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
