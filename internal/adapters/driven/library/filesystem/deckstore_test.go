package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

func setupTestStore(t *testing.T) *DeckStore {
	t.Helper()
	store, err := NewDeckStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewDeckStore_DefaultRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewDeckStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".quickprogress", "library"), store.Root())
	assert.DirExists(t, store.Root())
}

func TestDeckStore_SaveCreatesFolderPerDeck(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	deck, err := store.Save(ctx, "/some/where/biology.txt", []byte("Q?\nA"))

	require.NoError(t, err)
	assert.Equal(t, "biology", deck.Key)
	assert.Equal(t, "biology.txt", deck.Name)
	assert.Equal(t, "txt", deck.Format)
	assert.Equal(t, int64(4), deck.SizeBytes)
	assert.Equal(t, filepath.Join(store.Root(), "biology", "biology.txt"), deck.Path)
	assert.False(t, deck.ImportedAt.IsZero())

	content, err := os.ReadFile(deck.Path)
	require.NoError(t, err)
	assert.Equal(t, "Q?\nA", string(content))
}

func TestDeckStore_SaveReplacesOtherExtension(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.Save(ctx, "biology.txt", []byte("old"))
	require.NoError(t, err)

	deck, err := store.Save(ctx, "biology.md", []byte("# new"))

	require.NoError(t, err)
	assert.Equal(t, "md", deck.Format)
	entries, err := os.ReadDir(filepath.Join(store.Root(), "biology"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "biology.md", entries[0].Name())
}

func TestDeckStore_SaveInvalidName(t *testing.T) {
	store := setupTestStore(t)

	for _, name := range []string{"", ".hidden", ".."} {
		_, err := store.Save(context.Background(), name, []byte("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestDeckStore_SaveCancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, "biology.txt", []byte("x"))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeckStore_Read(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.Save(ctx, "notes.html", []byte("<p>Q?</p>"))
	require.NoError(t, err)

	doc, err := store.Read(ctx, "notes")

	require.NoError(t, err)
	assert.Equal(t, "text/html", doc.MIMEType)
	assert.Equal(t, "<p>Q?</p>", string(doc.Content))
	assert.Equal(t, filepath.Join(store.Root(), "notes", "notes.html"), doc.URI)
}

func TestDeckStore_GetMissing(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "nothing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Get(ctx, "../escape")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, os.Mkdir(filepath.Join(store.Root(), "empty"), 0700))
	_, err = store.Get(ctx, "empty")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Read(ctx, "nothing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeckStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.Save(ctx, "biology.txt", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "biology"))

	assert.NoDirExists(t, filepath.Join(store.Root(), "biology"))
	assert.ErrorIs(t, store.Delete(ctx, "biology"), domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "../x"), domain.ErrNotFound)
}

func TestDeckStore_ListSortedSkipsHiddenAndEmpty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"zoology.txt", "biology.md", "history.txt"} {
		_, err := store.Save(ctx, name, []byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(store.Root(), "empty"), 0700))
	require.NoError(t, os.Mkdir(filepath.Join(store.Root(), ".trash"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), "stray.txt"), []byte("x"), 0600))

	decks, err := store.List(ctx)

	require.NoError(t, err)
	keys := make([]string, len(decks))
	for i, d := range decks {
		keys[i] = d.Key
	}
	assert.Equal(t, []string{"biology", "history", "zoology"}, keys)
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"biology", true},
		{"Биология", true},
		{"", false},
		{".", false},
		{"..", false},
		{".hidden", false},
		{"a/b", false},
		{`a\b`, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, validKey(tt.key))
		})
	}
}
