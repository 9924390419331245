package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quickprogress/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

type deckFixture struct {
	service  *DeckService
	store    *memory.DeckStore
	progress *mockProgressStore
	tracker  *ProgressTracker
}

func setupDeckService(t *testing.T) *deckFixture {
	t.Helper()
	store := memory.NewDeckStore()
	progress := newMockProgressStore()
	tracker := NewProgressTracker(progress, nil)
	registry := &mockRegistry{unsupported: map[string]bool{}}
	return &deckFixture{
		service:  NewDeckService(store, registry, NewParser(), tracker, nil),
		store:    store,
		progress: progress,
		tracker:  tracker,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDeckService_Import(t *testing.T) {
	f := setupDeckService(t)
	path := writeFile(t, "biology.txt", "Q1?\nA1\nQ2?A2")

	deck, err := f.service.Import(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "biology", deck.Key)
	assert.Equal(t, "biology.txt", deck.Name)
	assert.Equal(t, "txt", deck.Format)
}

func TestDeckService_Import_Errors(t *testing.T) {
	f := setupDeckService(t)
	ctx := context.Background()

	_, err := f.service.Import(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.service.Import(ctx, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.service.Import(ctx, writeFile(t, "slides.pdf", "%PDF"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestDeckService_ImportText(t *testing.T) {
	f := setupDeckService(t)
	ctx := context.Background()

	deck, err := f.service.ImportText(ctx, "history", "Q?A")
	require.NoError(t, err)
	assert.Equal(t, "history.txt", deck.Name)

	deck, err = f.service.ImportText(ctx, "notes.md", "Q?A")
	require.NoError(t, err)
	assert.Equal(t, "md", deck.Format)

	_, err = f.service.ImportText(ctx, "", "Q?A")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.service.ImportText(ctx, "../escape", "Q?A")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeckService_Load(t *testing.T) {
	f := setupDeckService(t)
	ctx := context.Background()
	_, err := f.service.ImportText(ctx, "bio", "\ufeffQ1?\nОтвет: A1\nnoise\nQ2?A2")
	require.NoError(t, err)

	loaded, err := f.service.Load(ctx, "bio")

	require.NoError(t, err)
	assert.Equal(t, "bio", loaded.Deck.Key)
	assert.Equal(t, domain.QuestionSet{
		{Text: "Q1?", Answer: "A1"},
		{Text: "Q2?", Answer: "A2"},
	}, loaded.Questions)
	assert.Equal(t, 1, loaded.Skipped)
}

func TestDeckService_Load_NotFound(t *testing.T) {
	f := setupDeckService(t)

	_, err := f.service.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.service.Load(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoActiveDeck)
}

func TestDeckService_List(t *testing.T) {
	f := setupDeckService(t)
	ctx := context.Background()
	_, _ = f.service.ImportText(ctx, "b", "")
	_, _ = f.service.ImportText(ctx, "a", "")

	decks, err := f.service.List(ctx)

	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, "a", decks[0].Key)
}

func TestDeckService_Delete_RemovesProgress(t *testing.T) {
	f := setupDeckService(t)
	ctx := context.Background()
	_, err := f.service.ImportText(ctx, "bio", "Q?A")
	require.NoError(t, err)
	_, err = f.tracker.MarkStudied(ctx, domain.QuestionSet{{Text: "Q?", Answer: "A"}}, "bio", 0)
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, "bio"))

	_, err = f.service.Get(ctx, "bio")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotContains(t, f.progress.records, "bio")
}

func TestDeckService_Delete_ProgressWarning(t *testing.T) {
	f := setupDeckService(t)
	ctx := context.Background()
	_, err := f.service.ImportText(ctx, "bio", "Q?A")
	require.NoError(t, err)
	f.progress.failRem = true

	err = f.service.Delete(ctx, "bio")

	assert.True(t, domain.IsWarning(err))
	_, err = f.service.Get(ctx, "bio")
	assert.ErrorIs(t, err, domain.ErrNotFound, "deck is deleted even when progress cleanup fails")
}

func TestDeckService_Delete_Missing(t *testing.T) {
	f := setupDeckService(t)

	err := f.service.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.progress.remCalls)
}

func TestDeckService_Watch_NoWatcher(t *testing.T) {
	f := setupDeckService(t)

	ch, err := f.service.Watch(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, ch)
}
