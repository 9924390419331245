package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressCmd_NotConfigured(t *testing.T) {
	withServices(t, Services{})

	_, err := executeCommand(t, "", "progress", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress service not configured")

	_, err = executeCommand(t, "", "progress", "reset", "biology")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress service not configured")
}

func TestProgressShow_Empty(t *testing.T) {
	withStack(t)

	out, err := executeCommand(t, "", "progress", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "No decks in the library.")
}

func TestProgressShow_AllDecks(t *testing.T) {
	stack := withStack(t)
	ctx := context.Background()
	_, err := stack.Decks.ImportText(ctx, "biology", biologyText)
	require.NoError(t, err)
	_, err = stack.Decks.ImportText(ctx, "history", "When did WW2 end?1945\n")
	require.NoError(t, err)

	loaded, err := stack.Decks.Load(ctx, "biology")
	require.NoError(t, err)
	_, err = stack.Progress.MarkStudied(ctx, loaded.Questions, "biology", 1)
	require.NoError(t, err)

	out, err := executeCommand(t, "", "progress", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "biology")
	assert.Contains(t, out, "1 / 3")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "0 / 1")
	assert.Contains(t, out, "0.0%")
}

func TestProgressShow_SingleDeck(t *testing.T) {
	stack := withStack(t)
	ctx := context.Background()
	_, err := stack.Decks.ImportText(ctx, "biology", biologyText)
	require.NoError(t, err)
	_, err = stack.Decks.ImportText(ctx, "history", "When did WW2 end?1945\n")
	require.NoError(t, err)

	out, err := executeCommand(t, "", "progress", "show", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "history")
	assert.NotContains(t, out, "biology")
}

func TestProgressShow_UnknownDeck(t *testing.T) {
	withStack(t)

	_, err := executeCommand(t, "", "progress", "show", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load deck missing")
}

func TestProgressReset(t *testing.T) {
	stack := withStack(t)
	ctx := context.Background()
	_, err := stack.Decks.ImportText(ctx, "biology", biologyText)
	require.NoError(t, err)
	loaded, err := stack.Decks.Load(ctx, "biology")
	require.NoError(t, err)
	_, err = stack.Progress.MarkStudied(ctx, loaded.Questions, "biology", 0)
	require.NoError(t, err)

	out, err := executeCommand(t, "", "progress", "reset", "biology")

	require.NoError(t, err)
	assert.Contains(t, out, "Progress for biology reset.")
	summary, err := stack.Progress.Summary(ctx, loaded.Questions, "biology")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Studied)
}

func TestProgressReset_Warning(t *testing.T) {
	stack := newTestStackWith(newFailingStore())
	withServices(t, stack.Services)

	_, err := executeCommand(t, "", "progress", "reset", "biology")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
