package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

func TestHandleFsEvent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "biology"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "biology", "biology.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0600))

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		wantType domain.ChangeType
		wantKey  string
		want     bool
	}{
		{"deck folder created", "biology", fsnotify.Create, domain.ChangeCreated, "biology", true},
		{"deck folder removed", "gone", fsnotify.Remove, domain.ChangeDeleted, "gone", true},
		{"deck folder renamed", "gone", fsnotify.Rename, domain.ChangeDeleted, "gone", true},
		{"stray file at root", "stray.txt", fsnotify.Create, 0, "", false},
		{"deck file created", "biology/biology.txt", fsnotify.Create, domain.ChangeCreated, "biology", true},
		{"deck file written", "biology/biology.txt", fsnotify.Write, domain.ChangeUpdated, "biology", true},
		{"deck file removed", "biology/old.txt", fsnotify.Remove, domain.ChangeDeleted, "biology", true},
		{"deck file chmod", "biology/biology.txt", fsnotify.Chmod, 0, "", false},
		{"temp file ignored", "biology/.import-123", fsnotify.Create, 0, "", false},
		{"hidden folder ignored", ".trash", fsnotify.Create, 0, "", false},
		{"nested too deep", "biology/a/b.txt", fsnotify.Create, 0, "", false},
		{"root itself", "", fsnotify.Remove, 0, "", false},
	}

	w := NewWatcher(root)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: filepath.Join(root, filepath.FromSlash(tt.path)), Op: tt.op}

			change := w.handleFsEvent(nil, event)

			if !tt.want {
				assert.Nil(t, change)
				return
			}
			require.NotNil(t, change)
			assert.Equal(t, tt.wantType, change.Type)
			assert.Equal(t, tt.wantKey, change.Key)
			assert.Equal(t, event.Name, change.Path)
		})
	}
}

func TestWatcher_ReportsSavedDeck(t *testing.T) {
	store := setupTestStore(t)
	w := NewWatcher(store.Root())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := w.Watch(ctx)
	require.NoError(t, err)

	_, err = store.Save(ctx, "biology.txt", []byte("Q?\nA"))
	require.NoError(t, err)

	select {
	case change := <-changes:
		assert.Equal(t, "biology", change.Key)
		assert.Equal(t, domain.ChangeCreated, change.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_SaveReportedOnce(t *testing.T) {
	store := setupTestStore(t)
	w := NewWatcher(store.Root())
	w.debounce = 50 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := w.Watch(ctx)
	require.NoError(t, err)

	_, err = store.Save(ctx, "biology.txt", []byte("Q?\nA"))
	require.NoError(t, err)

	select {
	case change := <-changes:
		assert.Equal(t, "biology", change.Key)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case change := <-changes:
		t.Fatalf("unexpected second change %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestPendingChanges_Drain(t *testing.T) {
	change := func(typ domain.ChangeType, key string) domain.LibraryChange {
		return domain.LibraryChange{Type: typ, Key: key, Path: "/lib/" + key}
	}

	tests := []struct {
		name   string
		events []domain.LibraryChange
		exists map[string]bool
		want   []domain.LibraryChange
	}{
		{
			name:   "folder then file create is one create",
			events: []domain.LibraryChange{change(domain.ChangeCreated, "bio"), change(domain.ChangeCreated, "bio")},
			exists: map[string]bool{"bio": true},
			want:   []domain.LibraryChange{change(domain.ChangeCreated, "bio")},
		},
		{
			name:   "create then sibling removal stays a create",
			events: []domain.LibraryChange{change(domain.ChangeCreated, "bio"), change(domain.ChangeDeleted, "bio")},
			exists: map[string]bool{"bio": true},
			want:   []domain.LibraryChange{change(domain.ChangeCreated, "bio")},
		},
		{
			name:   "delete then create of surviving deck is an update",
			events: []domain.LibraryChange{change(domain.ChangeDeleted, "bio"), change(domain.ChangeCreated, "bio")},
			exists: map[string]bool{"bio": true},
			want:   []domain.LibraryChange{change(domain.ChangeUpdated, "bio")},
		},
		{
			name:   "removed deck is a delete",
			events: []domain.LibraryChange{change(domain.ChangeUpdated, "bio"), change(domain.ChangeDeleted, "bio")},
			want:   []domain.LibraryChange{change(domain.ChangeDeleted, "bio")},
		},
		{
			name:   "keys keep arrival order",
			events: []domain.LibraryChange{change(domain.ChangeUpdated, "zoo"), change(domain.ChangeUpdated, "art")},
			exists: map[string]bool{"zoo": true, "art": true},
			want:   []domain.LibraryChange{change(domain.ChangeUpdated, "zoo"), change(domain.ChangeUpdated, "art")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pending := newPendingChanges()
			for _, e := range tt.events {
				pending.add(e)
			}

			got := pending.drain(func(key string) bool { return tt.exists[key] })

			assert.Equal(t, tt.want, got)
			assert.Empty(t, pending.drain(func(string) bool { return true }))
		})
	}
}

func TestWatcher_ChannelClosesOnCancel(t *testing.T) {
	w := NewWatcher(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())

	changes, err := w.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestWatcher_CloseThenWatch(t *testing.T) {
	w := NewWatcher(t.TempDir())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err := w.Watch(context.Background())
	assert.ErrorIs(t, err, ErrWatcherClosed)
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"))

	_, err := w.Watch(context.Background())

	assert.Error(t, err)
}
