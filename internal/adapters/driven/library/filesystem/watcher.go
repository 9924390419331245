package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.LibraryWatcher = (*Watcher)(nil)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// defaultDebounce is how long events for one deck are collected before a
// single change is reported.
const defaultDebounce = 150 * time.Millisecond

// Watcher reports deck files created, updated, or deleted under a library root.
// Events for the same deck within the debounce window are reported once.
type Watcher struct {
	root     string
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// NewWatcher creates a watcher for the library at root.
func NewWatcher(root string) *Watcher {
	return &Watcher{root: root, debounce: defaultDebounce}
}

// Watch starts watching the root and every deck folder.
// The returned channel closes when ctx is cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.LibraryChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if w.watcher != nil {
		return nil, errors.New("already watching")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(w.root); err != nil {
		fw.Close()
		return nil, err
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		fw.Close()
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() && !isHidden(e.Name()) {
			if err := fw.Add(filepath.Join(w.root, e.Name())); err != nil {
				logger.Debug("watch %s: %v", e.Name(), err)
			}
		}
	}

	w.watcher = fw
	changes := make(chan domain.LibraryChange, 16)

	go w.loop(ctx, fw, changes)

	return changes, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, changes chan<- domain.LibraryChange) {
	defer close(changes)
	defer w.Close()

	pending := newPendingChanges()
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			change := w.handleFsEvent(fw, event)
			if change == nil {
				continue
			}
			pending.add(*change)
			if flush == nil {
				flush = time.After(w.debounce)
			}
		case <-flush:
			flush = nil
			for _, change := range pending.drain(w.deckExists) {
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("library watcher: %v", err)
		}
	}
}

// deckExists reports whether the deck folder for key is still present.
func (w *Watcher) deckExists(key string) bool {
	info, err := os.Stat(filepath.Join(w.root, key))
	return err == nil && info.IsDir()
}

// pendingChanges collects changes per deck key in arrival order.
type pendingChanges struct {
	keys    []string
	changes map[string]*pendingChange
}

type pendingChange struct {
	first domain.ChangeType
	last  domain.LibraryChange
}

func newPendingChanges() *pendingChanges {
	return &pendingChanges{changes: make(map[string]*pendingChange)}
}

func (p *pendingChanges) add(change domain.LibraryChange) {
	if c, ok := p.changes[change.Key]; ok {
		c.last = change
		return
	}
	p.keys = append(p.keys, change.Key)
	p.changes[change.Key] = &pendingChange{first: change.Type, last: change}
}

// drain returns one change per key and empties the set. The reported type
// depends on whether the deck survived the burst: a deck that is gone is
// deleted, a deck whose first event was a create is created, and anything
// else is an update.
func (p *pendingChanges) drain(exists func(key string) bool) []domain.LibraryChange {
	out := make([]domain.LibraryChange, 0, len(p.keys))
	for _, key := range p.keys {
		c := p.changes[key]
		change := c.last
		switch {
		case !exists(key):
			change.Type = domain.ChangeDeleted
		case c.first == domain.ChangeCreated:
			change.Type = domain.ChangeCreated
		default:
			change.Type = domain.ChangeUpdated
		}
		out = append(out, change)
	}
	p.keys = nil
	p.changes = make(map[string]*pendingChange)
	return out
}

// handleFsEvent maps a raw filesystem event to a library change.
// New deck folders are added to fw so their files are observed too.
func (w *Watcher) handleFsEvent(fw *fsnotify.Watcher, event fsnotify.Event) *domain.LibraryChange {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, p := range parts {
		if isHidden(p) {
			return nil
		}
	}

	switch len(parts) {
	case 1:
		// A deck folder.
		key := parts[0]
		switch {
		case event.Has(fsnotify.Create):
			info, err := os.Stat(event.Name)
			if err != nil || !info.IsDir() {
				return nil
			}
			if fw != nil {
				if err := fw.Add(event.Name); err != nil {
					logger.Debug("watch %s: %v", key, err)
				}
			}
			return &domain.LibraryChange{Type: domain.ChangeCreated, Key: key, Path: event.Name}
		case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
			return &domain.LibraryChange{Type: domain.ChangeDeleted, Key: key, Path: event.Name}
		}
	case 2:
		// A file inside a deck folder.
		key := parts[0]
		switch {
		case event.Has(fsnotify.Create):
			if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
				return nil
			}
			return &domain.LibraryChange{Type: domain.ChangeCreated, Key: key, Path: event.Name}
		case event.Has(fsnotify.Write):
			return &domain.LibraryChange{Type: domain.ChangeUpdated, Key: key, Path: event.Name}
		case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
			return &domain.LibraryChange{Type: domain.ChangeDeleted, Key: key, Path: event.Name}
		}
	}

	return nil
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}
