package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
)

// ProgressFileName is the file used by ProgressFile inside its directory.
const ProgressFileName = "progress.toml"

// Ensure ProgressFile implements the interface.
var _ driven.ProgressStore = (*ProgressFile)(nil)

// progressDocument is the on-disk layout:
//
//	[progress]
//	biology = ["0", "3"]
type progressDocument struct {
	Progress map[string][]string `toml:"progress"`
}

// ProgressFile stores every deck's studied tokens in one TOML file.
// The whole file is rewritten on every Put or Remove.
type ProgressFile struct {
	mu       sync.Mutex
	filePath string
	sets     map[string][]string
}

// NewProgressFile opens (or prepares) progress.toml in dir.
// If dir is empty, defaults to ~/.quickprogress.
func NewProgressFile(dir string) (*ProgressFile, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	p := &ProgressFile{
		filePath: filepath.Join(dir, ProgressFileName),
		sets:     make(map[string][]string),
	}

	data, err := os.ReadFile(p.filePath)
	switch {
	case os.IsNotExist(err):
		return p, nil
	case err != nil:
		return nil, fmt.Errorf("reading progress file: %w", err)
	}

	var doc progressDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing progress file: %w", err)
	}
	for k, v := range doc.Progress {
		p.sets[k] = v
	}

	return p, nil
}

// Get returns the stored tokens for key.
func (p *ProgressFile) Get(_ context.Context, key string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string{}, p.sets[key]...), nil
}

// Put replaces the tokens of key and rewrites the file.
func (p *ProgressFile) Put(_ context.Context, key string, tokens []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	previous, had := p.sets[key]

	uniq := make(map[string]struct{}, len(tokens))
	stored := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, dup := uniq[t]; dup {
			continue
		}
		uniq[t] = struct{}{}
		stored = append(stored, t)
	}
	sort.Strings(stored)
	p.sets[key] = stored

	if err := p.save(); err != nil {
		if had {
			p.sets[key] = previous
		} else {
			delete(p.sets, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and rewrites the file.
func (p *ProgressFile) Remove(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	previous, had := p.sets[key]
	if !had {
		return nil
	}
	delete(p.sets, key)

	if err := p.save(); err != nil {
		p.sets[key] = previous
		return err
	}
	return nil
}

// Path returns the progress file path.
func (p *ProgressFile) Path() string {
	return p.filePath
}

// save writes the file (caller must hold lock).
func (p *ProgressFile) save() error {
	data, err := toml.Marshal(progressDocument{Progress: p.sets})
	if err != nil {
		return fmt.Errorf("encoding progress file: %w", err)
	}
	if err := writeFileAtomic(p.filePath, data); err != nil {
		return fmt.Errorf("writing progress file: %w", err)
	}
	return nil
}
