package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/quickprogress/internal/adapters/driven/config/file"
	"github.com/custodia-labs/quickprogress/internal/adapters/driven/library/filesystem"
	"github.com/custodia-labs/quickprogress/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quickprogress/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/quickprogress/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/cli"
	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/core/services"
	"github.com/custodia-labs/quickprogress/internal/logger"
	"github.com/custodia-labs/quickprogress/internal/normalisers"
	"github.com/custodia-labs/quickprogress/internal/normalisers/docx"
	"github.com/custodia-labs/quickprogress/internal/normalisers/html"
	"github.com/custodia-labs/quickprogress/internal/normalisers/markdown"
	"github.com/custodia-labs/quickprogress/internal/normalisers/pdf"
	"github.com/custodia-labs/quickprogress/internal/normalisers/plaintext"
)

// Environment variables that override the config file.
const (
	envHome     = "QUICKPROGRESS_HOME"
	envStorage  = "QUICKPROGRESS_STORAGE"
	envRedisURL = "QUICKPROGRESS_REDIS_URL"
)

// env holds overrides read from the environment. Empty fields keep the
// configured value.
type env struct {
	Home     string
	Storage  string
	RedisURL string
}

func envFromOS() env {
	return env{
		Home:     strings.TrimSpace(os.Getenv(envHome)),
		Storage:  strings.TrimSpace(os.Getenv(envStorage)),
		RedisURL: strings.TrimSpace(os.Getenv(envRedisURL)),
	}
}

// application is the wired service graph plus everything that must be closed.
type application struct {
	services cli.Services
	backend  domain.StorageBackend
	closers  []io.Closer
}

// Close releases stores and the library watcher.
func (a *application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// wire builds the adapters and services from config and environment.
func wire(ctx context.Context, e env) (*application, error) {
	home := e.Home
	if home == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		home = dir
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if e.Storage != "" {
		backend := domain.StorageBackend(strings.ToLower(e.Storage))
		if !backend.IsValid() {
			return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidInput, envStorage, e.Storage)
		}
		settings.Storage.Backend = backend
	}
	if e.RedisURL != "" {
		settings.Storage.RedisURL = e.RedisURL
	}

	app := &application{}

	progressStore, backend, closer := openProgressStore(ctx, home, settings.Storage)
	app.backend = backend
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	logger.Debug("Progress backend: %s", backend.Description())

	libraryRoot := filepath.Join(home, "library")
	deckStore, err := filesystem.NewDeckStore(libraryRoot)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("opening library: %w", err)
	}
	watcher := filesystem.NewWatcher(libraryRoot)
	app.closers = append(app.closers, watcher)

	fallback := settings.Library.FallbackEncoding
	registry := normalisers.NewRegistry(
		plaintext.New(fallback),
		markdown.New(fallback),
		html.New(),
		docx.New(),
		pdf.New(),
	)

	parser := services.NewParser(settings.Parser.AnswerLabels...)
	tracker := services.NewProgressTracker(progressStore, nil)
	decks := services.NewDeckService(deckStore, registry, parser, tracker, watcher)

	app.services = cli.Services{
		Parser:   parser,
		Decks:    decks,
		Progress: tracker,
		Study:    services.NewStudyService(decks, tracker, settingsService, nil),
		Settings: settingsService,
	}
	return app, nil
}

// openProgressStore opens the configured backend. When it cannot be opened,
// progress is kept in memory for this run and a warning is printed.
func openProgressStore(
	ctx context.Context,
	home string,
	cfg domain.StorageSettings,
) (driven.ProgressStore, domain.StorageBackend, io.Closer) {
	var (
		store  driven.ProgressStore
		closer io.Closer
		err    error
	)

	switch cfg.Backend {
	case domain.StorageMemory:
		return memory.NewProgressStore(), domain.StorageMemory, nil
	case domain.StorageTOML:
		store, err = file.NewProgressFile(home)
	case domain.StorageRedis:
		var rs *redis.ProgressStore
		rs, err = redis.NewProgressStore(ctx, cfg.RedisURL)
		if err == nil {
			store, closer = rs, rs
		}
	default:
		var db *sqlite.Store
		db, err = sqlite.NewStore(filepath.Join(home, "data"))
		if err == nil {
			store, closer = db.ProgressStore(), db
		}
	}

	if err != nil {
		logger.Warn("Progress storage %s unavailable, progress will not be saved: %v", cfg.Backend, err)
		return memory.NewProgressStore(), domain.StorageMemory, nil
	}

	backend := cfg.Backend
	if !backend.IsValid() {
		backend = domain.StorageSQLite
	}
	return store, backend, closer
}
