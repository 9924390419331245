package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRandomOrder      = "study.random_order"
	keyHideAnswers      = "study.hide_answers"
	keyAnswerLabels     = "parser.answer_labels"
	keyFallbackEncoding = "library.fallback_encoding"
	keyStorageBackend   = "storage.backend"
	keyRedisURL         = "storage.redis_url"
	keyLanguage         = "ui.language"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Study: domain.StudySettings{
			RandomOrder: s.getBool(keyRandomOrder, defaults.Study.RandomOrder),
			HideAnswers: s.getBool(keyHideAnswers, defaults.Study.HideAnswers),
		},
		Parser: domain.ParserSettings{
			AnswerLabels: s.getStringSlice(keyAnswerLabels, defaults.Parser.AnswerLabels),
		},
		Library: domain.LibrarySettings{
			FallbackEncoding: s.getString(keyFallbackEncoding, defaults.Library.FallbackEncoding),
		},
		Storage: domain.StorageSettings{
			Backend:  s.getBackend(defaults.Storage.Backend),
			RedisURL: s.getString(keyRedisURL, defaults.Storage.RedisURL),
		},
		Language: s.getLanguage(defaults.Language),
	}

	return settings, nil
}

// Save persists application settings in one write.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	err := s.configStore.SetMany(map[string]any{
		keyRandomOrder:      settings.Study.RandomOrder,
		keyHideAnswers:      settings.Study.HideAnswers,
		keyAnswerLabels:     settings.Parser.AnswerLabels,
		keyFallbackEncoding: settings.Library.FallbackEncoding,
		keyStorageBackend:   settings.Storage.Backend.String(),
		keyRedisURL:         settings.Storage.RedisURL,
		keyLanguage:         settings.Language,
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyRandomOrder, keyHideAnswers:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		if key == keyRandomOrder {
			settings.Study.RandomOrder = b
		} else {
			settings.Study.HideAnswers = b
		}
	case keyAnswerLabels:
		labels := splitList(value)
		if len(labels) == 0 {
			return fmt.Errorf("%w: at least one answer label is required", domain.ErrInvalidInput)
		}
		settings.Parser.AnswerLabels = labels
	case keyFallbackEncoding:
		if value == "" {
			return fmt.Errorf("%w: encoding name is required", domain.ErrInvalidInput)
		}
		settings.Library.FallbackEncoding = value
	case keyStorageBackend:
		backend := domain.StorageBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, value)
		}
		settings.Storage.Backend = backend
	case keyRedisURL:
		settings.Storage.RedisURL = value
	case keyLanguage:
		if !slices.Contains(domain.SupportedLanguages(), value) {
			return fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidInput, value)
		}
		settings.Language = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("invalid storage backend: %s", settings.Storage.Backend)
	}
	if settings.Storage.Backend == domain.StorageRedis && settings.Storage.RedisURL == "" {
		return fmt.Errorf("storage backend %q requires storage.redis_url", settings.Storage.Backend)
	}
	if len(settings.Parser.AnswerLabels) == 0 {
		return fmt.Errorf("at least one answer label is required")
	}
	if !slices.Contains(domain.SupportedLanguages(), settings.Language) {
		return fmt.Errorf("unsupported language: %s", settings.Language)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys returns the settable config keys.
func (s *SettingsService) Keys() []string {
	return []string{
		keyRandomOrder,
		keyHideAnswers,
		keyAnswerLabels,
		keyFallbackEncoding,
		keyStorageBackend,
		keyRedisURL,
		keyLanguage,
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getLanguage(defaultVal string) string {
	lang := s.configStore.GetString(keyLanguage)
	if !slices.Contains(domain.SupportedLanguages(), lang) {
		return defaultVal
	}
	return lang
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
