package domain

const unknownDescription = "Unknown"

// StorageBackend selects where study progress is persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite stores progress in a local SQLite database (default).
	StorageSQLite StorageBackend = "sqlite"

	// StorageTOML stores progress in a TOML file next to the config.
	StorageTOML StorageBackend = "toml"

	// StorageRedis stores progress as Redis sets.
	StorageRedis StorageBackend = "redis"

	// StorageMemory keeps progress only for the lifetime of the process.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageTOML, StorageRedis, StorageMemory:
		return true
	default:
		return false
	}
}

// IsDurable returns true if progress survives a restart.
func (b StorageBackend) IsDurable() bool {
	return b != StorageMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (local database)"
	case StorageTOML:
		return "TOML (plain file)"
	case StorageRedis:
		return "Redis (shared server)"
	case StorageMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// StudySettings are the defaults applied when a study session opens.
type StudySettings struct {
	// RandomOrder shuffles the remaining questions.
	RandomOrder bool

	// HideAnswers keeps answers hidden until revealed.
	HideAnswers bool
}

// ParserSettings tune how text is turned into questions.
type ParserSettings struct {
	// AnswerLabels are prefixes stripped from two-line answers, compared case-insensitively.
	AnswerLabels []string
}

// LibrarySettings control how imported files are read.
type LibrarySettings struct {
	// FallbackEncoding decodes imported text that is not valid UTF-8.
	FallbackEncoding string
}

// StorageSettings select and configure the progress store.
type StorageSettings struct {
	Backend  StorageBackend
	RedisURL string
}

// AppSettings is the aggregate of all user-configurable settings.
type AppSettings struct {
	Study    StudySettings
	Parser   ParserSettings
	Library  LibrarySettings
	Storage  StorageSettings
	Language string
}

// DefaultAnswerLabels returns the answer prefixes recognised out of the box.
func DefaultAnswerLabels() []string {
	return []string{"Ответ:", "Answer:"}
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Study: StudySettings{
			RandomOrder: false,
			HideAnswers: true,
		},
		Parser: ParserSettings{
			AnswerLabels: DefaultAnswerLabels(),
		},
		Library: LibrarySettings{
			FallbackEncoding: "windows-1251",
		},
		Storage: StorageSettings{
			Backend:  StorageSQLite,
			RedisURL: "redis://localhost:6379/0",
		},
		Language: "en",
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		StorageSQLite,
		StorageTOML,
		StorageRedis,
		StorageMemory,
	}
}

// SupportedLanguages returns the interface languages that can be selected.
func SupportedLanguages() []string {
	return []string{"en", "ru", "kk"}
}
