package driven

// ConfigStore holds flattened dot-notation settings such as "study.random_order".
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns "" for missing or non-string values.
	GetString(key string) string

	// GetBool returns false for missing or non-bool values.
	GetBool(key string) bool

	// GetStringSlice returns nil for missing values. Non-string elements are dropped.
	GetStringSlice(key string) []string

	// Set stores one value and persists it.
	Set(key string, value any) error

	// SetMany stores several values and persists once, so a failed write
	// leaves the previous file intact.
	SetMany(values map[string]any) error

	// Keys returns the keys currently set, sorted.
	Keys() []string

	// Load re-reads the backing storage.
	Load() error

	// Path identifies the backing storage.
	Path() string
}
