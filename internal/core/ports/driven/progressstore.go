package driven

import "context"

// ProgressStore persists the studied-index set of each file as string tokens.
// It is a narrow key-value view: the core serialises indices itself.
type ProgressStore interface {
	// Get returns the tokens stored under key.
	// A key with no record returns an empty slice and no error.
	Get(ctx context.Context, key string) ([]string, error)

	// Put replaces the tokens stored under key.
	Put(ctx context.Context, key string, tokens []string) error

	// Remove deletes the record for key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
