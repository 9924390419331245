package driving

import (
	"context"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

// ProgressService tracks which questions of a file have been studied.
// Every mutation is written through to storage before returning.
// Storage failures are reported as *domain.PersistenceWarning alongside a usable result.
type ProgressService interface {
	// Studied returns the persisted studied set for a file key.
	Studied(ctx context.Context, key string) (domain.StudiedSet, error)

	// GetRemaining returns the unstudied questions in original order,
	// or shuffled when random is true.
	GetRemaining(ctx context.Context, set domain.QuestionSet, key string, random bool) ([]domain.IndexedQuestion, error)

	// MarkStudied adds index to the studied set and returns the updated set.
	// Nothing is written when the stored set cannot be read.
	MarkStudied(ctx context.Context, set domain.QuestionSet, key string, index int) (domain.StudiedSet, error)

	// MarkStudiedFrom writes studied plus index without reading storage first,
	// so a caller holding the set in memory never loses earlier marks.
	MarkStudiedFrom(ctx context.Context, set domain.QuestionSet, key string, studied domain.StudiedSet, index int) (domain.StudiedSet, error)

	// MarkCurrentStudied resolves question to its first structural match in set,
	// marks it, and reports whether any questions remain. An already studied
	// question is rejected with domain.ErrInvalidInput.
	MarkCurrentStudied(ctx context.Context, set domain.QuestionSet, key string, question domain.Question) (domain.MarkOutcome, error)

	// ResetProgress clears the studied set for a file key.
	ResetProgress(ctx context.Context, key string) error

	// Summary returns studied/total counts for display.
	Summary(ctx context.Context, set domain.QuestionSet, key string) (domain.ProgressSummary, error)
}
