package driving

import "github.com/custodia-labs/quickprogress/internal/core/domain"

// Parser converts raw text into an ordered question set.
// Implementations must be pure: the same text always yields the same order,
// since persisted progress indexes into it.
type Parser interface {
	// Parse extracts questions from text. Unrecognised lines are skipped and counted.
	Parse(text string) domain.ParseResult
}
