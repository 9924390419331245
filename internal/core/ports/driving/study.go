package driving

import (
	"context"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

// StudyService opens study sessions over library decks.
type StudyService interface {
	// Open loads a deck and starts a session using the configured study defaults.
	Open(ctx context.Context, key string) (StudySession, error)
}

// StudySession is the traversal state of one active file.
// A session is not safe for concurrent use.
type StudySession interface {
	// ID identifies the session in logs.
	ID() string

	// Key returns the file key being studied.
	Key() string

	// Current returns the question under the cursor.
	// ok is false when the session is complete.
	Current() (q domain.IndexedQuestion, ok bool)

	// State returns the state machine position.
	State() domain.StudyState

	// Position returns the 1-based cursor and the remaining count.
	Position() (current, remaining int)

	// CanPrev reports whether Prev would move.
	CanPrev() bool

	// CanNext reports whether Next would move.
	CanNext() bool

	// Prev moves back one question. No-op at the first position.
	Prev() bool

	// Next moves forward one question. No-op at the last position.
	Next() bool

	// Reveal shows the answer of the current question.
	Reveal()

	// HideAnswers reports whether answers start hidden.
	HideAnswers() bool

	// SetHideAnswers toggles hidden-answer mode.
	SetHideAnswers(hide bool)

	// RandomOrder reports whether the remaining questions are shuffled.
	RandomOrder() bool

	// ToggleRandom switches order mode and restarts from the first position.
	ToggleRandom(random bool)

	// MarkStudied marks the current question and advances or completes.
	MarkStudied(ctx context.Context) (domain.MarkOutcome, error)

	// Reset clears all progress and restarts the session.
	Reset(ctx context.Context) error

	// Summary returns studied/total counts.
	Summary() domain.ProgressSummary

	// Warning returns the last persistence warning, or nil.
	Warning() error
}
