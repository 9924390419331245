package services

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
	"github.com/custodia-labs/quickprogress/internal/logger"
)

// Ensure ProgressTracker implements the interface.
var _ driving.ProgressService = (*ProgressTracker)(nil)

// defaultShuffler draws from the process-wide random source.
var defaultShuffler driven.Shuffler = driven.ShuffleFunc(rand.Shuffle)

// ComputeRemaining filters set down to the indices not in studied, keeping
// original order. When random is true the result is permuted with shuffler.
// Each element carries its index in set so callers never re-derive it.
func ComputeRemaining(
	set domain.QuestionSet,
	studied domain.StudiedSet,
	random bool,
	shuffler driven.Shuffler,
) []domain.IndexedQuestion {
	remaining := make([]domain.IndexedQuestion, 0, len(set))
	for i, q := range set {
		if studied.Has(i) {
			continue
		}
		remaining = append(remaining, domain.IndexedQuestion{Index: i, Question: q})
	}

	if random && len(remaining) > 1 {
		if shuffler == nil {
			shuffler = defaultShuffler
		}
		shuffler.Shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
	}

	return remaining
}

// ProgressTracker persists studied indices per file key.
// Writes go straight through to the store; there is no cache.
type ProgressTracker struct {
	store    driven.ProgressStore
	shuffler driven.Shuffler
}

// NewProgressTracker creates a tracker over store.
// A nil shuffler uses math/rand/v2.
func NewProgressTracker(store driven.ProgressStore, shuffler driven.Shuffler) *ProgressTracker {
	if shuffler == nil {
		shuffler = defaultShuffler
	}
	return &ProgressTracker{
		store:    store,
		shuffler: shuffler,
	}
}

// Studied returns the persisted studied set for key.
// A read failure yields an empty set and a *domain.PersistenceWarning.
func (t *ProgressTracker) Studied(ctx context.Context, key string) (domain.StudiedSet, error) {
	if key == "" {
		return nil, domain.ErrNoActiveDeck
	}

	tokens, err := t.store.Get(ctx, key)
	if err != nil {
		warning := &domain.PersistenceWarning{Key: key, Op: "get", Err: err}
		logger.Warn("%v", warning)
		return domain.NewStudiedSet(), warning
	}

	studied, invalid := domain.ParseStudiedTokens(tokens)
	if invalid > 0 {
		logger.Debug("Ignored %d malformed progress tokens for %s", invalid, key)
	}
	return studied, nil
}

// GetRemaining returns the unstudied questions of set.
func (t *ProgressTracker) GetRemaining(
	ctx context.Context,
	set domain.QuestionSet,
	key string,
	random bool,
) ([]domain.IndexedQuestion, error) {
	studied, err := t.Studied(ctx, key)
	if err != nil && !domain.IsWarning(err) {
		return nil, err
	}
	return ComputeRemaining(set, studied, random, t.shuffler), err
}

// MarkStudied adds index to the persisted studied set of key and writes it back.
//
// When the stored set cannot be read nothing is written, since a put would
// replace the unreadable records. The returned set then holds only index and
// the read warning is returned.
func (t *ProgressTracker) MarkStudied(
	ctx context.Context,
	set domain.QuestionSet,
	key string,
	index int,
) (domain.StudiedSet, error) {
	if err := validateMark(set, key, index); err != nil {
		return nil, err
	}

	studied, err := t.Studied(ctx, key)
	if err != nil {
		if !domain.IsWarning(err) {
			return nil, err
		}
		studied.Add(index)
		return studied, err
	}

	return t.put(ctx, set, key, studied, index)
}

// MarkStudiedFrom writes studied plus index for key without reading the
// store first. Sessions use it so their in-memory set stays authoritative
// even when the store cannot be read. studied itself is not modified.
func (t *ProgressTracker) MarkStudiedFrom(
	ctx context.Context,
	set domain.QuestionSet,
	key string,
	studied domain.StudiedSet,
	index int,
) (domain.StudiedSet, error) {
	if err := validateMark(set, key, index); err != nil {
		return nil, err
	}
	return t.put(ctx, set, key, studied.Clone(), index)
}

// MarkCurrentStudied resolves question by structural equality to its first
// occurrence in set and marks that index. Duplicate questions therefore
// always resolve to the earliest copy.
//
// Marking a question that is already studied is ErrInvalidInput. When the
// stored set cannot be read nothing is written and the outcome is empty.
func (t *ProgressTracker) MarkCurrentStudied(
	ctx context.Context,
	set domain.QuestionSet,
	key string,
	question domain.Question,
) (domain.MarkOutcome, error) {
	if key == "" {
		return "", domain.ErrNoActiveDeck
	}
	index := set.IndexOf(question)
	if index < 0 {
		return "", fmt.Errorf("%w: question %q is not in the set", domain.ErrNotFound, question.Text)
	}

	before, err := t.Studied(ctx, key)
	if err != nil {
		return "", err
	}
	if before.CountWithin(set.Len()) >= set.Len() {
		return "", domain.ErrSessionComplete
	}
	if before.Has(index) {
		return "", fmt.Errorf("%w: question %q is already studied", domain.ErrInvalidInput, question.Text)
	}

	studied, err := t.put(ctx, set, key, before, index)
	if err != nil && !domain.IsWarning(err) {
		return "", err
	}

	if studied.CountWithin(set.Len()) >= set.Len() {
		return domain.OutcomeCompleted, err
	}
	return domain.OutcomeAdvanced, err
}

// put adds index to studied and writes the result through to the store.
func (t *ProgressTracker) put(
	ctx context.Context,
	set domain.QuestionSet,
	key string,
	studied domain.StudiedSet,
	index int,
) (domain.StudiedSet, error) {
	if studied == nil {
		studied = domain.NewStudiedSet()
	}
	studied.Add(index)
	logger.Debug("Marked question %d of %s studied (%d/%d)", index, key, studied.CountWithin(set.Len()), set.Len())

	if err := t.store.Put(ctx, key, studied.Tokens()); err != nil {
		warning := &domain.PersistenceWarning{Key: key, Op: "put", Err: err}
		logger.Warn("%v", warning)
		return studied, warning
	}
	return studied, nil
}

func validateMark(set domain.QuestionSet, key string, index int) error {
	if key == "" {
		return domain.ErrNoActiveDeck
	}
	if index < 0 || index >= set.Len() {
		return fmt.Errorf("%w: question index %d out of range [0, %d)", domain.ErrInvalidInput, index, set.Len())
	}
	return nil
}

// ResetProgress clears the studied set for key.
func (t *ProgressTracker) ResetProgress(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrNoActiveDeck
	}

	if err := t.store.Remove(ctx, key); err != nil {
		warning := &domain.PersistenceWarning{Key: key, Op: "remove", Err: err}
		logger.Warn("%v", warning)
		return warning
	}

	logger.Info("Reset progress for %s", key)
	return nil
}

// Summary returns studied/total for set. Stale indices beyond the set are not counted.
func (t *ProgressTracker) Summary(ctx context.Context, set domain.QuestionSet, key string) (domain.ProgressSummary, error) {
	studied, err := t.Studied(ctx, key)
	if err != nil && !domain.IsWarning(err) {
		return domain.ProgressSummary{}, err
	}
	return domain.ProgressSummary{
		Studied: studied.CountWithin(set.Len()),
		Total:   set.Len(),
	}, err
}
