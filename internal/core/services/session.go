package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
	"github.com/custodia-labs/quickprogress/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.StudySession = (*Session)(nil)

// Session is the traversal state of one file being studied.
//
// The remaining view holds IndexedQuestion values, so marking resolves
// the current item by its original position rather than by equality.
type Session struct {
	id       string
	key      string
	set      domain.QuestionSet
	studied  domain.StudiedSet
	progress driving.ProgressService
	shuffler driven.Shuffler

	remaining   []domain.IndexedQuestion
	cursor      int
	random      bool
	hideAnswers bool
	shown       bool
	warning     error
}

// NewSession starts a session over set with an already loaded studied set.
func NewSession(
	key string,
	set domain.QuestionSet,
	studied domain.StudiedSet,
	progress driving.ProgressService,
	shuffler driven.Shuffler,
	opts domain.StudySettings,
) *Session {
	if studied == nil {
		studied = domain.NewStudiedSet()
	}
	if shuffler == nil {
		shuffler = defaultShuffler
	}
	s := &Session{
		id:          uuid.NewString(),
		key:         key,
		set:         set,
		studied:     studied.Clone(),
		progress:    progress,
		shuffler:    shuffler,
		random:      opts.RandomOrder,
		hideAnswers: opts.HideAnswers,
	}
	s.regenerate()
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Key returns the file key being studied.
func (s *Session) Key() string {
	return s.key
}

// Current returns the question under the cursor.
func (s *Session) Current() (domain.IndexedQuestion, bool) {
	if len(s.remaining) == 0 {
		return domain.IndexedQuestion{}, false
	}
	return s.remaining[s.cursor], true
}

// State returns the state machine position.
func (s *Session) State() domain.StudyState {
	switch {
	case len(s.remaining) == 0:
		return domain.StateComplete
	case s.shown || !s.hideAnswers:
		return domain.StateAnswerShown
	default:
		return domain.StateAnswerHidden
	}
}

// Position returns the 1-based cursor and the remaining count.
// Both are zero when complete.
func (s *Session) Position() (current, remaining int) {
	if len(s.remaining) == 0 {
		return 0, 0
	}
	return s.cursor + 1, len(s.remaining)
}

// CanPrev reports whether Prev would move.
func (s *Session) CanPrev() bool {
	return s.cursor > 0
}

// CanNext reports whether Next would move.
func (s *Session) CanNext() bool {
	return s.cursor < len(s.remaining)-1
}

// Prev moves back one question and hides the answer again.
func (s *Session) Prev() bool {
	if !s.CanPrev() {
		return false
	}
	s.cursor--
	s.shown = false
	return true
}

// Next moves forward one question and hides the answer again.
func (s *Session) Next() bool {
	if !s.CanNext() {
		return false
	}
	s.cursor++
	s.shown = false
	return true
}

// Reveal shows the answer of the current question.
func (s *Session) Reveal() {
	if len(s.remaining) > 0 {
		s.shown = true
	}
}

// HideAnswers reports whether answers start hidden.
func (s *Session) HideAnswers() bool {
	return s.hideAnswers
}

// SetHideAnswers toggles hidden-answer mode.
func (s *Session) SetHideAnswers(hide bool) {
	s.hideAnswers = hide
	s.shown = false
}

// RandomOrder reports whether the remaining questions are shuffled.
func (s *Session) RandomOrder() bool {
	return s.random
}

// ToggleRandom switches order mode. The view is rebuilt and the cursor
// returns to the first position since old positions are meaningless.
func (s *Session) ToggleRandom(random bool) {
	s.random = random
	s.regenerate()
	logger.Debug("Session %s: random order %t", s.id, random)
}

// MarkStudied marks the current question and removes it from the view.
//
// The cursor stays in place so the next question slides under it, except
// when the marked item was last, in which case the cursor wraps to 0.
// A persistence failure is returned as a warning; the in-memory state
// still advances.
func (s *Session) MarkStudied(ctx context.Context) (domain.MarkOutcome, error) {
	current, ok := s.Current()
	if !ok {
		return "", domain.ErrSessionComplete
	}
	wasLast := s.cursor >= len(s.remaining)-1

	studied, err := s.progress.MarkStudiedFrom(ctx, s.set, s.key, s.studied, current.Index)
	if err != nil && !domain.IsWarning(err) {
		return "", err
	}
	s.warning = err
	s.studied = studied

	s.remaining = append(s.remaining[:s.cursor], s.remaining[s.cursor+1:]...)
	s.shown = false

	if len(s.remaining) == 0 {
		s.cursor = 0
		logger.Info("Session %s: all %d questions of %s studied", s.id, s.set.Len(), s.key)
		return domain.OutcomeCompleted, err
	}
	if wasLast {
		s.cursor = 0
	}
	return domain.OutcomeAdvanced, err
}

// Reset clears all progress for the file and restarts from the full set.
func (s *Session) Reset(ctx context.Context) error {
	err := s.progress.ResetProgress(ctx, s.key)
	if err != nil && !domain.IsWarning(err) {
		return err
	}
	s.warning = err
	s.studied = domain.NewStudiedSet()
	s.regenerate()
	return err
}

// Summary returns studied/total counts.
func (s *Session) Summary() domain.ProgressSummary {
	return domain.ProgressSummary{
		Studied: s.studied.CountWithin(s.set.Len()),
		Total:   s.set.Len(),
	}
}

// Warning returns the last persistence warning, or nil.
func (s *Session) Warning() error {
	return s.warning
}

func (s *Session) regenerate() {
	s.remaining = ComputeRemaining(s.set, s.studied, s.random, s.shuffler)
	s.cursor = 0
	s.shown = false
}
