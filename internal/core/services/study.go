package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
	"github.com/custodia-labs/quickprogress/internal/logger"
)

// Ensure StudyService implements the interface.
var _ driving.StudyService = (*StudyService)(nil)

// StudyService opens sessions over library decks.
type StudyService struct {
	decks    driving.DeckService
	progress driving.ProgressService
	settings driving.SettingsService
	shuffler driven.Shuffler
}

// NewStudyService creates a study service.
// settings may be nil, in which case defaults apply.
func NewStudyService(
	decks driving.DeckService,
	progress driving.ProgressService,
	settings driving.SettingsService,
	shuffler driven.Shuffler,
) *StudyService {
	return &StudyService{
		decks:    decks,
		progress: progress,
		settings: settings,
		shuffler: shuffler,
	}
}

// Open loads the deck, reads its progress and starts a session.
// A progress read failure does not prevent the session from opening;
// it is available from the session's Warning.
func (s *StudyService) Open(ctx context.Context, key string) (driving.StudySession, error) {
	if key == "" {
		return nil, domain.ErrNoActiveDeck
	}

	loaded, err := s.decks.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", key, err)
	}

	studied, err := s.progress.Studied(ctx, key)
	if err != nil && !domain.IsWarning(err) {
		return nil, fmt.Errorf("read progress for %s: %w", key, err)
	}

	opts := s.studyDefaults()
	session := NewSession(key, loaded.Questions, studied, s.progress, s.shuffler, opts)
	session.warning = err

	logger.Info("Session %s opened for %s: %s studied", session.ID(), key, session.Summary())
	return session, nil
}

func (s *StudyService) studyDefaults() domain.StudySettings {
	if s.settings == nil {
		return domain.DefaultAppSettings().Study
	}
	settings, err := s.settings.Get()
	if err != nil {
		logger.Debug("Using default study settings: %v", err)
		return domain.DefaultAppSettings().Study
	}
	return settings.Study
}
