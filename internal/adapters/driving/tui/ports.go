// Package tui provides an interactive terminal user interface for quickprogress.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Decks manages the library of imported question files.
	Decks driving.DeckService

	// Study opens study sessions over decks.
	Study driving.StudyService

	// Progress reports per-deck progress for the deck list.
	Progress driving.ProgressService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(decks driving.DeckService, study driving.StudyService) *Ports {
	return &Ports{
		Decks: decks,
		Study: study,
	}
}

// Validate ensures all required ports are set.
// Progress and Settings are optional.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Decks == nil {
		return ErrMissingDeckService
	}
	if p.Study == nil {
		return ErrMissingStudyService
	}
	return nil
}
