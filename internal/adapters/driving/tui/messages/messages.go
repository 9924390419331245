// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDecks lists the imported decks.
	ViewDecks
	// ViewStudy walks through the remaining questions of one deck.
	ViewStudy
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewAbout shows application information.
	ViewAbout
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDecks:
		return "decks"
	case ViewStudy:
		return "study"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	case ViewAbout:
		return "about"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DeckEntry is a deck together with its progress, as shown in the deck list.
type DeckEntry struct {
	Deck    domain.Deck
	Summary domain.ProgressSummary
	// Err is set when the deck could not be parsed for its summary.
	Err error
}

// DecksLoaded carries the deck list from the service.
type DecksLoaded struct {
	Decks []DeckEntry
	Err   error
}

// DeckImported signals a file or pasted text was added to the library.
type DeckImported struct {
	Deck *domain.Deck
	Err  error
}

// DeckDeleted signals a deck was removed.
type DeckDeleted struct {
	Key string
	Err error
}

// DeckSelected asks the app to open a study session for a deck.
type DeckSelected struct {
	Key string
}

// SessionOpened carries a newly opened study session.
type SessionOpened struct {
	Session driving.StudySession
	Err     error
}

// LibraryWatchStarted carries the watcher channel. Changes is nil when
// the library cannot be watched.
type LibraryWatchStarted struct {
	Changes <-chan domain.LibraryChange
	Err     error
}

// LibraryChanged carries one change reported by the library watcher.
type LibraryChanged struct {
	Change domain.LibraryChange
}

// LibraryWatchStopped signals the watcher channel closed.
type LibraryWatchStopped struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
