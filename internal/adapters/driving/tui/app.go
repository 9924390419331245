package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/views/about"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/views/decks"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/views/study"
	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView     *menu.View
	decksView    *decks.View
	studyView    *study.View
	settingsView *settings.View
	aboutView    *about.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// changes receives library changes while the watcher runs.
	changes <-chan domain.LibraryChange

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		decksView:    decks.NewView(s, ports.Decks, ports.Progress),
		studyView:    study.NewView(s),
		settingsView: settings.NewView(s, ports.Settings),
		aboutView:    about.NewView(s, ""),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.decksView.WithContext(ctx)
	a.studyView.WithContext(ctx)
	return a
}

// WithVersion sets the version shown in the about view.
func (a *App) WithVersion(version string) *App {
	a.aboutView.SetVersion(version)
	return a
}

// Init implements tea.Model.
// It enters the alt screen and starts watching the library.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("quickprogress"),
		a.startWatch(),
	)
}

func (a *App) startWatch() tea.Cmd {
	ctx, svc := a.ctx, a.ports.Decks
	return func() tea.Msg {
		changes, err := svc.Watch(ctx)
		return messages.LibraryWatchStarted{Changes: changes, Err: err}
	}
}

// waitForChange blocks on the watcher channel and reports one change.
func waitForChange(changes <-chan domain.LibraryChange) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return messages.LibraryWatchStopped{}
		}
		return messages.LibraryChanged{Change: change}
	}
}

func (a *App) openSession(key string) tea.Cmd {
	ctx, svc := a.ctx, a.ports.Study
	return func() tea.Msg {
		session, err := svc.Open(ctx, key)
		return messages.SessionOpened{Session: session, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewDecks:
			a.decksView, cmd = a.decksView.Update(msg)
		case messages.ViewStudy:
			a.studyView, cmd = a.studyView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewAbout:
			a.aboutView, cmd = a.aboutView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewDecks:
			a.decksView.Reset()
			return a, a.decksView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewStudy, messages.ViewHelp, messages.ViewAbout:
			// No initialisation needed
		}
		return a, nil

	case messages.DeckSelected:
		return a, a.openSession(msg.Key)

	case messages.SessionOpened:
		if msg.Err != nil {
			a.err = msg.Err
			a.decksView, cmd = a.decksView.Update(messages.ErrorOccurred{Err: msg.Err})
			return a, cmd
		}
		a.err = nil
		a.studyView.SetSession(msg.Session)
		a.currentView = messages.ViewStudy
		return a, nil

	case messages.DecksLoaded, messages.DeckImported, messages.DeckDeleted:
		a.decksView, cmd = a.decksView.Update(msg)
		return a, cmd

	case messages.LibraryWatchStarted:
		if msg.Err != nil {
			logger.Debug("Library watch unavailable: %v", msg.Err)
			return a, nil
		}
		a.changes = msg.Changes
		if a.changes == nil {
			return a, nil
		}
		return a, waitForChange(a.changes)

	case messages.LibraryChanged:
		a.decksView, cmd = a.decksView.Update(msg)
		return a, tea.Batch(cmd, waitForChange(a.changes))

	case messages.LibraryWatchStopped:
		a.changes = nil
		return a, nil

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewDecks {
			a.decksView, cmd = a.decksView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewDecks:
		return a.decksView.View()
	case messages.ViewStudy:
		return a.studyView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewAbout:
		return a.aboutView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	body := `Navigation:
  j/k, ↑/↓    Move selection
  enter       Select
  esc         Back
  ctrl+c      Quit

Decks:
  a           Import a file (txt, md, html, docx, pdf)
  d           Delete deck and its progress
  ctrl+r      Reload list

Study:
  space       Show answer
  ←/→         Previous / next question
  m           Mark studied
  r           Toggle random order
  h           Toggle hidden answers
  x           Reset progress

Question file format:
  What is DNA? Genetic material      one line, split after the only '?'
  What is DNA?                       two lines, answer on the next line
  Answer: Genetic material           (answer labels are stripped)

[esc] back to menu`

	return a.styles.Title.Render("Help") + "\n\n" + a.styles.Normal.Render(body)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.decksView.SetDimensions(width, height)
	a.studyView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.aboutView.SetDimensions(width, height)
}
