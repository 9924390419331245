// Package decks provides the deck library view for the TUI.
package decks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

// Mode is the interaction mode of the deck list.
type Mode int

const (
	// ModeList browses decks.
	ModeList Mode = iota
	// ModeImport reads a file path to import.
	ModeImport
	// ModeConfirmDelete waits for y/n before deleting the selected deck.
	ModeConfirmDelete
)

const progressBarWidth = 20

// errNoDeckService is reported when the view has nothing to load from.
var errNoDeckService = errors.New("deck service not available")

// View lists imported decks with their progress.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	decks    driving.DeckService
	progress driving.ProgressService

	entries  []messages.DeckEntry
	selected int
	mode     Mode
	loading  bool
	err      error
	notice   string

	prompt    *input.Prompt
	statusBar *status.Bar

	width  int
	height int
}

// NewView creates a new deck list view. progress may be nil, in which case
// summaries are not shown.
func NewView(s *styles.Styles, decks driving.DeckService, progress driving.ProgressService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		decks:     decks,
		progress:  progress,
		prompt:    input.NewPrompt(s, "File", "path/to/questions.txt"),
		statusBar: status.NewBar(s, km),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the deck list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadDecks()
}

func (v *View) loadDecks() tea.Cmd {
	ctx, decks, progress := v.ctx, v.decks, v.progress
	return func() tea.Msg {
		if decks == nil {
			return messages.DecksLoaded{Err: errNoDeckService}
		}
		list, err := decks.List(ctx)
		if err != nil {
			return messages.DecksLoaded{Err: err}
		}

		entries := make([]messages.DeckEntry, 0, len(list))
		for _, d := range list {
			entries = append(entries, summarise(ctx, decks, progress, d))
		}
		return messages.DecksLoaded{Decks: entries}
	}
}

func summarise(
	ctx context.Context, decks driving.DeckService, progress driving.ProgressService, d domain.Deck,
) messages.DeckEntry {
	entry := messages.DeckEntry{Deck: d}
	if progress == nil {
		return entry
	}

	loaded, err := decks.Load(ctx, d.Key)
	if err != nil {
		entry.Err = err
		return entry
	}
	summary, err := progress.Summary(ctx, loaded.Questions, d.Key)
	if err != nil && !domain.IsWarning(err) {
		entry.Err = err
		return entry
	}
	entry.Summary = summary
	return entry
}

func (v *View) importFile(path string) tea.Cmd {
	ctx, decks := v.ctx, v.decks
	return func() tea.Msg {
		if decks == nil {
			return messages.DeckImported{Err: errNoDeckService}
		}
		deck, err := decks.Import(ctx, path)
		return messages.DeckImported{Deck: deck, Err: err}
	}
}

func (v *View) deleteDeck(key string) tea.Cmd {
	ctx, decks := v.ctx, v.decks
	return func() tea.Msg {
		if decks == nil {
			return messages.DeckDeleted{Key: key, Err: errNoDeckService}
		}
		return messages.DeckDeleted{Key: key, Err: decks.Delete(ctx, key)}
	}
}

// Update handles messages for the deck list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DecksLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.entries = msg.Decks
			if v.selected >= len(v.entries) {
				v.selected = max(len(v.entries)-1, 0)
			}
		}
		return v, nil

	case messages.DeckImported:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Imported %s", msg.Deck.Name)
		return v, v.loadDecks()

	case messages.DeckDeleted:
		if msg.Err != nil && !domain.IsWarning(msg.Err) {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Deleted %s", msg.Key)
		if msg.Err != nil {
			v.notice += fmt.Sprintf(" (%v)", msg.Err)
		}
		return v, v.loadDecks()

	case messages.LibraryChanged:
		return v, v.loadDecks()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case ModeImport:
			return v.handleImportKeys(msg)
		case ModeConfirmDelete:
			return v.handleConfirmKeys(msg)
		case ModeList:
			return v.handleListKeys(msg)
		}
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		if entry, ok := v.Selected(); ok {
			key := entry.Deck.Key
			return v, func() tea.Msg {
				return messages.DeckSelected{Key: key}
			}
		}
	case keymap.Matches(k, v.keymap.Import):
		v.mode = ModeImport
		v.notice = ""
		v.prompt.Reset()
		return v, v.prompt.Focus()
	case keymap.Matches(k, v.keymap.Delete):
		if _, ok := v.Selected(); ok {
			v.mode = ModeConfirmDelete
		}
	case keymap.Matches(k, v.keymap.Refresh):
		v.loading = true
		return v, v.loadDecks()
	}
	return v, nil
}

func (v *View) handleImportKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeList
		v.prompt.Blur()
		return v, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(v.prompt.Value())
		if path == "" {
			return v, nil
		}
		v.mode = ModeList
		v.prompt.Blur()
		return v, v.importFile(path)
	default:
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
}

func (v *View) handleConfirmKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = ModeList
	if msg.String() != "y" && msg.String() != "Y" {
		return v, nil
	}
	entry, ok := v.Selected()
	if !ok {
		return v, nil
	}
	return v, v.deleteDeck(entry.Deck.Key)
}

// View renders the deck list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Decks"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading && len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("Loading decks..."))
		b.WriteString("\n")
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("No decks yet. Press [a] to import a question file."))
		b.WriteString("\n")
	default:
		for i, entry := range v.entries {
			b.WriteString(v.renderEntry(i, entry))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch v.mode {
	case ModeImport:
		b.WriteString(v.prompt.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] import  [esc] cancel"))
		b.WriteString("\n")
	case ModeConfirmDelete:
		if entry, ok := v.Selected(); ok {
			b.WriteString(v.styles.Warning.Render(
				fmt.Sprintf("Delete %s and its progress? [y/N]", entry.Deck.Name)))
			b.WriteString("\n")
		}
	case ModeList:
		if v.notice != "" {
			b.WriteString(v.styles.Success.Render(v.notice))
			b.WriteString("\n")
		}
	}

	v.statusBar.SetWidth(v.width)
	v.statusBar.SetState(status.StateDecks)
	v.statusBar.SetMessage(fmt.Sprintf("%d decks", len(v.entries)))
	b.WriteString("\n")
	b.WriteString(v.statusBar.View())

	return b.String()
}

func (v *View) renderEntry(i int, entry messages.DeckEntry) string {
	indicator := "  "
	nameStyle := v.styles.Normal
	if i == v.selected {
		indicator = "> "
		nameStyle = v.styles.Selected
	}

	line := indicator + nameStyle.Render(entry.Deck.Name)
	switch {
	case entry.Err != nil:
		line += "  " + v.styles.Error.Render(entry.Err.Error())
	case v.progress != nil:
		line += "  " + v.styles.ProgressBar(entry.Summary, progressBarWidth)
	}
	return line + "  " + v.styles.Muted.Render(entry.Deck.Format)
}

// Selected returns the entry under the cursor.
func (v *View) Selected() (messages.DeckEntry, bool) {
	if v.selected < 0 || v.selected >= len(v.entries) {
		return messages.DeckEntry{}, false
	}
	return v.entries[v.selected], true
}

// Entries returns the loaded deck entries.
func (v *View) Entries() []messages.DeckEntry {
	return v.entries
}

// Mode returns the current interaction mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Notice returns the last informational message.
func (v *View) Notice() string {
	return v.notice
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.prompt.SetWidth(width)
}

// Reset returns the view to list mode and clears transient messages.
func (v *View) Reset() {
	v.mode = ModeList
	v.err = nil
	v.notice = ""
	v.prompt.Reset()
	v.prompt.Blur()
}
