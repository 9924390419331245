// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Import adds a file to the library.
	Import key.Binding

	// Delete removes the selected deck.
	Delete key.Binding

	// Refresh reloads the deck list.
	Refresh key.Binding

	// Reveal shows the answer of the current question.
	Reveal key.Binding

	// Prev moves to the previous question.
	Prev key.Binding

	// Next moves to the next question.
	Next key.Binding

	// Mark marks the current question as studied.
	Mark key.Binding

	// Random toggles random order.
	Random key.Binding

	// Hide toggles hidden answers.
	Hide key.Binding

	// Reset clears the deck progress.
	Reset key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Import: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "import"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Reveal: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "show answer"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→", "next"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "studied"),
		),
		Random: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "random"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide answers"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// DecksHelp returns keybindings for the deck list.
func (k *KeyMap) DecksHelp() []key.Binding {
	return []key.Binding{k.Select, k.Import, k.Delete, k.Back}
}

// StudyHelp returns keybindings for an active study session.
func (k *KeyMap) StudyHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Prev, k.Next, k.Mark, k.Random, k.Hide, k.Reset, k.Back}
}

// CompleteHelp returns keybindings once every question is studied.
func (k *KeyMap) CompleteHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Import, k.Delete, k.Refresh},
		{k.Reveal, k.Prev, k.Next, k.Mark},
		{k.Random, k.Hide, k.Reset},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
