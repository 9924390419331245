// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	Primary    lipgloss.Color // accents, titles, the card frame
	Secondary  lipgloss.Color // revealed answers, subtitles
	Background lipgloss.Color // status bar fill
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color // studied cells of the progress bar
	Warning    lipgloss.Color // persistence warnings
	Error      lipgloss.Color
	Border     lipgloss.Color // input frames, unstudied cells
}

// DefaultTheme returns the dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#10B981"), // emerald
		Secondary:  lipgloss.Color("#38BDF8"), // sky
		Background: lipgloss.Color("#181825"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
	}
}

// Styles are the lipgloss styles shared by every view.
type Styles struct {
	theme *Theme

	// General text.
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	// Feedback.
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Chrome.
	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Study card.
	Card         lipgloss.Style
	Question     lipgloss.Style
	Answer       lipgloss.Style
	HiddenAnswer lipgloss.Style

	// Progress bar cells.
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme: theme,

		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Help:     fg(theme.Muted),

		Error:   fg(theme.Error),
		Success: fg(theme.Success),
		Warning: fg(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.Background).Padding(0, 1),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),
		Question:     fg(theme.Foreground).Bold(true),
		Answer:       fg(theme.Secondary),
		HiddenAnswer: fg(theme.Muted).Italic(true),

		ProgressFilled: fg(theme.Success),
		ProgressEmpty:  fg(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
