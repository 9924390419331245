// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionChoice
	SectionText
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// Config keys edited by this view.
const (
	keyRandomOrder      = "study.random_order"
	keyHideAnswers      = "study.hide_answers"
	keyAnswerLabels     = "parser.answer_labels"
	keyFallbackEncoding = "library.fallback_encoding"
	keyStorageBackend   = "storage.backend"
	keyRedisURL         = "storage.redis_url"
	keyLanguage         = "ui.language"
)

// fieldKind decides how a field is edited.
type fieldKind int

const (
	kindToggle fieldKind = iota
	kindChoice
	kindText
)

type field struct {
	key   string
	label string
	kind  fieldKind
	value func(*domain.AppSettings) string
}

var fields = []field{
	{keyRandomOrder, "Random order", kindToggle, func(s *domain.AppSettings) string {
		return strconv.FormatBool(s.Study.RandomOrder)
	}},
	{keyHideAnswers, "Hide answers", kindToggle, func(s *domain.AppSettings) string {
		return strconv.FormatBool(s.Study.HideAnswers)
	}},
	{keyAnswerLabels, "Answer labels", kindText, func(s *domain.AppSettings) string {
		return strings.Join(s.Parser.AnswerLabels, ", ")
	}},
	{keyFallbackEncoding, "Fallback encoding", kindText, func(s *domain.AppSettings) string {
		return s.Library.FallbackEncoding
	}},
	{keyStorageBackend, "Storage backend", kindChoice, func(s *domain.AppSettings) string {
		return s.Storage.Backend.String()
	}},
	{keyRedisURL, "Redis URL", kindText, func(s *domain.AppSettings) string {
		return s.Storage.RedisURL
	}},
	{keyLanguage, "Language", kindChoice, func(s *domain.AppSettings) string {
		return s.Language
	}},
}

var errNoSettingsService = errors.New("settings service not available")

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	section  Section
	field    int // field under edit, index into fields
	selected int // selection within current section

	prompt *input.Prompt

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		prompt:          input.NewPrompt(s, "Value", ""),
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) set(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		v.backToOverview()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEsc {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.backToOverview()
		return v, nil
	}

	if v.settings == nil {
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionChoice:
		return v.handleChoiceKeys(msg)
	case SectionText:
		return v.handleTextKeys(msg)
	}
	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case keyEnter, " ":
		f := fields[v.selected]
		v.field = v.selected
		switch f.kind {
		case kindToggle:
			current, _ := strconv.ParseBool(f.value(v.settings))
			return v, v.set(f.key, strconv.FormatBool(!current))
		case kindChoice:
			v.section = SectionChoice
			v.selected = max(slices.Index(choices(f.key), f.value(v.settings)), 0)
		case kindText:
			v.section = SectionText
			v.prompt.SetLabel(f.label)
			v.prompt.SetValue(f.value(v.settings))
			return v, v.prompt.Focus()
		}
	}
	return v, nil
}

func (v *View) handleChoiceKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	options := choices(fields[v.field].key)

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(options)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(options) {
			return v, v.set(fields[v.field].key, options[v.selected])
		}
	}
	return v, nil
}

func (v *View) handleTextKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		return v, v.set(fields[v.field].key, v.prompt.Value())
	}
	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) backToOverview() {
	v.section = SectionOverview
	v.selected = v.field
	v.prompt.Blur()
	v.prompt.Reset()
}

// choices returns the selectable values for a choice field.
func choices(key string) []string {
	switch key {
	case keyStorageBackend:
		backends := domain.AllStorageBackends()
		out := make([]string, len(backends))
		for i, b := range backends {
			out[i] = b.String()
		}
		return out
	case keyLanguage:
		return domain.SupportedLanguages()
	default:
		return nil
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionChoice:
		b.WriteString(v.renderChoice())
	case SectionText:
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Edit %s", fields[v.field].label)))
		b.WriteString("\n\n")
		b.WriteString(v.prompt.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	for i, f := range fields {
		value := f.value(v.settings)
		if f.key == keyStorageBackend {
			value = v.settings.Storage.Backend.Description()
		}

		line := fmt.Sprintf("%-18s %s", f.label+":", value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Parser and storage changes apply the next time quickprogress starts."))
	b.WriteString("\n")

	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderChoice() string {
	var b strings.Builder

	f := fields[v.field]
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Select %s", f.label)))
	b.WriteString("\n\n")

	currentValue := f.value(v.settings)
	for i, option := range choices(f.key) {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		label := option
		if f.key == keyStorageBackend {
			label = domain.StorageBackend(option).Description()
		}
		current := ""
		if option == currentValue {
			current = v.styles.Success.Render(" (current)")
		}

		line := indicator + label
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString(current)
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit/toggle  [esc] back")
	case SectionChoice:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionText:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	default:
		return ""
	}
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings, or nil before loading.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.prompt.SetWidth(width)
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.field = 0
	v.err = nil
	v.prompt.Reset()
	v.prompt.Blur()
}
