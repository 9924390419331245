// Package study provides the question-by-question study view for the TUI.
//
// Session operations run synchronously inside Update, so repeated mark
// keypresses are applied one at a time against the current question.
package study

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

const progressBarWidth = 30

// View walks through the remaining questions of one deck.
type View struct {
	ctx       context.Context
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusBar *status.Bar

	session driving.StudySession
	err     error

	width  int
	height int
}

// NewView creates a new study view with no active session.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		statusBar: status.NewBar(s, km),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for persistence calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetSession replaces the active session.
func (v *View) SetSession(session driving.StudySession) {
	v.session = session
	v.err = nil
}

// Session returns the active session, or nil.
func (v *View) Session() driving.StudySession {
	return v.session
}

// Err returns the last error that was not a persistence warning.
func (v *View) Err() error {
	return v.err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the study view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewDecks}
			}
		}
		if v.session == nil {
			return v, nil
		}
		return v.handleSessionKeys(msg), nil
	}

	return v, nil
}

func (v *View) handleSessionKeys(msg tea.KeyMsg) *View {
	k := msg.String()

	// Reset is the only action left once everything is studied.
	if v.session.State() == domain.StateComplete {
		if keymap.Matches(k, v.keymap.Reset) {
			v.reset()
		}
		return v
	}

	switch {
	case keymap.Matches(k, v.keymap.Reveal):
		v.session.Reveal()
	case keymap.Matches(k, v.keymap.Prev):
		v.session.Prev()
	case keymap.Matches(k, v.keymap.Next):
		v.session.Next()
	case keymap.Matches(k, v.keymap.Mark):
		v.mark()
	case keymap.Matches(k, v.keymap.Random):
		v.session.ToggleRandom(!v.session.RandomOrder())
	case keymap.Matches(k, v.keymap.Hide):
		v.session.SetHideAnswers(!v.session.HideAnswers())
	case keymap.Matches(k, v.keymap.Reset):
		v.reset()
	}
	return v
}

func (v *View) mark() {
	if _, err := v.session.MarkStudied(v.ctx); err != nil && !domain.IsWarning(err) {
		v.err = err
		return
	}
	v.err = nil
}

func (v *View) reset() {
	if err := v.session.Reset(v.ctx); err != nil && !domain.IsWarning(err) {
		v.err = err
		return
	}
	v.err = nil
}

// View renders the current question card.
func (v *View) View() string {
	if v.session == nil {
		return v.styles.Muted.Render("No deck open. Press [esc] to pick one.")
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.session.Key()))
	b.WriteString("\n")
	b.WriteString(v.styles.ProgressBar(v.session.Summary(), progressBarWidth))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.renderModes()))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.session.State() == domain.StateComplete {
		b.WriteString(v.cardStyle().Render(
			v.styles.Success.Render("All questions studied!") + "\n\n" +
				v.styles.Muted.Render("Press [x] to start over or [esc] to pick another deck."),
		))
	} else {
		b.WriteString(v.renderCard())
		b.WriteString("\n")
		b.WriteString(v.renderNavigation())
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderStatus())

	return b.String()
}

func (v *View) renderModes() string {
	order := "in order"
	if v.session.RandomOrder() {
		order = "random"
	}
	answers := "shown"
	if v.session.HideAnswers() {
		answers = "hidden"
	}
	return fmt.Sprintf("Order: %s   Answers: %s", order, answers)
}

func (v *View) renderCard() string {
	q, ok := v.session.Current()
	if !ok {
		return ""
	}
	current, remaining := v.session.Position()

	var body strings.Builder
	body.WriteString(v.styles.Muted.Render(fmt.Sprintf("Question %d of %d", current, remaining)))
	body.WriteString("\n\n")
	body.WriteString(v.styles.Question.Render(q.Text))
	body.WriteString("\n\n")
	if v.session.State() == domain.StateAnswerShown {
		body.WriteString(v.styles.Answer.Render(q.Answer))
	} else {
		body.WriteString(v.styles.HiddenAnswer.Render("Press space to show the answer"))
	}

	return v.cardStyle().Render(body.String())
}

func (v *View) cardStyle() lipgloss.Style {
	width := v.width - 4
	if width < 20 {
		width = 20
	}
	return v.styles.Card.Width(width)
}

func (v *View) renderNavigation() string {
	prev := v.styles.Normal.Render("[←] previous")
	if !v.session.CanPrev() {
		prev = v.styles.Muted.Render("[←] previous")
	}
	next := v.styles.Normal.Render("[→] next")
	if !v.session.CanNext() {
		next = v.styles.Muted.Render("[→] next")
	}
	return prev + "   " + next + "   " + v.styles.Normal.Render("[m] studied")
}

func (v *View) renderStatus() string {
	v.statusBar.SetWidth(v.width)
	switch {
	case v.session.Warning() != nil:
		v.statusBar.SetState(status.StateWarning)
		v.statusBar.SetMessage(v.session.Warning().Error())
	case v.session.State() == domain.StateComplete:
		v.statusBar.SetState(status.StateComplete)
		v.statusBar.SetMessage("")
	default:
		v.statusBar.SetState(status.StateStudying)
		v.statusBar.SetMessage(v.session.State().Description())
	}
	return v.statusBar.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
