// Package about renders application information for the TUI.
package about

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui/styles"
)

// View shows the application name, version and contacts.
type View struct {
	styles  *styles.Styles
	version string
	width   int
	height  int
}

// NewView creates a new about view.
func NewView(s *styles.Styles, version string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if version == "" {
		version = "dev"
	}
	return &View{styles: s, version: version}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the about view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "enter":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the about screen.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("About"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("quickprogress"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Version: %s", v.version)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Developer: Sauletbek Lab"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Contacts"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Email:     info@sauletbeklab.space"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Website:   https://sauletbeklab.space"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Support the project"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("PayPal:    https://www.paypal.me/SauletbekSovet"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Help.Render("[esc] back"))
	return b.String()
}

// SetVersion sets the displayed version.
func (v *View) SetVersion(version string) {
	if version != "" {
		v.version = version
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
