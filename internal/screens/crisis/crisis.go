package crisis

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellcheck/internal/notify"
	"github.com/abhisek/wellcheck/internal/router"
	"github.com/abhisek/wellcheck/internal/screen"
	"github.com/abhisek/wellcheck/internal/ui/layout"
	"github.com/abhisek/wellcheck/internal/ui/theme"
)

// CrisisScreen lists crisis support contacts.
type CrisisScreen struct {
	contacts []notify.Contact
}

var _ screen.Screen = (*CrisisScreen)(nil)
var _ screen.KeyHintProvider = (*CrisisScreen)(nil)

// New creates a CrisisScreen showing the built-in contacts.
func New() *CrisisScreen {
	return &CrisisScreen{contacts: notify.CrisisContacts}
}

func (c *CrisisScreen) Init() tea.Cmd {
	return nil
}

func (c *CrisisScreen) Title() string {
	return "Crisis Support"
}

func (c *CrisisScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CrisisScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter", "q":
			return c, router.Pop
		}
	}
	return c, nil
}

func (c *CrisisScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(RenderContacts(c.contacts))
}

// RenderContacts renders the contact list as a card.
func RenderContacts(contacts []notify.Contact) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render("If you are in immediate danger, call emergency services now."))
	b.WriteString("\n\n")

	for i, ct := range contacts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(ct.Name))
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(ct.Phone))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%s · %s", ct.Available, ct.Description)))
	}

	return theme.AlertCard.Render(b.String())
}
