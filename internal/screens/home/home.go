package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellcheck/internal/dispatch"
	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/router"
	"github.com/abhisek/wellcheck/internal/screen"
	"github.com/abhisek/wellcheck/internal/screens/crisis"
	"github.com/abhisek/wellcheck/internal/screens/history"
	"github.com/abhisek/wellcheck/internal/screens/questionnaire"
	"github.com/abhisek/wellcheck/internal/session"
	"github.com/abhisek/wellcheck/internal/store"
	"github.com/abhisek/wellcheck/internal/ui/components"
	"github.com/abhisek/wellcheck/internal/ui/layout"
	"github.com/abhisek/wellcheck/internal/ui/theme"
)

// HomeScreen is the instrument selection screen and the root of the stack.
type HomeScreen struct {
	machine *session.Machine
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ router.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen. dispatcher and repo may be nil; without a repo
// the history entry is disabled.
func New(m *session.Machine, dispatcher *dispatch.Dispatcher, repo store.ReportRepo) *HomeScreen {
	h := &HomeScreen{machine: m}

	var items []components.MenuItem
	for _, in := range m.Instruments() {
		id := in.ID
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(in.Title),
			Detail: fmt.Sprintf("%d questions · %s", len(in.Questions), in.Duration),
			Action: func() tea.Cmd { return h.start(id, dispatcher) },
		})
	}

	historyItem := components.MenuItem{
		Label:  "HISTORY",
		Detail: "Past results on this device",
		Action: func() tea.Cmd {
			return router.Push(history.New(repo, m.Instruments()))
		},
	}
	if repo == nil {
		historyItem.Disabled = true
		historyItem.Detail = "History is turned off"
	}

	items = append(items,
		historyItem,
		components.MenuItem{
			Label:  "CRISIS SUPPORT",
			Detail: "Helplines available around the clock",
			Action: func() tea.Cmd { return router.Push(crisis.New()) },
		},
		components.MenuItem{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) start(id instrument.ID, dispatcher *dispatch.Dispatcher) tea.Cmd {
	if err := h.machine.Select(id); err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	return router.Push(questionnaire.New(h.machine, dispatcher))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume puts the machine back in selection if a screen above left it
// elsewhere.
func (h *HomeScreen) Resume() tea.Cmd {
	switch h.machine.Phase() {
	case session.PhaseInProgress:
		_ = h.machine.Abandon()
	case session.PhaseCompleted:
		_ = h.machine.Restart()
	}
	h.errMsg = ""
	return nil
}

func (h *HomeScreen) Title() string {
	return "Choose an assessment"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-8, 70)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("How have you been feeling?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		"Short, validated questionnaires about the last two weeks."))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(theme.Card.Width(cw).Render(h.menu.View()), width))
	b.WriteString("\n\n")

	if h.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render(h.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(theme.Hint.Render("A screening result is not a diagnosis.")))

	return b.String()
}
