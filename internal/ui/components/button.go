package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wellcheck/internal/ui/theme"
)

// Button is a styled button component. An inactive button renders dimmed
// with its DisabledHint and ignores key presses.
type Button struct {
	Label        string
	Active       bool
	Focused      bool
	DisabledHint string
	OnPress      func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if !b.Active {
		s := theme.ButtonInactive.Render(b.Label)
		if b.DisabledHint != "" {
			s += "\n" + theme.Hint.Render(b.DisabledHint)
		}
		return s
	}
	label := b.Label
	if b.Focused {
		label = "▸ " + label
	}
	return theme.ButtonActive.Render(label)
}
