package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellcheck/internal/ui/theme"
)

// ScaleOption is one answer on a rating scale.
type ScaleOption struct {
	Value       int
	Label       string
	Description string
}

// ScaleChoice is a single-select rating scale. Options are chosen with the
// arrow keys plus Enter, or directly by typing the option's value.
type ScaleChoice struct {
	Prompt    string
	Options   []ScaleOption
	Selected  int  // cursor position
	Current   int  // index of the previously recorded answer, or -1
	Submitted bool // set when the user picks an option
}

// NewScaleChoice creates a scale selector. current is the index of an
// existing answer to pre-select, or -1.
func NewScaleChoice(prompt string, options []ScaleOption, current int) ScaleChoice {
	selected := 0
	if current >= 0 && current < len(options) {
		selected = current
	}
	return ScaleChoice{
		Prompt:   prompt,
		Options:  options,
		Selected: selected,
		Current:  current,
	}
}

// Init returns nil.
func (m ScaleChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m ScaleChoice) Update(msg tea.Msg) (ScaleChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		m.Submitted = true
	default:
		if v, err := strconv.Atoi(key); err == nil {
			for i, o := range m.Options {
				if o.Value == v {
					m.Selected = i
					m.Submitted = true
					break
				}
			}
		}
	}

	return m, nil
}

// Chosen returns the picked option once submitted.
func (m ScaleChoice) Chosen() (ScaleOption, bool) {
	if !m.Submitted || m.Selected < 0 || m.Selected >= len(m.Options) {
		return ScaleOption{}, false
	}
	return m.Options[m.Selected], true
}

// View renders the prompt and options.
func (m ScaleChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		mark := " "
		if i == m.Current {
			mark = "✓"
		}

		line := fmt.Sprintf("%s%d) %s %s", prefix, opt.Value, opt.Label, mark)

		switch {
		case i == m.Selected:
			line = theme.Selected.Render(line)
		case i == m.Current:
			line = theme.Answered.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		if opt.Description != "" {
			line += "  " + theme.Hint.Render(opt.Description)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
