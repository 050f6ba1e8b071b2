package questionnaire

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellcheck/internal/ui/components"
	"github.com/abhisek/wellcheck/internal/ui/layout"
	"github.com/abhisek/wellcheck/internal/ui/theme"
)

func (s *QuestionnaireScreen) View(width, height int) string {
	if s.inst == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\nNo assessment in progress.")
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}

	cw := min(width-8, 76)
	total := len(s.inst.Questions)
	p := s.machine.Progress()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Subtitle.Width(cw).Render(s.inst.Stem), width))
	b.WriteString("\n\n")

	step := min(s.index+1, total)
	b.WriteString(layout.Centered(
		components.NewStepProgress(step, total, p.Answered, cw).View(), width))
	b.WriteString("\n\n")

	var body string
	if s.onReview() {
		body = s.renderReview(cw)
	} else {
		body = s.choice.View()
	}
	b.WriteString(layout.Centered(theme.Card.Width(cw).Render(body), width))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render(s.errMsg))
	}

	return b.String()
}

// renderReview lists every question with its recorded answer.
func (s *QuestionnaireScreen) renderReview(width int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("Review your answers"))
	b.WriteString("\n\n")

	labelWidth := max(width-28, 20)
	for _, q := range s.inst.Questions {
		prompt := q.Prompt
		if r := []rune(prompt); len(r) > labelWidth {
			prompt = string(r[:labelWidth-1]) + "…"
		}
		line := fmt.Sprintf("%2d. %-*s ", q.Position, labelWidth, prompt)
		if v, ok := s.machine.Answer(q.ID); ok {
			opt, _ := s.inst.Scale.Option(v)
			b.WriteString(theme.Unselected.Render(line))
			b.WriteString(theme.Answered.Render(opt.Label))
		} else {
			b.WriteString(theme.Hint.Render(line + "unanswered"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.submit.View())
	return b.String()
}

func renderQuitConfirm(width, height int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Quit this assessment?") + "\n\n" +
			theme.Hint.Render("Your answers will be discarded.") + "\n\n" +
			"[Y] Yes   [N] No",
	)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}
