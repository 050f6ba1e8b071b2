package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellcheck/internal/dispatch"
	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/notify"
	"github.com/abhisek/wellcheck/internal/router"
	"github.com/abhisek/wellcheck/internal/screen"
	"github.com/abhisek/wellcheck/internal/screening"
	"github.com/abhisek/wellcheck/internal/screens/crisis"
	"github.com/abhisek/wellcheck/internal/session"
	"github.com/abhisek/wellcheck/internal/ui/layout"
	"github.com/abhisek/wellcheck/internal/ui/theme"
)

// DispatchedMsg reports what happened to the report after it was handed to
// the dispatcher.
type DispatchedMsg struct {
	Outcome dispatch.Outcome
	Err     error
}

// ResultsScreen shows a finalized report.
type ResultsScreen struct {
	machine *session.Machine
	inst    *instrument.Instrument
	report  screening.Report

	dispatched bool
	outcome    dispatch.Outcome
	err        error

	vp viewport.Model
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for r. The machine must be in the completed
// phase; leaving the screen restarts it.
func New(m *session.Machine, r screening.Report) *ResultsScreen {
	return &ResultsScreen{
		machine: m,
		inst:    m.Instrument(),
		report:  r,
		vp:      viewport.New(),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return s.report.Title() + " Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "New assessment"},
		{Key: "↑↓", Description: "Scroll"},
	}
	if s.report.Escalate() {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Crisis support"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case DispatchedMsg:
		s.dispatched = true
		s.outcome = msg.Outcome
		s.err = msg.Err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "r", "esc":
			_ = s.machine.Restart()
			return s, router.PopToRoot
		case "c":
			if s.report.Escalate() {
				return s, router.Push(crisis.New())
			}
		case "up", "k":
			s.vp.ScrollUp(1)
		case "down", "j":
			s.vp.ScrollDown(1)
		case "pgup":
			s.vp.PageUp()
		case "pgdown":
			s.vp.PageDown()
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	s.vp.SetWidth(width)
	s.vp.SetHeight(max(height, 1))
	s.vp.SetContent(s.body(width))
	return s.vp.View()
}

// body renders the whole report. View shows it through the viewport, so
// long reports scroll instead of pushing the footer off screen.
func (s *ResultsScreen) body(width int) string {
	r := s.report
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%s complete", r.Title())))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Score: %d / %d", r.Total(), r.MaxScore())))
	b.WriteString("\n")

	band := r.Band()
	n := band.Rank + 1
	if s.inst != nil {
		n = len(s.inst.Bands)
	}
	b.WriteString(center.Foreground(theme.SeverityColor(band.Rank, n)).Bold(true).
		Render(band.Label))
	b.WriteString("\n\n")

	cw := min(width-8, 70)
	b.WriteString(layout.Centered(
		theme.Card.Width(cw).Render(theme.Body.Render(band.Advisory)), width))
	b.WriteString("\n")

	if r.Escalate() {
		b.WriteString("\n")
		b.WriteString(layout.Centered(renderAlert(r.Reasons(), cw), width))
		b.WriteString("\n")
	}

	if recs := r.Recommendations(); !recs.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(layout.Centered(renderRecommendations(recs, cw), width))
		b.WriteString("\n")
	}

	if r.SeekProfessional() {
		b.WriteString("\n")
		b.WriteString(layout.Centered(renderNotice(cw), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Render(s.statusLine()))
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Hint.Render(
		"This screening is not a diagnosis. Please discuss your results with a professional.")))

	return b.String()
}

func (s *ResultsScreen) statusLine() string {
	if !s.dispatched {
		return theme.Hint.Render("Saving...")
	}
	var parts []string
	switch {
	case s.outcome.Saved:
		parts = append(parts, fmt.Sprintf("Saved to history (#%d)", s.outcome.ReportID))
	case s.outcome.ReportID == 0 && s.err == nil:
		parts = append(parts, "History is off")
	}
	if s.outcome.Notified {
		parts = append(parts, "care team notified")
	}
	var line []string
	if len(parts) > 0 {
		line = append(line, lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Join(parts, " · ")))
	}
	if s.err != nil {
		line = append(line, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.err.Error()))
	}
	return strings.Join(line, "  ")
}

func renderAlert(reasons []screening.Reason, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render("Please reach out for support now."))
	b.WriteString("\n")
	for _, reason := range reasons {
		b.WriteString("\n• ")
		b.WriteString(theme.Body.Render(reason.Description()))
	}
	b.WriteString("\n\n")
	for _, ct := range notify.CrisisContacts {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(ct.Name),
			lipgloss.NewStyle().Foreground(theme.Accent).Render(ct.Phone)))
	}
	return theme.AlertCard.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func renderRecommendations(recs instrument.Recommendations, width int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Recommendations"))
	for _, sec := range []struct {
		title string
		items []string
	}{
		{"Immediate actions", recs.Immediate},
		{"Follow-up care", recs.FollowUp},
	} {
		if len(sec.items) == 0 {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(heading.Render(sec.title))
		for _, item := range sec.items {
			b.WriteString("\n• ")
			b.WriteString(theme.Body.Render(item))
		}
	}
	return theme.Card.Width(width).Render(b.String())
}

func renderNotice(width int) string {
	return theme.AlertCard.Width(width).Render(
		lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("Important notice") +
			"\n" + theme.Body.Render(screening.ProfessionalNotice))
}
