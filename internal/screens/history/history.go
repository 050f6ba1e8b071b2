package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/router"
	"github.com/abhisek/wellcheck/internal/screen"
	"github.com/abhisek/wellcheck/internal/store"
	"github.com/abhisek/wellcheck/internal/ui/layout"
	"github.com/abhisek/wellcheck/internal/ui/theme"
)

const (
	listLimit = 50
	pageStep  = 10
)

type historyLoadedMsg struct {
	Filter  instrument.ID
	Reports []store.ReportRecord
	Err     error
}

// HistoryScreen lists saved reports, newest first.
type HistoryScreen struct {
	repo        store.ReportRepo
	instruments []*instrument.Instrument

	filter   int // 0 is all, i is instruments[i-1]
	reports  []store.ReportRecord
	selected int
	expanded map[int64]bool
	loaded   bool
	errMsg   string

	vp viewport.Model
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. instruments drive the filter cycle and
// question labels in the expanded view.
func New(repo store.ReportRepo, instruments []*instrument.Instrument) *HistoryScreen {
	return &HistoryScreen{
		repo:        repo,
		instruments: instruments,
		expanded:    make(map[int64]bool),
		vp:          viewport.New(),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) filterID() instrument.ID {
	if s.filter == 0 || s.filter > len(s.instruments) {
		return ""
	}
	return s.instruments[s.filter-1].ID
}

func (s *HistoryScreen) load() tea.Cmd {
	repo := s.repo
	id := s.filterID()
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{Filter: id}
		}
		recs, err := repo.List(context.Background(), store.QueryOpts{
			Limit:        listLimit,
			InstrumentID: string(id),
		})
		return historyLoadedMsg{Filter: id, Reports: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "F", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Filter != s.filterID() {
			return s, nil
		}
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.reports = msg.Reports
		}
		s.selected = 0
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.reports)-1 {
				s.selected++
			}
			return s, nil
		case "pgup":
			s.selected = max(s.selected-pageStep, 0)
			return s, nil
		case "pgdown":
			s.selected = max(min(s.selected+pageStep, len(s.reports)-1), 0)
			return s, nil
		case "enter":
			if s.selected < len(s.reports) {
				id := s.reports[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
			return s, nil
		case "f":
			s.filter = (s.filter + 1) % (len(s.instruments) + 1)
			s.loaded = false
			return s, s.load()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	filter := "All assessments"
	if id := s.filterID(); id != "" {
		filter = s.instruments[s.filter-1].Title
	}
	b.WriteString(center.Render(theme.Hint.Render("Showing: " + filter)))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(center.Foreground(theme.Error).Render("Error: " + s.errMsg))
		return b.String()
	}
	if !s.loaded {
		b.WriteString(center.Foreground(theme.TextDim).Render("Loading history..."))
		return b.String()
	}
	if len(s.reports) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).
			Render("No saved results yet."))
		return b.String()
	}

	var rows []string
	selectedLine := 0
	for i, rec := range s.reports {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
			selectedLine = len(rows)
		}
		flag := "  "
		if rec.Escalate {
			flag = "! "
		}
		line := fmt.Sprintf("%s%s%s  %-5s  %2d/%-2d  %s",
			prefix, flag,
			rec.CompletedAt.Local().Format("Jan 02, 2006 15:04"),
			strings.ToUpper(rec.InstrumentID),
			rec.Total, rec.MaxScore, rec.BandLabel)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case rec.Escalate:
			style = style.Foreground(theme.Error)
		}
		rows = append(rows, layout.Centered(style.Render(line), width))

		if s.expanded[rec.ID] {
			for _, d := range s.details(rec) {
				rows = append(rows, layout.Centered(theme.Hint.Render(d), width))
			}
		}
	}

	// The header above takes three lines.
	s.vp.SetWidth(width)
	s.vp.SetHeight(max(height-3, 1))
	s.vp.SetContentLines(rows)
	s.vp.EnsureVisible(selectedLine, 0, 0)
	b.WriteString(s.vp.View())

	return b.String()
}

// details renders the per-question answers and escalation reasons of rec.
func (s *HistoryScreen) details(rec store.ReportRecord) []string {
	var lines []string
	if len(rec.Reasons) > 0 {
		lines = append(lines, "    Escalated: "+strings.Join(rec.Reasons, ", "))
	}

	var in *instrument.Instrument
	for _, cand := range s.instruments {
		if string(cand.ID) == rec.InstrumentID {
			in = cand
			break
		}
	}
	if in == nil {
		ids := make([]string, 0, len(rec.Responses))
		for id := range rec.Responses {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			lines = append(lines, fmt.Sprintf("    %s: %d", id, rec.Responses[id]))
		}
		return lines
	}

	for _, q := range in.Questions {
		v, ok := rec.Responses[q.ID]
		if !ok {
			continue
		}
		label := fmt.Sprint(v)
		if opt, ok := in.Scale.Option(v); ok {
			label = opt.Label
		}
		lines = append(lines, fmt.Sprintf("    %d. %s: %s", q.Position, q.Prompt, label))
	}
	return lines
}
