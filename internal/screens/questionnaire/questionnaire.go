package questionnaire

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wellcheck/internal/dispatch"
	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/router"
	"github.com/abhisek/wellcheck/internal/screen"
	"github.com/abhisek/wellcheck/internal/screening"
	"github.com/abhisek/wellcheck/internal/screens/results"
	"github.com/abhisek/wellcheck/internal/session"
	"github.com/abhisek/wellcheck/internal/ui/components"
	"github.com/abhisek/wellcheck/internal/ui/layout"
)

// QuestionnaireScreen administers one instrument, a question at a time.
// The position after the last question is a review step holding the
// finalize button.
type QuestionnaireScreen struct {
	machine    *session.Machine
	dispatcher *dispatch.Dispatcher
	inst       *instrument.Instrument

	index  int
	choice components.ScaleChoice
	submit components.Button

	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)
var _ screen.StatusProvider = (*QuestionnaireScreen)(nil)

// New creates a QuestionnaireScreen for the machine's in-progress session.
// dispatcher may be nil, in which case reports are not saved or forwarded.
func New(m *session.Machine, dispatcher *dispatch.Dispatcher) *QuestionnaireScreen {
	s := &QuestionnaireScreen{
		machine:    m,
		dispatcher: dispatcher,
		inst:       m.Instrument(),
	}
	s.submit = components.NewButton("View Results", false, s.finalize)
	s.submit.Focused = true
	s.load()
	return s
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionnaireScreen) Title() string {
	if s.inst == nil {
		return "Assessment"
	}
	return s.inst.Title
}

func (s *QuestionnaireScreen) Status() string {
	p := s.machine.Progress()
	return fmt.Sprintf("%d/%d answered  ", p.Answered, p.Total)
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Discard answers"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.onReview() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "View results"},
			{Key: "←", Description: "Back"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: fmt.Sprintf("0-%d", s.inst.Scale.Max()), Description: "Answer"},
		{Key: "↑↓", Description: "Choose"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Esc", Description: "Quit"},
	}
}

// Index returns the position being shown. len(Questions) is the review step.
func (s *QuestionnaireScreen) Index() int {
	return s.index
}

func (s *QuestionnaireScreen) onReview() bool {
	return s.inst == nil || s.index >= len(s.inst.Questions)
}

// load rebuilds the widgets for the current position.
func (s *QuestionnaireScreen) load() {
	s.submit.Active = s.machine.CanFinalize()
	s.submit.DisabledHint = ""
	if !s.submit.Active {
		p := s.machine.Progress()
		s.submit.DisabledHint = fmt.Sprintf("%d question(s) still unanswered", p.Remaining())
	}
	if s.onReview() {
		return
	}

	q := s.inst.Questions[s.index]
	opts := make([]components.ScaleOption, len(s.inst.Scale))
	current := -1
	recorded, ok := s.machine.Answer(q.ID)
	for i, o := range s.inst.Scale {
		opts[i] = components.ScaleOption{Value: o.Value, Label: o.Label, Description: o.Description}
		if ok && o.Value == recorded {
			current = i
		}
	}
	s.choice = components.NewScaleChoice(fmt.Sprintf("%d. %s", q.Position, q.Prompt), opts, current)
}

func (s *QuestionnaireScreen) goTo(index int) {
	if s.inst == nil {
		return
	}
	s.index = max(0, min(index, len(s.inst.Questions)))
	s.errMsg = ""
	s.load()
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			_ = s.machine.Abandon()
			return s, router.Pop
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.machine.Progress().Answered == 0 {
			_ = s.machine.Abandon()
			return s, router.Pop
		}
		s.showingQuitConfirm = true
		return s, nil
	case "left", "h":
		s.goTo(s.index - 1)
		return s, nil
	case "right", "l", "tab":
		s.goTo(s.index + 1)
		return s, nil
	}

	if s.onReview() {
		if key == "enter" && !s.submit.Active {
			if q, ok := s.machine.NextUnanswered(); ok {
				s.goTo(q.Position - 1)
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.submit, cmd = s.submit.Update(msg)
		return s, cmd
	}

	s.choice, _ = s.choice.Update(msg)
	if opt, picked := s.choice.Chosen(); picked {
		return s.record(opt.Value)
	}
	return s, nil
}

// record stores the chosen answer and advances. Answering the last
// question moves to the first gap, or to review when none remain.
func (s *QuestionnaireScreen) record(value int) (screen.Screen, tea.Cmd) {
	q := s.inst.Questions[s.index]
	if err := s.machine.RecordAnswer(q.ID, value); err != nil {
		s.errMsg = err.Error()
		s.load()
		return s, nil
	}

	next := s.index + 1
	if next >= len(s.inst.Questions) {
		if gap, ok := s.machine.NextUnanswered(); ok {
			next = gap.Position - 1
		}
	}
	s.goTo(next)
	return s, nil
}

func (s *QuestionnaireScreen) finalize() tea.Cmd {
	report, err := s.machine.Finalize()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return tea.Sequence(
		router.Replace(results.New(s.machine, report)),
		dispatchCmd(s.dispatcher, report),
	)
}

func dispatchCmd(d *dispatch.Dispatcher, r screening.Report) tea.Cmd {
	return func() tea.Msg {
		if d == nil {
			return results.DispatchedMsg{}
		}
		out, err := d.Handle(context.Background(), r)
		return results.DispatchedMsg{Outcome: out, Err: err}
	}
}
