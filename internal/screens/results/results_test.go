package results

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wellcheck/internal/dispatch"
	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/router"
	"github.com/abhisek/wellcheck/internal/screening"
	"github.com/abhisek/wellcheck/internal/screens/crisis"
	"github.com/abhisek/wellcheck/internal/session"
)

func completed(t *testing.T, id instrument.ID, value int) (*session.Machine, screening.Report) {
	t.Helper()
	m := session.New(screening.Default())
	if err := m.Select(id); err != nil {
		t.Fatalf("Select: %v", err)
	}
	values := make([]int, len(m.Instrument().Questions))
	for i := range values {
		values[i] = value
	}
	return finish(t, m, values)
}

// completedWith answers each question with the matching value.
func completedWith(t *testing.T, id instrument.ID, values ...int) (*session.Machine, screening.Report) {
	t.Helper()
	m := session.New(screening.Default())
	if err := m.Select(id); err != nil {
		t.Fatalf("Select: %v", err)
	}
	return finish(t, m, values)
}

func finish(t *testing.T, m *session.Machine, values []int) (*session.Machine, screening.Report) {
	t.Helper()
	for i, q := range m.Instrument().Questions {
		if err := m.RecordAnswer(q.ID, values[i]); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}
	r, err := m.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return m, r
}

func TestResultsScreen_Display(t *testing.T) {
	m, r := completed(t, instrument.Anxiety, 1)
	s := New(m, r)
	view := s.View(100, 80)
	for _, want := range []string{"Score: 7 / 21", "Mild", "Saving..."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Please reach out") {
		t.Error("non-escalated report should not show the alert")
	}
}

func TestResultsScreen_EscalationAlert(t *testing.T) {
	m, r := completed(t, instrument.Depression, 3)
	s := New(m, r)
	view := s.View(100, 120)
	if !strings.Contains(view, "Please reach out") {
		t.Error("escalated report should show the alert")
	}
	if !strings.Contains(view, "108") {
		t.Error("alert should list emergency services")
	}

	var hasCrisisHint bool
	for _, h := range s.KeyHints() {
		if h.Key == "C" {
			hasCrisisHint = true
		}
	}
	if !hasCrisisHint {
		t.Error("expected crisis key hint")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*crisis.CrisisScreen); !ok {
		t.Errorf("pushed %T, want crisis screen", push.Screen)
	}
}

func TestResultsScreen_DispatchStatus(t *testing.T) {
	m, r := completed(t, instrument.Anxiety, 0)
	s := New(m, r)

	s.Update(DispatchedMsg{Outcome: dispatch.Outcome{ReportID: 4, Saved: true}})
	if !strings.Contains(s.View(100, 80), "Saved to history (#4)") {
		t.Error("view should confirm the save")
	}

	s.Update(DispatchedMsg{Err: errors.New("disk full")})
	if !strings.Contains(s.View(100, 80), "disk full") {
		t.Error("view should show the dispatch error")
	}
}

func TestResultsScreen_EnterRestarts(t *testing.T) {
	m, r := completed(t, instrument.Anxiety, 0)
	s := New(m, r)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
	if m.Phase() != session.PhaseSelection {
		t.Errorf("Phase = %v, want selection", m.Phase())
	}
}

func TestResultsScreen_Recommendations(t *testing.T) {
	m, r := completed(t, instrument.Anxiety, 1)
	view := New(m, r).View(100, 80)
	for _, want := range []string{"Recommendations", "Immediate actions", "Follow-up care",
		r.Recommendations().Immediate[0], r.Recommendations().FollowUp[0]} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Important notice") {
		t.Error("mild result should not show the professional notice")
	}
}

func TestResultsScreen_ProfessionalNoticeWithoutEscalation(t *testing.T) {
	m, r := completedWith(t, instrument.Depression, 3, 3, 3, 3, 3, 2, 1, 1, 0)
	if r.Escalate() {
		t.Fatal("total 19 without the self-harm item must not escalate")
	}
	view := New(m, r).View(100, 80)
	if !strings.Contains(view, "Moderately Severe") {
		t.Error("view missing band label")
	}
	if !strings.Contains(view, "Important notice") {
		t.Error("moderately severe result should show the professional notice")
	}
	if !strings.Contains(view, "mental health professional") {
		t.Error("notice text missing")
	}
	if strings.Contains(view, "Please reach out") {
		t.Error("notice must not turn into the escalation alert")
	}
}

func TestResultsScreen_Scrolls(t *testing.T) {
	m, r := completed(t, instrument.Depression, 3)
	s := New(m, r)
	top := s.View(100, 10)
	if !strings.Contains(top, "Score: 27 / 27") {
		t.Fatal("first page should show the score")
	}

	for range 10 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	}
	bottom := s.View(100, 10)
	if strings.Contains(bottom, "Score: 27 / 27") {
		t.Error("score should scroll out of view")
	}
	if !strings.Contains(bottom, "not a diagnosis") {
		t.Error("last page should show the disclaimer")
	}
}
