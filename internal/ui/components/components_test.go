package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testOptions() []ScaleOption {
	return []ScaleOption{
		{Value: 0, Label: "Not at all"},
		{Value: 1, Label: "Several days"},
		{Value: 2, Label: "More than half the days"},
		{Value: 3, Label: "Nearly every day"},
	}
}

func TestScaleChoice_ArrowsAndEnter(t *testing.T) {
	c := NewScaleChoice("Feeling tired", testOptions(), -1)
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})

	if _, ok := c.Chosen(); ok {
		t.Fatal("nothing should be chosen before Enter")
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	opt, ok := c.Chosen()
	if !ok {
		t.Fatal("expected a choice after Enter")
	}
	if opt.Value != 1 {
		t.Errorf("chosen value = %d, want 1", opt.Value)
	}
}

func TestScaleChoice_DigitSelectsDirectly(t *testing.T) {
	c := NewScaleChoice("Feeling tired", testOptions(), -1)
	c, _ = c.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	opt, ok := c.Chosen()
	if !ok || opt.Value != 3 {
		t.Errorf("chosen = %+v, %v; want value 3", opt, ok)
	}
}

func TestScaleChoice_DigitOutOfScaleIgnored(t *testing.T) {
	c := NewScaleChoice("Feeling tired", testOptions(), -1)
	c, _ = c.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	if _, ok := c.Chosen(); ok {
		t.Error("value 7 is not on the scale")
	}
}

func TestScaleChoice_PreselectsCurrent(t *testing.T) {
	c := NewScaleChoice("Feeling tired", testOptions(), 2)
	if c.Selected != 2 {
		t.Errorf("Selected = %d, want 2", c.Selected)
	}
	if !strings.Contains(c.View(), "✓") {
		t.Error("view should mark the recorded answer")
	}
}

func TestScaleChoice_CursorBounds(t *testing.T) {
	c := NewScaleChoice("p", testOptions(), -1)
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if c.Selected != 0 {
		t.Errorf("Selected = %d, want 0", c.Selected)
	}
	for range 10 {
		c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if c.Selected != 3 {
		t.Errorf("Selected = %d, want 3", c.Selected)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	items := []MenuItem{
		{Label: "A", Action: func() tea.Cmd { called = "A"; return nil }},
		{Label: "B", Disabled: true},
		{Label: "C", Action: func() tea.Cmd { called = "C"; return nil }},
	}
	m := NewMenu(items)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if called != "C" {
		t.Errorf("called = %q, want C", called)
	}
}

func TestMenu_ViewShowsDetail(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "PHQ-9", Detail: "5-7 minutes"}})
	if !strings.Contains(m.View(), "5-7 minutes") {
		t.Error("view should include item detail")
	}
}

func TestButton_InactiveIgnoresEnter(t *testing.T) {
	pressed := false
	b := NewButton("View Results", false, func() tea.Cmd { pressed = true; return nil })
	b.DisabledHint = "Answer every question first"
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed {
		t.Error("inactive button should not fire")
	}
	if !strings.Contains(b.View(), "Answer every question first") {
		t.Error("inactive view should show hint")
	}

	b.Active = true
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !pressed {
		t.Error("active button should fire on Enter")
	}
}

func TestStepProgress(t *testing.T) {
	p := NewStepProgress(3, 9, 2, 60)
	view := p.View()
	if !strings.Contains(view, "Question 3 of 9") {
		t.Errorf("view missing label: %q", view)
	}
	if !strings.Contains(view, "22%") {
		t.Errorf("view missing percent: %q", view)
	}
}
