package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/screening"
)

// Machine drives one assessment at a time through
// Selection -> InProgress -> Completed. It exclusively owns the current
// response collector and is not safe for concurrent use.
type Machine struct {
	engine *screening.Engine
	now    func() time.Time
	newID  func() string

	phase     Phase
	sessionID string
	startedAt time.Time
	collector *screening.Collector
	report    screening.Report
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the time source used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(m *Machine) { m.newID = gen }
}

// New returns a machine in PhaseSelection.
func New(engine *screening.Engine, opts ...Option) *Machine {
	m := &Machine{
		engine: engine,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		phase:  PhaseSelection,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// SessionID returns the ID of the current administration, empty in
// PhaseSelection.
func (m *Machine) SessionID() string { return m.sessionID }

// StartedAt returns when the current administration began.
func (m *Machine) StartedAt() time.Time { return m.startedAt }

// Instruments lists what can be selected.
func (m *Machine) Instruments() []*instrument.Instrument {
	return m.engine.Catalog().All()
}

// Instrument returns the instrument being administered, or nil in
// PhaseSelection.
func (m *Machine) Instrument() *instrument.Instrument {
	if m.collector == nil {
		return nil
	}
	return m.collector.Instrument()
}

// Select binds a fresh, empty session to the instrument and moves to
// PhaseInProgress.
func (m *Machine) Select(id instrument.ID) error {
	if m.phase != PhaseSelection {
		return &ErrInvalidTransition{From: m.phase, Action: "select an instrument"}
	}
	in, err := m.engine.Catalog().Get(id)
	if err != nil {
		return err
	}
	m.collector = screening.NewCollector(in)
	m.sessionID = m.newID()
	m.startedAt = m.now()
	m.phase = PhaseInProgress
	return nil
}

// RecordAnswer records or revises one answer.
func (m *Machine) RecordAnswer(questionID string, value int) error {
	if m.phase != PhaseInProgress {
		return &ErrInvalidTransition{From: m.phase, Action: "record an answer"}
	}
	return m.collector.RecordAnswer(questionID, value)
}

// Answer returns the recorded value for a question in the current session.
func (m *Machine) Answer(questionID string) (int, bool) {
	if m.collector == nil {
		return 0, false
	}
	return m.collector.Answer(questionID)
}

// Progress reports how many questions have been answered.
func (m *Machine) Progress() Progress {
	if m.collector == nil {
		return Progress{}
	}
	return Progress{
		Answered: m.collector.AnsweredCount(),
		Total:    len(m.collector.Instrument().Questions),
	}
}

// NextUnanswered returns the first unanswered question of the current session.
func (m *Machine) NextUnanswered() (instrument.Question, bool) {
	if m.phase != PhaseInProgress {
		return instrument.Question{}, false
	}
	return m.collector.NextUnanswered()
}

// CanFinalize is the guard for Finalize: in progress and every question
// answered.
func (m *Machine) CanFinalize() bool {
	return m.phase == PhaseInProgress && m.collector.IsComplete()
}

// Finalize scores, classifies and applies the escalation policy, then moves
// to PhaseCompleted. On error the machine stays where it was and no report
// is produced.
func (m *Machine) Finalize() (screening.Report, error) {
	if m.phase != PhaseInProgress {
		return screening.Report{}, &ErrInvalidTransition{From: m.phase, Action: "finalize"}
	}
	r, err := m.engine.Evaluate(m.collector)
	if err != nil {
		return screening.Report{}, err
	}
	m.report = r.Stamped(m.sessionID, m.now())
	m.phase = PhaseCompleted
	return m.report, nil
}

// Report returns the report of the completed administration.
func (m *Machine) Report() (screening.Report, bool) {
	if m.phase != PhaseCompleted {
		return screening.Report{}, false
	}
	return m.report, true
}

// Restart discards the completed session and returns to PhaseSelection.
func (m *Machine) Restart() error {
	if m.phase != PhaseCompleted {
		return &ErrInvalidTransition{From: m.phase, Action: "restart"}
	}
	m.reset()
	return nil
}

// Abandon discards an in-progress session and returns to PhaseSelection.
func (m *Machine) Abandon() error {
	if m.phase != PhaseInProgress {
		return &ErrInvalidTransition{From: m.phase, Action: "abandon"}
	}
	m.reset()
	return nil
}

func (m *Machine) reset() {
	m.collector = nil
	m.report = screening.Report{}
	m.sessionID = ""
	m.startedAt = time.Time{}
	m.phase = PhaseSelection
}
