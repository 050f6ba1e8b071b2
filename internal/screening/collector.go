package screening

import (
	"maps"

	"github.com/abhisek/wellcheck/internal/instrument"
)

// Collector holds the in-progress answers for one administration of one
// instrument. It is not safe for concurrent use; each session owns its own.
type Collector struct {
	inst    *instrument.Instrument
	answers map[string]int
}

// NewCollector returns an empty collector bound to inst.
func NewCollector(inst *instrument.Instrument) *Collector {
	return &Collector{
		inst:    inst,
		answers: make(map[string]int, len(inst.Questions)),
	}
}

// Instrument returns the instrument this collector is bound to.
func (c *Collector) Instrument() *instrument.Instrument {
	return c.inst
}

// RecordAnswer sets or revises the answer for a question. Revision is always
// allowed, including once every question has been answered.
func (c *Collector) RecordAnswer(questionID string, value int) error {
	if _, ok := c.inst.Question(questionID); !ok {
		return &ErrUnknownQuestion{InstrumentID: c.inst.ID, QuestionID: questionID}
	}
	if !c.inst.Scale.Contains(value) {
		return &ErrInvalidResponse{InstrumentID: c.inst.ID, QuestionID: questionID, Value: value}
	}
	c.answers[questionID] = value
	return nil
}

// Answer returns the recorded value for a question.
func (c *Collector) Answer(questionID string) (int, bool) {
	v, ok := c.answers[questionID]
	return v, ok
}

// AnsweredCount is the number of distinct questions answered.
func (c *Collector) AnsweredCount() int {
	return len(c.answers)
}

// IsComplete reports whether every question has an answer.
func (c *Collector) IsComplete() bool {
	for _, q := range c.inst.Questions {
		if _, ok := c.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// NextUnanswered returns the first unanswered question in position order.
func (c *Collector) NextUnanswered() (instrument.Question, bool) {
	for _, q := range c.inst.Questions {
		if _, ok := c.answers[q.ID]; !ok {
			return q, true
		}
	}
	return instrument.Question{}, false
}

// Responses returns a copy of the answer map.
func (c *Collector) Responses() map[string]int {
	return maps.Clone(c.answers)
}
