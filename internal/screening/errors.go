package screening

import (
	"fmt"

	"github.com/abhisek/wellcheck/internal/instrument"
)

// ErrUnknownInstrument is re-exported so callers of this package can match it
// without importing instrument.
type ErrUnknownInstrument = instrument.ErrUnknownInstrument

// ErrInvalidResponse indicates an answer value outside the instrument's scale.
type ErrInvalidResponse struct {
	InstrumentID instrument.ID
	QuestionID   string
	Value        int
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid response %d for question %q of %s", e.Value, e.QuestionID, e.InstrumentID)
}

// ErrUnknownQuestion indicates a question ID that does not belong to the
// active instrument.
type ErrUnknownQuestion struct {
	InstrumentID instrument.ID
	QuestionID   string
}

func (e *ErrUnknownQuestion) Error() string {
	return fmt.Sprintf("question %q does not belong to %s", e.QuestionID, e.InstrumentID)
}

// ErrIncompleteAssessment indicates scoring was attempted before every
// question was answered.
type ErrIncompleteAssessment struct {
	InstrumentID instrument.ID
	Answered     int
	Total        int
}

func (e *ErrIncompleteAssessment) Error() string {
	return fmt.Sprintf("%s incomplete: %d of %d questions answered", e.InstrumentID, e.Answered, e.Total)
}

// ErrScoreOutOfRange indicates a total outside the instrument's valid range.
// Reaching it means the catalog and scorer disagree.
type ErrScoreOutOfRange struct {
	InstrumentID instrument.ID
	Score        int
	Min          int
	Max          int
}

func (e *ErrScoreOutOfRange) Error() string {
	return fmt.Sprintf("score %d out of range %d-%d for %s", e.Score, e.Min, e.Max, e.InstrumentID)
}
