package session

import "fmt"

// Phase represents the current phase of an administration.
type Phase int

const (
	PhaseSelection  Phase = iota // Choosing an instrument
	PhaseInProgress              // Answering questions
	PhaseCompleted               // Report available
)

func (p Phase) String() string {
	switch p {
	case PhaseSelection:
		return "selection"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrInvalidTransition is returned when an action is not allowed in the
// machine's current phase.
type ErrInvalidTransition struct {
	From   Phase
	Action string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.From)
}
