package screening

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/wellcheck/internal/instrument"
)

// Report is the immutable result of one completed administration. Accessors
// return copies, so a Report can be handed to any number of readers.
type Report struct {
	sessionID    string
	instrumentID instrument.ID
	title        string
	total        int
	maxScore     int
	band         instrument.Band
	reasons      []Reason
	responses    map[string]int
	completedAt  time.Time
}

// Stamped returns a copy of r carrying the session ID and completion time.
func (r Report) Stamped(sessionID string, at time.Time) Report {
	r.sessionID = sessionID
	r.completedAt = at
	return r
}

func (r Report) SessionID() string { return r.sessionID }
func (r Report) InstrumentID() instrument.ID { return r.instrumentID }
func (r Report) Title() string { return r.title }
func (r Report) Total() int { return r.total }
func (r Report) MaxScore() int { return r.maxScore }
func (r Report) Band() instrument.Band { return r.band.Clone() }
func (r Report) Severity() instrument.Severity { return r.band.Severity }
func (r Report) Advisory() string { return r.band.Advisory }
func (r Report) Escalate() bool { return len(r.reasons) > 0 }
func (r Report) CompletedAt() time.Time { return r.completedAt }
func (r Report) Reasons() []Reason { return slices.Clone(r.reasons) }
func (r Report) Responses() map[string]int { return maps.Clone(r.responses) }
func (r Report) IsZero() bool { return r.instrumentID == "" }

// SeekProfessional reports whether the band recommends speaking with a
// professional. Unlike Escalate it asks for no immediate action.
func (r Report) SeekProfessional() bool { return r.band.SeekProfessional }

// Recommendations returns the next steps suggested for the band.
func (r Report) Recommendations() instrument.Recommendations {
	return r.band.Clone().Recommendations
}

// ProfessionalNotice is shown with reports whose band recommends seeing a
// professional.
const ProfessionalNotice = "Your assessment indicates significant symptoms. " +
	"We strongly recommend speaking with a mental health professional. " +
	"Campus counselors are available to help."
