package instrument

import "slices"

// ID identifies a screening instrument.
type ID string

const (
	Depression ID = "phq9"
	Anxiety    ID = "gad7"
)

// Severity is the machine-readable name of a severity band.
type Severity string

const (
	SeverityMinimal          Severity = "minimal"
	SeverityMild             Severity = "mild"
	SeverityModerate         Severity = "moderate"
	SeverityModeratelySevere Severity = "moderately-severe"
	SeveritySevere           Severity = "severe"
)

// ScaleOption is one allowed answer value.
type ScaleOption struct {
	Value       int
	Label       string
	Description string
}

// ResponseScale is the ordered set of allowed answer values, contiguous from 0.
type ResponseScale []ScaleOption

// Contains reports whether v is an allowed answer value.
func (s ResponseScale) Contains(v int) bool {
	for _, o := range s {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Max returns the largest allowed value, or 0 for an empty scale.
func (s ResponseScale) Max() int {
	m := 0
	for _, o := range s {
		if o.Value > m {
			m = o.Value
		}
	}
	return m
}

// Option returns the option for value v.
func (s ResponseScale) Option(v int) (ScaleOption, bool) {
	for _, o := range s {
		if o.Value == v {
			return o, true
		}
	}
	return ScaleOption{}, false
}

// Question is a single scored item.
type Question struct {
	ID       string
	Position int // 1-based
	Prompt   string

	// HighRisk marks the self-harm ideation item. Any non-zero answer on it
	// escalates regardless of the total score.
	HighRisk bool
}

// Recommendations are the next steps suggested for a band.
type Recommendations struct {
	Immediate []string
	FollowUp  []string
}

// IsEmpty reports whether there is nothing to suggest.
func (r Recommendations) IsEmpty() bool {
	return len(r.Immediate) == 0 && len(r.FollowUp) == 0
}

// Band is one row of a severity table. Min and Max are inclusive.
type Band struct {
	Severity Severity
	Label    string
	Rank     int // 0 is the least severe
	Min      int
	Max      int
	Advisory string

	// SeekProfessional marks bands where speaking with a mental health
	// professional is recommended. It is advice only and does not escalate.
	SeekProfessional bool
	Recommendations  Recommendations
}

// Clone returns a copy of b that shares no slices with it.
func (b Band) Clone() Band {
	b.Recommendations = Recommendations{
		Immediate: slices.Clone(b.Recommendations.Immediate),
		FollowUp:  slices.Clone(b.Recommendations.FollowUp),
	}
	return b
}

// Contains reports whether score falls inside the band.
func (b Band) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Instrument is an immutable questionnaire definition.
type Instrument struct {
	ID          ID
	Version     string
	Name        string
	Title       string
	Description string
	Duration    string
	Stem        string
	Scale       ResponseScale
	Questions   []Question
	Bands       []Band
}

// MinScore is always 0 for additive scoring over a scale starting at 0.
func (in *Instrument) MinScore() int {
	return 0
}

// MaxScore is the highest attainable total.
func (in *Instrument) MaxScore() int {
	return len(in.Questions) * in.Scale.Max()
}

// Question returns the question with the given ID.
func (in *Instrument) Question(id string) (Question, bool) {
	for _, q := range in.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// HighRiskQuestions returns every question flagged as a high-risk indicator.
func (in *Instrument) HighRiskQuestions() []Question {
	var out []Question
	for _, q := range in.Questions {
		if q.HighRisk {
			out = append(out, q)
		}
	}
	return out
}

// MostSevereBand returns the last band of the severity table.
func (in *Instrument) MostSevereBand() Band {
	return in.Bands[len(in.Bands)-1]
}

// BandFor returns the band containing score. ok is false when score is
// outside the instrument's range.
func (in *Instrument) BandFor(score int) (Band, bool) {
	if score < in.MinScore() || score > in.MaxScore() {
		return Band{}, false
	}
	for _, b := range in.Bands {
		if score <= b.Max {
			return b, true
		}
	}
	return Band{}, false
}
