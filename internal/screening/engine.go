package screening

import (
	"github.com/abhisek/wellcheck/internal/instrument"
)

// Reason names why a result was escalated.
type Reason string

const (
	// ReasonHighRiskItem: a high-risk question was endorsed with a non-zero
	// value. Applies regardless of the total.
	ReasonHighRiskItem Reason = "high-risk-item"

	// ReasonSevereBand: the total fell in the instrument's most severe band.
	ReasonSevereBand Reason = "severe-band"
)

// Description is a sentence suitable for showing to the person assessed.
func (r Reason) Description() string {
	switch r {
	case ReasonHighRiskItem:
		return "You reported thoughts of being better off dead or of hurting yourself."
	case ReasonSevereBand:
		return "Your score is in the most severe range."
	default:
		return string(r)
	}
}

// Engine runs classification and escalation against one catalog.
// It holds no mutable state and may be shared.
type Engine struct {
	catalog *instrument.Catalog
}

// New returns an engine over cat.
func New(cat *instrument.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Catalog returns the engine's instrument catalog.
func (e *Engine) Catalog() *instrument.Catalog {
	return e.catalog
}

// Classify maps a total to exactly one severity band.
func (e *Engine) Classify(id instrument.ID, total int) (instrument.Band, error) {
	in, err := e.catalog.Get(id)
	if err != nil {
		return instrument.Band{}, err
	}
	return classify(in, total)
}

func classify(in *instrument.Instrument, total int) (instrument.Band, error) {
	b, ok := in.BandFor(total)
	if !ok {
		return instrument.Band{}, &ErrScoreOutOfRange{
			InstrumentID: in.ID,
			Score:        total,
			Min:          in.MinScore(),
			Max:          in.MaxScore(),
		}
	}
	return b, nil
}

// EscalationReasons returns every rule that fires for the result, high-risk
// items first. An empty result means no escalation.
func (e *Engine) EscalationReasons(id instrument.ID, total int, responses map[string]int) ([]Reason, error) {
	in, err := e.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	return escalationReasons(in, total, responses)
}

func escalationReasons(in *instrument.Instrument, total int, responses map[string]int) ([]Reason, error) {
	band, err := classify(in, total)
	if err != nil {
		return nil, err
	}

	var reasons []Reason
	for _, q := range in.HighRiskQuestions() {
		if responses[q.ID] > 0 {
			reasons = append(reasons, ReasonHighRiskItem)
			break
		}
	}
	if band.Rank == in.MostSevereBand().Rank {
		reasons = append(reasons, ReasonSevereBand)
	}
	return reasons, nil
}

// ShouldEscalate reports whether the result needs a crisis-support pathway.
func (e *Engine) ShouldEscalate(id instrument.ID, total int, responses map[string]int) (bool, error) {
	reasons, err := e.EscalationReasons(id, total, responses)
	if err != nil {
		return false, err
	}
	return len(reasons) > 0, nil
}

// Evaluate runs Score, Classify and the escalation policy in that order.
// No report is produced unless every step succeeds.
func (e *Engine) Evaluate(c *Collector) (Report, error) {
	in, err := e.catalog.Get(c.inst.ID)
	if err != nil {
		return Report{}, err
	}
	total, err := Score(c)
	if err != nil {
		return Report{}, err
	}
	band, err := classify(in, total)
	if err != nil {
		return Report{}, err
	}
	responses := c.Responses()
	reasons, err := escalationReasons(in, total, responses)
	if err != nil {
		return Report{}, err
	}
	return Report{
		instrumentID: in.ID,
		title:        in.Title,
		total:        total,
		maxScore:     in.MaxScore(),
		band:         band,
		reasons:      reasons,
		responses:    responses,
	}, nil
}

var defaultEngine = New(instrument.Builtin())

// Default returns the engine over the built-in catalog.
func Default() *Engine { return defaultEngine }

// Classify uses the built-in catalog.
func Classify(id instrument.ID, total int) (instrument.Band, error) {
	return defaultEngine.Classify(id, total)
}

// EscalationReasons uses the built-in catalog.
func EscalationReasons(id instrument.ID, total int, responses map[string]int) ([]Reason, error) {
	return defaultEngine.EscalationReasons(id, total, responses)
}

// ShouldEscalate uses the built-in catalog.
func ShouldEscalate(id instrument.ID, total int, responses map[string]int) (bool, error) {
	return defaultEngine.ShouldEscalate(id, total, responses)
}

// Evaluate uses the built-in catalog.
func Evaluate(c *Collector) (Report, error) {
	return defaultEngine.Evaluate(c)
}
