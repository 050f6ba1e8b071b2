package screening

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wellcheck/internal/instrument"
)

func mustGet(t *testing.T, id instrument.ID) *instrument.Instrument {
	t.Helper()
	in, err := instrument.Get(id)
	require.NoError(t, err)
	return in
}

// answerAll records values in question order.
func answerAll(t *testing.T, c *Collector, values ...int) {
	t.Helper()
	require.Len(t, values, len(c.Instrument().Questions))
	for i, q := range c.Instrument().Questions {
		require.NoError(t, c.RecordAnswer(q.ID, values[i]))
	}
}

func TestCollector_RecordAnswer(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Depression))
	assert.Equal(t, 0, c.AnsweredCount())
	assert.False(t, c.IsComplete())

	require.NoError(t, c.RecordAnswer("phq9-1", 2))
	v, ok := c.Answer("phq9-1")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.AnsweredCount())

	_, ok = c.Answer("phq9-2")
	assert.False(t, ok)
}

func TestCollector_RevisionIsLastWriteWins(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Anxiety))
	require.NoError(t, c.RecordAnswer("gad7-3", 1))
	require.NoError(t, c.RecordAnswer("gad7-3", 3))

	v, _ := c.Answer("gad7-3")
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, c.AnsweredCount())
}

func TestCollector_RevisionAfterComplete(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Anxiety))
	answerAll(t, c, 0, 0, 0, 0, 0, 0, 0)
	require.True(t, c.IsComplete())

	require.NoError(t, c.RecordAnswer("gad7-1", 2))
	assert.True(t, c.IsComplete())
	total, err := Score(c)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestCollector_InvalidResponse(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Depression))
	for _, v := range []int{-1, 4, 100} {
		err := c.RecordAnswer("phq9-1", v)
		var invalid *ErrInvalidResponse
		require.True(t, errors.As(err, &invalid), "value %d", v)
		assert.Equal(t, v, invalid.Value)
		assert.Equal(t, "phq9-1", invalid.QuestionID)
	}
	assert.Equal(t, 0, c.AnsweredCount())
}

func TestCollector_UnknownQuestion(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Anxiety))
	// A depression item is not part of the anxiety instrument.
	err := c.RecordAnswer("phq9-1", 1)
	var unknown *ErrUnknownQuestion
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, instrument.Anxiety, unknown.InstrumentID)
	assert.Equal(t, 0, c.AnsweredCount())
}

func TestCollector_NextUnanswered(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Anxiety))
	q, ok := c.NextUnanswered()
	require.True(t, ok)
	assert.Equal(t, "gad7-1", q.ID)

	require.NoError(t, c.RecordAnswer("gad7-1", 0))
	require.NoError(t, c.RecordAnswer("gad7-3", 0))
	q, _ = c.NextUnanswered()
	assert.Equal(t, "gad7-2", q.ID)

	answerAll(t, c, 1, 1, 1, 1, 1, 1, 1)
	_, ok = c.NextUnanswered()
	assert.False(t, ok)
}

func TestCollector_ResponsesIsCopy(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Anxiety))
	require.NoError(t, c.RecordAnswer("gad7-1", 1))
	r := c.Responses()
	r["gad7-1"] = 3
	r["gad7-2"] = 3
	v, _ := c.Answer("gad7-1")
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, c.AnsweredCount())
}

func TestScore_Incomplete(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Depression))
	require.NoError(t, c.RecordAnswer("phq9-1", 3))

	_, err := Score(c)
	var incomplete *ErrIncompleteAssessment
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, 1, incomplete.Answered)
	assert.Equal(t, 9, incomplete.Total)
}

func TestScore_SumOfRandomAssignments(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for _, in := range instrument.All() {
		for range 200 {
			c := NewCollector(in)
			sum := 0
			for _, q := range in.Questions {
				v := rng.IntN(in.Scale.Max() + 1)
				sum += v
				require.NoError(t, c.RecordAnswer(q.ID, v))
			}
			total, err := Score(c)
			require.NoError(t, err)
			assert.Equal(t, sum, total)
			assert.GreaterOrEqual(t, total, in.MinScore())
			assert.LessOrEqual(t, total, in.MaxScore())
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		id    instrument.ID
		total int
		want  instrument.Severity
	}{
		{instrument.Depression, 0, instrument.SeverityMinimal},
		{instrument.Depression, 4, instrument.SeverityMinimal},
		{instrument.Depression, 5, instrument.SeverityMild},
		{instrument.Depression, 9, instrument.SeverityMild},
		{instrument.Depression, 10, instrument.SeverityModerate},
		{instrument.Depression, 14, instrument.SeverityModerate},
		{instrument.Depression, 15, instrument.SeverityModeratelySevere},
		{instrument.Depression, 19, instrument.SeverityModeratelySevere},
		{instrument.Depression, 20, instrument.SeveritySevere},
		{instrument.Depression, 27, instrument.SeveritySevere},
		{instrument.Anxiety, 0, instrument.SeverityMinimal},
		{instrument.Anxiety, 4, instrument.SeverityMinimal},
		{instrument.Anxiety, 5, instrument.SeverityMild},
		{instrument.Anxiety, 9, instrument.SeverityMild},
		{instrument.Anxiety, 10, instrument.SeverityModerate},
		{instrument.Anxiety, 14, instrument.SeverityModerate},
		{instrument.Anxiety, 15, instrument.SeveritySevere},
		{instrument.Anxiety, 21, instrument.SeveritySevere},
	}
	for _, tt := range tests {
		b, err := Classify(tt.id, tt.total)
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Severity, "%s total %d", tt.id, tt.total)
	}
}

func TestClassify_ExactlyOneBandPerScore(t *testing.T) {
	for _, in := range instrument.All() {
		for total := in.MinScore(); total <= in.MaxScore(); total++ {
			b, err := Classify(in.ID, total)
			require.NoError(t, err)
			matches := 0
			for _, other := range in.Bands {
				if other.Contains(total) {
					matches++
					assert.Equal(t, other.Label, b.Label)
				}
			}
			assert.Equal(t, 1, matches, "%s total %d", in.ID, total)
		}
	}
}

func TestClassify_OutOfRange(t *testing.T) {
	for _, total := range []int{-1, 22} {
		_, err := Classify(instrument.Anxiety, total)
		var oor *ErrScoreOutOfRange
		require.True(t, errors.As(err, &oor), "total %d", total)
		assert.Equal(t, 0, oor.Min)
		assert.Equal(t, 21, oor.Max)
	}
	_, err := Classify(instrument.Depression, 28)
	var oor *ErrScoreOutOfRange
	assert.True(t, errors.As(err, &oor))
}

func TestClassify_UnknownInstrument(t *testing.T) {
	_, err := Classify("bdi", 3)
	var unknown *ErrUnknownInstrument
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, instrument.ID("bdi"), unknown.ID)

	_, err = ShouldEscalate("bdi", 3, nil)
	assert.True(t, errors.As(err, &unknown))
}

func TestShouldEscalate(t *testing.T) {
	tests := []struct {
		name      string
		id        instrument.ID
		total     int
		responses map[string]int
		want      []Reason
	}{
		{"low total no risk", instrument.Depression, 3, map[string]int{"phq9-1": 3}, nil},
		{"self-harm endorsed", instrument.Depression, 1, map[string]int{"phq9-9": 1}, []Reason{ReasonHighRiskItem}},
		{"self-harm zero", instrument.Depression, 0, map[string]int{"phq9-9": 0}, nil},
		{"moderately severe", instrument.Depression, 19, nil, nil},
		{"severe band", instrument.Depression, 20, nil, []Reason{ReasonSevereBand}},
		{"both", instrument.Depression, 27, map[string]int{"phq9-9": 3}, []Reason{ReasonHighRiskItem, ReasonSevereBand}},
		{"anxiety moderate", instrument.Anxiety, 14, nil, nil},
		{"anxiety severe", instrument.Anxiety, 15, nil, []Reason{ReasonSevereBand}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EscalationReasons(tt.id, tt.total, tt.responses)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("reasons mismatch (-want +got):\n%s", diff)
			}
			esc, err := ShouldEscalate(tt.id, tt.total, tt.responses)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want) > 0, esc)
		})
	}
}

func TestEvaluate_SelfHarmOverridesLowTotal(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Depression))
	answerAll(t, c, 0, 0, 0, 0, 0, 0, 0, 0, 3)

	r, err := Evaluate(c)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Total())
	assert.Equal(t, instrument.SeverityMinimal, r.Severity())
	assert.True(t, r.Escalate())
	assert.Equal(t, []Reason{ReasonHighRiskItem}, r.Reasons())
}

func TestEvaluate_DepressionAllMax(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Depression))
	answerAll(t, c, 3, 3, 3, 3, 3, 3, 3, 3, 3)

	r, err := Evaluate(c)
	require.NoError(t, err)
	assert.Equal(t, 27, r.Total())
	assert.Equal(t, 27, r.MaxScore())
	assert.Equal(t, instrument.SeveritySevere, r.Severity())
	assert.True(t, r.Escalate())
}

func TestEvaluate_AnxietyAllOnes(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Anxiety))
	answerAll(t, c, 1, 1, 1, 1, 1, 1, 1)

	r, err := Evaluate(c)
	require.NoError(t, err)
	assert.Equal(t, 7, r.Total())
	assert.Equal(t, instrument.SeverityMild, r.Severity())
	assert.Equal(t, "Mild anxiety symptoms", r.Advisory())
	assert.False(t, r.Escalate())
	assert.Empty(t, r.Reasons())
}

func TestEvaluate_ModeratelySevereAdvisesProfessionalWithoutEscalating(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Depression))
	answerAll(t, c, 3, 3, 3, 3, 3, 2, 1, 1, 0)

	r, err := Evaluate(c)
	require.NoError(t, err)
	assert.Equal(t, 19, r.Total())
	assert.Equal(t, instrument.SeverityModeratelySevere, r.Severity())
	assert.False(t, r.Escalate())
	assert.True(t, r.SeekProfessional())
	assert.NotEmpty(t, r.Recommendations().Immediate)
	assert.NotEmpty(t, r.Recommendations().FollowUp)
}

func TestEvaluate_ModerateDoesNotAdviseProfessional(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Depression))
	answerAll(t, c, 2, 2, 2, 2, 2, 2, 1, 1, 0)

	r, err := Evaluate(c)
	require.NoError(t, err)
	assert.Equal(t, 14, r.Total())
	assert.False(t, r.SeekProfessional())
	assert.False(t, r.Escalate())
}

func TestEvaluate_IncompleteProducesNoReport(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Anxiety))
	require.NoError(t, c.RecordAnswer("gad7-1", 1))

	r, err := Evaluate(c)
	var incomplete *ErrIncompleteAssessment
	require.True(t, errors.As(err, &incomplete))
	assert.True(t, r.IsZero())
}

func TestEvaluate_UnknownToEngine(t *testing.T) {
	gad := mustGet(t, instrument.Anxiety)
	phq := mustGet(t, instrument.Depression)
	cat, err := instrument.NewCatalog(phq)
	require.NoError(t, err)

	c := NewCollector(gad)
	answerAll(t, c, 0, 0, 0, 0, 0, 0, 0)
	_, err = New(cat).Evaluate(c)
	var unknown *ErrUnknownInstrument
	assert.True(t, errors.As(err, &unknown))
}

func TestReport_Immutable(t *testing.T) {
	c := NewCollector(mustGet(t, instrument.Anxiety))
	answerAll(t, c, 3, 3, 3, 3, 3, 3, 3)
	r, err := Evaluate(c)
	require.NoError(t, err)

	// Later revisions to the collector do not leak into the report.
	require.NoError(t, c.RecordAnswer("gad7-1", 0))
	assert.Equal(t, 3, r.Responses()["gad7-1"])

	resp := r.Responses()
	resp["gad7-1"] = 0
	assert.Equal(t, 3, r.Responses()["gad7-1"])

	reasons := r.Reasons()
	reasons[0] = ReasonHighRiskItem
	assert.Equal(t, ReasonSevereBand, r.Reasons()[0])

	recs := r.Recommendations()
	want := recs.Immediate[0]
	recs.Immediate[0] = "changed"
	assert.Equal(t, want, r.Recommendations().Immediate[0])
	band := r.Band()
	band.Recommendations.FollowUp[0] = "changed"
	assert.NotEqual(t, "changed", r.Band().Recommendations.FollowUp[0])

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := r.Stamped("sess-1", at)
	assert.Equal(t, "sess-1", s.SessionID())
	assert.Equal(t, at, s.CompletedAt())
	assert.Empty(t, r.SessionID())
}

func TestReason_Description(t *testing.T) {
	assert.NotEqual(t, string(ReasonHighRiskItem), ReasonHighRiskItem.Description())
	assert.NotEqual(t, string(ReasonSevereBand), ReasonSevereBand.Description())
	assert.Equal(t, "other", Reason("other").Description())
}
