package session

// Progress is the answer-count snapshot used for progress display.
type Progress struct {
	Answered int
	Total    int
}

// Fraction returns Answered/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total)
}

// Remaining returns how many questions are still unanswered.
func (p Progress) Remaining() int {
	return p.Total - p.Answered
}
