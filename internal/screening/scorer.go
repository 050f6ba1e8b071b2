package screening

// Score sums the recorded answers. Every question must be answered; missing
// values are never imputed.
func Score(c *Collector) (int, error) {
	if !c.IsComplete() {
		return 0, &ErrIncompleteAssessment{
			InstrumentID: c.inst.ID,
			Answered:     c.AnsweredCount(),
			Total:        len(c.inst.Questions),
		}
	}
	total := 0
	for _, q := range c.inst.Questions {
		total += c.answers[q.ID]
	}
	return total, nil
}
