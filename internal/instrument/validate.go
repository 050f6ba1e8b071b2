package instrument

import (
	"fmt"
	"strings"
)

// Validate performs the structural checks on a single instrument.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(in *Instrument) error {
	errs := validateInstrument(in)
	if len(errs) > 0 {
		return fmt.Errorf("instrument %q validation failed:\n  %s", in.ID, strings.Join(errs, "\n  "))
	}
	return nil
}

func validateInstrument(in *Instrument) []string {
	var errs []string

	if in.ID == "" {
		errs = append(errs, "empty instrument ID")
	}
	if len(in.Questions) == 0 {
		errs = append(errs, "no questions")
	}

	// Scale must be 0..n with no gaps or repeats, in order.
	if len(in.Scale) == 0 {
		errs = append(errs, "empty response scale")
	}
	for i, o := range in.Scale {
		if o.Value != i {
			errs = append(errs, fmt.Sprintf("scale value at index %d is %d, want %d (values must be contiguous from 0)", i, o.Value, i))
		}
		if o.Label == "" {
			errs = append(errs, fmt.Sprintf("scale value %d has empty label", o.Value))
		}
	}

	// Question IDs unique, positions 1..n.
	seen := make(map[string]bool, len(in.Questions))
	for i, q := range in.Questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question at position %d has empty ID", i+1))
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		seen[q.ID] = true
		if q.Position != i+1 {
			errs = append(errs, fmt.Sprintf("question %q has position %d, want %d", q.ID, q.Position, i+1))
		}
		if q.Prompt == "" {
			errs = append(errs, fmt.Sprintf("question %q has empty prompt", q.ID))
		}
	}

	errs = append(errs, validateBands(in)...)
	return errs
}

// validateBands checks that the severity table partitions 0..MaxScore.
func validateBands(in *Instrument) []string {
	if len(in.Bands) == 0 {
		return []string{"no severity bands"}
	}

	var errs []string
	next := in.MinScore()
	seek := false
	for i, b := range in.Bands {
		if b.Label == "" {
			errs = append(errs, fmt.Sprintf("band %d has empty label", i))
		}
		if b.Rank != i {
			errs = append(errs, fmt.Sprintf("band %q has rank %d, want %d", b.Label, b.Rank, i))
		}
		if b.Min != next {
			errs = append(errs, fmt.Sprintf("band %q starts at %d, want %d (gap or overlap)", b.Label, b.Min, next))
		}
		if b.Max < b.Min {
			errs = append(errs, fmt.Sprintf("band %q is empty (%d-%d)", b.Label, b.Min, b.Max))
		}
		if seek && !b.SeekProfessional {
			errs = append(errs, fmt.Sprintf("band %q drops seek_professional set on a milder band", b.Label))
		}
		seek = seek || b.SeekProfessional
		next = b.Max + 1
	}

	last := in.Bands[len(in.Bands)-1]
	if last.Max != in.MaxScore() {
		errs = append(errs, fmt.Sprintf("last band %q ends at %d, but %d questions on a 0-%d scale reach %d",
			last.Label, last.Max, len(in.Questions), in.Scale.Max(), in.MaxScore()))
	}
	return errs
}

// validateCatalog checks every instrument plus cross-instrument constraints.
func validateCatalog(instruments []*Instrument) error {
	var errs []string
	ids := make(map[ID]bool, len(instruments))
	for _, in := range instruments {
		if ids[in.ID] {
			errs = append(errs, fmt.Sprintf("duplicate instrument ID: %q", in.ID))
		}
		ids[in.ID] = true
		for _, e := range validateInstrument(in) {
			errs = append(errs, fmt.Sprintf("%s: %s", in.ID, e))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
