package instrument

import (
	"strings"
	"testing"
)

func testScale() ResponseScale {
	return ResponseScale{
		{Value: 0, Label: "Not at all"},
		{Value: 1, Label: "Several days"},
		{Value: 2, Label: "More than half the days"},
		{Value: 3, Label: "Nearly every day"},
	}
}

// twoItem returns a valid 2-question instrument with range 0-6.
func twoItem() *Instrument {
	return &Instrument{
		ID:    "t2",
		Title: "Two item",
		Scale: testScale(),
		Questions: []Question{
			{ID: "t2-1", Position: 1, Prompt: "first"},
			{ID: "t2-2", Position: 2, Prompt: "second", HighRisk: true},
		},
		Bands: []Band{
			{Severity: SeverityMinimal, Label: "Minimal", Rank: 0, Min: 0, Max: 2},
			{Severity: SeveritySevere, Label: "Severe", Rank: 1, Min: 3, Max: 6},
		},
	}
}

func TestValidate_BuiltinInstrumentsPass(t *testing.T) {
	for _, in := range All() {
		if err := Validate(in); err != nil {
			t.Errorf("%s: %v", in.ID, err)
		}
	}
}

func TestValidate_ValidInstrument(t *testing.T) {
	if err := Validate(twoItem()); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestValidate_DetectsDuplicateQuestionID(t *testing.T) {
	in := twoItem()
	in.Questions[1].ID = "t2-1"
	err := Validate(in)
	if err == nil {
		t.Fatal("expected error for duplicate question ID, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidate_DetectsScaleGap(t *testing.T) {
	in := twoItem()
	in.Scale = ResponseScale{{Value: 0, Label: "no"}, {Value: 2, Label: "yes"}}
	err := Validate(in)
	if err == nil {
		t.Fatal("expected error for non-contiguous scale, got nil")
	}
	if !strings.Contains(err.Error(), "contiguous") {
		t.Errorf("error should mention contiguity, got: %v", err)
	}
}

func TestValidate_DetectsBandGap(t *testing.T) {
	in := twoItem()
	in.Bands[1].Min = 4
	err := Validate(in)
	if err == nil {
		t.Fatal("expected error for band gap, got nil")
	}
	if !strings.Contains(err.Error(), "gap or overlap") {
		t.Errorf("error should mention gap, got: %v", err)
	}
}

func TestValidate_DetectsBandOverlap(t *testing.T) {
	in := twoItem()
	in.Bands[1].Min = 2
	err := Validate(in)
	if err == nil {
		t.Fatal("expected error for band overlap, got nil")
	}
}

func TestValidate_DetectsRangeMismatch(t *testing.T) {
	in := twoItem()
	in.Bands[1].Max = 5
	err := Validate(in)
	if err == nil {
		t.Fatal("expected error when bands do not reach max score, got nil")
	}
	if !strings.Contains(err.Error(), "reach 6") {
		t.Errorf("error should mention the attainable max, got: %v", err)
	}
}

func TestValidate_DetectsEmptyBands(t *testing.T) {
	in := twoItem()
	in.Bands = nil
	err := Validate(in)
	if err == nil || !strings.Contains(err.Error(), "no severity bands") {
		t.Fatalf("expected no-bands error, got %v", err)
	}
}

func TestValidate_SeekProfessionalCoversMoreSevereBands(t *testing.T) {
	in := twoItem()
	in.Bands[0].SeekProfessional = true
	err := Validate(in)
	if err == nil || !strings.Contains(err.Error(), "drops seek_professional") {
		t.Fatalf("expected seek_professional error, got %v", err)
	}

	in.Bands[1].SeekProfessional = true
	if err := Validate(in); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}

func TestValidate_AccumulatesProblems(t *testing.T) {
	in := twoItem()
	in.Questions[0].Prompt = ""
	in.Bands[0].Label = ""
	err := Validate(in)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "empty prompt") || !strings.Contains(msg, "empty label") {
		t.Errorf("expected both problems reported, got: %v", msg)
	}
}

func TestNewCatalog_DetectsDuplicateInstrumentID(t *testing.T) {
	_, err := NewCatalog(twoItem(), twoItem())
	if err == nil {
		t.Fatal("expected error for duplicate instrument, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate instrument") {
		t.Errorf("error should mention duplicate instrument, got: %v", err)
	}
}
