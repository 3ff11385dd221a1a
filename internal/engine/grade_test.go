package engine

import "testing"

var testEnvelopes = []GradeEnvelope{
	{Grade: 1, MaxValue: 10, Operations: []Operation{OpAddition}},
	{Grade: 3, MaxValue: 100, Operations: []Operation{OpAddition, OpSubtraction}},
	{Grade: 5, MaxValue: 1000, Operations: []Operation{OpAddition, OpSubtraction, OpMultiplication}},
}

func TestGradeForDifficulty(t *testing.T) {
	bands := []GradeBand{
		{UpTo: 0.3, Grade: 1},
		{UpTo: 0.6, Grade: 3},
		{UpTo: 1.1, Grade: 5},
	}
	tests := []struct {
		difficulty float64
		want       int
	}{
		{0.0, 1},
		{0.29, 1},
		{0.3, 3},
		{0.6, 5},
		{1.0, 5},
		{1.5, 5},
	}
	for _, tt := range tests {
		if got := GradeForDifficulty(bands, tt.difficulty); got != tt.want {
			t.Errorf("GradeForDifficulty(%v) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestEnvelopeForGrade(t *testing.T) {
	tests := []struct {
		grade int
		want  int
	}{
		{1, 1},
		{2, 3},
		{3, 3},
		{5, 5},
		{12, 5},
	}
	for _, tt := range tests {
		if got := EnvelopeForGrade(testEnvelopes, tt.grade); got.Grade != tt.want {
			t.Errorf("EnvelopeForGrade(%d).Grade = %d, want %d", tt.grade, got.Grade, tt.want)
		}
	}
}

func TestFindSupportingGrade(t *testing.T) {
	e, ok := FindSupportingGrade(testEnvelopes, OpMultiplication, 1)
	if !ok || e.Grade != 5 {
		t.Errorf("FindSupportingGrade(multiplication, 1) = %d, %v; want 5, true", e.Grade, ok)
	}

	// Operation supported below the requested grade still resolves.
	e, ok = FindSupportingGrade(testEnvelopes, OpAddition, 12)
	if !ok || e.Grade != 1 {
		t.Errorf("FindSupportingGrade(addition, 12) = %d, %v; want 1, true", e.Grade, ok)
	}

	if _, ok = FindSupportingGrade(testEnvelopes, OpQuadratic, 1); ok {
		t.Error("unsupported operation should not resolve")
	}
}

func TestScaledMax(t *testing.T) {
	if got := ScaledMax(100, 0, 5); got != 30 {
		t.Errorf("ScaledMax(100, 0, 5) = %d, want 30", got)
	}
	if got := ScaledMax(100, 1, 5); got != 100 {
		t.Errorf("ScaledMax(100, 1, 5) = %d, want 100", got)
	}
	if got := ScaledMax(10, 0, 5); got != 5 {
		t.Errorf("ScaledMax(10, 0, 5) = %d, want floor 5", got)
	}
	// Difficulty outside [0,1] clamps rather than overflowing the envelope.
	if got := ScaledMax(100, 2, 5); got != 100 {
		t.Errorf("ScaledMax(100, 2, 5) = %d, want 100", got)
	}
}

func TestScaledRange(t *testing.T) {
	lo, hi := ScaledRange(1, 100, 0.5)
	if lo != 1 || hi <= lo {
		t.Errorf("ScaledRange(1, 100, 0.5) = [%d, %d], want usable range", lo, hi)
	}
	lo, hi = ScaledRange(5, 1, 0)
	if hi <= lo {
		t.Errorf("degenerate ScaledRange = [%d, %d], want hi > lo", lo, hi)
	}
}
