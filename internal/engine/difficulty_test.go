package engine

import "testing"

func TestCalculateBounds(t *testing.T) {
	calc := NewDifficultyCalculator()
	inputs := []DifficultyInput{
		{Operation: OpAddition, Operands: []float64{1, 1}},
		{Operation: OpQuadratic, Operands: []float64{999999, 123456}, StepCount: 10,
			HasNegatives: true, HasFractions: true, HasDecimals: true},
		{},
	}
	for _, in := range inputs {
		got := calc.Calculate(in)
		if got < 0 || got > 1 {
			t.Errorf("Calculate(%+v) = %v, out of [0,1]", in, got)
		}
	}
}

func TestCalculateDeterministic(t *testing.T) {
	calc := NewDifficultyCalculator()
	in := DifficultyInput{Operation: OpMultiplication, Operands: []float64{42, 17}, StepCount: 2}
	if calc.Calculate(in) != calc.Calculate(in) {
		t.Error("same input must produce the same score")
	}
}

func TestCalculateFactorsRaiseScore(t *testing.T) {
	calc := NewDifficultyCalculator()
	base := DifficultyInput{Operation: OpAddition, Operands: []float64{5, 3}}
	baseScore := calc.Calculate(base)

	harder := []struct {
		name string
		in   DifficultyInput
	}{
		{"harder operation", DifficultyInput{Operation: OpDivision, Operands: []float64{5, 3}}},
		{"bigger operands", DifficultyInput{Operation: OpAddition, Operands: []float64{5000, 3000}}},
		{"more steps", DifficultyInput{Operation: OpAddition, Operands: []float64{5, 3}, StepCount: 4}},
		{"negatives", DifficultyInput{Operation: OpAddition, Operands: []float64{5, 3}, HasNegatives: true}},
		{"fractions", DifficultyInput{Operation: OpAddition, Operands: []float64{5, 3}, HasFractions: true}},
		{"decimals", DifficultyInput{Operation: OpAddition, Operands: []float64{5, 3}, HasDecimals: true}},
	}
	for _, tt := range harder {
		if got := calc.Calculate(tt.in); got <= baseScore {
			t.Errorf("%s: Calculate = %v, want > base %v", tt.name, got, baseScore)
		}
	}
}

func TestCalculateUnknownOperationDefaults(t *testing.T) {
	calc := NewDifficultyCalculator()
	got := calc.Calculate(DifficultyInput{Operation: "made_up", Operands: []float64{5}})
	want := calc.Calculate(DifficultyInput{Operation: OpArea, Operands: []float64{5}})
	if got != want {
		t.Errorf("unknown operation score %v, want default-weight score %v", got, want)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		difficulty float64
		want       DifficultyTier
	}{
		{0.0, TierNovice},
		{0.19, TierNovice},
		{0.2, TierBeginner},
		{0.39, TierBeginner},
		{0.4, TierIntermediate},
		{0.6, TierAdvanced},
		{0.8, TierExpert},
		{1.0, TierExpert},
	}
	for _, tt := range tests {
		if got := TierFor(tt.difficulty); got != tt.want {
			t.Errorf("TierFor(%v) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-0.5, 0, 1); got != 0 {
		t.Errorf("Clamp(-0.5) = %v, want 0", got)
	}
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp(1.5) = %v, want 1", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp(0.5) = %v, want 0.5", got)
	}
}
