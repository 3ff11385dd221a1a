package generators

import (
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestFractionAdditionUnlikeDenominators(t *testing.T) {
	g := NewFractions()
	got, err := g.ComputeAnswer(engine.Params{
		"fraction1": "1/3", "fraction2": "1/4", "operation": "addition",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != "7/12" {
		t.Errorf("1/3 + 1/4 = %q, want 7/12", got.Value)
	}
	if !got.Matches("7/12") {
		t.Error("answer should match its own canonical form")
	}
}

func TestFractionDistractorsWhenAnswerIsZero(t *testing.T) {
	g := NewFractions()
	f := engine.NewFraction(1, 4)
	correct := f.Sub(f)

	out := g.fractionDistractors(correct, f, f, engine.OpSubtraction)
	if len(out) < 2 {
		t.Fatalf("got %d distractors for 1/4 - 1/4, want at least 2", len(out))
	}

	zero := engine.FractionAnswer(correct)
	seen := map[string]bool{}
	for _, d := range out {
		if zero.Equals(d) {
			t.Errorf("distractor %q equals the correct answer", d.Value)
		}
		if seen[d.Value] {
			t.Errorf("duplicate distractor %q", d.Value)
		}
		seen[d.Value] = true
	}
}

func TestFractionSubtractionAlwaysFillsDistractors(t *testing.T) {
	g := NewFractions()
	for seed := int64(1); seed <= 100; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.35, Operation: engine.OpSubtraction, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if len(q.Distractors) < 2 {
			t.Fatalf("seed %d: %q has %d distractors, want at least 2", seed, q.Expression, len(q.Distractors))
		}
	}
}
