package generators

import (
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestQuadraticDoubleRootZeroDistractors(t *testing.T) {
	g := NewAlgebra()
	correct := engine.ExpressionAnswer(rootsExpression(0, 0))

	out := g.quadraticDistractors(0, 0, correct)
	if len(out) < 2 {
		t.Fatalf("got %d distractors for a double root at zero, want at least 2", len(out))
	}
	for _, d := range out {
		if correct.Equals(d) {
			t.Errorf("distractor %q equals the correct answer", d.Value)
		}
	}
}

func TestQuadraticAlwaysFillsDistractors(t *testing.T) {
	g := NewAlgebra()
	for seed := int64(600); seed <= 700; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.9, Operation: engine.OpQuadratic, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if len(q.Distractors) < 2 {
			t.Fatalf("seed %d: %q has %d distractors, want at least 2", seed, q.Expression, len(q.Distractors))
		}
	}
}
