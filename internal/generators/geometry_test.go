package generators

import (
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestPythagoreanHypotenuseComputeAnswer(t *testing.T) {
	g := NewGeometry()
	got, err := g.ComputeAnswer(engine.Params{
		"operation": "pythagorean", "find_type": "hypotenuse",
		"a": 3, "b": 4, "c": 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != "5" {
		t.Errorf("legs 3 and 4 gave hypotenuse %q, want 5", got.Value)
	}
}

func TestPythagoreanGenerationUsesRightTriangles(t *testing.T) {
	g := NewGeometry()
	foundThreeFourFive := false

	for seed := int64(1); seed <= 300; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.4, Operation: engine.OpPythagorean, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}

		a, b, c := q.Parameters.Int("a"), q.Parameters.Int("b"), q.Parameters.Int("c")
		if a*a+b*b != c*c {
			t.Fatalf("seed %d: %d-%d-%d is not a right triangle", seed, a, b, c)
		}

		if a == 3 && b == 4 && q.Parameters.String("find_type") == "hypotenuse" {
			foundThreeFourFive = true
			if q.CorrectAnswer.Value != "5" {
				t.Fatalf("legs 3 and 4 gave hypotenuse %q, want 5", q.CorrectAnswer.Value)
			}
		}
	}

	if !foundThreeFourFive {
		t.Fatal("no 3-4-5 hypotenuse question generated in 300 seeds")
	}
}
