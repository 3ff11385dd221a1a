package generators

import (
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestArithmeticDistractorsDeterministic(t *testing.T) {
	g := NewArithmetic()
	params := engine.Params{"a": 7, "b": 5, "operation": "addition"}
	correct := engine.IntAnswer(12)

	first := g.Distractors(correct, params, 6)
	second := g.Distractors(correct, params, 6)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Value != second[i].Value {
			t.Errorf("distractor %d differs between calls: %q vs %q", i, first[i].Value, second[i].Value)
		}
	}
	for _, d := range first {
		if d.Value == "12" {
			t.Errorf("distractor equals the correct answer")
		}
	}
}
