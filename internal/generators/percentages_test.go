package generators

import (
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestPercentageDistractorsDeterministic(t *testing.T) {
	g := NewPercentages()
	params := engine.Params{"percent": 25, "value": 80, "operation": "find_percentage"}
	correct := engine.IntAnswer(20)

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
		if correct.Equals(d) {
			t.Errorf("distractor %q equals the correct answer", d.Value)
		}
	}
}
