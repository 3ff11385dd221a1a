package generators

import (
	"strings"
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestLineEquationString(t *testing.T) {
	tests := []struct {
		m, b int
		want string
	}{
		{2, 3, "y = 2x + 3"},
		{2, -3, "y = 2x - 3"},
		{1, 5, "y = x + 5"},
		{-1, 5, "y = -x + 5"},
		{0, 4, "y = 4"},
		{3, 0, "y = 3x"},
		{1, 0, "y = x"},
		{-1, 0, "y = -x"},
	}
	for _, tt := range tests {
		if got := lineEquationString(tt.m, tt.b); got != tt.want {
			t.Errorf("lineEquationString(%d, %d) = %q, want %q", tt.m, tt.b, got, tt.want)
		}
	}
}

func TestDistanceAnswer(t *testing.T) {
	if got := distanceAnswer(25); got != engine.IntAnswer(5) {
		t.Errorf("distanceAnswer(25) = %v, want 5", got)
	}
	if got := distanceAnswer(10); got.Value != "√10" || got.Format != engine.FormatExpression {
		t.Errorf("distanceAnswer(10) = %v, want √10", got)
	}
}

func TestSlopeAnswer(t *testing.T) {
	if got := slopeAnswer(engine.NewFraction(6, 3).Reduce()); got != engine.IntAnswer(2) {
		t.Errorf("slopeAnswer(6/3) = %v, want 2", got)
	}
	got := slopeAnswer(engine.NewFraction(1, 2))
	if got.Format != engine.FormatFraction || got.Value != "1/2" {
		t.Errorf("slopeAnswer(1/2) = %v", got)
	}
}

func TestDistanceSimpleIsAlwaysIntegral(t *testing.T) {
	g := NewCoordGeometry()
	for seed := int64(1); seed <= 20; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.1, Operation: engine.OpDistance, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if q.Parameters.String("type") != "distance_simple" {
			t.Fatalf("problem type %q, want distance_simple at low difficulty", q.Parameters.String("type"))
		}
		if q.CorrectAnswer.Format != engine.FormatInteger {
			t.Errorf("seed %d: answer %v not an integer", seed, q.CorrectAnswer)
		}
		dx := q.Parameters.Int("x2") - q.Parameters.Int("x1")
		dy := q.Parameters.Int("y2") - q.Parameters.Int("y1")
		d := q.CorrectAnswer.Int()
		if int64(dx*dx+dy*dy) != d*d {
			t.Errorf("seed %d: distance %d inconsistent with deltas (%d, %d)", seed, d, dx, dy)
		}
	}
}

func TestMidpointStaysOnLattice(t *testing.T) {
	g := NewCoordGeometry()
	for seed := int64(1); seed <= 20; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.3, Operation: engine.OpMidpoint, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		p := q.Parameters
		if (p.Int("x1")+p.Int("x2"))%2 != 0 || (p.Int("y1")+p.Int("y2"))%2 != 0 {
			t.Errorf("seed %d: midpoint of (%d,%d)-(%d,%d) is not a lattice point",
				seed, p.Int("x1"), p.Int("y1"), p.Int("x2"), p.Int("y2"))
		}
	}
}

func TestSlopeNeverVertical(t *testing.T) {
	g := NewCoordGeometry()
	for seed := int64(1); seed <= 20; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.5, GradeLevel: 8, Operation: engine.OpSlope, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if q.Parameters.String("type") != "slope" {
			continue
		}
		if q.Parameters.Int("x1") == q.Parameters.Int("x2") {
			t.Errorf("seed %d: vertical line generated", seed)
		}
	}
}

func TestPerpendicularSlopeIsNegativeReciprocal(t *testing.T) {
	g := NewCoordGeometry()
	found := false
	for seed := int64(1); seed <= 60; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.9, Operation: engine.OpSlope, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if q.Parameters.String("type") != "parallel_perpendicular" ||
			q.Parameters.String("relation") != "perpendicular" {
			continue
		}
		found = true
		m1 := q.Parameters.Int("m1")
		want := engine.NewFraction(-1, int64(m1)).Reduce()
		if got := q.CorrectAnswer.Float(); got != want.Float() {
			t.Errorf("seed %d: perpendicular slope %v, want %v", seed, got, want)
		}
	}
	if !found {
		t.Error("no perpendicular-slope question generated across 60 seeds")
	}
}

func TestLineEquationVariantsShareTheSameLine(t *testing.T) {
	g := NewCoordGeometry()
	for seed := int64(1); seed <= 20; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.6, Operation: engine.OpLineEquation, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		want := lineEquationString(q.Parameters.Int("m"), q.Parameters.Int("b"))
		if q.CorrectAnswer.Value != want {
			t.Errorf("seed %d: answer %q, want %q", seed, q.CorrectAnswer.Value, want)
		}
		if !strings.Contains(q.Expression, "line") {
			t.Errorf("seed %d: unexpected expression %q", seed, q.Expression)
		}
	}
}
