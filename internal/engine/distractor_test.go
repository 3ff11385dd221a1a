package engine

import (
	"math"
	"math/rand"
	"testing"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestDistractorsExcludeCorrect(t *testing.T) {
	g := &DistractorGenerator{}
	for _, correct := range []float64{0, 1, -7, 42, 3.5, 1000} {
		got := g.Generate(newTestRand(), DistractorInput{Correct: correct, Count: 3})
		for _, v := range got {
			if v == correct {
				t.Errorf("correct answer %v appeared as a distractor", correct)
			}
		}
	}
}

func TestDistractorsAreDistinct(t *testing.T) {
	g := &DistractorGenerator{}
	got := g.Generate(newTestRand(), DistractorInput{Correct: 15, Count: 5})
	seen := map[float64]bool{}
	for _, v := range got {
		if seen[v] {
			t.Errorf("duplicate distractor %v", v)
		}
		seen[v] = true
	}
}

func TestDistractorsCount(t *testing.T) {
	g := &DistractorGenerator{}
	got := g.Generate(newTestRand(), DistractorInput{Correct: 20, Count: 4})
	if len(got) != 4 {
		t.Errorf("got %d distractors, want 4", len(got))
	}
	// Zero count defaults to 3.
	got = g.Generate(newTestRand(), DistractorInput{Correct: 20})
	if len(got) != 3 {
		t.Errorf("got %d distractors with default count, want 3", len(got))
	}
}

func TestDistractorsIntegerMode(t *testing.T) {
	g := &DistractorGenerator{}
	got := g.Generate(newTestRand(), DistractorInput{Correct: 12, Count: 5, Integer: true})
	for _, v := range got {
		if v != math.Round(v) {
			t.Errorf("non-integer distractor %v in integer mode", v)
		}
	}
}

func TestDistractorsHonorExclusions(t *testing.T) {
	g := &DistractorGenerator{}
	got := g.Generate(newTestRand(), DistractorInput{
		Correct: 10, Count: 3, Exclude: []float64{-10, 11, 9},
	})
	excluded := map[float64]bool{-10: true, 11: true, 9: true}
	for _, v := range got {
		if excluded[v] {
			t.Errorf("excluded value %v appeared as a distractor", v)
		}
	}
}

func TestDistractorsSeededDeterminism(t *testing.T) {
	g := &DistractorGenerator{}
	in := DistractorInput{Correct: 37, Count: 5, Operation: OpMultiplication, Operands: []float64{37, 1}}
	a := g.Generate(rand.New(rand.NewSource(7)), in)
	b := g.Generate(rand.New(rand.NewSource(7)), in)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("index %d: %v vs %v with identical seeds", i, a[i], b[i])
		}
	}
}

func TestIntDistractors(t *testing.T) {
	g := &DistractorGenerator{}
	got := g.IntDistractors(newTestRand(), 23, 3, OpAddition, 15, 8)
	if len(got) == 0 {
		t.Fatal("no distractors produced")
	}
	for _, a := range got {
		if a.Format != FormatInteger {
			t.Errorf("distractor format %q, want integer", a.Format)
		}
		if a.Int() == 23 {
			t.Error("correct answer leaked into distractors")
		}
	}
}

func TestOperationConfusion(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b float64
		want float64
	}{
		{OpAddition, 10, 4, 6},
		{OpSubtraction, 10, 4, 14},
		{OpMultiplication, 10, 4, 14},
		{OpDivision, 10, 4, 40},
	}
	for _, tt := range tests {
		got, ok := operationConfusion(tt.op, tt.a, tt.b)
		if !ok || got != tt.want {
			t.Errorf("operationConfusion(%s, %v, %v) = %v, want %v", tt.op, tt.a, tt.b, got, tt.want)
		}
	}
}
