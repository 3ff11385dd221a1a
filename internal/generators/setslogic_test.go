package generators

import (
	"reflect"
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestSetOperations(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := []int{3, 4, 5, 6}

	if got := setUnion(a, b); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("union = %v", got)
	}
	if got := setIntersection(a, b); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("intersection = %v", got)
	}
	if got := setDifference(a, b); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("difference = %v", got)
	}
	if got := setIntersection([]int{1, 2}, []int{3, 4}); len(got) != 0 {
		t.Errorf("disjoint intersection = %v, want empty", got)
	}
}

func TestFormatSet(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{nil, "∅"},
		{[]int{}, "∅"},
		{[]int{3, 1, 2}, "{1, 2, 3}"},
		{[]int{7}, "{7}"},
	}
	for _, tt := range tests {
		if got := formatSet(tt.in); got != tt.want {
			t.Errorf("formatSet(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeSetsOverlap(t *testing.T) {
	cfg := setsGradeConfig(8)
	for seed := int64(1); seed <= 20; seed++ {
		r := engine.NewRand(&seed)
		setA, setB := makeSets(r, cfg, 0.5, 3)
		inter := setIntersection(setA, setB)
		if len(inter) != 3 {
			t.Errorf("seed %d: overlap %d, want 3 (A=%v, B=%v)", seed, len(inter), setA, setB)
		}
		seen := map[int]bool{}
		for _, x := range setA {
			if seen[x] {
				t.Errorf("seed %d: duplicate element %d in A", seed, x)
			}
			seen[x] = true
		}
	}
}

func TestVennTwoNeitherGatedByDifficulty(t *testing.T) {
	g := NewSetsAndLogic()
	for seed := int64(1); seed <= 20; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.3, GradeLevel: 8, Operation: engine.OpVennDiagram, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if q.Parameters.String("type") != "venn_two" {
			t.Fatalf("problem type %q, want venn_two at grade 8", q.Parameters.String("type"))
		}
		if neither := q.Parameters.Int("neither"); neither != 0 {
			t.Errorf("seed %d: neither = %d at low difficulty, want 0", seed, neither)
		}
	}
}

func TestVennThreeAnswerIsInclusionExclusion(t *testing.T) {
	g := NewSetsAndLogic()
	found := false
	for seed := int64(1); seed <= 40; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.9, Operation: engine.OpVennDiagram, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if q.Parameters.String("type") != "venn_three" {
			continue
		}
		found = true
		p := q.Parameters
		want := p.Int("only_a") + p.Int("only_b") + p.Int("only_c") +
			p.Int("ab") + p.Int("bc") + p.Int("ac") + p.Int("abc")
		if got := q.CorrectAnswer.Int(); got != int64(want) {
			t.Errorf("seed %d: answer %d, want region sum %d", seed, got, want)
		}
	}
	if !found {
		t.Error("no three-set Venn question generated across 40 seeds")
	}
}

func TestVennCandidates(t *testing.T) {
	got := vennCandidates(nil, 10, []int{12, 15, -3, 10})
	if len(got) < 2 {
		t.Fatalf("got %d candidates, want at least 2", len(got))
	}
	for _, a := range got {
		v := a.Int()
		if v == 10 {
			t.Error("answer value appeared as a candidate")
		}
		if v < 0 {
			t.Errorf("negative count %d offered as a candidate", v)
		}
	}
}

func TestPadSetAnswersFullOverlap(t *testing.T) {
	// With A == B the intersection equals both sets and the strategy
	// candidates collapse into one entry.
	result := []int{2, 5, 9}
	set := newAnswerSet(engine.ExpressionAnswer(formatSet(result)))
	set.add(engine.ExpressionAnswer("∅"))

	padSetAnswers(set, result)

	out := set.take(3)
	if len(out) < 3 {
		t.Fatalf("got %d distractors after padding, want 3", len(out))
	}
	seen := map[string]bool{formatSet(result): true}
	for _, d := range out {
		if seen[d.Value] {
			t.Errorf("duplicate or correct-valued distractor %q", d.Value)
		}
		seen[d.Value] = true
	}
}

func TestSetOperationsAlwaysFillDistractors(t *testing.T) {
	g := NewSetsAndLogic()
	ops := []engine.Operation{engine.OpSetUnion, engine.OpSetIntersection, engine.OpSetDifference}

	for _, op := range ops {
		for seed := int64(1); seed <= 150; seed++ {
			s := seed
			q, err := g.Generate(engine.Request{Difficulty: 0.1, Operation: op, Seed: &s})
			if err != nil {
				t.Fatal(err)
			}
			if len(q.Distractors) < 2 {
				t.Fatalf("%s seed %d: %q has %d distractors, want at least 2", op, seed, q.Expression, len(q.Distractors))
			}
		}
	}
}

func TestSetsGradeConfig(t *testing.T) {
	if got := setsGradeConfig(5).grade; got != 6 {
		t.Errorf("grade 5 resolved to %d, want 6", got)
	}
	if got := setsGradeConfig(12).grade; got != 10 {
		t.Errorf("grade 12 resolved to %d, want 10", got)
	}
}
