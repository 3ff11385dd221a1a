package generators

import (
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

var sweepDifficulties = []float64{0, 0.25, 0.5, 0.75, 1.0}

// TestAllGeneratorsProduceWellFormedQuestions sweeps every registered topic
// across the difficulty scale and checks the structural contract: the answer
// is recomputable from parameters, no distractor equals the correct answer,
// and the shuffled option list contains exactly the answer plus distractors.
func TestAllGeneratorsProduceWellFormedQuestions(t *testing.T) {
	r := NewRegistry()

	for _, qt := range engine.AllQuestionTypes {
		g, ok := r.Get(qt)
		if !ok {
			t.Fatalf("no generator registered for %q", qt)
		}

		for _, difficulty := range sweepDifficulties {
			for seed := int64(1); seed <= 20; seed++ {
				s := seed
				q, err := g.Generate(engine.Request{Difficulty: difficulty, Seed: &s})
				if err != nil {
					t.Fatalf("%s d=%v seed=%d: %v", qt, difficulty, seed, err)
				}
				checkQuestion(t, g, q)
			}
		}
	}
}

func checkQuestion(t *testing.T, g engine.Generator, q *engine.GeneratedQuestion) {
	t.Helper()

	if q.QuestionID == "" || q.Expression == "" {
		t.Errorf("%s/%s: missing id or expression", q.QuestionType, q.TemplateID)
	}
	if q.CorrectAnswer.Value == "" {
		t.Errorf("%s/%s: empty correct answer", q.QuestionType, q.TemplateID)
	}
	if q.DifficultyScore < 0 || q.DifficultyScore > 1 {
		t.Errorf("%s/%s: difficulty score %v out of [0,1]", q.QuestionType, q.TemplateID, q.DifficultyScore)
	}
	if q.DifficultyTier != engine.TierFor(q.DifficultyScore) {
		t.Errorf("%s/%s: tier %q does not match score %v", q.QuestionType, q.TemplateID, q.DifficultyTier, q.DifficultyScore)
	}

	recomputed, err := g.ComputeAnswer(q.Parameters)
	if err != nil {
		t.Errorf("%s/%s: ComputeAnswer: %v", q.QuestionType, q.TemplateID, err)
	} else if !q.CorrectAnswer.Equals(recomputed) {
		t.Errorf("%s/%s: recomputed answer %q != generated %q (params %v)",
			q.QuestionType, q.TemplateID, recomputed.Value, q.CorrectAnswer.Value, q.Parameters)
	}

	if len(q.Distractors) < 2 {
		t.Errorf("%s/%s: only %d distractors", q.QuestionType, q.TemplateID, len(q.Distractors))
	}
	seen := map[string]bool{}
	for _, d := range q.Distractors {
		if q.CorrectAnswer.Equals(d) {
			t.Errorf("%s/%s: distractor %q equals the correct answer", q.QuestionType, q.TemplateID, d.Value)
		}
		if seen[d.Value] {
			t.Errorf("%s/%s: duplicate distractor %q", q.QuestionType, q.TemplateID, d.Value)
		}
		seen[d.Value] = true
	}

	if len(q.AllOptions) != len(q.Distractors)+1 {
		t.Errorf("%s/%s: %d options for %d distractors", q.QuestionType, q.TemplateID, len(q.AllOptions), len(q.Distractors))
	}
	found := false
	for _, o := range q.AllOptions {
		if o == q.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("%s/%s: correct answer missing from options", q.QuestionType, q.TemplateID)
	}
}

// TestSeededGenerationIsReproducible checks that two calls with the same seed
// and request produce the same question content. IDs and timestamps are
// call-local and excluded.
func TestSeededGenerationIsReproducible(t *testing.T) {
	r := NewRegistry()

	for _, qt := range engine.AllQuestionTypes {
		g, _ := r.Get(qt)
		for seed := int64(1); seed <= 5; seed++ {
			s1, s2 := seed, seed
			a, err := g.Generate(engine.Request{Difficulty: 0.5, Seed: &s1})
			if err != nil {
				t.Fatalf("%s: %v", qt, err)
			}
			b, err := g.Generate(engine.Request{Difficulty: 0.5, Seed: &s2})
			if err != nil {
				t.Fatalf("%s: %v", qt, err)
			}

			if a.Expression != b.Expression {
				t.Errorf("%s seed=%d: expressions differ: %q vs %q", qt, seed, a.Expression, b.Expression)
			}
			if a.CorrectAnswer != b.CorrectAnswer {
				t.Errorf("%s seed=%d: answers differ: %v vs %v", qt, seed, a.CorrectAnswer, b.CorrectAnswer)
			}
			if len(a.Distractors) != len(b.Distractors) {
				t.Errorf("%s seed=%d: distractor counts differ", qt, seed)
				continue
			}
			for i := range a.Distractors {
				if a.Distractors[i] != b.Distractors[i] {
					t.Errorf("%s seed=%d: distractor %d differs: %v vs %v", qt, seed, i, a.Distractors[i], b.Distractors[i])
				}
			}
		}
	}
}

// TestPinnedOperations checks that every declared operation can be requested
// explicitly at every difficulty.
func TestPinnedOperations(t *testing.T) {
	r := NewRegistry()

	for _, qt := range engine.AllQuestionTypes {
		g, _ := r.Get(qt)
		for _, op := range g.SupportedOperations() {
			for _, difficulty := range sweepDifficulties {
				seed := int64(11)
				q, err := g.Generate(engine.Request{Difficulty: difficulty, Operation: op, Seed: &seed})
				if err != nil {
					t.Fatalf("%s op=%s d=%v: %v", qt, op, difficulty, err)
				}
				checkQuestion(t, g, q)
			}
		}
	}
}

// TestUnsupportedOperationRejected checks the error path for an operation no
// topic generator declares.
func TestUnsupportedOperationRejected(t *testing.T) {
	r := NewRegistry()
	for _, qt := range engine.AllQuestionTypes {
		g, _ := r.Get(qt)
		if _, err := g.Generate(engine.Request{Operation: "no_such_operation"}); err == nil {
			t.Errorf("%s: expected an error for an unsupported operation", qt)
		}
	}
}

// TestExplicitGradeLevels checks that pinning a grade never breaks generation.
func TestExplicitGradeLevels(t *testing.T) {
	r := NewRegistry()
	for _, qt := range engine.AllQuestionTypes {
		g, _ := r.Get(qt)
		for grade := 1; grade <= 12; grade++ {
			seed := int64(3)
			q, err := g.Generate(engine.Request{Difficulty: 0.5, GradeLevel: grade, Seed: &seed})
			if err != nil {
				t.Fatalf("%s grade=%d: %v", qt, grade, err)
			}
			checkQuestion(t, g, q)
		}
	}
}
