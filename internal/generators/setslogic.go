package generators

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// SetsAndLogic generates set operation questions (union, intersection,
// difference) over small integer sets, and Venn diagram counting problems
// with two or three categories.
type SetsAndLogic struct {
	base
}

// NewSetsAndLogic returns the sets and logic generator.
func NewSetsAndLogic() *SetsAndLogic {
	return &SetsAndLogic{base: newBase()}
}

type setsGrade struct {
	grade      int
	maxElement int
	setSize    int
	types      []string
}

var setsGrades = []setsGrade{
	{6, 20, 5, []string{"union", "intersection"}},
	{7, 30, 7, []string{"union", "intersection", "difference"}},
	{8, 50, 8, []string{"union", "intersection", "difference", "venn_two"}},
	{9, 50, 10, []string{"union", "intersection", "difference", "venn_two", "venn_three"}},
	{10, 100, 10, []string{"union", "intersection", "difference", "venn_two", "venn_three"}},
}

var setsBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 6},
	{UpTo: 0.4, Grade: 7},
	{UpTo: 0.6, Grade: 8},
	{UpTo: 0.8, Grade: 9},
	{UpTo: 1.1, Grade: 10},
}

func (g *SetsAndLogic) QuestionType() engine.QuestionType { return engine.TypeSetsAndLogic }

func (g *SetsAndLogic) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpSetUnion, engine.OpSetIntersection,
		engine.OpSetDifference, engine.OpVennDiagram,
	}
}

func (g *SetsAndLogic) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(setsBands, req.Difficulty)
	}
	cfg := setsGradeConfig(grade)

	var problemType string
	switch req.Operation {
	case "":
		problemType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpSetUnion:
		problemType = "union"
	case engine.OpSetIntersection:
		problemType = "intersection"
	case engine.OpSetDifference:
		problemType = "difference"
	case engine.OpVennDiagram:
		if containsString(cfg.types, "venn_three") && r.Intn(2) == 1 {
			problemType = "venn_three"
		} else {
			problemType = "venn_two"
		}
	default:
		return nil, fmt.Errorf("sets: unsupported operation %q", req.Operation)
	}

	switch problemType {
	case "intersection":
		return g.intersection(r, req.Difficulty, cfg), nil
	case "difference":
		return g.difference(r, req.Difficulty, cfg), nil
	case "venn_two":
		return g.vennTwo(r, req.Difficulty, cfg), nil
	case "venn_three":
		return g.vennThree(r, req.Difficulty, cfg), nil
	default:
		return g.union(r, req.Difficulty, cfg), nil
	}
}

// makeSets builds two sorted sets sharing exactly overlap elements, drawn
// without replacement from 1..maxElement.
func makeSets(r *rand.Rand, cfg setsGrade, difficulty float64, overlap int) (setA, setB []int) {
	maxEl := engine.ScaledMax(cfg.maxElement, difficulty, 10)
	sizeA := maxInt(3, int(float64(cfg.setSize)*(0.4+0.6*difficulty)))
	sizeB := maxInt(3, int(float64(cfg.setSize)*(0.4+0.6*difficulty)))

	pool := r.Perm(maxEl)
	for i := range pool {
		pool[i]++
	}

	overlapCount := minInt(minInt(overlap, sizeA), minInt(sizeB, len(pool)))
	common := pool[:overlapCount]
	remaining := pool[overlapCount:]

	onlyA := remaining[:sizeA-overlapCount]
	onlyB := remaining[sizeA-overlapCount : sizeA-overlapCount+sizeB-overlapCount]

	setA = append(append([]int(nil), common...), onlyA...)
	setB = append(append([]int(nil), common...), onlyB...)
	sort.Ints(setA)
	sort.Ints(setB)
	return setA, setB
}

func formatSet(s []int) string {
	if len(s) == 0 {
		return "∅"
	}
	sorted := append([]int(nil), s...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, x := range sorted {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func setUnion(a, b []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, x := range a {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	for _, x := range b {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	sort.Ints(out)
	return out
}

func setIntersection(a, b []int) []int {
	inB := make(map[int]bool)
	for _, x := range b {
		inB[x] = true
	}
	var out []int
	for _, x := range a {
		if inB[x] {
			out = append(out, x)
		}
	}
	sort.Ints(out)
	return out
}

func setDifference(a, b []int) []int {
	inB := make(map[int]bool)
	for _, x := range b {
		inB[x] = true
	}
	var out []int
	for _, x := range a {
		if !inB[x] {
			out = append(out, x)
		}
	}
	sort.Ints(out)
	return out
}

// padSetAnswers tops up the candidate pool with perturbed copies of the
// result set. When A and B fully overlap, the union/intersection/difference
// candidates all collapse into the correct answer or each other and the
// strategies alone cannot fill three slots.
func padSetAnswers(set *answerSet, result []int) {
	if len(result) > 0 {
		set.add(engine.ExpressionAnswer(formatSet(result[:len(result)-1])))
	}
	next := 1
	for _, x := range result {
		if x >= next {
			next = x + 1
		}
	}
	for k := 0; len(set.items) < 3 && k < 4; k++ {
		bigger := append(append([]int(nil), result...), next+k)
		set.add(engine.ExpressionAnswer(formatSet(bigger)))
	}
}

func (g *SetsAndLogic) union(r *rand.Rand, difficulty float64, cfg setsGrade) *engine.GeneratedQuestion {
	setA, setB := makeSets(r, cfg, difficulty, 2)
	result := setUnion(setA, setB)
	correct := engine.ExpressionAnswer(formatSet(result))

	expression := fmt.Sprintf("Find A ∪ B where A = %s and B = %s", formatSet(setA), formatSet(setB))

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(formatSet(setIntersection(setA, setB))))
	set.add(engine.ExpressionAnswer(formatSet(setDifference(setA, setB))))
	if len(result) > 1 {
		set.add(engine.ExpressionAnswer(formatSet(result[:len(result)-1])))
	}
	set.add(engine.ExpressionAnswer(formatSet(setA)))
	set.add(engine.ExpressionAnswer(formatSet(setB)))
	padSetAnswers(set, result)

	score := engine.Clamp(0.2+0.15*difficulty, 0, 1)

	return g.build(r, "sets_union", engine.OpSetUnion,
		expression, `$A \cup B$`,
		correct, set.take(3), score, engine.Params{
			"set_a": setA, "set_b": setB,
			"type": "union", "grade_level": cfg.grade,
		})
}

func (g *SetsAndLogic) intersection(r *rand.Rand, difficulty float64, cfg setsGrade) *engine.GeneratedQuestion {
	setA, setB := makeSets(r, cfg, difficulty, engine.RandRange(r, 2, 4))
	result := setIntersection(setA, setB)
	correct := engine.ExpressionAnswer(formatSet(result))

	expression := fmt.Sprintf("Find A ∩ B where A = %s and B = %s", formatSet(setA), formatSet(setB))

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(formatSet(setUnion(setA, setB))))
	set.add(engine.ExpressionAnswer(formatSet(setDifference(setA, setB))))
	if len(result) > 0 {
		set.add(engine.ExpressionAnswer("∅"))
	} else {
		set.add(engine.ExpressionAnswer(formatSet(setA)))
	}
	set.add(engine.ExpressionAnswer(formatSet(setB)))
	padSetAnswers(set, result)

	score := engine.Clamp(0.25+0.15*difficulty, 0, 1)

	return g.build(r, "sets_intersection", engine.OpSetIntersection,
		expression, `$A \cap B$`,
		correct, set.take(3), score, engine.Params{
			"set_a": setA, "set_b": setB,
			"type": "intersection", "grade_level": cfg.grade,
		})
}

func (g *SetsAndLogic) difference(r *rand.Rand, difficulty float64, cfg setsGrade) *engine.GeneratedQuestion {
	setA, setB := makeSets(r, cfg, difficulty, engine.RandRange(r, 1, 3))
	result := setDifference(setA, setB)
	correct := engine.ExpressionAnswer(formatSet(result))

	expression := fmt.Sprintf("Find A \\ B (A minus B) where A = %s and B = %s", formatSet(setA), formatSet(setB))

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(formatSet(setDifference(setB, setA))))
	set.add(engine.ExpressionAnswer(formatSet(setIntersection(setA, setB))))
	set.add(engine.ExpressionAnswer(formatSet(setUnion(setA, setB))))
	set.add(engine.ExpressionAnswer(formatSet(setA)))
	padSetAnswers(set, result)

	score := engine.Clamp(0.3+0.2*difficulty, 0, 1)

	return g.build(r, "sets_difference", engine.OpSetDifference,
		expression, `$A \setminus B$`,
		correct, set.take(3), score, engine.Params{
			"set_a": setA, "set_b": setB,
			"type": "difference", "grade_level": cfg.grade,
		})
}

func (g *SetsAndLogic) vennTwo(r *rand.Rand, difficulty float64, cfg setsGrade) *engine.GeneratedQuestion {
	onlyA := engine.RandRange(r, 3, 15)
	onlyB := engine.RandRange(r, 3, 15)
	both := engine.RandRange(r, 1, 8)
	neither := 0
	if difficulty > 0.4 {
		neither = engine.RandRange(r, 0, 5)
	}
	total := onlyA + onlyB + both + neither

	nA := onlyA + both
	nB := onlyB + both

	questions := []string{"total", "only_a", "only_b", "union", "neither"}
	question := questions[r.Intn(len(questions))]

	var expression string
	var answer int
	switch question {
	case "total":
		expression = fmt.Sprintf("In a class of %d students, %d study Math and %d study Science. %d study both. How many study neither?", total, nA, nB, both)
		answer = neither
	case "only_a":
		expression = fmt.Sprintf("%d students study Math, %d study Science, and %d study both. How many study ONLY Math?", nA, nB, both)
		answer = onlyA
	case "only_b":
		expression = fmt.Sprintf("%d students study Math, %d study Science, and %d study both. How many study ONLY Science?", nA, nB, both)
		answer = onlyB
	case "union":
		expression = fmt.Sprintf("%d students study Math, %d study Science, and %d study both. How many study at least one subject?", nA, nB, both)
		answer = nA + nB - both
	default:
		expression = fmt.Sprintf("In a group of %d, %d like football, %d like basketball, and %d like both. How many like neither?", total, nA, nB, both)
		answer = neither
	}

	distractors := vennCandidates(r, answer, []int{nA, nB, both, total, nA + nB, onlyA, onlyB})

	score := engine.Clamp(0.4+0.2*difficulty, 0, 1)

	return g.build(r, "sets_venn_two", engine.OpVennDiagram,
		expression, "",
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"only_a": onlyA, "only_b": onlyB, "both": both, "neither": neither,
			"question": question,
			"type":     "venn_two", "grade_level": cfg.grade,
		})
}

func (g *SetsAndLogic) vennThree(r *rand.Rand, difficulty float64, cfg setsGrade) *engine.GeneratedQuestion {
	onlyA := engine.RandRange(r, 2, 10)
	onlyB := engine.RandRange(r, 2, 10)
	onlyC := engine.RandRange(r, 2, 10)
	ab := engine.RandRange(r, 1, 5)
	bc := engine.RandRange(r, 1, 5)
	ac := engine.RandRange(r, 1, 5)
	abc := engine.RandRange(r, 1, 3)

	nA := onlyA + ab + ac + abc
	nB := onlyB + ab + bc + abc
	nC := onlyC + ac + bc + abc
	answer := onlyA + onlyB + onlyC + ab + bc + ac + abc

	expression := fmt.Sprintf(
		"In a survey: %d like Math, %d like Science, %d like Art. %d like Math & Science, %d like Science & Art, %d like Math & Art, and %d like all three. How many like at least one subject?",
		nA, nB, nC, ab+abc, bc+abc, ac+abc, abc)

	distractors := vennCandidates(r, answer, []int{
		nA + nB + nC,
		nA + nB + nC - ab - bc - ac,
		answer + engine.RandRange(r, 1, 5),
		answer - abc,
	})

	score := engine.Clamp(0.65+0.2*difficulty, 0, 1)

	return g.build(r, "sets_venn_three", engine.OpVennDiagram,
		expression, "",
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"only_a": onlyA, "only_b": onlyB, "only_c": onlyC,
			"ab": ab, "bc": bc, "ac": ac, "abc": abc,
			"type": "venn_three", "grade_level": cfg.grade,
		})
}

// vennCandidates keeps the non-negative candidates that differ from the
// answer, topping up with nearby offsets.
func vennCandidates(r *rand.Rand, answer int, candidates []int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))
	for _, c := range candidates {
		if c >= 0 {
			set.add(engine.IntAnswer(int64(c)))
		}
	}
	offsets := []int{-2, -1, 1, 2, 3}
	for i := 0; len(set.items) < 3 && i < 20; i++ {
		var off int
		if r != nil {
			off = offsets[r.Intn(len(offsets))]
		} else {
			off = offsets[len(set.items)%len(offsets)]
		}
		if v := answer + off; v >= 0 {
			set.add(engine.IntAnswer(int64(v)))
		}
	}
	return set.take(3)
}

func (g *SetsAndLogic) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "union":
		return engine.ExpressionAnswer(formatSet(setUnion(params.Ints("set_a"), params.Ints("set_b")))), nil
	case "intersection":
		return engine.ExpressionAnswer(formatSet(setIntersection(params.Ints("set_a"), params.Ints("set_b")))), nil
	case "difference":
		return engine.ExpressionAnswer(formatSet(setDifference(params.Ints("set_a"), params.Ints("set_b")))), nil
	case "venn_two":
		onlyA, onlyB := params.Int("only_a"), params.Int("only_b")
		both, neither := params.Int("both"), params.Int("neither")
		switch params.String("question") {
		case "only_a":
			return engine.IntAnswer(int64(onlyA)), nil
		case "only_b":
			return engine.IntAnswer(int64(onlyB)), nil
		case "union":
			return engine.IntAnswer(int64(onlyA + onlyB + both)), nil
		default:
			return engine.IntAnswer(int64(neither)), nil
		}
	case "venn_three":
		total := params.Int("only_a") + params.Int("only_b") + params.Int("only_c") +
			params.Int("ab") + params.Int("bc") + params.Int("ac") + params.Int("abc")
		return engine.IntAnswer(int64(total)), nil
	}
	return engine.Answer{}, fmt.Errorf("sets: unknown problem type %q", params.String("type"))
}

func (g *SetsAndLogic) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	set := newAnswerSet(correct)
	setA, setB := params.Ints("set_a"), params.Ints("set_b")
	if len(setA) > 0 {
		set.add(engine.ExpressionAnswer(formatSet(setUnion(setA, setB))))
		set.add(engine.ExpressionAnswer(formatSet(setIntersection(setA, setB))))
		set.add(engine.ExpressionAnswer(formatSet(setDifference(setA, setB))))
		set.add(engine.ExpressionAnswer(formatSet(setA)))
		set.add(engine.ExpressionAnswer(formatSet(setB)))
		return set.take(count)
	}
	if correct.Format == engine.FormatInteger {
		answer := int(correct.Int())
		return vennCandidates(nil, answer, []int{answer + 1, answer - 1, answer + 2, answer + 3})
	}
	return set.take(count)
}

func (g *SetsAndLogic) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "union":
		return 0.25
	case "intersection":
		return 0.3
	case "difference":
		return 0.4
	case "venn_two":
		return 0.5
	case "venn_three":
		return 0.7
	}
	return 0.3
}

func (g *SetsAndLogic) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      templateID,
		QuestionType:    g.QuestionType(),
		Operation:       op,
		Expression:      expression,
		ExpressionLaTeX: latex,
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters:      params,
		CreatedAt:       now(),
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func setsGradeConfig(grade int) setsGrade {
	for _, gc := range setsGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return setsGrades[len(setsGrades)-1]
}
