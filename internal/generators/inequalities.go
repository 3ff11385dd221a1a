package generators

import (
	"fmt"
	"math/rand"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Inequalities generates one-step, two-step, compound, and absolute value
// inequality questions. Two-step inequalities with a negative coefficient
// flip the relation in the answer.
type Inequalities struct {
	base
}

// NewInequalities returns the inequalities generator.
func NewInequalities() *Inequalities {
	return &Inequalities{base: newBase()}
}

type inequalitiesGrade struct {
	grade   int
	maxCoef int
	types   []string
}

var inequalitiesGrades = []inequalitiesGrade{
	{7, 10, []string{"one_step"}},
	{8, 15, []string{"one_step", "two_step"}},
	{9, 20, []string{"one_step", "two_step", "compound"}},
	{10, 25, []string{"two_step", "compound", "absolute_value"}},
	{11, 30, []string{"two_step", "compound", "absolute_value"}},
}

var inequalitiesBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 7},
	{UpTo: 0.4, Grade: 8},
	{UpTo: 0.6, Grade: 9},
	{UpTo: 0.8, Grade: 10},
	{UpTo: 1.1, Grade: 11},
}

var ineqSymbols = []string{"<", ">", "≤", "≥"}

var ineqFlip = map[string]string{"<": ">", ">": "<", "≤": "≥", "≥": "≤"}

func (g *Inequalities) QuestionType() engine.QuestionType { return engine.TypeInequalities }

func (g *Inequalities) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpLinearInequality, engine.OpCompoundInequality,
		engine.OpAbsoluteValueInequality,
	}
}

func (g *Inequalities) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(inequalitiesBands, req.Difficulty)
	}
	cfg := inequalitiesGradeConfig(grade)

	var problemType string
	switch req.Operation {
	case "":
		problemType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpLinearInequality:
		problemType = "two_step"
	case engine.OpCompoundInequality:
		problemType = "compound"
	case engine.OpAbsoluteValueInequality:
		problemType = "absolute_value"
	default:
		return nil, fmt.Errorf("inequalities: unsupported operation %q", req.Operation)
	}

	switch problemType {
	case "two_step":
		return g.twoStep(r, req.Difficulty, cfg), nil
	case "compound":
		return g.compound(r, req.Difficulty, cfg), nil
	case "absolute_value":
		return g.absoluteValue(r, req.Difficulty, cfg), nil
	default:
		return g.oneStep(r, req.Difficulty, cfg), nil
	}
}

func (g *Inequalities) oneStep(r *rand.Rand, difficulty float64, cfg inequalitiesGrade) *engine.GeneratedQuestion {
	maxC := maxInt(3, int(float64(cfg.maxCoef)*(0.3+0.7*difficulty)))
	symbol := ineqSymbols[r.Intn(len(ineqSymbols))]

	var expression string
	var answerVal int
	switch r.Intn(4) {
	case 0: // x + a ? b
		a := engine.RandRange(r, 1, maxC)
		b := engine.RandRange(r, a+1, maxC+a)
		answerVal = b - a
		expression = fmt.Sprintf("x + %d %s %d", a, symbol, b)
	case 1: // x - a ? b
		a := engine.RandRange(r, 1, maxC)
		b := engine.RandRange(r, 1, maxC)
		answerVal = b + a
		expression = fmt.Sprintf("x - %d %s %d", a, symbol, b)
	case 2: // ax ? b
		a := engine.RandRange(r, 2, minInt(10, maxC))
		answerVal = engine.RandRange(r, 2, maxC)
		expression = fmt.Sprintf("%dx %s %d", a, symbol, a*answerVal)
	default: // x/a ? b
		a := engine.RandRange(r, 2, minInt(10, maxC))
		b := engine.RandRange(r, 1, maxInt(1, maxC/2))
		answerVal = a * b
		expression = fmt.Sprintf("x/%d %s %d", a, symbol, b)
	}

	answer := fmt.Sprintf("x %s %d", symbol, answerVal)
	score := engine.Clamp(0.2+0.15*difficulty, 0, 1)

	return g.build(r, "inequalities_one_step", engine.OpLinearInequality,
		"Solve: "+expression, "$"+expression+"$",
		engine.ExpressionAnswer(answer), g.boundDistractors(symbol, answerVal), score,
		engine.Params{
			"type": "one_step", "symbol": symbol, "value": answerVal,
			"grade_level": cfg.grade,
		})
}

func (g *Inequalities) twoStep(r *rand.Rand, difficulty float64, cfg inequalitiesGrade) *engine.GeneratedQuestion {
	maxC := maxInt(3, int(float64(cfg.maxCoef)*(0.3+0.7*difficulty)))
	symbol := ineqSymbols[r.Intn(len(ineqSymbols))]

	a := engine.RandRange(r, 2, minInt(8, maxC))
	b := engine.RandRange(r, 1, maxC)
	xVal := engine.RandRange(r, 1, maxC/a+1)

	negCoef := r.Float64() < 0.3 && difficulty > 0.5
	answerSymbol := symbol
	if negCoef {
		a = -a
		answerSymbol = ineqFlip[symbol]
	}
	c := a*xVal + b

	expression := fmt.Sprintf("%dx + %d %s %d", a, b, symbol, c)
	answer := fmt.Sprintf("x %s %d", answerSymbol, xVal)

	score := 0.35 + 0.2*difficulty
	if negCoef {
		score += 0.1
	}
	score = engine.Clamp(score, 0, 1)

	return g.build(r, "inequalities_two_step", engine.OpLinearInequality,
		"Solve: "+expression, "$"+expression+"$",
		engine.ExpressionAnswer(answer), g.boundDistractors(answerSymbol, xVal), score,
		engine.Params{
			"type": "two_step", "symbol": answerSymbol, "value": xVal,
			"neg_coef":    negCoef,
			"grade_level": cfg.grade,
		})
}

func (g *Inequalities) compound(r *rand.Rand, difficulty float64, cfg inequalitiesGrade) *engine.GeneratedQuestion {
	maxC := maxInt(5, int(float64(cfg.maxCoef)*(0.3+0.7*difficulty)))

	a := engine.RandRange(r, 1, maxC/2)
	b := engine.RandRange(r, a+2, maxC)

	var answer, prompt string
	var correct engine.Answer
	set := func(items ...string) []engine.Answer {
		s := newAnswerSet(correct)
		for _, it := range items {
			s.add(engine.ExpressionAnswer(it))
		}
		return s.take(3)
	}

	compoundType := []string{"and", "or"}[r.Intn(2)]
	var distractors []engine.Answer
	if compoundType == "and" {
		answer = fmt.Sprintf("%d < x < %d", a, b)
		prompt = fmt.Sprintf("x > %d AND x < %d", a, b)
		correct = engine.ExpressionAnswer(answer)
		distractors = set(
			fmt.Sprintf("%d ≤ x ≤ %d", a, b),
			fmt.Sprintf("x < %d or x > %d", a, b),
			fmt.Sprintf("%d < x < %d", a-1, b+1),
		)
	} else {
		answer = fmt.Sprintf("x < %d or x > %d", a, b)
		prompt = answer
		correct = engine.ExpressionAnswer(answer)
		distractors = set(
			fmt.Sprintf("x ≤ %d or x ≥ %d", a, b),
			fmt.Sprintf("%d < x < %d", a, b),
			fmt.Sprintf("x < %d or x > %d", a+1, b-1),
		)
	}

	score := engine.Clamp(0.5+0.2*difficulty, 0, 1)

	return g.build(r, "inequalities_compound", engine.OpCompoundInequality,
		"Express the solution: "+prompt, "",
		correct, distractors, score, engine.Params{
			"type": "compound", "compound_type": compoundType,
			"a": a, "b": b,
			"grade_level": cfg.grade,
		})
}

func (g *Inequalities) absoluteValue(r *rand.Rand, difficulty float64, cfg inequalitiesGrade) *engine.GeneratedQuestion {
	maxC := maxInt(3, int(float64(cfg.maxCoef)*(0.3+0.7*difficulty)))

	a := engine.RandRange(r, 0, maxC/2)
	b := engine.RandRange(r, 1, maxC)
	low, high := a-b, a+b

	var expression, answer string
	var distractors []string
	ineqType := []string{"less", "greater"}[r.Intn(2)]
	if ineqType == "less" {
		expression = fmt.Sprintf("|x - %d| < %d", a, b)
		answer = fmt.Sprintf("%d < x < %d", low, high)
		distractors = []string{
			fmt.Sprintf("x < %d", high),
			fmt.Sprintf("x < %d or x > %d", low, high),
			fmt.Sprintf("%d < x < %d", low-1, high+1),
		}
	} else {
		expression = fmt.Sprintf("|x - %d| > %d", a, b)
		answer = fmt.Sprintf("x < %d or x > %d", low, high)
		distractors = []string{
			fmt.Sprintf("%d < x < %d", low, high),
			fmt.Sprintf("x > %d", high),
			fmt.Sprintf("x < %d or x > %d", low-1, high+1),
		}
	}

	correct := engine.ExpressionAnswer(answer)
	s := newAnswerSet(correct)
	for _, d := range distractors {
		s.add(engine.ExpressionAnswer(d))
	}

	score := engine.Clamp(0.6+0.2*difficulty, 0, 1)

	return g.build(r, "inequalities_absolute_value", engine.OpAbsoluteValueInequality,
		"Solve: "+expression, "$"+expression+"$",
		correct, s.take(3), score, engine.Params{
			"type": "absolute_value", "ineq_type": ineqType,
			"a": a, "b": b,
			"grade_level": cfg.grade,
		})
}

func (g *Inequalities) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "one_step", "two_step":
		return engine.ExpressionAnswer(fmt.Sprintf("x %s %d", params.String("symbol"), params.Int("value"))), nil
	case "compound":
		a, b := params.Int("a"), params.Int("b")
		if params.String("compound_type") == "and" {
			return engine.ExpressionAnswer(fmt.Sprintf("%d < x < %d", a, b)), nil
		}
		return engine.ExpressionAnswer(fmt.Sprintf("x < %d or x > %d", a, b)), nil
	case "absolute_value":
		a, b := params.Int("a"), params.Int("b")
		low, high := a-b, a+b
		if params.String("ineq_type") == "less" {
			return engine.ExpressionAnswer(fmt.Sprintf("%d < x < %d", low, high)), nil
		}
		return engine.ExpressionAnswer(fmt.Sprintf("x < %d or x > %d", low, high)), nil
	}
	return engine.Answer{}, fmt.Errorf("inequalities: unknown problem type %q", params.String("type"))
}

func (g *Inequalities) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	var out []engine.Answer
	switch params.String("type") {
	case "one_step", "two_step":
		out = g.boundDistractors(params.String("symbol"), params.Int("value"))
	default:
		set := newAnswerSet(correct)
		set.add(engine.ExpressionAnswer("No solution"))
		out = set.take(count)
	}
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Inequalities) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "one_step":
		return 0.25
	case "two_step":
		return 0.45
	case "compound":
		return 0.6
	case "absolute_value":
		return 0.7
	}
	return 0.4
}

func (g *Inequalities) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

// boundDistractors flips the relation and nudges the bound.
func (g *Inequalities) boundDistractors(symbol string, value int) []engine.Answer {
	set := newAnswerSet(engine.ExpressionAnswer(fmt.Sprintf("x %s %d", symbol, value)))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s %d", ineqFlip[symbol], value)))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s %d", symbol, value+1)))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s %d", symbol, value-1)))
	return set.take(3)
}

func inequalitiesGradeConfig(grade int) inequalitiesGrade {
	for _, gc := range inequalitiesGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return inequalitiesGrades[len(inequalitiesGrades)-1]
}
