package generators

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Functions generates evaluation, domain, composition, and inverse function
// questions. Inverse evaluation picks the answer first and derives the input
// from it so (x - b) is always divisible by a.
type Functions struct {
	base
}

// NewFunctions returns the functions generator.
func NewFunctions() *Functions {
	return &Functions{base: newBase()}
}

type functionsGrade struct {
	grade   int
	maxCoef int
	types   []string
}

var functionsGrades = []functionsGrade{
	{8, 10, []string{"linear_eval"}},
	{9, 15, []string{"linear_eval", "quadratic_eval", "domain_range"}},
	{10, 20, []string{"linear_eval", "quadratic_eval", "domain_range", "composition"}},
	{11, 25, []string{"quadratic_eval", "domain_range", "composition", "inverse"}},
	{12, 30, []string{"quadratic_eval", "composition", "inverse"}},
}

var functionsBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 8},
	{UpTo: 0.4, Grade: 9},
	{UpTo: 0.6, Grade: 10},
	{UpTo: 0.8, Grade: 11},
	{UpTo: 1.1, Grade: 12},
}

func (g *Functions) QuestionType() engine.QuestionType { return engine.TypeFunctions }

func (g *Functions) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpLinearFunction, engine.OpQuadraticFunction,
		engine.OpDomainRange, engine.OpComposition, engine.OpInverseFunction,
	}
}

func (g *Functions) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(functionsBands, req.Difficulty)
	}
	cfg := functionsGradeConfig(grade)

	var problemType string
	switch req.Operation {
	case "":
		problemType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpLinearFunction:
		problemType = "linear_eval"
	case engine.OpQuadraticFunction:
		problemType = "quadratic_eval"
	case engine.OpDomainRange:
		problemType = "domain_range"
	case engine.OpComposition:
		problemType = "composition"
	case engine.OpInverseFunction:
		problemType = "inverse"
	default:
		return nil, fmt.Errorf("functions: unsupported operation %q", req.Operation)
	}

	switch problemType {
	case "quadratic_eval":
		return g.quadraticEval(r, req.Difficulty, cfg), nil
	case "domain_range":
		return g.domainRange(r, req.Difficulty, cfg), nil
	case "composition":
		return g.composition(r, req.Difficulty, cfg), nil
	case "inverse":
		return g.inverse(r, req.Difficulty, cfg), nil
	default:
		return g.linearEval(r, req.Difficulty, cfg), nil
	}
}

func (g *Functions) linearEval(r *rand.Rand, difficulty float64, cfg functionsGrade) *engine.GeneratedQuestion {
	maxC := maxInt(3, int(float64(cfg.maxCoef)*(0.3+0.7*difficulty)))
	a := engine.RandRange(r, 1, maxC)
	b := engine.RandRange(r, -maxC, maxC)
	x := engine.RandRange(r, -5, 10)
	answer := a*x + b

	funcStr := "f(x) = " + formatLinearSide(a, b)
	distractors := g.funcCandidates(r, answer, []int{
		a*x - b, a + b, x*b + a, answer + 1, answer - 1,
	})
	score := engine.Clamp(0.2+0.15*difficulty, 0, 1)

	return g.build(r, "functions_linear_eval", engine.OpLinearFunction,
		fmt.Sprintf("If %s, find f(%d)", funcStr, x),
		fmt.Sprintf("$%s$, $f(%d) = ?$", funcStr, x),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"a": a, "b": b, "x": x, "answer": answer,
			"type": "linear_eval", "grade_level": cfg.grade,
		})
}

func (g *Functions) quadraticEval(r *rand.Rand, difficulty float64, cfg functionsGrade) *engine.GeneratedQuestion {
	a := engine.RandRange(r, 1, minInt(5, cfg.maxCoef))
	b := engine.RandRange(r, -5, 5)
	c := engine.RandRange(r, -10, 10)
	x := engine.RandRange(r, -4, 4)
	answer := a*x*x + b*x + c

	funcStr := "f(x) = " + quadraticFuncString(a, b, c)
	distractors := g.funcCandidates(r, answer, []int{
		a*x + b*x + c,
		a*x*x - b*x + c,
		answer + a, answer - c, absInt(answer),
	})
	score := engine.Clamp(0.4+0.2*difficulty, 0, 1)

	return g.build(r, "functions_quadratic_eval", engine.OpQuadraticFunction,
		fmt.Sprintf("If %s, find f(%d)", funcStr, x),
		fmt.Sprintf("$%s$", strings.ReplaceAll(funcStr, "²", "^2")),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"a": a, "b": b, "c": c, "x": x, "answer": answer,
			"type": "quadratic_eval", "grade_level": cfg.grade,
		})
}

func (g *Functions) domainRange(r *rand.Rand, difficulty float64, cfg functionsGrade) *engine.GeneratedQuestion {
	funcType := []string{"sqrt", "fraction", "linear"}[r.Intn(3)]
	a := engine.RandRange(r, 1, 5)
	b := engine.RandRange(r, -10, 10)

	var expression string
	var answer string
	var distractors []string
	boundary := domainBoundary(a, b)

	switch funcType {
	case "sqrt":
		expression = fmt.Sprintf("Find the domain of f(x) = √(%s)", formatLinearSide(a, b))
		answer = "x ≥ " + boundary
		distractors = []string{"x > " + boundary, "All real numbers", "x ≤ " + boundary}
	case "fraction":
		expression = fmt.Sprintf("Find the domain of f(x) = 1/(%s)", formatLinearSide(a, b))
		answer = "x ≠ " + boundary
		distractors = []string{"All real numbers", "x > " + boundary, "x ≥ " + boundary}
	default:
		expression = fmt.Sprintf("Find the domain of f(x) = %s", formatLinearSide(a, b))
		answer = "All real numbers"
		distractors = []string{"x > 0", "x ≥ 0", fmt.Sprintf("x ≠ %d", -b)}
	}

	correct := engine.ExpressionAnswer(answer)
	set := newAnswerSet(correct)
	for _, d := range distractors {
		set.add(engine.ExpressionAnswer(d))
	}
	score := engine.Clamp(0.4+0.2*difficulty, 0, 1)

	return g.build(r, "functions_domain_range", engine.OpDomainRange,
		expression, "",
		correct, set.take(3), score, engine.Params{
			"a": a, "b": b, "func_type": funcType,
			"type": "domain_range", "grade_level": cfg.grade,
		})
}

func (g *Functions) composition(r *rand.Rand, difficulty float64, cfg functionsGrade) *engine.GeneratedQuestion {
	a := engine.RandRange(r, 1, minInt(5, cfg.maxCoef))
	b := engine.RandRange(r, -5, 5)
	c := engine.RandRange(r, 1, minInt(5, cfg.maxCoef))
	d := engine.RandRange(r, -5, 5)
	x := engine.RandRange(r, -3, 5)

	gOfX := c*x + d
	answer := a*gOfX + b

	distractors := g.funcCandidates(r, answer, []int{
		c*(a*x+b) + d,
		a*x + b + c*x + d,
		a*c*x + b + d,
		answer + 1, answer - 1,
	})
	score := engine.Clamp(0.55+0.2*difficulty, 0, 1)

	return g.build(r, "functions_composition", engine.OpComposition,
		fmt.Sprintf("If f(x) = %s and g(x) = %s, find f(g(%d))",
			formatLinearSide(a, b), formatLinearSide(c, d), x),
		fmt.Sprintf("$f(g(%d))$", x),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"a": a, "b": b, "c": c, "d": d, "x": x, "answer": answer,
			"type": "composition", "grade_level": cfg.grade,
		})
}

func (g *Functions) inverse(r *rand.Rand, difficulty float64, cfg functionsGrade) *engine.GeneratedQuestion {
	a := engine.RandRange(r, 1, minInt(8, cfg.maxCoef))
	b := engine.RandRange(r, -10, 10)
	answer := engine.RandRange(r, -5, 10)
	x := a*answer + b

	distractors := g.funcCandidates(r, answer, []int{
		a*x + b,
		x - b,
		(x + b) / a,
		answer + 1, answer - 1,
	})
	score := engine.Clamp(0.6+0.2*difficulty, 0, 1)

	return g.build(r, "functions_inverse", engine.OpInverseFunction,
		fmt.Sprintf("If f(x) = %s, find f⁻¹(%d)", formatLinearSide(a, b), x),
		fmt.Sprintf("$f^{-1}(%d)$", x),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"a": a, "b": b, "x_val": x, "answer": answer,
			"type": "inverse", "grade_level": cfg.grade,
		})
}

func (g *Functions) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	a, b := params.Int("a"), params.Int("b")
	switch params.String("type") {
	case "linear_eval":
		return engine.IntAnswer(int64(a*params.Int("x") + b)), nil
	case "quadratic_eval":
		x := params.Int("x")
		return engine.IntAnswer(int64(a*x*x + params.Int("b")*x + params.Int("c"))), nil
	case "domain_range":
		boundary := domainBoundary(a, b)
		switch params.String("func_type") {
		case "sqrt":
			return engine.ExpressionAnswer("x ≥ " + boundary), nil
		case "fraction":
			return engine.ExpressionAnswer("x ≠ " + boundary), nil
		default:
			return engine.ExpressionAnswer("All real numbers"), nil
		}
	case "composition":
		c, d, x := params.Int("c"), params.Int("d"), params.Int("x")
		return engine.IntAnswer(int64(a*(c*x+d) + b)), nil
	case "inverse":
		if a == 0 {
			return engine.Answer{}, fmt.Errorf("functions: zero slope is not invertible")
		}
		return engine.IntAnswer(int64((params.Int("x_val") - b) / a)), nil
	}
	return engine.Answer{}, fmt.Errorf("functions: unknown problem type %q", params.String("type"))
}

func (g *Functions) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	if correct.Format != engine.FormatInteger {
		set := newAnswerSet(correct)
		set.add(engine.ExpressionAnswer("All real numbers"))
		set.add(engine.ExpressionAnswer("x > 0"))
		set.add(engine.ExpressionAnswer("x ≥ 0"))
		return set.take(count)
	}
	answer := int(correct.Int())
	out := g.funcCandidates(nil, answer, []int{answer + 1, answer - 1, answer + 2, answer - 2})
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Functions) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "linear_eval":
		return 0.25
	case "quadratic_eval":
		return 0.45
	case "domain_range":
		return 0.5
	case "composition":
		return 0.6
	case "inverse":
		return 0.65
	}
	return 0.4
}

func (g *Functions) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

// funcCandidates allows negative distractors since function values can be
// negative.
func (g *Functions) funcCandidates(r *rand.Rand, answer int, candidates []int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))
	for _, c := range candidates {
		set.add(engine.IntAnswer(int64(c)))
	}
	offsets := []int{-3, -2, -1, 1, 2, 3}
	for i := 0; len(set.items) < 3 && i < 24; i++ {
		var off int
		if r != nil {
			off = offsets[r.Intn(len(offsets))]
		} else {
			off = offsets[i%len(offsets)]
		}
		set.add(engine.IntAnswer(int64(answer + off)))
	}
	return set.take(3)
}

// domainBoundary renders -b/a as an integer when it divides evenly, else as
// a reduced fraction.
func domainBoundary(a, b int) string {
	if (-b)%a == 0 {
		return fmt.Sprintf("%d", -b/a)
	}
	return engine.NewFraction(int64(-b), int64(a)).Reduce().String()
}

// quadraticFuncString renders ax² + bx + c with signs folded in and zero
// terms dropped.
func quadraticFuncString(a, b, c int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx²", a)
	if b > 0 {
		fmt.Fprintf(&sb, " + %dx", b)
	} else if b < 0 {
		fmt.Fprintf(&sb, " - %dx", -b)
	}
	if c > 0 {
		fmt.Fprintf(&sb, " + %d", c)
	} else if c < 0 {
		fmt.Fprintf(&sb, " - %d", -c)
	}
	return sb.String()
}

func functionsGradeConfig(grade int) functionsGrade {
	for _, gc := range functionsGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return functionsGrades[len(functionsGrades)-1]
}
