package generators

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Algebra generates linear and quadratic equation questions. Every equation
// is constructed backwards from a chosen integer solution, so the algebra
// always works out cleanly.
type Algebra struct {
	base
}

// NewAlgebra returns the algebra generator.
func NewAlgebra() *Algebra {
	return &Algebra{base: newBase()}
}

// equationType is the internal template within the linear/quadratic split.
type equationType string

const (
	eqOneStep   equationType = "one_step"
	eqTwoStep   equationType = "two_step"
	eqMultiStep equationType = "multi_step"
	eqBothSides equationType = "both_sides"
	eqQuadratic equationType = "quadratic"
)

type algebraGrade struct {
	grade         int
	maxCoef       int
	allowNegative bool
	types         []equationType
}

var algebraGrades = []algebraGrade{
	{6, 10, false, []equationType{eqOneStep}},
	{7, 15, true, []equationType{eqOneStep, eqTwoStep}},
	{8, 20, true, []equationType{eqOneStep, eqTwoStep, eqMultiStep}},
	{9, 30, true, []equationType{eqTwoStep, eqMultiStep, eqBothSides}},
	{10, 50, true, []equationType{eqMultiStep, eqBothSides, eqQuadratic}},
}

var algebraBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 6},
	{UpTo: 0.4, Grade: 7},
	{UpTo: 0.6, Grade: 8},
	{UpTo: 0.8, Grade: 9},
	{UpTo: 1.1, Grade: 10},
}

func (g *Algebra) QuestionType() engine.QuestionType { return engine.TypeAlgebra }

func (g *Algebra) SupportedOperations() []engine.Operation {
	return []engine.Operation{engine.OpLinear, engine.OpQuadratic}
}

func (g *Algebra) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(algebraBands, req.Difficulty)
	}
	cfg := algebraGradeConfig(grade)

	var eqType equationType
	switch req.Operation {
	case "":
		eqType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpLinear:
		eqType = eqTwoStep
	case engine.OpQuadratic:
		eqType = eqQuadratic
	default:
		return nil, fmt.Errorf("algebra: unsupported operation %q", req.Operation)
	}

	if !containsEqType(cfg.types, eqType) {
		// Upgrade to the lowest grade whose envelope includes the requested
		// equation type.
		for _, gc := range algebraGrades {
			if gc.grade > cfg.grade && containsEqType(gc.types, eqType) {
				cfg = gc
				break
			}
		}
	}

	switch eqType {
	case eqOneStep:
		return g.oneStep(r, req.Difficulty, cfg), nil
	case eqTwoStep:
		return g.twoStep(r, req.Difficulty, cfg), nil
	case eqMultiStep:
		return g.multiStep(r, req.Difficulty, cfg), nil
	case eqBothSides:
		return g.bothSides(r, req.Difficulty, cfg), nil
	default:
		return g.quadratic(r, req.Difficulty, cfg), nil
	}
}

// oneStep builds x + a = b, x - a = b, ax = b or x ÷ a = b.
func (g *Algebra) oneStep(r *rand.Rand, difficulty float64, cfg algebraGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxCoef, difficulty, 3)

	var x, a int
	var expression string
	switch r.Intn(4) {
	case 0: // x + a = b
		x = engine.RandRange(r, 1, scaledMax)
		a = engine.RandRange(r, 1, scaledMax)
		expression = fmt.Sprintf("x + %d = %d", a, x+a)
	case 1: // x - a = b
		x = engine.RandRange(r, 1, scaledMax)
		a = engine.RandRange(r, 1, minInt(x, scaledMax))
		expression = fmt.Sprintf("x - %d = %d", a, x-a)
	case 2: // ax = b
		a = engine.RandRange(r, 2, minInt(10, scaledMax))
		x = engine.RandRange(r, 1, scaledMax/a+1)
		expression = fmt.Sprintf("%dx = %d", a, a*x)
	default: // x ÷ a = b
		a = engine.RandRange(r, 2, minInt(10, scaledMax))
		b := engine.RandRange(r, 1, scaledMax/a+1)
		x = a * b
		expression = fmt.Sprintf("x ÷ %d = %d", a, b)
	}

	score := 0.2 + 0.1*float64(scaledMax)/float64(cfg.maxCoef)
	return g.buildLinear(r, "algebra_one_step", eqOneStep, expression, x, score, engine.Params{
		"equation_type": string(eqOneStep),
		"solution":      x,
		"expression":    expression,
		"grade_level":   cfg.grade,
	})
}

// twoStep builds ax + b = c from a chosen solution.
func (g *Algebra) twoStep(r *rand.Rand, difficulty float64, cfg algebraGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxCoef, difficulty, 3)

	x := engine.RandRange(r, 1, scaledMax)
	if cfg.allowNegative && r.Float64() < 0.3 {
		x = -x
	}
	a := engine.RandRange(r, 2, minInt(10, scaledMax))
	b := engine.RandRange(r, 1, scaledMax)
	if cfg.allowNegative && r.Float64() < 0.3 {
		b = -b
	}
	c := a*x + b

	expression := formatLinearSide(a, b) + fmt.Sprintf(" = %d", c)

	score := 0.35 + 0.15*float64(scaledMax)/float64(cfg.maxCoef)
	if cfg.allowNegative && (x < 0 || b < 0) {
		score += 0.1
	}
	return g.buildLinear(r, "algebra_two_step", eqTwoStep, expression, x, score, engine.Params{
		"equation_type": string(eqTwoStep),
		"a":             a, "b": b, "c": c,
		"solution":    x,
		"grade_level": cfg.grade,
	})
}

// multiStep builds a distributive equation a(x + b) = c.
func (g *Algebra) multiStep(r *rand.Rand, difficulty float64, cfg algebraGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxCoef, difficulty, 3)

	x := engine.RandRange(r, 1, maxInt(1, scaledMax/2))
	if cfg.allowNegative && r.Float64() < 0.3 {
		x = -x
	}
	a := engine.RandRange(r, 2, minInt(8, scaledMax))
	b := engine.RandRange(r, 1, maxInt(1, scaledMax/2))
	if cfg.allowNegative && r.Float64() < 0.3 {
		b = -b
	}
	c := a * (x + b)

	inner := fmt.Sprintf("x + %d", b)
	if b < 0 {
		inner = fmt.Sprintf("x - %d", -b)
	}
	expression := fmt.Sprintf("%d(%s) = %d", a, inner, c)

	score := 0.5 + 0.2*float64(scaledMax)/float64(cfg.maxCoef)
	if cfg.allowNegative {
		score += 0.1
	}
	return g.buildLinear(r, "algebra_multi_step", eqMultiStep, expression, x, score, engine.Params{
		"equation_type": string(eqMultiStep),
		"a":             a, "b": b, "c": c,
		"solution":    x,
		"grade_level": cfg.grade,
	})
}

// bothSides builds ax + b = cx + d with a > c so the variable terms never
// cancel.
func (g *Algebra) bothSides(r *rand.Rand, difficulty float64, cfg algebraGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxCoef, difficulty, 3)

	x := engine.RandRange(r, 1, maxInt(1, scaledMax/2))
	if cfg.allowNegative && r.Float64() < 0.3 {
		x = -x
	}
	a := engine.RandRange(r, 2, minInt(10, scaledMax))
	c := engine.RandRange(r, 1, a-1)
	b := engine.RandRange(r, 1, scaledMax)
	if cfg.allowNegative && r.Float64() < 0.3 {
		b = -b
	}
	d := a*x + b - c*x

	expression := formatLinearSide(a, b) + " = " + formatLinearSide(c, d)

	score := 0.6 + 0.2*float64(scaledMax)/float64(cfg.maxCoef)
	return g.buildLinear(r, "algebra_both_sides", eqBothSides, expression, x, score, engine.Params{
		"equation_type": string(eqBothSides),
		"a":             a, "b": b, "c": c, "d": d,
		"solution":    x,
		"grade_level": cfg.grade,
	})
}

// quadratic builds (x-r1)(x-r2) = 0 expanded, with roots in [-8, 8].
func (g *Algebra) quadratic(r *rand.Rand, difficulty float64, cfg algebraGrade) *engine.GeneratedQuestion {
	r1 := engine.RandRange(r, -8, 8)
	r2 := engine.RandRange(r, -8, 8)

	b := -(r1 + r2)
	c := r1 * r2

	expression := quadraticExpression(b, c)

	lo, hi := r1, r2
	if lo > hi {
		lo, hi = hi, lo
	}
	correct := engine.ExpressionAnswer(rootsExpression(lo, hi))

	distractors := g.quadraticDistractors(r1, r2, correct)
	score := engine.Clamp(0.7+0.15*difficulty, 0, 1)

	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      "algebra_quadratic",
		QuestionType:    g.QuestionType(),
		Operation:       engine.OpQuadratic,
		Expression:      "Solve for x: " + expression,
		ExpressionLaTeX: "$" + algebraLaTeX(expression) + "$",
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters: engine.Params{
			"equation_type": string(eqQuadratic),
			"b":             b, "c": c,
			"root1":       lo,
			"root2":       hi,
			"grade_level": cfg.grade,
		},
		CreatedAt: now(),
	}
}

func (g *Algebra) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	if equationType(params.String("equation_type")) == eqQuadratic {
		return engine.ExpressionAnswer(rootsExpression(params.Int("root1"), params.Int("root2"))), nil
	}
	return engine.IntAnswer(int64(params.Int("solution"))), nil
}

func (g *Algebra) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	if equationType(params.String("equation_type")) == eqQuadratic {
		out := g.quadraticDistractors(params.Int("root1"), params.Int("root2"), correct)
		if len(out) > count {
			out = out[:count]
		}
		return out
	}
	out := g.linearDistractors(int(correct.Int()))
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Algebra) Difficulty(params engine.Params) float64 {
	switch equationType(params.String("equation_type")) {
	case eqOneStep:
		return 0.2
	case eqTwoStep:
		return 0.4
	case eqMultiStep:
		return 0.6
	case eqBothSides:
		return 0.7
	case eqQuadratic:
		return 0.8
	}
	return 0.5
}

func (g *Algebra) buildLinear(r *rand.Rand, templateID string, eqType equationType, expression string, solution int, score float64, params engine.Params) *engine.GeneratedQuestion {
	correct := engine.IntAnswer(int64(solution))
	distractors := g.linearDistractors(solution)
	score = engine.Clamp(score, 0, 1)

	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      templateID,
		QuestionType:    g.QuestionType(),
		Operation:       engine.OpLinear,
		Expression:      "Solve for x: " + expression,
		ExpressionLaTeX: "$" + algebraLaTeX(expression) + "$",
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters:      params,
		CreatedAt:       now(),
	}
}

// linearDistractors covers sign errors, off-by-one/two, and factor-of-two
// slips around the solution.
func (g *Algebra) linearDistractors(solution int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(solution)))

	if solution != 0 {
		set.add(engine.IntAnswer(int64(-solution)))
	}
	set.add(engine.IntAnswer(int64(solution + 1)))
	set.add(engine.IntAnswer(int64(solution - 1)))
	set.add(engine.IntAnswer(int64(solution + 2)))
	set.add(engine.IntAnswer(int64(solution - 2)))
	if solution != 0 {
		set.add(engine.IntAnswer(int64(solution * 2)))
		if solution%2 == 0 {
			set.add(engine.IntAnswer(int64(solution / 2)))
		}
	}

	return set.take(3)
}

// quadraticDistractors builds wrong root pairs: sign-flipped roots,
// off-by-one roots, and the sum/product confusion.
func (g *Algebra) quadraticDistractors(r1, r2 int, correct engine.Answer) []engine.Answer {
	set := newAnswerSet(correct)
	addPair := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		set.add(engine.ExpressionAnswer(rootsExpression(a, b)))
	}

	addPair(-r1, -r2)
	addPair(r1+1, r2-1)
	addPair(r1+r2, r1*r2)
	addPair(r1-1, r2+1)

	// Shifted pairs pad the set for degenerate roots such as a double root
	// at zero, where the strategies above collapse together.
	for k := 1; len(set.items) < 3 && k <= 5; k++ {
		addPair(r1+k, r2+k)
		addPair(r1-k, r2-k)
	}

	return set.take(3)
}

func rootsExpression(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("x = %d", lo)
	}
	return fmt.Sprintf("x = %d or x = %d", lo, hi)
}

// formatLinearSide renders "ax + b" with the sign folded into the operator.
func formatLinearSide(a, b int) string {
	if b < 0 {
		return fmt.Sprintf("%dx - %d", a, -b)
	}
	return fmt.Sprintf("%dx + %d", a, b)
}

// quadraticExpression renders x² + bx + c = 0 with signs folded in and
// zero terms dropped.
func quadraticExpression(b, c int) string {
	var sb strings.Builder
	sb.WriteString("x²")
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
	sb.WriteString(" = 0")
	return sb.String()
}

func algebraLaTeX(expression string) string {
	latex := strings.ReplaceAll(expression, "÷", `\div`)
	latex = strings.ReplaceAll(latex, "×", `\times`)
	latex = strings.ReplaceAll(latex, "²", "^2")
	return latex
}

func containsEqType(ts []equationType, t equationType) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

func algebraGradeConfig(grade int) algebraGrade {
	for _, gc := range algebraGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return algebraGrades[len(algebraGrades)-1]
}
