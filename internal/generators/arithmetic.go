package generators

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Arithmetic generates basic +, -, ×, ÷ and mixed order-of-operations
// questions. Difficulty is controlled by operand magnitude, operation type,
// negatives, and step count.
type Arithmetic struct {
	base
}

// NewArithmetic returns the arithmetic generator.
func NewArithmetic() *Arithmetic {
	return &Arithmetic{base: newBase()}
}

// arithmeticGrades declares the per-grade parameter envelopes.
var arithmeticGrades = []engine.GradeEnvelope{
	{Grade: 1, MaxValue: 10, Operations: []engine.Operation{engine.OpAddition}},
	{Grade: 2, MaxValue: 20, Operations: []engine.Operation{engine.OpAddition, engine.OpSubtraction}},
	{Grade: 3, MaxValue: 100, Operations: []engine.Operation{engine.OpAddition, engine.OpSubtraction, engine.OpMultiplication}},
	{Grade: 4, MaxValue: 1000, Operations: []engine.Operation{engine.OpAddition, engine.OpSubtraction, engine.OpMultiplication, engine.OpDivision}},
	{Grade: 5, MaxValue: 10000, AllowNegatives: true, Operations: []engine.Operation{engine.OpAddition, engine.OpSubtraction, engine.OpMultiplication, engine.OpDivision, engine.OpMixed}},
}

var arithmeticBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 1},
	{UpTo: 0.4, Grade: 2},
	{UpTo: 0.6, Grade: 3},
	{UpTo: 0.8, Grade: 4},
	{UpTo: 1.1, Grade: 5},
}

var opSymbols = map[engine.Operation]string{
	engine.OpAddition:       "+",
	engine.OpSubtraction:    "-",
	engine.OpMultiplication: "×",
	engine.OpDivision:       "÷",
}

func (g *Arithmetic) QuestionType() engine.QuestionType { return engine.TypeArithmetic }

func (g *Arithmetic) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpAddition, engine.OpSubtraction, engine.OpMultiplication,
		engine.OpDivision, engine.OpMixed,
	}
}

func (g *Arithmetic) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(arithmeticBands, req.Difficulty)
	}
	env := engine.EnvelopeForGrade(arithmeticGrades, grade)

	op := req.Operation
	if op == "" {
		op = env.Operations[r.Intn(len(env.Operations))]
	} else if !env.Supports(op) {
		// Explicit request wins: upgrade to the lowest grade that supports it.
		upgraded, ok := engine.FindSupportingGrade(arithmeticGrades, op, grade+1)
		if !ok {
			return nil, fmt.Errorf("arithmetic: unsupported operation %q", op)
		}
		env = upgraded
	}

	if op == engine.OpMixed {
		return g.generateMixed(r, req.Difficulty, env, grade), nil
	}
	return g.generateSingle(r, req.Difficulty, op, env, grade)
}

func (g *Arithmetic) generateSingle(r *rand.Rand, difficulty float64, op engine.Operation, env engine.GradeEnvelope, grade int) (*engine.GeneratedQuestion, error) {
	maxVal := scaleByDifficulty(env.MaxValue, difficulty)
	minVal := maxInt(1, maxVal/10)

	var a, b int
	var answer int64
	switch op {
	case engine.OpAddition:
		a = engine.RandRange(r, minVal, maxVal)
		b = engine.RandRange(r, minVal, maxVal)
		answer = int64(a + b)

	case engine.OpSubtraction:
		a = engine.RandRange(r, minVal, maxVal)
		if env.AllowNegatives {
			b = engine.RandRange(r, minVal, maxVal)
		} else {
			// Never a negative result unless the grade allows negatives.
			b = engine.RandRange(r, minVal, minInt(a, maxVal))
		}
		answer = int64(a - b)

	case engine.OpMultiplication:
		// Factors capped at 12 independently of the magnitude envelope.
		multMax := int(math.Sqrt(float64(maxVal))) + 1
		multMax = maxInt(2, minInt(multMax, 12))
		a = engine.RandRange(r, 2, multMax)
		b = engine.RandRange(r, 2, multMax)
		answer = int64(a * b)

	case engine.OpDivision:
		// Build divisor × quotient = dividend so division is always exact.
		divisor := engine.RandRange(r, 2, minInt(12, maxVal))
		quotient := engine.RandRange(r, 1, maxInt(1, maxVal/divisor))
		a = divisor * quotient
		b = divisor
		answer = int64(quotient)

	default:
		return nil, fmt.Errorf("arithmetic: unsupported operation %q", op)
	}

	expression := fmt.Sprintf("%d %s %d", a, opSymbols[op], b)
	params := engine.Params{
		"a": a, "b": b,
		"operation":   string(op),
		"grade_level": grade,
	}

	correct := engine.IntAnswer(answer)
	distractors := g.Distractors(correct, params, 3)
	score := g.Difficulty(engine.Params{
		"operation":     string(op),
		"operands":      []int{a, b},
		"has_negatives": env.AllowNegatives && (a < 0 || b < 0 || answer < 0),
	})

	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      "arithmetic_" + string(op),
		QuestionType:    g.QuestionType(),
		Operation:       op,
		Expression:      expression + " = ?",
		ExpressionLaTeX: arithmeticLaTeX(expression),
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters:      params,
		CreatedAt:       now(),
	}, nil
}

// generateMixed builds an order-of-operations question whose distractor set
// explicitly includes the left-associative "common error" answer.
func (g *Arithmetic) generateMixed(r *rand.Rand, difficulty float64, env engine.GradeEnvelope, grade int) *engine.GeneratedQuestion {
	maxVal := scaleByDifficulty(minInt(env.MaxValue, 50), difficulty)
	minVal := maxInt(1, maxVal/5)

	a := engine.RandRange(r, minVal, maxVal)
	b := engine.RandRange(r, 2, minInt(12, maxVal))
	c := engine.RandRange(r, minVal, maxVal)

	lowOps := []engine.Operation{engine.OpAddition, engine.OpSubtraction}
	highOps := []engine.Operation{engine.OpMultiplication, engine.OpDivision}
	op1 := lowOps[r.Intn(2)]
	op2 := highOps[r.Intn(2)]

	var answer int64
	var expression string
	productFirst := r.Intn(2) == 1

	if op2 == engine.OpDivision {
		// Regenerate b as a clean multiple of c.
		c = engine.RandRange(r, 2, 10)
		b = c * engine.RandRange(r, 1, maxInt(1, maxVal/c))
	}

	high := int64(b * c)
	if op2 == engine.OpDivision {
		high = int64(b / c)
	}
	if productFirst {
		if op1 == engine.OpAddition {
			answer = high + int64(a)
		} else {
			answer = high - int64(a)
		}
		expression = fmt.Sprintf("%d %s %d %s %d", b, opSymbols[op2], c, opSymbols[op1], a)
	} else {
		if op1 == engine.OpAddition {
			answer = int64(a) + high
		} else {
			answer = int64(a) - high
		}
		expression = fmt.Sprintf("%d %s %d %s %d", a, opSymbols[op1], b, opSymbols[op2], c)
	}

	correct := engine.IntAnswer(answer)
	distractors := g.mixedDistractors(r, answer, a, b, c, op1, op2, productFirst)
	score := g.Difficulty(engine.Params{
		"operation":  string(engine.OpMixed),
		"operands":   []int{a, b, c},
		"step_count": 2,
	})

	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      "arithmetic_mixed",
		QuestionType:    g.QuestionType(),
		Operation:       engine.OpMixed,
		Expression:      expression + " = ?",
		ExpressionLaTeX: arithmeticLaTeX(expression),
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters: engine.Params{
			"a": a, "b": b, "c": c,
			"op1":           string(op1),
			"op2":           string(op2),
			"product_first": boolToInt(productFirst),
			"grade_level":   grade,
		},
		CreatedAt: now(),
	}
}

func (g *Arithmetic) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	a := int64(params.Int("a"))
	b := int64(params.Int("b"))

	if op1 := params.String("op1"); op1 != "" {
		// Mixed question: recombine per order of operations.
		c := int64(params.Int("c"))
		var high int64
		if engine.Operation(params.String("op2")) == engine.OpDivision {
			if c == 0 {
				return engine.Answer{}, fmt.Errorf("arithmetic: zero divisor in parameters")
			}
			high = b / c
		} else {
			high = b * c
		}
		if engine.Operation(op1) == engine.OpAddition {
			return engine.IntAnswer(a + high), nil
		}
		if params.Int("product_first") == 1 {
			return engine.IntAnswer(high - a), nil
		}
		return engine.IntAnswer(a - high), nil
	}

	switch engine.Operation(params.String("operation")) {
	case engine.OpAddition:
		return engine.IntAnswer(a + b), nil
	case engine.OpSubtraction:
		return engine.IntAnswer(a - b), nil
	case engine.OpMultiplication:
		return engine.IntAnswer(a * b), nil
	case engine.OpDivision:
		if b == 0 {
			return engine.Answer{}, fmt.Errorf("arithmetic: zero divisor in parameters")
		}
		return engine.IntAnswer(a / b), nil
	}
	return engine.Answer{}, fmt.Errorf("arithmetic: unknown operation %q", params.String("operation"))
}

func (g *Arithmetic) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	seed := paramSeed(params, "a", "b", "c")
	r := engine.NewRand(&seed)
	return g.dist.IntDistractors(r, correct.Int(), count,
		engine.Operation(params.String("operation")),
		float64(params.Int("a")), float64(params.Int("b")))
}

func (g *Arithmetic) Difficulty(params engine.Params) float64 {
	operands := params.Ints("operands")
	if operands == nil {
		operands = []int{params.Int("a"), params.Int("b")}
	}
	steps := params.Int("step_count")
	if steps == 0 {
		steps = 1
	}
	return g.diff.Calculate(engine.DifficultyInput{
		Operation:    engine.Operation(params.String("operation")),
		Operands:     floats(operands),
		StepCount:    steps,
		HasNegatives: params.Int("has_negatives") == 1 || params["has_negatives"] == true,
	})
}

// mixedDistractors seeds the set with the left-to-right evaluation error,
// then pads with generic near-miss values.
func (g *Arithmetic) mixedDistractors(r *rand.Rand, correct int64, a, b, c int, op1, op2 engine.Operation, productFirst bool) []engine.Answer {
	var leftToRight int64
	if productFirst {
		// Expression reads "b op2 c op1 a"; left-to-right is already correct
		// precedence, so model the opposite error: applying op1 first.
		if op1 == engine.OpAddition {
			leftToRight = evalOp(op2, int64(b), int64(c)+int64(a))
		} else {
			leftToRight = evalOp(op2, int64(b), int64(c)-int64(a))
		}
	} else {
		first := int64(a + b)
		if op1 == engine.OpSubtraction {
			first = int64(a - b)
		}
		leftToRight = evalOp(op2, first, int64(c))
	}

	var out []engine.Answer
	seen := map[int64]bool{correct: true}
	if !seen[leftToRight] {
		out = append(out, engine.IntAnswer(leftToRight))
		seen[leftToRight] = true
	}

	exclude := make([]float64, 0, len(seen))
	for v := range seen {
		exclude = append(exclude, float64(v))
	}
	for _, v := range g.dist.Generate(r, engine.DistractorInput{
		Correct: float64(correct),
		Count:   4,
		Integer: true,
		Exclude: exclude,
	}) {
		n := int64(v)
		if !seen[n] && len(out) < 3 {
			out = append(out, engine.IntAnswer(n))
			seen[n] = true
		}
	}
	return out
}

func evalOp(op engine.Operation, a, b int64) int64 {
	switch op {
	case engine.OpAddition:
		return a + b
	case engine.OpSubtraction:
		return a - b
	case engine.OpMultiplication:
		return a * b
	case engine.OpDivision:
		if b == 0 {
			return a
		}
		return a / b
	}
	return a
}

func arithmeticLaTeX(expression string) string {
	latex := strings.ReplaceAll(expression, "×", `\times`)
	latex = strings.ReplaceAll(latex, "÷", `\div`)
	return "$" + latex + "$"
}

// scaleByDifficulty maps difficulty onto a usable fraction of the grade's
// magnitude ceiling (20% at difficulty 0, 100% at difficulty 1).
func scaleByDifficulty(maxValue int, difficulty float64) int {
	scale := 0.2 + 0.8*engine.Clamp(difficulty, 0, 1)
	return maxInt(2, int(float64(maxValue)*scale))
}

func floats(ints []int) []float64 {
	out := make([]float64, len(ints))
	for i, v := range ints {
		out[i] = float64(v)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
