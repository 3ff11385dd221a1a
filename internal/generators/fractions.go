package generators

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Fractions generates fraction arithmetic questions on exact rational
// operands. Difficulty rises with unlike denominators, larger denominators,
// and when the common denominator is non-trivial (LCM above both inputs).
type Fractions struct {
	base
}

// NewFractions returns the fractions generator.
func NewFractions() *Fractions {
	return &Fractions{base: newBase()}
}

var fractionsGrades = []engine.GradeEnvelope{
	{Grade: 3, MaxValue: 6, Operations: []engine.Operation{engine.OpAddition}},
	{Grade: 4, MaxValue: 10, AllowFractions: true, Operations: []engine.Operation{engine.OpAddition, engine.OpSubtraction}},
	{Grade: 5, MaxValue: 12, AllowFractions: true, Operations: []engine.Operation{engine.OpAddition, engine.OpSubtraction, engine.OpMultiplication}},
	{Grade: 6, MaxValue: 20, AllowFractions: true, Operations: []engine.Operation{engine.OpAddition, engine.OpSubtraction, engine.OpMultiplication, engine.OpDivision}},
}

var fractionsBands = []engine.GradeBand{
	{UpTo: 0.25, Grade: 3},
	{UpTo: 0.5, Grade: 4},
	{UpTo: 0.75, Grade: 5},
	{UpTo: 1.1, Grade: 6},
}

// easyDenominators are the friendly denominators drawn for add/subtract.
var easyDenominators = []int64{2, 3, 4, 5, 6, 8, 10, 12}

func (g *Fractions) QuestionType() engine.QuestionType { return engine.TypeFractions }

func (g *Fractions) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpAddition, engine.OpSubtraction,
		engine.OpMultiplication, engine.OpDivision,
	}
}

func (g *Fractions) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(fractionsBands, req.Difficulty)
	}
	env := engine.EnvelopeForGrade(fractionsGrades, grade)

	op := req.Operation
	if op == "" {
		op = env.Operations[r.Intn(len(env.Operations))]
	} else if !env.Supports(op) {
		upgraded, ok := engine.FindSupportingGrade(fractionsGrades, op, grade+1)
		if !ok {
			return nil, fmt.Errorf("fractions: unsupported operation %q", op)
		}
		env = upgraded
	}

	f1, f2 := g.fractionPair(r, req.Difficulty, env, op)

	var answer engine.Fraction
	var symbol string
	var bump float64
	switch op {
	case engine.OpAddition:
		answer = f1.Add(f2)
		symbol = "+"
	case engine.OpSubtraction:
		// Keep the result non-negative.
		if f1.Float() < f2.Float() {
			f1, f2 = f2, f1
		}
		answer = f1.Sub(f2)
		symbol = "-"
	case engine.OpMultiplication:
		answer = f1.Mul(f2)
		symbol = "×"
		bump = 0.1
	case engine.OpDivision:
		if f2.Num == 0 {
			f2 = engine.NewFraction(1, 2)
		}
		answer = f1.Div(f2)
		symbol = "÷"
		bump = 0.15
	default:
		return nil, fmt.Errorf("fractions: unsupported operation %q", op)
	}

	expression := fmt.Sprintf("%s %s %s", f1.String(), symbol, f2.String())
	params := engine.Params{
		"fraction1":   f1.String(),
		"fraction2":   f2.String(),
		"operation":   string(op),
		"grade_level": env.Grade,
	}

	correct := engine.FractionAnswer(answer)
	distractors := g.fractionDistractors(answer, f1, f2, op)
	score := engine.Clamp(fractionDifficulty(f1, f2)+bump, 0, 1)

	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      "fractions_" + string(op),
		QuestionType:    g.QuestionType(),
		Operation:       op,
		Expression:      expression + " = ?",
		ExpressionLaTeX: fractionLaTeX(expression),
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters:      params,
		CreatedAt:       now(),
	}, nil
}

func (g *Fractions) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	f1, err := engine.ParseFraction(params.String("fraction1"))
	if err != nil {
		return engine.Answer{}, fmt.Errorf("fractions: %w", err)
	}
	f2, err := engine.ParseFraction(params.String("fraction2"))
	if err != nil {
		return engine.Answer{}, fmt.Errorf("fractions: %w", err)
	}

	switch engine.Operation(params.String("operation")) {
	case engine.OpAddition:
		return engine.FractionAnswer(f1.Add(f2)), nil
	case engine.OpSubtraction:
		return engine.FractionAnswer(f1.Sub(f2)), nil
	case engine.OpMultiplication:
		return engine.FractionAnswer(f1.Mul(f2)), nil
	case engine.OpDivision:
		if f2.Num == 0 {
			return engine.FractionAnswer(engine.Fraction{Num: 0, Den: 1}), nil
		}
		return engine.FractionAnswer(f1.Div(f2)), nil
	}
	return engine.Answer{}, fmt.Errorf("fractions: unknown operation %q", params.String("operation"))
}

func (g *Fractions) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	f1, err1 := engine.ParseFraction(params.String("fraction1"))
	f2, err2 := engine.ParseFraction(params.String("fraction2"))
	c, err3 := engine.ParseFraction(correct.Value)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	out := g.fractionDistractors(c, f1, f2, engine.Operation(params.String("operation")))
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Fractions) Difficulty(params engine.Params) float64 {
	f1, err1 := engine.ParseFraction(params.String("fraction1"))
	f2, err2 := engine.ParseFraction(params.String("fraction2"))
	if err1 != nil || err2 != nil {
		return 0.5
	}
	return fractionDifficulty(f1, f2)
}

// fractionPair picks operands appropriate for the operation: friendly
// denominators for add/subtract, small ones for multiply/divide.
func (g *Fractions) fractionPair(r *rand.Rand, difficulty float64, env engine.GradeEnvelope, op engine.Operation) (engine.Fraction, engine.Fraction) {
	scaledMax := int64(engine.ScaledMax(env.MaxValue, difficulty, 2))

	pool := make([]int64, 0, len(easyDenominators))
	for _, d := range easyDenominators {
		if d <= scaledMax {
			pool = append(pool, d)
		}
	}
	if len(pool) == 0 {
		pool = []int64{2}
	}

	var d1, d2 int64
	allowUnlike := env.Grade >= 4
	if allowUnlike && difficulty > 0.3 {
		d1 = pool[r.Intn(len(pool))]
		d2 = pool[r.Intn(len(pool))]
	} else {
		d1 = pool[r.Intn(len(pool))]
		d2 = d1
	}

	n1 := int64(engine.RandRange(r, 1, int(d1-1)))
	n2 := int64(engine.RandRange(r, 1, int(d2-1)))

	if op == engine.OpMultiplication || op == engine.OpDivision {
		small := []int64{2, 3, 4, 5, 6}
		d1 = small[r.Intn(len(small))]
		d2 = small[r.Intn(len(small))]
		n1 = int64(engine.RandRange(r, 1, int(minInt64(d1, 5))))
		n2 = int64(engine.RandRange(r, 1, int(minInt64(d2, 5))))
	}

	return engine.NewFraction(n1, d1), engine.NewFraction(n2, d2)
}

// fractionDifficulty scores a fraction problem: unlike denominators, large
// denominators, and a non-trivial common denominator all add difficulty.
func fractionDifficulty(f1, f2 engine.Fraction) float64 {
	difficulty := 0.2

	if f1.Den != f2.Den {
		difficulty += 0.2
	}

	maxDen := f1.Den
	if f2.Den > maxDen {
		maxDen = f2.Den
	}
	difficulty += minFloat(0.3, float64(maxDen)/30)

	if engine.LCM(f1.Den, f2.Den) > maxDen {
		difficulty += 0.1
	}

	return engine.Clamp(difficulty, 0, 1)
}

// fractionDistractors encodes the classic fraction misconceptions.
func (g *Fractions) fractionDistractors(correct, f1, f2 engine.Fraction, op engine.Operation) []engine.Answer {
	var out []engine.Answer
	seen := map[string]bool{correct.String(): true}
	add := func(f engine.Fraction) {
		s := f.String()
		if !seen[s] && !f.Equal(correct) {
			out = append(out, engine.FractionAnswer(f))
			seen[s] = true
		}
	}

	// Added (or subtracted) numerators and denominators separately.
	if op == engine.OpAddition || op == engine.OpSubtraction {
		num := f1.Num + f2.Num
		if op == engine.OpSubtraction {
			num = abs64Local(f1.Num - f2.Num)
		}
		add(engine.NewFraction(num, f1.Den+f2.Den))
	}

	// Forgot to find the common denominator.
	if f1.Den != f2.Den {
		maxDen := f1.Den
		if f2.Den > maxDen {
			maxDen = f2.Den
		}
		add(engine.NewFraction(f1.Num+f2.Num, maxDen))
	}

	// Off-by-one in the numerator.
	c := correct.Reduce()
	if c.Num > 1 {
		add(engine.NewFraction(c.Num-1, c.Den))
	}
	add(engine.NewFraction(c.Num+1, c.Den))

	// Inverted result (division confusion).
	if op == engine.OpDivision && c.Num != 0 {
		add(engine.NewFraction(c.Den, c.Num))
	}

	// Numerator and denominator perturbations pad the set when the
	// misconception strategies collapse into the correct value, e.g. a
	// subtraction with equal operands.
	for k := int64(1); len(out) < 3 && k <= 6; k++ {
		add(engine.NewFraction(c.Num+k, c.Den))
		add(engine.NewFraction(abs64Local(c.Num)+1, c.Den+k))
	}

	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

var fractionPattern = regexp.MustCompile(`(\d+)/(\d+)`)

func fractionLaTeX(expression string) string {
	result := fractionPattern.ReplaceAllString(expression, `\frac{$1}{$2}`)
	result = strings.ReplaceAll(result, "×", `\times`)
	result = strings.ReplaceAll(result, "÷", `\div`)
	return "$" + result + "$"
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func abs64Local(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
