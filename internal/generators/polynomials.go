package generators

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Polynomials generates addition/subtraction, binomial expansion, factoring,
// and monic long-division questions. Answers are expression-format strings
// built from coefficient slices indexed by degree.
type Polynomials struct {
	base
}

// NewPolynomials returns the polynomials generator.
func NewPolynomials() *Polynomials {
	return &Polynomials{base: newBase()}
}

type polynomialsGrade struct {
	grade     int
	maxCoef   int
	maxDegree int
	types     []string
}

var polynomialsGrades = []polynomialsGrade{
	{8, 10, 2, []string{"add_subtract", "multiply_binomial"}},
	{9, 15, 3, []string{"add_subtract", "multiply_binomial", "factor_common"}},
	{10, 20, 3, []string{"add_subtract", "multiply_binomial", "factor_common", "factor_trinomial"}},
	{11, 25, 4, []string{"multiply_binomial", "factor_common", "factor_trinomial", "factor_diff_squares", "divide"}},
}

var polynomialsBands = []engine.GradeBand{
	{UpTo: 0.25, Grade: 8},
	{UpTo: 0.5, Grade: 9},
	{UpTo: 0.75, Grade: 10},
	{UpTo: 1.1, Grade: 11},
}

func (g *Polynomials) QuestionType() engine.QuestionType { return engine.TypePolynomials }

func (g *Polynomials) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpPolynomialAdd, engine.OpPolynomialMultiply,
		engine.OpFactoring, engine.OpPolynomialDivision,
	}
}

func (g *Polynomials) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(polynomialsBands, req.Difficulty)
	}
	cfg := polynomialsGradeConfig(grade)

	var problemType string
	switch req.Operation {
	case "":
		problemType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpPolynomialAdd:
		problemType = "add_subtract"
	case engine.OpPolynomialMultiply:
		problemType = "multiply_binomial"
	case engine.OpFactoring:
		factoring := []string{"factor_common", "factor_trinomial", "factor_diff_squares"}
		problemType = factoring[r.Intn(len(factoring))]
	case engine.OpPolynomialDivision:
		problemType = "divide"
	default:
		return nil, fmt.Errorf("polynomials: unsupported operation %q", req.Operation)
	}

	switch problemType {
	case "multiply_binomial":
		return g.multiplyBinomial(r, req.Difficulty, cfg), nil
	case "factor_common":
		return g.factorCommon(r, req.Difficulty, cfg), nil
	case "factor_trinomial":
		return g.factorTrinomial(r, req.Difficulty, cfg), nil
	case "factor_diff_squares":
		return g.factorDiffSquares(r, req.Difficulty, cfg), nil
	case "divide":
		return g.divide(r, req.Difficulty, cfg), nil
	default:
		return g.addSubtract(r, req.Difficulty, cfg), nil
	}
}

// formatPoly renders a coefficient slice (index = degree) highest degree
// first, skipping zero terms.
func formatPoly(coeffs []int) string {
	var terms []string
	for deg := len(coeffs) - 1; deg >= 0; deg-- {
		c := coeffs[deg]
		if c == 0 {
			continue
		}
		terms = append(terms, polyTerm(c, deg))
	}
	if len(terms) == 0 {
		return "0"
	}

	var sb strings.Builder
	sb.WriteString(terms[0])
	for _, t := range terms[1:] {
		if strings.HasPrefix(t, "-") {
			sb.WriteString(" - ")
			sb.WriteString(t[1:])
		} else {
			sb.WriteString(" + ")
			sb.WriteString(t)
		}
	}
	return sb.String()
}

func polyTerm(c, deg int) string {
	switch {
	case deg == 0:
		return fmt.Sprintf("%d", c)
	case deg == 1:
		switch c {
		case 1:
			return "x"
		case -1:
			return "-x"
		default:
			return fmt.Sprintf("%dx", c)
		}
	default:
		suffix := fmt.Sprintf("x^%d", deg)
		if deg == 2 {
			suffix = "x²"
		}
		switch c {
		case 1:
			return suffix
		case -1:
			return "-" + suffix
		default:
			return fmt.Sprintf("%d%s", c, suffix)
		}
	}
}

// signedTerm renders "+ n" or "- n" for use inside a binomial.
func signedTerm(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+ %d", n)
	}
	return fmt.Sprintf("- %d", -n)
}

func binomial(p int) string {
	return fmt.Sprintf("(x %s)", signedTerm(p))
}

func (g *Polynomials) addSubtract(r *rand.Rand, difficulty float64, cfg polynomialsGrade) *engine.GeneratedQuestion {
	maxC := engine.ScaledMax(cfg.maxCoef, difficulty, 3)
	maxDeg := minInt(cfg.maxDegree, 2+int(difficulty*2))
	op := "+"
	if r.Intn(2) == 1 {
		op = "-"
	}

	p1 := make([]int, maxDeg+1)
	p2 := make([]int, maxDeg+1)
	for d := 0; d < maxDeg; d++ {
		p1[d] = engine.RandRange(r, -maxC, maxC)
		p2[d] = engine.RandRange(r, -maxC, maxC)
	}
	p1[maxDeg] = engine.RandRange(r, 1, maxC)
	p2[maxDeg] = engine.RandRange(r, 1, maxC)

	result := make([]int, maxDeg+1)
	for d := 0; d <= maxDeg; d++ {
		if op == "+" {
			result[d] = p1[d] + p2[d]
		} else {
			result[d] = p1[d] - p2[d]
		}
	}

	answer := formatPoly(result)
	correct := engine.ExpressionAnswer(answer)
	expression := fmt.Sprintf("Simplify: (%s) %s (%s)", formatPoly(p1), op, formatPoly(p2))

	wrongLead := append([]int(nil), result...)
	wrongLead[maxDeg]++
	wrongConst := append([]int(nil), result...)
	wrongConst[0]--

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(formatPoly(wrongLead)))
	set.add(engine.ExpressionAnswer(formatPoly(wrongConst)))
	set.add(engine.ExpressionAnswer(formatPoly(p1)))
	for i := 0; len(set.items) < 3 && i < 6; i++ {
		bumped := append([]int(nil), result...)
		bumped[maxDeg] += engine.RandRange(r, 1, 3)
		set.add(engine.ExpressionAnswer(formatPoly(bumped)))
	}

	score := engine.Clamp(0.25+0.15*difficulty+0.05*float64(maxDeg), 0, 1)

	return g.build(r, "polynomials_add_subtract", engine.OpPolynomialAdd,
		expression, correct, set.take(3), score, engine.Params{
			"p1": p1, "p2": p2, "op": op,
			"type": "add_subtract", "grade_level": cfg.grade,
		})
}

func (g *Polynomials) multiplyBinomial(r *rand.Rand, difficulty float64, cfg polynomialsGrade) *engine.GeneratedQuestion {
	maxC := engine.ScaledMax(cfg.maxCoef, difficulty, 2)

	// (ax + b)(cx + d)
	a := engine.RandRange(r, 1, minInt(5, maxC))
	b := engine.RandRange(r, -maxC, maxC)
	c := engine.RandRange(r, 1, minInt(5, maxC))
	d := engine.RandRange(r, -maxC, maxC)

	r2, r1, r0 := a*c, a*d+b*c, b*d
	answer := formatPoly([]int{r0, r1, r2})
	correct := engine.ExpressionAnswer(answer)

	expression := fmt.Sprintf("Expand: (%dx %s)(%dx %s)", a, signedTerm(b), c, signedTerm(d))

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(formatPoly([]int{r0, a * d, r2})))
	set.add(engine.ExpressionAnswer(formatPoly([]int{r0, -r1, r2})))
	set.add(engine.ExpressionAnswer(formatPoly([]int{r0, r1 + 1, r2})))
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.ExpressionAnswer(formatPoly([]int{r0, r1, r2 + engine.RandRange(r, 1, 3)})))
	}

	score := engine.Clamp(0.35+0.2*difficulty, 0, 1)

	return g.build(r, "polynomials_multiply", engine.OpPolynomialMultiply,
		expression, correct, set.take(3), score, engine.Params{
			"a": a, "b": b, "c": c, "d": d,
			"type": "multiply_binomial", "grade_level": cfg.grade,
		})
}

func (g *Polynomials) factorCommon(r *rand.Rand, difficulty float64, cfg polynomialsGrade) *engine.GeneratedQuestion {
	maxC := engine.ScaledMax(cfg.maxCoef, difficulty, 2)
	gcf := engine.RandRange(r, 2, minInt(8, maxC))
	innerA := engine.RandRange(r, 1, maxC)
	innerB := engine.RandRange(r, 1, maxC)

	term1 := gcf * innerA
	term2 := gcf * innerB

	expression := fmt.Sprintf("Factor: %dx + %d", term1, term2)
	answer := fmt.Sprintf("%d(%dx + %d)", gcf, innerA, innerB)
	correct := engine.ExpressionAnswer(answer)

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(fmt.Sprintf("%d(%dx + %d)", gcf+1, innerA, innerB)))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("%d(%dx + %d)", gcf, innerA+1, innerB)))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("%d(x + %d)", term1, term2/term1)))
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%d(%dx + %d)", gcf, innerA, innerB+engine.RandRange(r, 1, 3))))
	}

	score := engine.Clamp(0.3+0.15*difficulty, 0, 1)

	return g.build(r, "polynomials_factor_common", engine.OpFactoring,
		expression, correct, set.take(3), score, engine.Params{
			"gcf": gcf, "inner_a": innerA, "inner_b": innerB,
			"type": "factor_common", "grade_level": cfg.grade,
		})
}

func (g *Polynomials) factorTrinomial(r *rand.Rand, difficulty float64, cfg polynomialsGrade) *engine.GeneratedQuestion {
	// x² + (p+q)x + pq = (x + p)(x + q)
	p := engine.RandRange(r, -8, 8)
	q := engine.RandRange(r, -8, 8)
	if p == 0 {
		p = 1
	}
	if q == 0 {
		q = -1
	}

	b, c := p+q, p*q
	expression := fmt.Sprintf("Factor: x² %sx %s", signedTerm(b), signedTerm(c))
	answer := binomial(p) + binomial(q)
	correct := engine.ExpressionAnswer(answer)

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(binomial(-p) + binomial(-q)))
	set.add(engine.ExpressionAnswer(binomial(p) + binomial(-q)))
	set.add(engine.ExpressionAnswer(binomial(p+1) + binomial(q-1)))
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.ExpressionAnswer(binomial(p+engine.RandRange(r, 2, 4)) + binomial(q)))
	}

	score := engine.Clamp(0.5+0.2*difficulty, 0, 1)

	return g.build(r, "polynomials_factor_trinomial", engine.OpFactoring,
		expression, correct, set.take(3), score, engine.Params{
			"p": p, "q": q,
			"type": "factor_trinomial", "grade_level": cfg.grade,
		})
}

func (g *Polynomials) factorDiffSquares(r *rand.Rand, difficulty float64, cfg polynomialsGrade) *engine.GeneratedQuestion {
	// a²x² - b² = (ax - b)(ax + b)
	a := engine.RandRange(r, 1, minInt(5, cfg.maxCoef))
	b := engine.RandRange(r, 1, minInt(10, cfg.maxCoef))

	var expression, answer string
	if a == 1 {
		expression = fmt.Sprintf("Factor: x² - %d", b*b)
		answer = fmt.Sprintf("(x - %d)(x + %d)", b, b)
	} else {
		expression = fmt.Sprintf("Factor: %dx² - %d", a*a, b*b)
		answer = fmt.Sprintf("(%dx - %d)(%dx + %d)", a, b, a, b)
	}
	correct := engine.ExpressionAnswer(answer)

	ax := "x"
	if a > 1 {
		ax = fmt.Sprintf("%dx", a)
	}
	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(fmt.Sprintf("(%s - %d)²", ax, b)))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("(%s + %d)²", ax, b)))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("(%s - %d)(%s + %d)", ax, b+1, ax, b-1)))
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.ExpressionAnswer(fmt.Sprintf("(%s - %d)(%s + %d)", ax, b+2, ax, b+2)))
	}

	score := engine.Clamp(0.45+0.2*difficulty, 0, 1)

	return g.build(r, "polynomials_factor_diff_squares", engine.OpFactoring,
		expression, correct, set.take(3), score, engine.Params{
			"a": a, "b": b,
			"type": "factor_diff_squares", "grade_level": cfg.grade,
		})
}

func (g *Polynomials) divide(r *rand.Rand, difficulty float64, cfg polynomialsGrade) *engine.GeneratedQuestion {
	// (x + p)(x + q) ÷ (x + p) = x + q, with the divisor a known factor.
	p := engine.RandRange(r, -8, 8)
	q := engine.RandRange(r, -8, 8)
	if p == 0 {
		p = 2
	}
	if q == 0 {
		q = -2
	}
	if p == q {
		q = -q
	}

	b, c := p+q, p*q
	expression := fmt.Sprintf("Divide: (x² %sx %s) ÷ %s", signedTerm(b), signedTerm(c), binomial(p))
	answer := fmt.Sprintf("x %s", signedTerm(q))
	correct := engine.ExpressionAnswer(answer)

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s", signedTerm(-q))))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s", signedTerm(p))))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s", signedTerm(q+1))))
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s", signedTerm(q+engine.RandRange(r, 2, 4)))))
	}

	score := engine.Clamp(0.55+0.2*difficulty, 0, 1)

	return g.build(r, "polynomials_divide", engine.OpPolynomialDivision,
		expression, correct, set.take(3), score, engine.Params{
			"p": p, "q": q,
			"type": "divide", "grade_level": cfg.grade,
		})
}

func (g *Polynomials) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "add_subtract":
		p1, p2 := params.Ints("p1"), params.Ints("p2")
		if len(p1) != len(p2) {
			return engine.Answer{}, fmt.Errorf("polynomials: mismatched degrees %d and %d", len(p1), len(p2))
		}
		result := make([]int, len(p1))
		for d := range p1 {
			if params.String("op") == "-" {
				result[d] = p1[d] - p2[d]
			} else {
				result[d] = p1[d] + p2[d]
			}
		}
		return engine.ExpressionAnswer(formatPoly(result)), nil
	case "multiply_binomial":
		a, b := params.Int("a"), params.Int("b")
		c, d := params.Int("c"), params.Int("d")
		return engine.ExpressionAnswer(formatPoly([]int{b * d, a*d + b*c, a * c})), nil
	case "factor_common":
		return engine.ExpressionAnswer(fmt.Sprintf("%d(%dx + %d)",
			params.Int("gcf"), params.Int("inner_a"), params.Int("inner_b"))), nil
	case "factor_trinomial":
		return engine.ExpressionAnswer(binomial(params.Int("p")) + binomial(params.Int("q"))), nil
	case "factor_diff_squares":
		a, b := params.Int("a"), params.Int("b")
		if a == 1 {
			return engine.ExpressionAnswer(fmt.Sprintf("(x - %d)(x + %d)", b, b)), nil
		}
		return engine.ExpressionAnswer(fmt.Sprintf("(%dx - %d)(%dx + %d)", a, b, a, b)), nil
	case "divide":
		return engine.ExpressionAnswer(fmt.Sprintf("x %s", signedTerm(params.Int("q")))), nil
	}
	return engine.Answer{}, fmt.Errorf("polynomials: unknown problem type %q", params.String("type"))
}

func (g *Polynomials) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	set := newAnswerSet(correct)
	switch params.String("type") {
	case "factor_trinomial":
		p, q := params.Int("p"), params.Int("q")
		set.add(engine.ExpressionAnswer(binomial(-p) + binomial(-q)))
		set.add(engine.ExpressionAnswer(binomial(p) + binomial(-q)))
		set.add(engine.ExpressionAnswer(binomial(p+1) + binomial(q-1)))
	case "multiply_binomial":
		a, b := params.Int("a"), params.Int("b")
		c, d := params.Int("c"), params.Int("d")
		r2, r1, r0 := a*c, a*d+b*c, b*d
		set.add(engine.ExpressionAnswer(formatPoly([]int{r0, a * d, r2})))
		set.add(engine.ExpressionAnswer(formatPoly([]int{r0, -r1, r2})))
		set.add(engine.ExpressionAnswer(formatPoly([]int{r0, r1 + 1, r2})))
	case "divide":
		q := params.Int("q")
		set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s", signedTerm(-q))))
		set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s", signedTerm(params.Int("p")))))
		set.add(engine.ExpressionAnswer(fmt.Sprintf("x %s", signedTerm(q+1))))
	}
	return set.take(count)
}

func (g *Polynomials) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "add_subtract":
		return 0.3
	case "multiply_binomial":
		return 0.45
	case "factor_common":
		return 0.35
	case "factor_trinomial":
		return 0.6
	case "factor_diff_squares":
		return 0.5
	case "divide":
		return 0.65
	}
	return 0.4
}

func (g *Polynomials) build(r *rand.Rand, templateID string, op engine.Operation, expression string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      templateID,
		QuestionType:    g.QuestionType(),
		Operation:       op,
		Expression:      expression,
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters:      params,
		CreatedAt:       now(),
	}
}

func polynomialsGradeConfig(grade int) polynomialsGrade {
	for _, gc := range polynomialsGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return polynomialsGrades[len(polynomialsGrades)-1]
}
