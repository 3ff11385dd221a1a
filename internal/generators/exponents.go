package generators

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Exponents generates power, root, exponent-rule, and scientific notation
// questions. Roots are constructed from the root itself so every radicand
// is perfect.
type Exponents struct {
	base
}

// NewExponents returns the exponents generator.
func NewExponents() *Exponents {
	return &Exponents{base: newBase()}
}

type exponentsGrade struct {
	grade   int
	maxBase int
	maxExp  int
	types   []string
}

var exponentsGrades = []exponentsGrade{
	{6, 10, 3, []string{"power", "square_root"}},
	{7, 12, 4, []string{"power", "square_root", "cube_root"}},
	{8, 15, 5, []string{"power", "square_root", "cube_root", "exponent_rules"}},
	{9, 20, 6, []string{"power", "square_root", "cube_root", "exponent_rules", "scientific_notation"}},
	{10, 25, 8, []string{"power", "square_root", "cube_root", "exponent_rules", "scientific_notation"}},
}

var exponentsBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 6},
	{UpTo: 0.4, Grade: 7},
	{UpTo: 0.6, Grade: 8},
	{UpTo: 0.8, Grade: 9},
	{UpTo: 1.1, Grade: 10},
}

func (g *Exponents) QuestionType() engine.QuestionType { return engine.TypeExponents }

func (g *Exponents) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpExponentiation, engine.OpSquareRoot,
		engine.OpCubeRoot, engine.OpScientificNotation,
	}
}

func (g *Exponents) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(exponentsBands, req.Difficulty)
	}
	cfg := exponentsGradeConfig(grade)

	var problemType string
	switch req.Operation {
	case "":
		problemType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpExponentiation:
		problemType = "power"
	case engine.OpSquareRoot:
		problemType = "square_root"
	case engine.OpCubeRoot:
		problemType = "cube_root"
	case engine.OpScientificNotation:
		problemType = "scientific_notation"
	default:
		return nil, fmt.Errorf("exponents: unsupported operation %q", req.Operation)
	}

	switch problemType {
	case "square_root":
		return g.squareRoot(r, req.Difficulty, cfg), nil
	case "cube_root":
		return g.cubeRoot(r, req.Difficulty, cfg), nil
	case "exponent_rules":
		return g.exponentRules(r, req.Difficulty, cfg), nil
	case "scientific_notation":
		return g.scientificNotation(r, req.Difficulty, cfg), nil
	default:
		return g.power(r, req.Difficulty, cfg), nil
	}
}

func (g *Exponents) power(r *rand.Rand, difficulty float64, cfg exponentsGrade) *engine.GeneratedQuestion {
	maxBase := engine.ScaledMax(cfg.maxBase, difficulty, 2)
	b := engine.RandRange(r, 2, maxBase)
	exp := engine.RandRange(r, 2, minInt(cfg.maxExp, 2+int(difficulty*4)))
	answer := ipow(b, exp)

	distractors := g.intCandidates(r, answer, []int{
		b * exp,
		ipow(b, exp-1),
		ipow(b, exp+1),
		ipow(b+1, exp),
		ipow(b-1, exp),
	})
	score := engine.Clamp(0.2+0.15*float64(b)/float64(cfg.maxBase)+0.15*float64(exp)/float64(cfg.maxExp), 0, 1)

	return g.build(r, "exponents_power", engine.OpExponentiation,
		fmt.Sprintf("Calculate: %d^%d = ?", b, exp),
		fmt.Sprintf("$%d^{%d}$", b, exp),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"base": b, "exponent": exp, "answer": answer,
			"type": "power", "grade_level": cfg.grade,
		})
}

func (g *Exponents) squareRoot(r *rand.Rand, difficulty float64, cfg exponentsGrade) *engine.GeneratedQuestion {
	maxRoot := engine.ScaledMax(cfg.maxBase, difficulty, 2)
	root := engine.RandRange(r, 2, maxRoot)
	radicand := root * root

	distractors := g.intCandidates(r, root, []int{
		root + 1, root - 1, radicand / 2, root * 2, radicand/root + 1,
	})
	score := engine.Clamp(0.25+0.2*float64(root)/float64(cfg.maxBase), 0, 1)

	return g.build(r, "exponents_square_root", engine.OpSquareRoot,
		fmt.Sprintf("Calculate: √%d = ?", radicand),
		fmt.Sprintf(`$\sqrt{%d}$`, radicand),
		engine.IntAnswer(int64(root)), distractors, score, engine.Params{
			"radicand": radicand, "root": root,
			"type": "square_root", "grade_level": cfg.grade,
		})
}

func (g *Exponents) cubeRoot(r *rand.Rand, difficulty float64, cfg exponentsGrade) *engine.GeneratedQuestion {
	maxRoot := engine.ScaledMax(minInt(10, cfg.maxBase), difficulty, 2)
	root := engine.RandRange(r, 2, maxRoot)
	radicand := root * root * root

	distractors := g.intCandidates(r, root, []int{
		root + 1, root - 1, root * 3, radicand / 3, root * root,
	})
	score := engine.Clamp(0.4+0.2*float64(root)/10, 0, 1)

	return g.build(r, "exponents_cube_root", engine.OpCubeRoot,
		fmt.Sprintf("Calculate: ∛%d = ?", radicand),
		fmt.Sprintf(`$\sqrt[3]{%d}$`, radicand),
		engine.IntAnswer(int64(root)), distractors, score, engine.Params{
			"radicand": radicand, "root": root,
			"type": "cube_root", "grade_level": cfg.grade,
		})
}

func (g *Exponents) exponentRules(r *rand.Rand, difficulty float64, cfg exponentsGrade) *engine.GeneratedQuestion {
	rules := []string{"product", "quotient", "power_of_power"}
	rule := rules[r.Intn(len(rules))]
	b := engine.RandRange(r, 2, minInt(8, cfg.maxBase))

	var m, n, answer int
	var expression, latex string
	var wrong []int
	switch rule {
	case "product":
		m = engine.RandRange(r, 2, 5)
		n = engine.RandRange(r, 2, 5)
		answer = m + n
		expression = fmt.Sprintf("%d^%d × %d^%d = %d^?", b, m, b, n, b)
		latex = fmt.Sprintf(`$%d^{%d} \times %d^{%d} = %d^{?}$`, b, m, b, n, b)
		wrong = []int{m * n, absInt(m - n), maxInt(m, n), m + n + 1, m + n - 1}
	case "quotient":
		m = engine.RandRange(r, 4, 8)
		n = engine.RandRange(r, 2, m-1)
		answer = m - n
		expression = fmt.Sprintf("%d^%d ÷ %d^%d = %d^?", b, m, b, n, b)
		latex = fmt.Sprintf(`$%d^{%d} \div %d^{%d} = %d^{?}$`, b, m, b, n, b)
		wrong = []int{m + n, m * n, m / n, m - n + 1, m - n - 1}
	default:
		m = engine.RandRange(r, 2, 4)
		n = engine.RandRange(r, 2, 4)
		answer = m * n
		expression = fmt.Sprintf("(%d^%d)^%d = %d^?", b, m, n, b)
		latex = fmt.Sprintf(`$(%d^{%d})^{%d} = %d^{?}$`, b, m, n, b)
		wrong = []int{m + n, ipow(m, n), absInt(m - n), m*n + 1, m*n - 1}
	}

	distractors := g.intCandidates(r, answer, wrong)
	score := engine.Clamp(0.5+0.2*difficulty, 0, 1)

	return g.build(r, "exponents_rule_"+rule, engine.OpExponentiation,
		expression, latex,
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"base": b, "m": m, "n": n, "rule": rule, "answer": answer,
			"type": "exponent_rules", "grade_level": cfg.grade,
		})
}

func (g *Exponents) scientificNotation(r *rand.Rand, difficulty float64, cfg exponentsGrade) *engine.GeneratedQuestion {
	exp := engine.RandRange(r, 2, 3+int(difficulty*6))
	coef := float64(engine.RandRange(r, 1, 9))
	if r.Float64() < 0.5 && difficulty > 0.4 {
		coef += float64(engine.RandRange(r, 1, 9)) / 10
	}
	number := coef * math.Pow10(exp)

	sciStr := fmt.Sprintf("%s × 10^%d", engine.FormatFloat(coef), exp)
	stdStr := engine.FormatFloat(number)

	var expression, latex string
	var correct engine.Answer
	toScientific := r.Intn(2) == 0
	if toScientific {
		expression = fmt.Sprintf("Write %s in scientific notation", stdStr)
		latex = "$" + stdStr + "$"
		correct = engine.ExpressionAnswer(sciStr)
	} else {
		expression = fmt.Sprintf("Convert %s to standard form", sciStr)
		latex = fmt.Sprintf(`$%s \times 10^{%d}$`, engine.FormatFloat(coef), exp)
		correct = engine.ExpressionAnswer(stdStr)
	}

	set := newAnswerSet(correct)
	if toScientific {
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%s × 10^%d", engine.FormatFloat(coef), exp+1)))
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%s × 10^%d", engine.FormatFloat(coef), exp-1)))
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%s × 10^%d", engine.FormatFloat(coef*10), exp)))
	} else {
		set.add(engine.ExpressionAnswer(engine.FormatFloat(coef * math.Pow10(exp+1))))
		set.add(engine.ExpressionAnswer(engine.FormatFloat(coef * math.Pow10(exp-1))))
		set.add(engine.ExpressionAnswer(engine.FormatFloat(number + math.Pow10(exp-1))))
	}
	distractors := set.take(3)
	score := engine.Clamp(0.45+0.25*difficulty, 0, 1)

	direction := "from_scientific"
	if toScientific {
		direction = "to_scientific"
	}
	return g.build(r, "exponents_scientific_notation", engine.OpScientificNotation,
		expression, latex,
		correct, distractors, score, engine.Params{
			"number": number, "coefficient": coef, "exponent": exp,
			"direction": direction,
			"type":      "scientific_notation", "grade_level": cfg.grade,
		})
}

func (g *Exponents) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "power":
		return engine.IntAnswer(int64(ipow(params.Int("base"), params.Int("exponent")))), nil
	case "square_root", "cube_root":
		return engine.IntAnswer(int64(params.Int("root"))), nil
	case "exponent_rules":
		m, n := params.Int("m"), params.Int("n")
		switch params.String("rule") {
		case "product":
			return engine.IntAnswer(int64(m + n)), nil
		case "quotient":
			return engine.IntAnswer(int64(m - n)), nil
		case "power_of_power":
			return engine.IntAnswer(int64(m * n)), nil
		}
	case "scientific_notation":
		coef, exp := params.Float("coefficient"), params.Int("exponent")
		if params.String("direction") == "to_scientific" {
			return engine.ExpressionAnswer(fmt.Sprintf("%s × 10^%d", engine.FormatFloat(coef), exp)), nil
		}
		return engine.ExpressionAnswer(engine.FormatFloat(coef * math.Pow10(exp))), nil
	}
	return engine.Answer{}, fmt.Errorf("exponents: unknown problem type %q", params.String("type"))
}

func (g *Exponents) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	answer := int(correct.Int())
	out := g.intCandidates(nil, answer, []int{answer + 1, answer - 1, answer * 2, answer + 2})
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Exponents) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "power", "square_root":
		return 0.3
	case "cube_root":
		return 0.45
	case "exponent_rules":
		return 0.55
	case "scientific_notation":
		return 0.5
	}
	return 0.4
}

func (g *Exponents) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

// intCandidates keeps the positive candidates distinct from the answer and
// tops up with small offsets. A nil rng falls back to fixed offsets.
func (g *Exponents) intCandidates(r *rand.Rand, answer int, candidates []int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))
	for _, c := range candidates {
		if c > 0 {
			set.add(engine.IntAnswer(int64(c)))
		}
	}
	offsets := []int{-3, -2, -1, 1, 2, 3}
	for i := 0; len(set.items) < 3 && i < 24; i++ {
		var off int
		if r != nil {
			off = offsets[r.Intn(len(offsets))]
		} else {
			off = offsets[i%len(offsets)]
		}
		if v := answer + off; v > 0 {
			set.add(engine.IntAnswer(int64(v)))
		}
	}
	return set.take(3)
}

func ipow(b, e int) int {
	result := 1
	for i := 0; i < e; i++ {
		result *= b
	}
	return result
}

func exponentsGradeConfig(grade int) exponentsGrade {
	for _, gc := range exponentsGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return exponentsGrades[len(exponentsGrades)-1]
}
