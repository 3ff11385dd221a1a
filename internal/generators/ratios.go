package generators

import (
	"fmt"
	"math/rand"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Ratios generates ratio and proportion questions: simplifying, equivalent
// ratios, proportions, word problems, part-to-whole splits, and map scales.
// Proportions are built from a shared multiplier so the unknown is always an
// integer.
type Ratios struct {
	base
}

// NewRatios returns the ratios generator.
func NewRatios() *Ratios {
	return &Ratios{base: newBase()}
}

type ratiosGrade struct {
	grade    int
	maxValue int
	ops      []engine.Operation
}

var ratiosGrades = []ratiosGrade{
	{5, 50, []engine.Operation{engine.OpSimplifyRatio, engine.OpEquivalentRatio}},
	{6, 100, []engine.Operation{engine.OpSimplifyRatio, engine.OpEquivalentRatio, engine.OpProportion}},
	{7, 200, []engine.Operation{engine.OpSimplifyRatio, engine.OpEquivalentRatio, engine.OpProportion, engine.OpRatioWordProblem}},
	{8, 500, []engine.Operation{engine.OpSimplifyRatio, engine.OpEquivalentRatio, engine.OpProportion, engine.OpRatioWordProblem, engine.OpPartToWhole, engine.OpScale}},
}

var ratiosBands = []engine.GradeBand{
	{UpTo: 0.25, Grade: 5},
	{UpTo: 0.5, Grade: 6},
	{UpTo: 0.75, Grade: 7},
	{UpTo: 1.1, Grade: 8},
}

type ratioWordTemplate struct {
	context string
	text    string
}

var ratioWordTemplates = []ratioWordTemplate{
	{"recipe", "A recipe uses %d cups of flour for every %d cups of sugar. If you use %d cups of flour, how many cups of sugar do you need?"},
	{"distance", "A car travels %d miles in %d hours. At this rate, how far will it travel in %d hours?"},
	{"students", "The ratio of boys to girls in a class is %d:%d. If there are %d boys, how many girls are there?"},
	{"money", "If %d items cost $%d, how much would %d items cost?"},
}

// mapScales are common map scales as numerator:denominator pairs.
var mapScales = [][2]int{{1, 100}, {1, 50}, {1, 200}, {1, 1000}, {2, 100}, {1, 500}}

func (g *Ratios) QuestionType() engine.QuestionType { return engine.TypeRatios }

func (g *Ratios) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpSimplifyRatio, engine.OpEquivalentRatio, engine.OpProportion,
		engine.OpRatioWordProblem, engine.OpPartToWhole, engine.OpScale,
	}
}

func (g *Ratios) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(ratiosBands, req.Difficulty)
	}
	cfg := ratiosGradeConfig(grade)

	op := req.Operation
	if op == "" {
		op = cfg.ops[r.Intn(len(cfg.ops))]
	} else if !containsOp(cfg.ops, op) {
		for _, gc := range ratiosGrades {
			if gc.grade > cfg.grade && containsOp(gc.ops, op) {
				cfg = gc
				break
			}
		}
		if !containsOp(cfg.ops, op) {
			return nil, fmt.Errorf("ratios: unsupported operation %q", op)
		}
	}

	switch op {
	case engine.OpSimplifyRatio:
		return g.simplify(r, req.Difficulty, cfg), nil
	case engine.OpEquivalentRatio:
		return g.equivalent(r, req.Difficulty, cfg), nil
	case engine.OpProportion:
		return g.proportion(r, req.Difficulty, cfg), nil
	case engine.OpRatioWordProblem:
		return g.wordProblem(r, req.Difficulty, cfg), nil
	case engine.OpPartToWhole:
		return g.partToWhole(r, req.Difficulty, cfg), nil
	case engine.OpScale:
		return g.scale(r, req.Difficulty, cfg), nil
	}
	return nil, fmt.Errorf("ratios: unsupported operation %q", op)
}

// simplify starts from a coprime pair and multiplies it up, so the question
// always simplifies back to the pair.
func (g *Ratios) simplify(r *rand.Rand, difficulty float64, cfg ratiosGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxValue, difficulty, 10)

	sa := engine.RandRange(r, 1, 10)
	sb := engine.RandRange(r, 1, 10)
	d := int(engine.GCD(int64(sa), int64(sb)))
	sa, sb = sa/d, sb/d

	factor := engine.RandRange(r, 2, maxInt(2, minInt(10, scaledMax/maxInt(sa, sb))))
	a, b := sa*factor, sb*factor

	correct := engine.ExpressionAnswer(fmt.Sprintf("%d:%d", sa, sb))
	distractors := g.simplifyDistractors(sa, sb, a, b)
	score := engine.Clamp(0.2+0.1*float64(factor)/10+0.1*float64(maxInt(a, b))/float64(cfg.maxValue), 0, 1)

	return g.build(r, "ratios_simplify", engine.OpSimplifyRatio,
		fmt.Sprintf("Simplify the ratio %d:%d", a, b),
		fmt.Sprintf("$%d:%d$", a, b),
		correct, distractors, score, engine.Params{
			"original_a": a, "original_b": b,
			"simplified_a": sa, "simplified_b": sb,
			"factor":    factor,
			"operation": string(engine.OpSimplifyRatio), "grade_level": cfg.grade,
		})
}

func (g *Ratios) equivalent(r *rand.Rand, difficulty float64, cfg ratiosGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxValue, difficulty, 10)

	a := engine.RandRange(r, 2, 10)
	b := engine.RandRange(r, 2, 10)
	factor := engine.RandRange(r, 2, maxInt(2, minInt(8, scaledMax/maxInt(a, b))))

	var answer, given int
	var expression, formula string
	findSecond := r.Intn(2) == 0
	if findSecond {
		given = a * factor
		answer = b * factor
		expression = fmt.Sprintf("Find the missing value: %d:%d = %d:?", a, b, given)
		formula = fmt.Sprintf("%d:%d = %d:x", a, b, given)
	} else {
		given = b * factor
		answer = a * factor
		expression = fmt.Sprintf("Find the missing value: %d:%d = ?:%d", a, b, given)
		formula = fmt.Sprintf("%d:%d = x:%d", a, b, given)
	}

	correct := engine.IntAnswer(int64(answer))
	score := engine.Clamp(0.25+0.15*float64(factor)/10, 0, 1)

	return g.build(r, "ratios_equivalent", engine.OpEquivalentRatio,
		expression, "$"+formula+"$",
		correct, g.missingDistractors(answer, a, b, factor), score, engine.Params{
			"a": a, "b": b, "factor": factor,
			"find_second": findSecond,
			"answer":      answer,
			"operation":   string(engine.OpEquivalentRatio), "grade_level": cfg.grade,
		})
}

// proportion builds a/b = c/x from a shared multiplier: c = a*k, x = b*k.
func (g *Ratios) proportion(r *rand.Rand, difficulty float64, cfg ratiosGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxValue, difficulty, 10)

	a := engine.RandRange(r, 2, minInt(15, scaledMax))
	b := engine.RandRange(r, 2, minInt(15, scaledMax))
	k := engine.RandRange(r, 2, 8)
	c := a * k
	x := b * k

	correct := engine.IntAnswer(int64(x))
	score := engine.Clamp(0.4+0.2*difficulty, 0, 1)

	return g.build(r, "ratios_solve_proportion", engine.OpProportion,
		fmt.Sprintf("Solve for x: %d/%d = %d/x", a, b, c),
		fmt.Sprintf(`$\frac{%d}{%d} = \frac{%d}{x}$`, a, b, c),
		correct, g.proportionDistractors(x, a, b, c), score, engine.Params{
			"a": a, "b": b, "c": c, "x": x,
			"operation": string(engine.OpProportion), "grade_level": cfg.grade,
		})
}

func (g *Ratios) wordProblem(r *rand.Rand, difficulty float64, cfg ratiosGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxValue, difficulty, 20)

	tmpl := ratioWordTemplates[r.Intn(len(ratioWordTemplates))]
	a := engine.RandRange(r, 2, maxInt(2, minInt(10, scaledMax/5)))
	b := engine.RandRange(r, 2, maxInt(2, minInt(10, scaledMax/5)))
	multiplier := engine.RandRange(r, 2, maxInt(2, minInt(8, scaledMax/maxInt(a, b))))
	c := a * multiplier
	answer := b * multiplier

	correct := engine.IntAnswer(int64(answer))
	score := engine.Clamp(0.45+0.2*difficulty, 0, 1)

	return g.build(r, "ratios_word_"+tmpl.context, engine.OpRatioWordProblem,
		fmt.Sprintf(tmpl.text, a, b, c), "",
		correct, g.missingDistractors(answer, a, b, multiplier), score, engine.Params{
			"a": a, "b": b, "c": c,
			"answer":  answer,
			"context": tmpl.context,
			"operation": string(engine.OpRatioWordProblem), "grade_level": cfg.grade,
		})
}

func (g *Ratios) partToWhole(r *rand.Rand, difficulty float64, cfg ratiosGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxValue, difficulty, 20)

	partA := engine.RandRange(r, 1, 5)
	partB := engine.RandRange(r, 1, 5)
	totalParts := partA + partB
	multiplier := engine.RandRange(r, 3, maxInt(3, minInt(20, scaledMax/totalParts)))
	total := totalParts * multiplier

	var answer int
	var expression string
	findA := r.Intn(2) == 0
	if findA {
		answer = partA * multiplier
		if partA > partB {
			expression = fmt.Sprintf("A sum of $%d is divided in the ratio %d:%d. What is the larger share?", total, partA, partB)
		} else {
			expression = fmt.Sprintf("A sum of $%d is divided in the ratio %d:%d. What is the first share?", total, partA, partB)
		}
	} else {
		answer = partB * multiplier
		expression = fmt.Sprintf("A sum of $%d is divided in the ratio %d:%d. What is the second share?", total, partA, partB)
	}

	correct := engine.IntAnswer(int64(answer))
	score := engine.Clamp(0.5+0.2*difficulty, 0, 1)

	return g.build(r, "ratios_part_to_whole", engine.OpPartToWhole,
		expression, "",
		correct, g.partWholeDistractors(answer, partA, partB, total), score, engine.Params{
			"part_a": partA, "part_b": partB,
			"total":  total,
			"find_a": findA,
			"answer": answer,
			"operation": string(engine.OpPartToWhole), "grade_level": cfg.grade,
		})
}

func (g *Ratios) scale(r *rand.Rand, difficulty float64, cfg ratiosGrade) *engine.GeneratedQuestion {
	sc := mapScales[r.Intn(len(mapScales))]
	mapDist := engine.RandRange(r, 2, 20)
	actualDist := mapDist * sc[1] / sc[0]

	var answer int
	var expression string
	findActual := r.Intn(2) == 0
	if findActual {
		answer = actualDist
		expression = fmt.Sprintf("On a map with scale %d:%d, a distance of %d cm represents how many cm in real life?", sc[0], sc[1], mapDist)
	} else {
		answer = mapDist
		expression = fmt.Sprintf("On a map with scale %d:%d, what map distance represents %d cm in real life?", sc[0], sc[1], actualDist)
	}

	correct := engine.IntAnswer(int64(answer))
	score := engine.Clamp(0.5+0.2*difficulty, 0, 1)

	return g.build(r, "ratios_scale", engine.OpScale,
		expression, "",
		correct, g.scaleDistractors(answer, sc, mapDist, actualDist), score, engine.Params{
			"scale_num": sc[0], "scale_den": sc[1],
			"map_dist": mapDist, "actual_dist": actualDist,
			"find_actual": findActual,
			"answer":      answer,
			"operation":   string(engine.OpScale), "grade_level": cfg.grade,
		})
}

func (g *Ratios) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch engine.Operation(params.String("operation")) {
	case engine.OpSimplifyRatio:
		return engine.ExpressionAnswer(fmt.Sprintf("%d:%d", params.Int("simplified_a"), params.Int("simplified_b"))), nil
	case engine.OpEquivalentRatio:
		if params["find_second"] == true {
			return engine.IntAnswer(int64(params.Int("b") * params.Int("factor"))), nil
		}
		return engine.IntAnswer(int64(params.Int("a") * params.Int("factor"))), nil
	case engine.OpProportion:
		a, b, c := params.Int("a"), params.Int("b"), params.Int("c")
		if a == 0 {
			return engine.Answer{}, fmt.Errorf("ratios: zero antecedent")
		}
		return engine.IntAnswer(int64(b * c / a)), nil
	case engine.OpRatioWordProblem:
		a, b, c := params.Int("a"), params.Int("b"), params.Int("c")
		if a == 0 {
			return engine.Answer{}, fmt.Errorf("ratios: zero antecedent")
		}
		return engine.IntAnswer(int64(b * c / a)), nil
	case engine.OpPartToWhole:
		partA, partB := params.Int("part_a"), params.Int("part_b")
		mult := params.Int("total") / (partA + partB)
		if params["find_a"] == true {
			return engine.IntAnswer(int64(partA * mult)), nil
		}
		return engine.IntAnswer(int64(partB * mult)), nil
	case engine.OpScale:
		if params["find_actual"] == true {
			return engine.IntAnswer(int64(params.Int("actual_dist"))), nil
		}
		return engine.IntAnswer(int64(params.Int("map_dist"))), nil
	}
	return engine.Answer{}, fmt.Errorf("ratios: unknown operation %q", params.String("operation"))
}

func (g *Ratios) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	var out []engine.Answer
	switch engine.Operation(params.String("operation")) {
	case engine.OpSimplifyRatio:
		out = g.simplifyDistractors(params.Int("simplified_a"), params.Int("simplified_b"),
			params.Int("original_a"), params.Int("original_b"))
	case engine.OpProportion:
		out = g.proportionDistractors(int(correct.Int()), params.Int("a"), params.Int("b"), params.Int("c"))
	case engine.OpPartToWhole:
		out = g.partWholeDistractors(int(correct.Int()), params.Int("part_a"), params.Int("part_b"), params.Int("total"))
	case engine.OpScale:
		out = g.scaleDistractors(int(correct.Int()),
			[2]int{params.Int("scale_num"), params.Int("scale_den")},
			params.Int("map_dist"), params.Int("actual_dist"))
	default:
		out = g.missingDistractors(int(correct.Int()), params.Int("a"), params.Int("b"), params.Int("factor"))
	}
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Ratios) Difficulty(params engine.Params) float64 {
	switch engine.Operation(params.String("operation")) {
	case engine.OpSimplifyRatio:
		return 0.25
	case engine.OpEquivalentRatio:
		return 0.35
	case engine.OpProportion:
		return 0.5
	case engine.OpRatioWordProblem:
		return 0.55
	case engine.OpPartToWhole, engine.OpScale:
		return 0.6
	}
	return 0.4
}

func (g *Ratios) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

// simplifyDistractors covers the half-simplified, reversed, off-by-one and
// unchanged ratios.
func (g *Ratios) simplifyDistractors(sa, sb, origA, origB int) []engine.Answer {
	set := newAnswerSet(engine.ExpressionAnswer(fmt.Sprintf("%d:%d", sa, sb)))
	addRatio := func(x, y int) {
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%d:%d", x, y)))
	}

	if origA != sa {
		addRatio(sa*2, sb*2)
	}
	addRatio(sb, sa)
	addRatio(sa+1, sb)
	addRatio(sa, sb+1)
	addRatio(origA, origB)

	return set.take(3)
}

func (g *Ratios) missingDistractors(answer, a, b, factor int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))

	set.add(engine.IntAnswer(int64(answer + a)))
	set.add(engine.IntAnswer(int64(answer - b)))
	set.add(engine.IntAnswer(int64(answer + factor)))
	set.add(engine.IntAnswer(int64(a * b)))
	set.add(engine.IntAnswer(int64(absInt(a-b) * factor)))
	set.add(engine.IntAnswer(int64(answer + 1)))
	set.add(engine.IntAnswer(int64(maxInt(1, answer-1))))

	return set.take(3)
}

func (g *Ratios) proportionDistractors(x, a, b, c int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(x)))

	set.add(engine.IntAnswer(int64(a * c)))
	if a != 0 {
		set.add(engine.IntAnswer(int64(b * c / a)))
	}
	set.add(engine.IntAnswer(int64(x + 1)))
	set.add(engine.IntAnswer(int64(maxInt(1, x-1))))
	set.add(engine.IntAnswer(int64(a + b + c)))

	return set.take(3)
}

func (g *Ratios) partWholeDistractors(answer, partA, partB, total int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))

	set.add(engine.IntAnswer(int64(total - answer)))
	set.add(engine.IntAnswer(int64(partA)))
	set.add(engine.IntAnswer(int64(partB)))
	set.add(engine.IntAnswer(int64(total / (partA + partB))))
	set.add(engine.IntAnswer(int64(answer + 5)))
	set.add(engine.IntAnswer(int64(maxInt(1, answer-5))))

	return set.take(3)
}

func (g *Ratios) scaleDistractors(answer int, sc [2]int, mapDist, actualDist int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))

	if answer == actualDist {
		set.add(engine.IntAnswer(int64(mapDist)))
	} else {
		set.add(engine.IntAnswer(int64(actualDist)))
	}
	set.add(engine.IntAnswer(int64(answer * sc[0])))
	if sc[0] != 0 {
		set.add(engine.IntAnswer(int64(answer / sc[0])))
	}
	set.add(engine.IntAnswer(int64(answer + 10)))
	set.add(engine.IntAnswer(int64(maxInt(1, answer-10))))

	return set.take(3)
}

func ratiosGradeConfig(grade int) ratiosGrade {
	for _, gc := range ratiosGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return ratiosGrades[len(ratiosGrades)-1]
}
