package generators

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Percentages generates the six percentage sub-operations: find-percentage,
// find-whole, find-percent, percentage-change, discount and tax.
// Percent values come from three graduated pools and base values prefer
// round numbers at low difficulty.
type Percentages struct {
	base
}

// NewPercentages returns the percentages generator.
func NewPercentages() *Percentages {
	return &Percentages{base: newBase()}
}

var (
	easyPercentages   = []int{10, 20, 25, 50, 75, 100}
	mediumPercentages = []int{5, 15, 30, 40, 60, 80, 90}
	hardPercentages   = []int{12, 17, 23, 33, 37, 45, 55, 67, 78, 83}

	roundValues = []int{10, 20, 25, 40, 50, 60, 75, 80, 100, 120, 150, 200, 250, 300, 400, 500}
	roundPrices = []int{20, 25, 30, 40, 50, 60, 75, 80, 100, 120, 150, 200}
	taxRates    = []int{5, 6, 7, 8, 10, 15, 20}
	taxPrices   = []int{10, 15, 20, 25, 30, 40, 50, 60, 80, 100}
)

var percentagesGrades = []engine.GradeEnvelope{
	{Grade: 5, MaxValue: 100, Operations: []engine.Operation{engine.OpFindPercentage}},
	{Grade: 6, MaxValue: 200, Operations: []engine.Operation{engine.OpFindPercentage, engine.OpFindWhole}},
	{Grade: 7, MaxValue: 500, Operations: []engine.Operation{engine.OpFindPercentage, engine.OpFindWhole, engine.OpFindPercent}},
	{Grade: 8, MaxValue: 1000, Operations: []engine.Operation{engine.OpFindPercentage, engine.OpFindWhole, engine.OpFindPercent, engine.OpPercentageChange}},
	{Grade: 9, MaxValue: 2000, Operations: []engine.Operation{engine.OpFindPercentage, engine.OpFindWhole, engine.OpFindPercent, engine.OpPercentageChange, engine.OpDiscount, engine.OpTax}},
}

var percentagesBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 5},
	{UpTo: 0.4, Grade: 6},
	{UpTo: 0.6, Grade: 7},
	{UpTo: 0.8, Grade: 8},
	{UpTo: 1.1, Grade: 9},
}

func (g *Percentages) QuestionType() engine.QuestionType { return engine.TypePercentages }

func (g *Percentages) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpFindPercentage, engine.OpFindWhole, engine.OpFindPercent,
		engine.OpPercentageChange, engine.OpDiscount, engine.OpTax,
	}
}

func (g *Percentages) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(percentagesBands, req.Difficulty)
	}
	env := engine.EnvelopeForGrade(percentagesGrades, grade)

	op := req.Operation
	if op == "" {
		op = env.Operations[r.Intn(len(env.Operations))]
	} else if !env.Supports(op) {
		upgraded, ok := engine.FindSupportingGrade(percentagesGrades, op, grade+1)
		if !ok {
			return nil, fmt.Errorf("percentages: unsupported operation %q", op)
		}
		env = upgraded
	}

	switch op {
	case engine.OpFindPercentage:
		return g.findPercentage(r, req.Difficulty, env), nil
	case engine.OpFindWhole:
		return g.findWhole(r, req.Difficulty, env), nil
	case engine.OpFindPercent:
		return g.findPercent(r, req.Difficulty, env), nil
	case engine.OpPercentageChange:
		return g.percentageChange(r, req.Difficulty, env), nil
	case engine.OpDiscount:
		return g.discount(r, req.Difficulty, env), nil
	case engine.OpTax:
		return g.tax(r, req.Difficulty, env), nil
	}
	return nil, fmt.Errorf("percentages: unsupported operation %q", op)
}

// findPercentage builds "What is X% of Y?".
func (g *Percentages) findPercentage(r *rand.Rand, difficulty float64, env engine.GradeEnvelope) *engine.GeneratedQuestion {
	percent := g.selectPercentage(r, difficulty, env.Grade)
	value := g.selectValue(r, difficulty, env.MaxValue)

	// At low difficulty adjust the base so the answer is whole.
	if difficulty < 0.5 && percent > 0 {
		result := value * percent / 100
		if result == 0 {
			result = 1
		}
		value = result * 100 / percent
	}

	answer := float64(value) * float64(percent) / 100
	correct := numericAnswer(answer)

	params := engine.Params{
		"percent":     percent,
		"value":       value,
		"operation":   string(engine.OpFindPercentage),
		"grade_level": env.Grade,
	}
	distractors := g.percentageDistractors(r, answer, percent, float64(value))
	score := percentageDifficulty(percent, float64(value), answer)

	return g.build(r, "percentages_find_percentage", engine.OpFindPercentage,
		fmt.Sprintf("What is %d%% of %d?", percent, value),
		fmt.Sprintf(`$%d\%% \times %d = ?$`, percent, value),
		correct, distractors, score, params)
}

// findWhole builds "X is Y% of what number?".
func (g *Percentages) findWhole(r *rand.Rand, difficulty float64, env engine.GradeEnvelope) *engine.GeneratedQuestion {
	percent := g.selectPercentage(r, difficulty, env.Grade)
	whole := g.selectValue(r, difficulty, env.MaxValue)

	part := float64(whole) * float64(percent) / 100
	if difficulty < 0.5 && percent > 0 {
		part = math.Trunc(part)
		if part == 0 {
			part = 1
		}
		whole = int(part * 100 / float64(percent))
	}

	correct := engine.IntAnswer(int64(whole))
	params := engine.Params{
		"part":        part,
		"percent":     percent,
		"whole":       whole,
		"operation":   string(engine.OpFindWhole),
		"grade_level": env.Grade,
	}
	distractors := g.percentageDistractors(r, float64(whole), percent, part)
	score := engine.Clamp(percentageDifficulty(percent, float64(whole), part)+0.1, 0, 1)

	return g.build(r, "percentages_find_whole", engine.OpFindWhole,
		fmt.Sprintf("%s is %d%% of what number?", engine.FormatFloat(part), percent),
		fmt.Sprintf(`$%s = %d\%% \times ?$`, engine.FormatFloat(part), percent),
		correct, distractors, score, params)
}

// findPercent builds "X is what percent of Y?". The answer is the bare
// percent value as an integer.
func (g *Percentages) findPercent(r *rand.Rand, difficulty float64, env engine.GradeEnvelope) *engine.GeneratedQuestion {
	percent := g.selectPercentage(r, difficulty, env.Grade)
	whole := g.selectValue(r, difficulty, env.MaxValue)
	part := float64(whole) * float64(percent) / 100

	if difficulty < 0.5 {
		part = math.Trunc(part)
		if part == 0 && percent > 0 {
			part = 1
			whole = int(part * 100 / float64(percent))
		}
	}

	correct := engine.IntAnswer(int64(percent))
	params := engine.Params{
		"part":        part,
		"whole":       whole,
		"percent":     percent,
		"operation":   string(engine.OpFindPercent),
		"grade_level": env.Grade,
	}
	distractors := g.percentDistractors(r, percent, part, float64(whole))
	score := engine.Clamp(percentageDifficulty(percent, float64(whole), part)+0.05, 0, 1)

	return g.build(r, "percentages_find_percent", engine.OpFindPercent,
		fmt.Sprintf("%s is what percent of %d?", engine.FormatFloat(part), whole),
		fmt.Sprintf(`$\frac{%s}{%d} \times 100 = ?\%%$`, engine.FormatFloat(part), whole),
		correct, distractors, score, params)
}

// percentageChange builds an increase/decrease question.
func (g *Percentages) percentageChange(r *rand.Rand, difficulty float64, env engine.GradeEnvelope) *engine.GeneratedQuestion {
	percent := g.selectPercentage(r, difficulty, env.Grade)
	original := g.selectValue(r, difficulty, env.MaxValue)
	isIncrease := r.Intn(2) == 1

	var newValue float64
	changeWord := "decreased"
	if isIncrease {
		newValue = float64(original) * float64(100+percent) / 100
		changeWord = "increased"
	} else {
		newValue = float64(original) * float64(100-percent) / 100
	}
	if difficulty < 0.6 {
		newValue = math.Round(newValue)
	}

	correct := numericAnswer(newValue)
	params := engine.Params{
		"original":    original,
		"percent":     percent,
		"is_increase": boolToInt(isIncrease),
		"new_value":   newValue,
		"operation":   string(engine.OpPercentageChange),
		"grade_level": env.Grade,
	}
	distractors := g.changeDistractors(newValue, float64(original), percent, isIncrease)
	score := engine.Clamp(percentageDifficulty(percent, float64(original), newValue)+0.15, 0, 1)

	return g.build(r, "percentages_change", engine.OpPercentageChange,
		fmt.Sprintf("A number %d is %s by %d%%. What is the new value?", original, changeWord, percent),
		"", correct, distractors, score, params)
}

// discount builds a sale-price question with round prices.
func (g *Percentages) discount(r *rand.Rand, difficulty float64, env engine.GradeEnvelope) *engine.GeneratedQuestion {
	percent := g.selectPercentage(r, difficulty, env.Grade)
	originalPrice := roundPrices[r.Intn(len(roundPrices))]

	discountAmount := float64(originalPrice) * float64(percent) / 100
	finalPrice := float64(originalPrice) - discountAmount
	if difficulty < 0.5 {
		finalPrice = math.Round(finalPrice)
	}

	correct := engine.DecimalAnswer(engine.Round2(finalPrice))
	params := engine.Params{
		"original_price": originalPrice,
		"percent":        percent,
		"final_price":    engine.Round2(finalPrice),
		"operation":      string(engine.OpDiscount),
		"grade_level":    env.Grade,
	}
	distractors := g.priceDistractors(finalPrice, float64(originalPrice), discountAmount)
	score := engine.Clamp(percentageDifficulty(percent, float64(originalPrice), finalPrice)+0.1, 0, 1)

	return g.build(r, "percentages_discount", engine.OpDiscount,
		fmt.Sprintf("A shirt costs $%d. It is on sale for %d%% off. What is the sale price in dollars?", originalPrice, percent),
		"", correct, distractors, score, params)
}

// tax builds a total-with-tax question.
func (g *Percentages) tax(r *rand.Rand, difficulty float64, env engine.GradeEnvelope) *engine.GeneratedQuestion {
	taxRate := taxRates[r.Intn(len(taxRates))]
	originalPrice := taxPrices[r.Intn(len(taxPrices))]

	taxAmount := float64(originalPrice) * float64(taxRate) / 100
	finalPrice := float64(originalPrice) + taxAmount

	correct := engine.DecimalAnswer(engine.Round2(finalPrice))
	params := engine.Params{
		"original_price": originalPrice,
		"tax_rate":       taxRate,
		"final_price":    engine.Round2(finalPrice),
		"operation":      string(engine.OpTax),
		"grade_level":    env.Grade,
	}
	distractors := g.priceDistractors(finalPrice, float64(originalPrice), taxAmount)
	score := engine.Clamp(percentageDifficulty(taxRate, float64(originalPrice), finalPrice)+0.1, 0, 1)

	return g.build(r, "percentages_tax", engine.OpTax,
		fmt.Sprintf("An item costs $%d. With %d%% tax, what is the total price in dollars?", originalPrice, taxRate),
		"", correct, distractors, score, params)
}

func (g *Percentages) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch engine.Operation(params.String("operation")) {
	case engine.OpFindPercentage:
		return numericAnswer(params.Float("value") * params.Float("percent") / 100), nil
	case engine.OpFindWhole:
		return engine.IntAnswer(int64(params.Int("whole"))), nil
	case engine.OpFindPercent:
		return engine.IntAnswer(int64(params.Int("percent"))), nil
	case engine.OpPercentageChange:
		return numericAnswer(params.Float("new_value")), nil
	case engine.OpDiscount, engine.OpTax:
		return engine.DecimalAnswer(engine.Round2(params.Float("final_price"))), nil
	}
	return engine.Answer{}, fmt.Errorf("percentages: unknown operation %q", params.String("operation"))
}

func (g *Percentages) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	seed := paramSeed(params, "percent", "value", "whole")
	r := engine.NewRand(&seed)
	out := g.percentageDistractors(r, correct.Float(), params.Int("percent"), params.Float("value"))
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Percentages) Difficulty(params engine.Params) float64 {
	return percentageDifficulty(params.Int("percent"), params.Float("value"), params.Float("answer"))
}

func (g *Percentages) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

func (g *Percentages) selectPercentage(r *rand.Rand, difficulty float64, grade int) int {
	var pool []int
	switch {
	case grade <= 6 || difficulty < 0.3:
		pool = easyPercentages
	case grade <= 8 || difficulty < 0.7:
		pool = append(append([]int{}, easyPercentages...), mediumPercentages...)
	default:
		pool = append(append(append([]int{}, easyPercentages...), mediumPercentages...), hardPercentages...)
	}
	return pool[r.Intn(len(pool))]
}

func (g *Percentages) selectValue(r *rand.Rand, difficulty float64, maxValue int) int {
	scaledMax := maxInt(20, int(float64(maxValue)*(0.2+0.8*difficulty)))

	var pool []int
	for _, v := range roundValues {
		if v <= scaledMax {
			pool = append(pool, v)
		}
	}
	if len(pool) > 0 && difficulty < 0.7 {
		return pool[r.Intn(len(pool))]
	}
	return engine.RandRange(r, 10, scaledMax)
}

func percentageDifficulty(percent int, value, answer float64) float64 {
	difficulty := 0.2

	if !containsInt(easyPercentages, percent) {
		difficulty += 0.2
	}
	if containsInt(hardPercentages, percent) {
		difficulty += 0.1
	}

	difficulty += minFloat(0.2, value/1000)

	if answer != math.Trunc(answer) {
		difficulty += 0.15
	}

	return engine.Clamp(difficulty, 0, 1)
}

// percentageDistractors models the divide-by-10 error, bare-percent
// confusion, factor-of-ten slips and near misses.
func (g *Percentages) percentageDistractors(r *rand.Rand, answer float64, percent int, value float64) []engine.Answer {
	set := newAnswerSet(numericAnswer(answer))

	set.add(numericAnswer(value * float64(percent) / 10))
	set.add(numericAnswer(float64(percent)))
	if answer != 0 {
		set.add(numericAnswer(answer * 10))
		if answer/10 > 0 {
			set.add(numericAnswer(answer / 10))
		}
	}
	set.add(numericAnswer(answer + float64(engine.RandRange(r, 1, 5))))
	if answer > 5 {
		set.add(numericAnswer(answer - float64(engine.RandRange(r, 1, 5))))
	}

	return set.take(3)
}

func (g *Percentages) percentDistractors(r *rand.Rand, percent int, part, whole float64) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(percent)))

	if percent != 100-percent {
		set.add(engine.IntAnswer(int64(100 - percent)))
	}
	set.add(engine.IntAnswer(int64(percent + 10)))
	set.add(engine.IntAnswer(int64(maxInt(1, percent-10))))

	// Inverted calculation.
	if part != 0 {
		wrong := int64(whole / part * 100)
		if wrong > 0 {
			set.add(engine.IntAnswer(wrong))
		}
	}

	return set.take(3)
}

func (g *Percentages) changeDistractors(answer, original float64, percent int, isIncrease bool) []engine.Answer {
	set := newAnswerSet(numericAnswer(answer))

	change := original * float64(percent) / 100
	set.add(numericAnswer(change)) // just the change amount

	// Wrong direction.
	wrong := original + change
	if isIncrease {
		wrong = original - change
	}
	if wrong > 0 {
		set.add(numericAnswer(wrong))
	}

	set.add(numericAnswer(original))
	set.add(numericAnswer(math.Trunc(answer) + 5))
	if answer > 5 {
		set.add(numericAnswer(math.Trunc(answer) - 5))
	}

	return set.take(3)
}

func (g *Percentages) priceDistractors(final, original, change float64) []engine.Answer {
	set := newAnswerSet(engine.DecimalAnswer(engine.Round2(final)))

	set.add(engine.DecimalAnswer(engine.Round2(change)))
	set.add(engine.DecimalAnswer(original))
	set.add(engine.DecimalAnswer(engine.Round2(final + 5)))
	if final > 5 {
		set.add(engine.DecimalAnswer(engine.Round2(final - 5)))
	}

	return set.take(3)
}

// numericAnswer renders a whole value as integer format and anything else
// as a two-decimal value.
func numericAnswer(v float64) engine.Answer {
	if v == math.Trunc(v) {
		return engine.IntAnswer(int64(v))
	}
	return engine.DecimalAnswer(engine.Round2(v))
}

// answerSet collects distractors, deduplicating by canonical value and
// excluding the correct answer.
type answerSet struct {
	correct engine.Answer
	seen    map[string]bool
	items   []engine.Answer
}

func newAnswerSet(correct engine.Answer) *answerSet {
	return &answerSet{
		correct: correct,
		seen:    map[string]bool{correct.Value: true},
	}
}

func (s *answerSet) add(a engine.Answer) {
	if s.seen[a.Value] || s.correct.Equals(a) {
		return
	}
	s.seen[a.Value] = true
	s.items = append(s.items, a)
}

func (s *answerSet) take(n int) []engine.Answer {
	if len(s.items) > n {
		return s.items[:n]
	}
	return s.items
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
