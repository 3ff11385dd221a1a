package generators

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Statistics generates mean, median, mode, range, probability, combination
// and permutation questions. Mean data sets are built from symmetric offsets
// around the target mean so the average is always a whole number.
type Statistics struct {
	base
}

// NewStatistics returns the statistics generator.
func NewStatistics() *Statistics {
	return &Statistics{base: newBase()}
}

type statisticsGrade struct {
	grade    int
	maxValue int
	setSize  int
	types    []engine.Operation
}

var statisticsGrades = []statisticsGrade{
	{5, 50, 5, []engine.Operation{engine.OpMean, engine.OpRange}},
	{6, 100, 7, []engine.Operation{engine.OpMean, engine.OpMedian, engine.OpMode, engine.OpRange}},
	{7, 200, 9, []engine.Operation{engine.OpMean, engine.OpMedian, engine.OpMode, engine.OpRange, engine.OpProbability}},
	{8, 500, 10, []engine.Operation{engine.OpMean, engine.OpMedian, engine.OpMode, engine.OpRange, engine.OpProbability}},
	{9, 500, 10, []engine.Operation{engine.OpMean, engine.OpMedian, engine.OpMode, engine.OpRange, engine.OpProbability, engine.OpCombination, engine.OpPermutation}},
}

var statisticsBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 5},
	{UpTo: 0.4, Grade: 6},
	{UpTo: 0.6, Grade: 7},
	{UpTo: 0.8, Grade: 8},
	{UpTo: 1.1, Grade: 9},
}

func (g *Statistics) QuestionType() engine.QuestionType { return engine.TypeStatistics }

func (g *Statistics) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpMean, engine.OpMedian, engine.OpMode, engine.OpRange,
		engine.OpProbability, engine.OpCombination, engine.OpPermutation,
	}
}

func (g *Statistics) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(statisticsBands, req.Difficulty)
	}
	cfg := statisticsGradeConfig(grade)

	op := req.Operation
	if op == "" {
		op = cfg.types[r.Intn(len(cfg.types))]
	} else if !containsOp(cfg.types, op) {
		for _, gc := range statisticsGrades {
			if gc.grade > cfg.grade && containsOp(gc.types, op) {
				cfg = gc
				break
			}
		}
		if !containsOp(cfg.types, op) {
			return nil, fmt.Errorf("statistics: unsupported operation %q", op)
		}
	}

	switch op {
	case engine.OpMean:
		return g.mean(r, req.Difficulty, cfg), nil
	case engine.OpMedian:
		return g.median(r, req.Difficulty, cfg), nil
	case engine.OpMode:
		return g.mode(r, req.Difficulty, cfg), nil
	case engine.OpRange:
		return g.dataRange(r, req.Difficulty, cfg), nil
	case engine.OpProbability:
		return g.probability(r, req.Difficulty, cfg), nil
	case engine.OpCombination:
		return g.combination(r, req.Difficulty, cfg), nil
	case engine.OpPermutation:
		return g.permutation(r, req.Difficulty, cfg), nil
	}
	return nil, fmt.Errorf("statistics: unsupported operation %q", op)
}

// mean builds the data set as mirrored offsets around the target mean, so
// the sum is exactly mean*size.
func (g *Statistics) mean(r *rand.Rand, difficulty float64, cfg statisticsGrade) *engine.GeneratedQuestion {
	size := maxInt(3, int(float64(cfg.setSize)*(0.4+0.6*difficulty)))
	maxVal := maxInt(10, int(float64(cfg.maxValue)*(0.3+0.7*difficulty)))

	target := engine.RandRange(r, 5, maxInt(5, maxVal/2))
	spread := minInt(20, target-1)

	numbers := make([]int, 0, size)
	for len(numbers)+2 <= size {
		off := engine.RandRange(r, 0, spread)
		numbers = append(numbers, target+off, target-off)
	}
	if len(numbers) < size {
		numbers = append(numbers, target)
	}
	r.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	answer := target
	sorted := append([]int(nil), numbers...)
	sort.Ints(sorted)

	distractors := g.statCandidates(r, answer, []int{
		answer + 1, answer - 1,
		sorted[len(sorted)-1], sorted[0],
		sumInts(numbers) / (size + 1),
		sorted[size/2],
	})
	score := engine.Clamp(0.2+0.15*float64(size)/10+0.1*float64(maxVal)/float64(cfg.maxValue), 0, 1)

	terms := make([]string, len(numbers))
	for i, n := range numbers {
		terms[i] = strconv.Itoa(n)
	}
	return g.build(r, "statistics_mean", engine.OpMean,
		"Find the mean of: "+joinInts(numbers),
		fmt.Sprintf(`$\bar{x} = \frac{%s}{%d}$`, strings.Join(terms, "+"), size),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"numbers": numbers, "answer": answer,
			"type": "mean", "grade_level": cfg.grade,
		})
}

func (g *Statistics) median(r *rand.Rand, difficulty float64, cfg statisticsGrade) *engine.GeneratedQuestion {
	var size int
	if r.Float64() < 0.6 {
		size = []int{5, 7, 9}[r.Intn(3)]
	} else {
		size = []int{4, 6, 8}[r.Intn(3)]
	}
	maxVal := maxInt(10, int(float64(cfg.maxValue)*(0.3+0.7*difficulty)))

	numbers := make([]int, size)
	for i := range numbers {
		numbers[i] = engine.RandRange(r, 1, maxVal)
	}
	sorted := append([]int(nil), numbers...)
	sort.Ints(sorted)

	var answer float64
	if size%2 == 1 {
		answer = float64(sorted[size/2])
	} else {
		answer = float64(sorted[size/2-1]+sorted[size/2]) / 2
	}
	correct := numericAnswer(answer)

	distractors := g.statCandidates(r, int(answer), []int{
		int(answer) + 1, int(answer) - 1,
		sumInts(numbers) / size,
		sorted[size-1], sorted[0],
	})
	score := engine.Clamp(0.3+0.1*float64(size)/10, 0, 1)

	return g.build(r, "statistics_median", engine.OpMedian,
		"Find the median of: "+joinInts(numbers), "",
		correct, distractors, score, engine.Params{
			"numbers": sorted,
			"type":    "median", "grade_level": cfg.grade,
		})
}

func (g *Statistics) mode(r *rand.Rand, difficulty float64, cfg statisticsGrade) *engine.GeneratedQuestion {
	maxVal := maxInt(10, int(float64(cfg.maxValue)*(0.3+0.7*difficulty)))
	size := maxInt(5, int(float64(cfg.setSize)*(0.5+0.5*difficulty)))

	modeVal := engine.RandRange(r, 1, maxVal)
	modeCount := engine.RandRange(r, 2, minInt(4, size-2))
	numbers := make([]int, 0, size)
	for i := 0; i < modeCount; i++ {
		numbers = append(numbers, modeVal)
	}
	for len(numbers) < size {
		if v := engine.RandRange(r, 1, maxVal); v != modeVal {
			numbers = append(numbers, v)
		}
	}
	r.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	others := make([]int, 0, 2)
	for _, n := range numbers {
		if n != modeVal && !containsInt(others, n) {
			others = append(others, n)
			if len(others) == 2 {
				break
			}
		}
	}

	distractors := g.statCandidates(r, modeVal, append([]int{
		modeVal + 1, modeVal - 1, sumInts(numbers) / size,
	}, others...))
	score := engine.Clamp(0.25+0.1*float64(size)/10, 0, 1)

	return g.build(r, "statistics_mode", engine.OpMode,
		"Find the mode of: "+joinInts(numbers), "",
		engine.IntAnswer(int64(modeVal)), distractors, score, engine.Params{
			"numbers": numbers, "mode": modeVal, "answer": modeVal,
			"type": "mode", "grade_level": cfg.grade,
		})
}

func (g *Statistics) dataRange(r *rand.Rand, difficulty float64, cfg statisticsGrade) *engine.GeneratedQuestion {
	maxVal := maxInt(10, int(float64(cfg.maxValue)*(0.3+0.7*difficulty)))
	size := maxInt(4, int(float64(cfg.setSize)*(0.4+0.6*difficulty)))

	numbers := make([]int, size)
	for i := range numbers {
		numbers[i] = engine.RandRange(r, 1, maxVal)
	}
	lo, hi := minMax(numbers)
	answer := hi - lo

	distractors := g.statCandidates(r, answer, []int{
		answer + 1, answer - 1, hi, lo, sumInts(numbers) / size,
	})
	score := engine.Clamp(0.15+0.1*float64(size)/10, 0, 1)

	return g.build(r, "statistics_range", engine.OpRange,
		"Find the range of: "+joinInts(numbers), "",
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"numbers": numbers, "answer": answer,
			"type": "range", "grade_level": cfg.grade,
		})
}

func (g *Statistics) probability(r *rand.Rand, difficulty float64, cfg statisticsGrade) *engine.GeneratedQuestion {
	contexts := []string{"dice", "coin", "cards", "marbles"}
	var context string
	if difficulty < 0.4 {
		context = contexts[r.Intn(2)]
	} else {
		context = contexts[r.Intn(len(contexts))]
	}

	var favorable, total int
	var expression string
	switch context {
	case "dice":
		total = 6
		events := []struct {
			favorable int
			desc      string
		}{
			{3, "an even number"},
			{3, "an odd number"},
			{2, "a number greater than 4"},
			{2, "a number less than 3"},
			{1, fmt.Sprintf("a %d", engine.RandRange(r, 1, 6))},
		}
		ev := events[r.Intn(len(events))]
		favorable = ev.favorable
		expression = fmt.Sprintf("A standard die is rolled. What is the probability of rolling %s?", ev.desc)
	case "coin":
		favorable, total = 1, 2
		side := []string{"heads", "tails"}[r.Intn(2)]
		expression = fmt.Sprintf("A fair coin is tossed. What is the probability of getting %s?", side)
	case "cards":
		total = 52
		events := []struct {
			favorable int
			desc      string
		}{
			{13, "a " + []string{"heart", "diamond", "club", "spade"}[r.Intn(4)]},
			{26, "a " + []string{"red", "black"}[r.Intn(2)] + " card"},
			{12, "a face card (J, Q, K)"},
			{4, "a " + []string{"King", "Queen", "Ace", "7"}[r.Intn(4)]},
		}
		ev := events[r.Intn(len(events))]
		favorable = ev.favorable
		expression = fmt.Sprintf("A card is drawn from a standard deck. What is the probability of drawing %s?", ev.desc)
	default:
		red := engine.RandRange(r, 2, 8)
		blue := engine.RandRange(r, 2, 8)
		green := engine.RandRange(r, 1, 5)
		total = red + blue + green
		names := []string{"red", "blue", "green"}
		counts := []int{red, blue, green}
		pick := r.Intn(3)
		favorable = counts[pick]
		expression = fmt.Sprintf("A bag contains %d red, %d blue, %d green marbles. What is the probability of drawing a %s marble?",
			red, blue, green, names[pick])
	}

	frac := engine.NewFraction(int64(favorable), int64(total)).Reduce()
	correct := engine.FractionAnswer(frac)

	set := newAnswerSet(correct)
	set.add(engine.FractionAnswer(engine.NewFraction(int64(total-favorable), int64(total))))
	if total-favorable > 0 {
		set.add(engine.FractionAnswer(engine.NewFraction(int64(favorable), int64(total-favorable))))
	}
	set.add(engine.FractionAnswer(engine.NewFraction(int64(favorable+1), int64(total))))
	for i := 0; len(set.items) < 3 && i < 20; i++ {
		n := engine.RandRange(r, 1, total-1)
		set.add(engine.FractionAnswer(engine.NewFraction(int64(n), int64(total))))
	}

	bonus := 0.0
	if total > 10 {
		bonus = 0.1
	}
	score := engine.Clamp(0.3+0.2*difficulty+bonus, 0, 1)

	return g.build(r, "statistics_probability", engine.OpProbability,
		expression,
		fmt.Sprintf(`$P = \frac{%d}{%d}$`, frac.Num, frac.Den),
		correct, set.take(3), score, engine.Params{
			"favorable": favorable, "total": total, "context": context,
			"type": "probability", "grade_level": cfg.grade,
		})
}

func (g *Statistics) combination(r *rand.Rand, difficulty float64, cfg statisticsGrade) *engine.GeneratedQuestion {
	n := engine.RandRange(r, 4, 5+int(difficulty*7))
	k := engine.RandRange(r, 2, n-1)
	answer := comb(n, k)

	distractors := g.statCandidates(r, answer, []int{
		perm(n, k), comb(n, k-1), comb(n-1, k), n * k,
		answer + engine.RandRange(r, 1, 5),
	})
	score := engine.Clamp(0.6+0.2*difficulty, 0, 1)

	return g.build(r, "statistics_combination", engine.OpCombination,
		fmt.Sprintf("How many ways can you choose %d items from %d items? (C(%d,%d))", k, n, n, k),
		fmt.Sprintf(`$C(%d,%d) = \binom{%d}{%d}$`, n, k, n, k),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"n": n, "r": k, "answer": answer,
			"type": "combination", "grade_level": cfg.grade,
		})
}

func (g *Statistics) permutation(r *rand.Rand, difficulty float64, cfg statisticsGrade) *engine.GeneratedQuestion {
	n := engine.RandRange(r, 4, 4+int(difficulty*5))
	k := engine.RandRange(r, 2, minInt(n, 4))
	answer := perm(n, k)

	distractors := g.statCandidates(r, answer, []int{
		comb(n, k), n * k, perm(n, k-1), ipow(n, k),
		answer + engine.RandRange(r, 1, 10),
	})
	score := engine.Clamp(0.65+0.2*difficulty, 0, 1)

	return g.build(r, "statistics_permutation", engine.OpPermutation,
		fmt.Sprintf("How many ways can you arrange %d items from %d items? (P(%d,%d))", k, n, n, k),
		fmt.Sprintf(`$P(%d,%d) = \frac{%d!}{(%d-%d)!}$`, n, k, n, n, k),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"n": n, "r": k, "answer": answer,
			"type": "permutation", "grade_level": cfg.grade,
		})
}

func (g *Statistics) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "mean":
		nums := params.Ints("numbers")
		if len(nums) == 0 {
			return engine.Answer{}, fmt.Errorf("statistics: empty data set")
		}
		return numericAnswer(float64(sumInts(nums)) / float64(len(nums))), nil
	case "median":
		nums := append([]int(nil), params.Ints("numbers")...)
		if len(nums) == 0 {
			return engine.Answer{}, fmt.Errorf("statistics: empty data set")
		}
		sort.Ints(nums)
		n := len(nums)
		if n%2 == 1 {
			return engine.IntAnswer(int64(nums[n/2])), nil
		}
		return numericAnswer(float64(nums[n/2-1]+nums[n/2]) / 2), nil
	case "mode":
		return engine.IntAnswer(int64(params.Int("mode"))), nil
	case "range":
		nums := params.Ints("numbers")
		if len(nums) == 0 {
			return engine.Answer{}, fmt.Errorf("statistics: empty data set")
		}
		lo, hi := minMax(nums)
		return engine.IntAnswer(int64(hi - lo)), nil
	case "probability":
		return engine.FractionAnswer(engine.NewFraction(int64(params.Int("favorable")), int64(params.Int("total"))).Reduce()), nil
	case "combination":
		return engine.IntAnswer(int64(comb(params.Int("n"), params.Int("r")))), nil
	case "permutation":
		return engine.IntAnswer(int64(perm(params.Int("n"), params.Int("r")))), nil
	}
	return engine.Answer{}, fmt.Errorf("statistics: unknown problem type %q", params.String("type"))
}

func (g *Statistics) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	answer := int(correct.Int())
	out := g.statCandidates(nil, answer, []int{answer + 1, answer - 1, answer + 2, answer * 2})
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Statistics) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "mean":
		return 0.3
	case "median":
		return 0.35
	case "mode":
		return 0.25
	case "range":
		return 0.2
	case "probability":
		return 0.4
	case "combination":
		return 0.65
	case "permutation":
		return 0.7
	}
	return 0.3
}

func (g *Statistics) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

func (g *Statistics) statCandidates(r *rand.Rand, answer int, candidates []int) []engine.Answer {
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

func comb(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

func perm(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	result := 1
	for i := 0; i < k; i++ {
		result *= n - i
	}
	return result
}

func sumInts(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func minMax(xs []int) (int, int) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}

func statisticsGradeConfig(grade int) statisticsGrade {
	for _, gc := range statisticsGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return statisticsGrades[len(statisticsGrades)-1]
}
