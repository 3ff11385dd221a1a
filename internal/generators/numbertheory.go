package generators

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// NumberTheory generates prime checks, GCD, LCM, divisibility, and prime
// factorization questions. GCD pairs are built from coprime multiples of a
// chosen divisor so the answer is exactly the chosen value.
type NumberTheory struct {
	base
}

// NewNumberTheory returns the number theory generator.
func NewNumberTheory() *NumberTheory {
	return &NumberTheory{base: newBase()}
}

type numberTheoryGrade struct {
	grade    int
	maxValue int
	types    []engine.Operation
}

var numberTheoryGrades = []numberTheoryGrade{
	{4, 50, []engine.Operation{engine.OpPrime, engine.OpDivisibility}},
	{5, 100, []engine.Operation{engine.OpPrime, engine.OpDivisibility, engine.OpGCD}},
	{6, 200, []engine.Operation{engine.OpPrime, engine.OpDivisibility, engine.OpGCD, engine.OpLCM}},
	{7, 500, []engine.Operation{engine.OpPrime, engine.OpGCD, engine.OpLCM, engine.OpFactorization}},
	{8, 1000, []engine.Operation{engine.OpPrime, engine.OpGCD, engine.OpLCM, engine.OpFactorization, engine.OpDivisibility}},
}

var numberTheoryBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 4},
	{UpTo: 0.4, Grade: 5},
	{UpTo: 0.6, Grade: 6},
	{UpTo: 0.8, Grade: 7},
	{UpTo: 1.1, Grade: 8},
}

var primesUnder100 = []int{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

func (g *NumberTheory) QuestionType() engine.QuestionType { return engine.TypeNumberTheory }

func (g *NumberTheory) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpPrime, engine.OpGCD, engine.OpLCM,
		engine.OpDivisibility, engine.OpFactorization,
	}
}

func (g *NumberTheory) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(numberTheoryBands, req.Difficulty)
	}
	cfg := numberTheoryGradeConfig(grade)

	op := req.Operation
	if op == "" {
		op = cfg.types[r.Intn(len(cfg.types))]
	} else if !containsOp(cfg.types, op) {
		for _, gc := range numberTheoryGrades {
			if gc.grade > cfg.grade && containsOp(gc.types, op) {
				cfg = gc
				break
			}
		}
		if !containsOp(cfg.types, op) {
			return nil, fmt.Errorf("number theory: unsupported operation %q", op)
		}
	}

	switch op {
	case engine.OpPrime:
		return g.primeCheck(r, req.Difficulty, cfg), nil
	case engine.OpGCD:
		return g.gcd(r, req.Difficulty, cfg), nil
	case engine.OpLCM:
		return g.lcm(r, req.Difficulty, cfg), nil
	case engine.OpDivisibility:
		return g.divisibility(r, req.Difficulty, cfg), nil
	case engine.OpFactorization:
		return g.factorization(r, req.Difficulty, cfg), nil
	}
	return nil, fmt.Errorf("number theory: unsupported operation %q", op)
}

func (g *NumberTheory) primeCheck(r *rand.Rand, difficulty float64, cfg numberTheoryGrade) *engine.GeneratedQuestion {
	maxVal := maxInt(20, int(float64(cfg.maxValue)*(0.3+0.7*difficulty)))
	score := engine.Clamp(0.2+0.2*difficulty, 0, 1)

	if r.Float64() < 0.5 {
		var number int
		if r.Float64() < 0.5 {
			pool := make([]int, 0, len(primesUnder100))
			for _, p := range primesUnder100 {
				if p <= maxVal {
					pool = append(pool, p)
				}
			}
			if len(pool) == 0 {
				pool = []int{2, 3, 5, 7}
			}
			number = pool[r.Intn(len(pool))]
		} else {
			number = engine.RandRange(r, 4, maxVal)
			for isPrime(number) {
				number = engine.RandRange(r, 4, maxVal)
			}
		}

		answer := "No"
		if isPrime(number) {
			answer = "Yes"
		}
		correct := engine.ExpressionAnswer(answer)
		set := newAnswerSet(correct)
		set.add(engine.ExpressionAnswer("Yes"))
		set.add(engine.ExpressionAnswer("No"))
		set.add(engine.ExpressionAnswer("Cannot determine"))

		return g.build(r, "number_theory_prime", engine.OpPrime,
			fmt.Sprintf("Is %d a prime number?", number), "",
			correct, set.take(3), score, engine.Params{
				"number": number, "mode": "check",
				"type": "prime_check", "grade_level": cfg.grade,
			})
	}

	start := engine.RandRange(r, 10, maxInt(20, maxVal/2))
	answer := nextPrime(start)

	distractors := g.numCandidates(r, answer, []int{answer + 1, answer - 1, start, answer + 2})
	return g.build(r, "number_theory_prime", engine.OpPrime,
		fmt.Sprintf("What is the smallest prime number greater than %d?", start), "",
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"start": start, "mode": "next_prime",
			"type": "prime_check", "grade_level": cfg.grade,
		})
}

// gcd multiplies a chosen divisor by two coprime factors so that divisor is
// exactly the GCD.
func (g *NumberTheory) gcd(r *rand.Rand, difficulty float64, cfg numberTheoryGrade) *engine.GeneratedQuestion {
	maxVal := maxInt(20, int(float64(cfg.maxValue)*(0.3+0.7*difficulty)))

	gcdVal := engine.RandRange(r, 2, minInt(20, maxVal/4))
	multA := engine.RandRange(r, 2, maxInt(3, maxVal/gcdVal))
	multB := engine.RandRange(r, 2, maxInt(3, maxVal/gcdVal))
	for engine.GCD(int64(multA), int64(multB)) != 1 {
		multB = engine.RandRange(r, 2, maxInt(3, maxVal/gcdVal))
	}

	a, b := gcdVal*multA, gcdVal*multB
	answer := gcdVal

	distractors := g.numCandidates(r, answer, []int{
		a * b / answer,
		answer * 2,
		answer + 1, answer - 1,
		minInt(a, b),
	})
	score := engine.Clamp(0.35+0.2*difficulty, 0, 1)

	return g.build(r, "number_theory_gcd", engine.OpGCD,
		fmt.Sprintf("Find the GCD of %d and %d", a, b),
		fmt.Sprintf(`$\gcd(%d, %d)$`, a, b),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"a": a, "b": b, "answer": answer,
			"type": "gcd", "grade_level": cfg.grade,
		})
}

func (g *NumberTheory) lcm(r *rand.Rand, difficulty float64, cfg numberTheoryGrade) *engine.GeneratedQuestion {
	maxVal := maxInt(20, int(float64(cfg.maxValue)*(0.3+0.7*difficulty)))

	a := engine.RandRange(r, 2, minInt(30, maxVal))
	b := engine.RandRange(r, 2, minInt(30, maxVal))
	answer := int(engine.LCM(int64(a), int64(b)))
	gcdVal := int(engine.GCD(int64(a), int64(b)))

	fallback := answer + b
	if answer > b {
		fallback = answer - b
	}
	distractors := g.numCandidates(r, answer, []int{
		a * b,
		gcdVal,
		answer + a, fallback,
		maxInt(a, b),
	})
	score := engine.Clamp(0.4+0.2*difficulty, 0, 1)

	return g.build(r, "number_theory_lcm", engine.OpLCM,
		fmt.Sprintf("Find the LCM of %d and %d", a, b),
		fmt.Sprintf(`$\text{lcm}(%d, %d)$`, a, b),
		engine.IntAnswer(int64(answer)), distractors, score, engine.Params{
			"a": a, "b": b, "answer": answer,
			"type": "lcm", "grade_level": cfg.grade,
		})
}

func (g *NumberTheory) divisibility(r *rand.Rand, difficulty float64, cfg numberTheoryGrade) *engine.GeneratedQuestion {
	divisors := []int{2, 3, 4, 5, 6, 9, 10}
	divisor := divisors[r.Intn(len(divisors))]
	maxVal := maxInt(50, int(float64(cfg.maxValue)*(0.3+0.7*difficulty)))

	var number int
	if r.Float64() < 0.5 {
		number = divisor * engine.RandRange(r, 2, maxVal/divisor)
	} else {
		number = engine.RandRange(r, 10, maxVal)
		for number%divisor == 0 {
			number = engine.RandRange(r, 10, maxVal)
		}
	}

	answer := "No"
	if number%divisor == 0 {
		answer = "Yes"
	}
	correct := engine.ExpressionAnswer(answer)
	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer("Yes"))
	set.add(engine.ExpressionAnswer("No"))
	set.add(engine.ExpressionAnswer("Cannot determine"))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("Only if divided by %d", divisor+1)))

	score := engine.Clamp(0.2+0.15*difficulty, 0, 1)

	return g.build(r, "number_theory_divisibility", engine.OpDivisibility,
		fmt.Sprintf("Is %d divisible by %d?", number, divisor), "",
		correct, set.take(3), score, engine.Params{
			"number": number, "divisor": divisor,
			"type": "divisibility", "grade_level": cfg.grade,
		})
}

func (g *NumberTheory) factorization(r *rand.Rand, difficulty float64, cfg numberTheoryGrade) *engine.GeneratedQuestion {
	maxVal := maxInt(20, int(float64(minInt(200, cfg.maxValue))*(0.3+0.7*difficulty)))

	smallPrimes := []int{2, 3, 5, 7, 11, 13}
	numFactors := engine.RandRange(r, 2, 3+int(difficulty*2))
	poolSize := minInt(len(smallPrimes), 3+int(difficulty*3))
	number := 1
	for i := 0; i < numFactors; i++ {
		number *= smallPrimes[r.Intn(poolSize)]
		if number > maxVal {
			break
		}
	}
	if number < 4 {
		number = 12
	}

	factors := primeFactors(number)
	answer := factorsExpression(factors)
	correct := engine.ExpressionAnswer(answer)

	set := newAnswerSet(correct)
	if len(factors) > 1 {
		wrong := append([]int(nil), factors...)
		wrong[0]++
		set.add(engine.ExpressionAnswer(factorsExpression(wrong)))
	}
	set.add(engine.ExpressionAnswer(fmt.Sprintf("1 × %d", number)))
	if number%2 == 0 {
		set.add(engine.ExpressionAnswer(fmt.Sprintf("2 × %d", number/2)))
	} else {
		set.add(engine.ExpressionAnswer(fmt.Sprintf("3 × %d", number)))
	}
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		p := []int{2, 3, 5}[r.Intn(3)]
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%d × %d", p, number/p)))
	}

	score := engine.Clamp(0.4+0.25*difficulty, 0, 1)

	return g.build(r, "number_theory_factorization", engine.OpFactorization,
		fmt.Sprintf("Find the prime factorization of %d", number),
		fmt.Sprintf("$%d = %s$", number, answer),
		correct, set.take(3), score, engine.Params{
			"number": number, "factors": factors,
			"type": "factorization", "grade_level": cfg.grade,
		})
}

func (g *NumberTheory) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "prime_check":
		if params.String("mode") == "next_prime" {
			return engine.IntAnswer(int64(nextPrime(params.Int("start")))), nil
		}
		if isPrime(params.Int("number")) {
			return engine.ExpressionAnswer("Yes"), nil
		}
		return engine.ExpressionAnswer("No"), nil
	case "gcd":
		return engine.IntAnswer(engine.GCD(int64(params.Int("a")), int64(params.Int("b")))), nil
	case "lcm":
		return engine.IntAnswer(engine.LCM(int64(params.Int("a")), int64(params.Int("b")))), nil
	case "divisibility":
		if params.Int("number")%params.Int("divisor") == 0 {
			return engine.ExpressionAnswer("Yes"), nil
		}
		return engine.ExpressionAnswer("No"), nil
	case "factorization":
		return engine.ExpressionAnswer(factorsExpression(primeFactors(params.Int("number")))), nil
	}
	return engine.Answer{}, fmt.Errorf("number theory: unknown problem type %q", params.String("type"))
}

func (g *NumberTheory) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	if correct.Format != engine.FormatInteger {
		set := newAnswerSet(correct)
		set.add(engine.ExpressionAnswer("Yes"))
		set.add(engine.ExpressionAnswer("No"))
		set.add(engine.ExpressionAnswer("Cannot determine"))
		return set.take(count)
	}
	answer := int(correct.Int())
	out := g.numCandidates(nil, answer, []int{answer + 1, answer - 1, answer * 2, answer + 2})
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *NumberTheory) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "prime_check":
		return 0.25
	case "gcd":
		return 0.4
	case "lcm":
		return 0.45
	case "divisibility":
		return 0.2
	case "factorization":
		return 0.5
	}
	return 0.3
}

func (g *NumberTheory) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

func (g *NumberTheory) numCandidates(r *rand.Rand, answer int, candidates []int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))
	for _, c := range candidates {
		if c > 0 {
			set.add(engine.IntAnswer(int64(c)))
		}
	}
	offsets := []int{-2, -1, 1, 2, 3}
	for i := 0; len(set.items) < 3 && i < 20; i++ {
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

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

func nextPrime(after int) int {
	n := after + 1
	for !isPrime(n) {
		n++
	}
	return n
}

func primeFactors(n int) []int {
	var factors []int
	for d := 2; d*d <= n; d++ {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

func factorsExpression(factors []int) string {
	sorted := append([]int(nil), factors...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, " × ")
}

func numberTheoryGradeConfig(grade int) numberTheoryGrade {
	for _, gc := range numberTheoryGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return numberTheoryGrades[len(numberTheoryGrades)-1]
}
