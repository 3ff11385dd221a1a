package engine

import (
	"math"
	"math/rand"
)

// DistractorGenerator produces plausible wrong answers modeled on common
// student errors: sign errors, off-by-one, decimal-place mistakes, using
// the wrong operation, and near-miss values.
//
// Generators with domain-specific misconceptions (e.g. "added numerators
// and denominators separately") should encode those directly and use this
// only as a fallback or top-up.
type DistractorGenerator struct{}

// DistractorInput configures one generation run.
type DistractorInput struct {
	Correct float64
	Count   int
	// Operation and Operands enable the operation-confusion strategy when
	// at least two operands are present.
	Operation Operation
	Operands  []float64
	// Integer forces candidates to be rounded to whole values.
	Integer bool
	// Exclude lists values that must not appear (the correct answer is
	// always excluded).
	Exclude []float64
}

// Generate returns up to Count distinct wrong values. Strategies are tried
// in a fixed order, then the set is topped up with random near-miss values.
func (g *DistractorGenerator) Generate(r *rand.Rand, in DistractorInput) []float64 {
	count := in.Count
	if count <= 0 {
		count = 3
	}

	exclude := map[float64]bool{in.Correct: true}
	for _, v := range in.Exclude {
		exclude[v] = true
	}

	var out []float64
	add := func(v float64, ok bool) {
		if !ok || len(out) >= count {
			return
		}
		if in.Integer {
			v = math.Round(v)
		}
		if !exclude[v] {
			out = append(out, v)
			exclude[v] = true
		}
	}

	add(signError(in.Correct))
	add(in.Correct+1, true)
	add(offByOneMinus(in.Correct))
	add(magnitudeError(in.Correct))
	if len(in.Operands) >= 2 && in.Operation != "" {
		add(operationConfusion(in.Operation, in.Operands[0], in.Operands[1]))
	}

	// Top up with near-miss values.
	for attempts := 0; len(out) < count && attempts < count*10; attempts++ {
		add(randomClose(r, in.Correct), true)
	}

	return out
}

// signError models forgetting to negate. Skipped for zero.
func signError(answer float64) (float64, bool) {
	if answer == 0 {
		return 0, false
	}
	return -answer, true
}

// offByOneMinus models an off-by-one undercount, bumping upward instead
// when the result would go negative on a positive-domain answer.
func offByOneMinus(answer float64) (float64, bool) {
	result := answer - 1
	if result < 0 && answer > 0 {
		return answer + 2, true
	}
	return result, true
}

// magnitudeError models a decimal-place mistake.
func magnitudeError(answer float64) (float64, bool) {
	if answer == 0 {
		return 0, false
	}
	if math.Abs(answer) < 10 {
		return answer * 10, true
	}
	return math.Trunc(answer / 10), true
}

// operationConfusion recomputes with a plausibly-confused operation.
func operationConfusion(op Operation, a, b float64) (float64, bool) {
	switch op {
	case OpAddition:
		return a - b, true
	case OpSubtraction:
		return a + b, true
	case OpMultiplication:
		return a + b, true
	case OpDivision:
		if b < 20 {
			return a * b, true
		}
		return a - b, true
	}
	return 0, false
}

// randomClose produces a value near the answer, scaled to its magnitude,
// never crossing zero for positive answers.
func randomClose(r *rand.Rand, answer float64) float64 {
	if answer == 0 {
		choices := []float64{-2, -1, 1, 2, 3}
		return choices[r.Intn(len(choices))]
	}

	magnitude := math.Abs(answer)
	var delta float64
	switch {
	case magnitude < 10:
		delta = float64(RandRange(r, 2, 5))
	case magnitude < 100:
		delta = float64(RandRange(r, 5, 15))
	case magnitude < 1000:
		delta = float64(RandRange(r, 10, 50))
	default:
		delta = math.Trunc(magnitude * (0.05 + r.Float64()*0.10))
	}

	sign := 1.0
	if r.Intn(2) == 0 {
		sign = -1.0
	}
	result := answer + sign*delta

	if answer > 0 && result <= 0 {
		result = answer + delta
	}
	return result
}

// IntDistractors is a convenience wrapper producing integer Answers.
func (g *DistractorGenerator) IntDistractors(r *rand.Rand, correct int64, count int, op Operation, operands ...float64) []Answer {
	values := g.Generate(r, DistractorInput{
		Correct:   float64(correct),
		Count:     count,
		Operation: op,
		Operands:  operands,
		Integer:   true,
	})
	out := make([]Answer, len(values))
	for i, v := range values {
		out[i] = IntAnswer(int64(v))
	}
	return out
}
