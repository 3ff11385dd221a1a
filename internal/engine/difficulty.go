package engine

import "math"

// DifficultyCalculator scores question difficulty from mathematical
// complexity factors. Same inputs always produce the same score.
//
// The score is a weighted combination of operation complexity, operand
// magnitude, step count, and the presence of negatives, fractions and
// decimals, each clamped before combination.
type DifficultyCalculator struct {
	weights combinationWeights
}

type combinationWeights struct {
	operation float64
	magnitude float64
	steps     float64
	negative  float64
	fraction  float64
	decimal   float64
}

// operationWeights maps each operation to its intrinsic complexity.
// Unknown operations default to 0.3.
var operationWeights = map[Operation]float64{
	OpAddition:       0.1,
	OpSubtraction:    0.2,
	OpMultiplication: 0.4,
	OpDivision:       0.5,
	OpMixed:          0.6,
	OpLinear:         0.5,
	OpQuadratic:      0.8,
	OpArea:           0.3,
	OpPerimeter:      0.2,
	OpVolume:         0.5,
}

// magnitudeThresholds scales difficulty with the largest absolute operand.
var magnitudeThresholds = []struct {
	limit float64
	score float64
}{
	{10, 0.1},
	{100, 0.2},
	{1000, 0.4},
	{10000, 0.6},
	{100000, 0.8},
}

// NewDifficultyCalculator returns a calculator with the standard
// combination weights.
func NewDifficultyCalculator() *DifficultyCalculator {
	return &DifficultyCalculator{
		weights: combinationWeights{
			operation: 0.3,
			magnitude: 0.25,
			steps:     0.2,
			negative:  0.1,
			fraction:  0.1,
			decimal:   0.05,
		},
	}
}

// DifficultyInput describes the complexity factors of one question.
type DifficultyInput struct {
	Operation    Operation
	Operands     []float64
	StepCount    int
	HasNegatives bool
	HasFractions bool
	HasDecimals  bool
}

// Calculate returns the difficulty score in [0,1].
func (c *DifficultyCalculator) Calculate(in DifficultyInput) float64 {
	opDiff, ok := operationWeights[in.Operation]
	if !ok {
		opDiff = 0.3
	}

	maxOperand := 10.0
	if len(in.Operands) > 0 {
		maxOperand = 0
		for _, v := range in.Operands {
			if a := math.Abs(v); a > maxOperand {
				maxOperand = a
			}
		}
	}
	magDiff := magnitudeScore(maxOperand)

	steps := in.StepCount
	if steps < 1 {
		steps = 1
	}
	stepDiff := math.Min(1.0, float64(steps-1)*0.15)

	negDiff, fracDiff, decDiff := 0.0, 0.0, 0.0
	if in.HasNegatives {
		negDiff = 0.3
	}
	if in.HasFractions {
		fracDiff = 0.4
	}
	if in.HasDecimals {
		decDiff = 0.2
	}

	total := c.weights.operation*opDiff +
		c.weights.magnitude*magDiff +
		c.weights.steps*stepDiff +
		c.weights.negative*negDiff +
		c.weights.fraction*fracDiff +
		c.weights.decimal*decDiff

	return Clamp(total, 0, 1)
}

func magnitudeScore(value float64) float64 {
	for _, t := range magnitudeThresholds {
		if value < t.limit {
			return t.score
		}
	}
	return 1.0
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
