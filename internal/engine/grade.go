package engine

import "math"

// GradeEnvelope declares the parameter ranges and operations one school
// grade allows for a topic. Generators hold an ordered table of envelopes,
// lowest grade first.
type GradeEnvelope struct {
	Grade          int
	MaxValue       int
	Operations     []Operation
	AllowNegatives bool
	AllowFractions bool
	AllowDecimals  bool
}

// Supports reports whether the envelope allows the operation.
func (e GradeEnvelope) Supports(op Operation) bool {
	for _, o := range e.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// GradeBand maps a contiguous difficulty range to one grade. Bands are
// checked in order; the first band whose upper bound exceeds the difficulty
// wins, and the last band catches everything else.
type GradeBand struct {
	UpTo  float64
	Grade int
}

// GradeForDifficulty resolves the discrete grade bucket for a difficulty.
func GradeForDifficulty(bands []GradeBand, difficulty float64) int {
	for _, b := range bands {
		if difficulty < b.UpTo {
			return b.Grade
		}
	}
	return bands[len(bands)-1].Grade
}

// EnvelopeForGrade finds the envelope for a grade, falling back to the
// nearest declared grade at either end of the table.
func EnvelopeForGrade(table []GradeEnvelope, grade int) GradeEnvelope {
	for _, e := range table {
		if e.Grade >= grade {
			return e
		}
	}
	return table[len(table)-1]
}

// FindSupportingGrade searches forward through the grade table for the
// lowest grade that supports the operation. When a caller explicitly
// requests an operation, correctness of intent beats difficulty fidelity:
// the effective configuration is upgraded rather than the request ignored.
func FindSupportingGrade(table []GradeEnvelope, op Operation, from int) (GradeEnvelope, bool) {
	for _, e := range table {
		if e.Grade < from {
			continue
		}
		if e.Supports(op) {
			return e, true
		}
	}
	// No grade at or above `from` supports it; search the whole table.
	for _, e := range table {
		if e.Supports(op) {
			return e, true
		}
	}
	return GradeEnvelope{}, false
}

// ScaledMax maps the continuous difficulty value to a concrete magnitude
// ceiling inside a grade's envelope:
//
//	scaled = max(floor, int(gradeMax * (0.3 + 0.7*difficulty)))
//
// The two-level scheme (discrete grade bucket, then continuous intra-bucket
// scaling) keeps low-difficulty questions from all looking identical while
// avoiding discontinuous jumps at grade boundaries.
func ScaledMax(gradeMax int, difficulty float64, floor int) int {
	scaled := int(float64(gradeMax) * (0.3 + 0.7*Clamp(difficulty, 0, 1)))
	if scaled < floor {
		return floor
	}
	return scaled
}

// ScaledRange applies ScaledMax and returns a usable [lo, hi] generation
// range with hi always at least lo+1.
func ScaledRange(lo, gradeMax int, difficulty float64) (int, int) {
	hi := ScaledMax(gradeMax, difficulty, lo+1)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// StepCount estimates solution steps from a count of operations.
func StepCount(operations int) int {
	return int(math.Max(1, float64(operations)))
}
