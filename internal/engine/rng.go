package engine

import (
	"math/rand"
	"time"
)

// NewRand returns the random source for one generation call. A non-nil seed
// makes the call fully reproducible: the same seed and request parameters
// produce a byte-identical question.
func NewRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// RandRange returns a uniform integer in [lo, hi] inclusive. A degenerate
// range collapses to lo.
func RandRange(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// ShuffleAnswers returns the correct answer and distractors in random order.
func ShuffleAnswers(r *rand.Rand, correct Answer, distractors []Answer) []Answer {
	options := make([]Answer, 0, len(distractors)+1)
	options = append(options, correct)
	options = append(options, distractors...)
	r.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
