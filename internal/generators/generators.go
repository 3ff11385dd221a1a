// Package generators implements the sixteen per-topic question generators.
//
// Every generator follows the same discipline: pick the answer (or solution)
// first, then synthesize the visible operands consistent with it. Forward
// generation followed by solving is never used, so answers are always clean
// integers, exact fractions, or two-decimal values.
package generators

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// base carries the shared difficulty and distractor utilities every
// generator embeds.
type base struct {
	diff *engine.DifficultyCalculator
	dist *engine.DistractorGenerator
}

func newBase() base {
	return base{
		diff: engine.NewDifficultyCalculator(),
		dist: &engine.DistractorGenerator{},
	}
}

// newID returns an opaque short question ID.
func (base) newID() string {
	return uuid.NewString()[:8]
}

// now is stubbed in tests.
var now = time.Now

// paramSeed folds the named integer parameters into a stable seed so the
// exported Distractors methods give the same output for the same question.
func paramSeed(params engine.Params, keys ...string) int64 {
	h := int64(1099511628211)
	for _, k := range keys {
		h = h*31 + int64(params.Int(k))
	}
	return h
}

// NewRegistry returns a registry with all sixteen generators registered.
func NewRegistry() *engine.Registry {
	r := engine.NewRegistry()
	RegisterAll(r)
	return r
}

// RegisterAll registers every generator on an existing registry.
func RegisterAll(r *engine.Registry) {
	r.Register(NewArithmetic())
	r.Register(NewFractions())
	r.Register(NewPercentages())
	r.Register(NewAlgebra())
	r.Register(NewGeometry())
	r.Register(NewRatios())
	r.Register(NewExponents())
	r.Register(NewStatistics())
	r.Register(NewNumberTheory())
	r.Register(NewSystems())
	r.Register(NewInequalities())
	r.Register(NewFunctions())
	r.Register(NewTrigonometry())
	r.Register(NewPolynomials())
	r.Register(NewSetsAndLogic())
	r.Register(NewCoordGeometry())
}
