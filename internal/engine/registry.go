package engine

import (
	"errors"
	"fmt"
)

// ErrNoGenerator is returned when a question type has no registered
// generator.
var ErrNoGenerator = errors.New("no generator registered")

// Registry maps question types to generator instances. It is populated by
// explicit Register calls at startup and read-only afterwards, so concurrent
// Get/Generate calls are safe once registration is complete.
//
// Registry is a plain constructible table rather than a process singleton:
// tests build a fresh one per case.
type Registry struct {
	generators map[QuestionType]Generator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[QuestionType]Generator)}
}

// Register stores a generator under its declared question type.
// Re-registering a type overwrites the previous generator.
func (r *Registry) Register(g Generator) {
	r.generators[g.QuestionType()] = g
}

// Get returns the generator for a question type.
func (r *Registry) Get(t QuestionType) (Generator, bool) {
	g, ok := r.generators[t]
	return g, ok
}

// Types lists all registered question types in registration-stable order
// (the canonical AllQuestionTypes order, filtered to what is registered).
func (r *Registry) Types() []QuestionType {
	out := make([]QuestionType, 0, len(r.generators))
	for _, t := range AllQuestionTypes {
		if _, ok := r.generators[t]; ok {
			out = append(out, t)
		}
	}
	// Include any custom types registered outside the canonical list.
	for t := range r.generators {
		if !containsType(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// Generate builds a question of the given type.
func (r *Registry) Generate(t QuestionType, req Request) (*GeneratedQuestion, error) {
	g, ok := r.generators[t]
	if !ok {
		return nil, fmt.Errorf("%w for type %q", ErrNoGenerator, t)
	}
	return g.Generate(req)
}

func containsType(ts []QuestionType, t QuestionType) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}
