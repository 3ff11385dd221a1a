package engine

import (
	"errors"
	"testing"
)

// stubGenerator is a minimal Generator for registry tests.
type stubGenerator struct {
	qt QuestionType
}

func (s *stubGenerator) QuestionType() QuestionType { return s.qt }

func (s *stubGenerator) SupportedOperations() []Operation { return []Operation{OpAddition} }

func (s *stubGenerator) Generate(req Request) (*GeneratedQuestion, error) {
	return &GeneratedQuestion{QuestionType: s.qt, CorrectAnswer: IntAnswer(1)}, nil
}

func (s *stubGenerator) ComputeAnswer(params Params) (Answer, error) {
	return IntAnswer(1), nil
}

func (s *stubGenerator) Distractors(correct Answer, params Params, count int) []Answer {
	return nil
}

func (s *stubGenerator) Difficulty(params Params) float64 { return 0.5 }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	g := &stubGenerator{qt: TypeArithmetic}
	r.Register(g)

	got, ok := r.Get(TypeArithmetic)
	if !ok || got != g {
		t.Fatal("registered generator not returned by Get")
	}
	if _, ok := r.Get(TypeAlgebra); ok {
		t.Error("Get returned a generator for an unregistered type")
	}
}

func TestRegistryGenerate(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubGenerator{qt: TypeFractions})

	q, err := r.Generate(TypeFractions, Request{Difficulty: 0.5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.QuestionType != TypeFractions {
		t.Errorf("question type %q, want fractions", q.QuestionType)
	}
}

func TestRegistryGenerateUnknownType(t *testing.T) {
	r := NewRegistry()
	_, err := r.Generate(TypeGeometry, Request{})
	if !errors.Is(err, ErrNoGenerator) {
		t.Errorf("error = %v, want ErrNoGenerator", err)
	}
}

func TestRegistryTypesCanonicalOrder(t *testing.T) {
	r := NewRegistry()
	// Register out of canonical order.
	r.Register(&stubGenerator{qt: TypeGeometry})
	r.Register(&stubGenerator{qt: TypeArithmetic})
	r.Register(&stubGenerator{qt: TypeAlgebra})

	got := r.Types()
	want := []QuestionType{TypeArithmetic, TypeAlgebra, TypeGeometry}
	if len(got) != len(want) {
		t.Fatalf("Types() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Types()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryTypesIncludesCustom(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubGenerator{qt: QuestionType("custom_topic")})
	got := r.Types()
	if len(got) != 1 || got[0] != "custom_topic" {
		t.Errorf("Types() = %v, want [custom_topic]", got)
	}
}
