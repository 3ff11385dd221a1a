package generators

import (
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestTrigSpecialAngleValues(t *testing.T) {
	tests := []struct {
		angle int
		fn    string
		want  string
	}{
		{0, "sin", "0"},
		{30, "sin", "1/2"},
		{45, "cos", "√2/2"},
		{60, "tan", "√3"},
		{90, "sin", "1"},
		{90, "tan", "undefined"},
		{180, "cos", "-1"},
		{270, "tan", "undefined"},
		{360, "cos", "1"},
	}
	for _, tt := range tests {
		if got := trigValue(tt.angle, tt.fn); got != tt.want {
			t.Errorf("trigValue(%d, %s) = %q, want %q", tt.angle, tt.fn, got, tt.want)
		}
	}
}

func TestTrigPinnedFunctions(t *testing.T) {
	g := NewTrigonometry()
	pins := []struct {
		op engine.Operation
		fn string
	}{
		{engine.OpSine, "sin"},
		{engine.OpCosine, "cos"},
		{engine.OpTangent, "tan"},
	}
	for _, pin := range pins {
		for seed := int64(1); seed <= 15; seed++ {
			s := seed
			q, err := g.Generate(engine.Request{Difficulty: 0.8, Operation: pin.op, Seed: &s})
			if err != nil {
				t.Fatalf("%s: %v", pin.op, err)
			}
			if q.Parameters.String("type") != "special_angle" {
				t.Fatalf("%s: problem type %q, want special_angle", pin.op, q.Parameters.String("type"))
			}
			if got := q.Parameters.String("func"); got != pin.fn {
				t.Errorf("%s: func %q, want %q", pin.op, got, pin.fn)
			}
			if q.CorrectAnswer.Value == "undefined" {
				t.Errorf("%s: undefined value leaked as an answer (angle %d)", pin.op, q.Parameters.Int("angle"))
			}
			if pin.fn == "tan" {
				angle := q.Parameters.Int("angle")
				if angle == 90 || angle == 270 {
					t.Errorf("tangent generated at pole angle %d", angle)
				}
			}
		}
	}
}

func TestTrigLowDifficultyStaysInFirstQuadrant(t *testing.T) {
	g := NewTrigonometry()
	for seed := int64(1); seed <= 25; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.2, Operation: engine.OpSine, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if angle := q.Parameters.Int("angle"); angle > 90 {
			t.Errorf("seed %d: angle %d above 90 at low difficulty", seed, angle)
		}
	}
}

func TestTrigEquationPinned(t *testing.T) {
	g := NewTrigonometry()
	easy := map[string]bool{}
	for _, eq := range trigEquations[:3] {
		easy[eq.eq] = true
	}

	for seed := int64(1); seed <= 15; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.3, Operation: engine.OpTrigEquation, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if q.Parameters.String("type") != "trig_equation" {
			t.Fatalf("problem type %q, want trig_equation", q.Parameters.String("type"))
		}
		if !easy[q.Parameters.String("equation")] {
			t.Errorf("seed %d: equation %q outside the low-difficulty pool", seed, q.Parameters.String("equation"))
		}
	}
}

func TestTrigRightTriangleUsesPythagoreanTriples(t *testing.T) {
	g := NewTrigonometry()
	found := false
	for seed := int64(1); seed <= 40; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.5, GradeLevel: 9, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if q.Parameters.String("type") != "right_triangle" {
			continue
		}
		found = true
		a := q.Parameters.Int("a")
		b := q.Parameters.Int("b")
		c := q.Parameters.Int("c")
		if a*a+b*b != c*c {
			t.Errorf("seed %d: sides %d, %d, %d are not a right triangle", seed, a, b, c)
		}
	}
	if !found {
		t.Error("no right-triangle question generated across 40 seeds")
	}
}

func TestTrigComputeAnswerRejectsTangentPole(t *testing.T) {
	g := NewTrigonometry()
	_, err := g.ComputeAnswer(engine.Params{"type": "special_angle", "func": "tan", "angle": 90})
	if err == nil {
		t.Error("expected an error for tan(90°)")
	}
}
