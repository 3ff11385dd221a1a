package generators

import (
	"testing"

	"github.com/adaptivemath/mathgen/internal/engine"
)

func TestFormatPoly(t *testing.T) {
	tests := []struct {
		coeffs []int
		want   string
	}{
		{[]int{-1, 2, 3}, "3x² + 2x - 1"},
		{[]int{0, 0, 1}, "x²"},
		{[]int{0, -1}, "-x"},
		{[]int{5}, "5"},
		{nil, "0"},
		{[]int{0, 0, 0}, "0"},
		{[]int{1, 0, 0, 2}, "2x^3 + 1"},
		{[]int{0, 1, -1}, "-x² + x"},
	}
	for _, tt := range tests {
		if got := formatPoly(tt.coeffs); got != tt.want {
			t.Errorf("formatPoly(%v) = %q, want %q", tt.coeffs, got, tt.want)
		}
	}
}

func TestSignedTerm(t *testing.T) {
	if got := signedTerm(3); got != "+ 3" {
		t.Errorf("signedTerm(3) = %q", got)
	}
	if got := signedTerm(-4); got != "- 4" {
		t.Errorf("signedTerm(-4) = %q", got)
	}
	if got := binomial(-2); got != "(x - 2)" {
		t.Errorf("binomial(-2) = %q", got)
	}
}

func TestPolynomialAddSubtractLeadingCoefficients(t *testing.T) {
	g := NewPolynomials()
	for seed := int64(1); seed <= 20; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.5, Operation: engine.OpPolynomialAdd, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		p1 := q.Parameters.Ints("p1")
		p2 := q.Parameters.Ints("p2")
		if p1[len(p1)-1] < 1 || p2[len(p2)-1] < 1 {
			t.Errorf("seed %d: leading coefficients %d and %d, want >= 1",
				seed, p1[len(p1)-1], p2[len(p2)-1])
		}
	}
}

func TestPolynomialDivisionIsExact(t *testing.T) {
	g := NewPolynomials()
	for seed := int64(1); seed <= 20; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.5, Operation: engine.OpPolynomialDivision, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		if q.Parameters.String("type") != "divide" {
			t.Fatalf("problem type %q, want divide", q.Parameters.String("type"))
		}
		p := q.Parameters.Int("p")
		q2 := q.Parameters.Int("q")
		if p == 0 || q2 == 0 {
			t.Errorf("seed %d: zero root (p=%d, q=%d)", seed, p, q2)
		}
		if p == q2 {
			t.Errorf("seed %d: repeated root %d makes the quotient ambiguous with the divisor", seed, p)
		}
	}
}

func TestPolynomialFactoringVariants(t *testing.T) {
	g := NewPolynomials()
	seen := map[string]bool{}
	for seed := int64(1); seed <= 60; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.9, Operation: engine.OpFactoring, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		typ := q.Parameters.String("type")
		seen[typ] = true

		switch typ {
		case "factor_trinomial":
			p := q.Parameters.Int("p")
			qq := q.Parameters.Int("q")
			if p == 0 || qq == 0 {
				t.Errorf("seed %d: trinomial root is zero", seed)
			}
		case "factor_common":
			if gcf := q.Parameters.Int("gcf"); gcf < 2 {
				t.Errorf("seed %d: gcf %d, want >= 2", seed, gcf)
			}
		case "factor_diff_squares":
			if a := q.Parameters.Int("a"); a < 1 {
				t.Errorf("seed %d: coefficient %d, want >= 1", seed, a)
			}
		default:
			t.Errorf("seed %d: unexpected factoring type %q", seed, typ)
		}
	}
	for _, typ := range []string{"factor_common", "factor_trinomial", "factor_diff_squares"} {
		if !seen[typ] {
			t.Errorf("factoring variant %q never generated across 60 seeds", typ)
		}
	}
}

func TestPolynomialMultiplyFOIL(t *testing.T) {
	g := NewPolynomials()
	for seed := int64(1); seed <= 20; seed++ {
		s := seed
		q, err := g.Generate(engine.Request{Difficulty: 0.5, Operation: engine.OpPolynomialMultiply, Seed: &s})
		if err != nil {
			t.Fatal(err)
		}
		a := q.Parameters.Int("a")
		b := q.Parameters.Int("b")
		c := q.Parameters.Int("c")
		d := q.Parameters.Int("d")
		want := formatPoly([]int{b * d, a*d + b*c, a * c})
		if q.CorrectAnswer.Value != want {
			t.Errorf("seed %d: answer %q, want expansion %q", seed, q.CorrectAnswer.Value, want)
		}
	}
}

func TestPolynomialsGradeConfig(t *testing.T) {
	if got := polynomialsGradeConfig(7).grade; got != 8 {
		t.Errorf("grade 7 config resolved to %d, want 8", got)
	}
	if got := polynomialsGradeConfig(12).grade; got != 11 {
		t.Errorf("grade 12 config resolved to %d, want 11", got)
	}
}
