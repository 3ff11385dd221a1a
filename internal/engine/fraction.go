package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Fraction is an exact rational value. The zero value is 0/1.
// Fractions are kept with a positive denominator but are not automatically
// reduced; call Reduce where lowest terms matter.
type Fraction struct {
	Num int64
	Den int64
}

// NewFraction builds a fraction, normalizing the sign onto the numerator.
// A zero denominator is coerced to 1 so a malformed caller can never divide
// by zero downstream.
func NewFraction(num, den int64) Fraction {
	if den == 0 {
		den = 1
	}
	if den < 0 {
		num, den = -num, -den
	}
	return Fraction{Num: num, Den: den}
}

// ParseFraction parses "a/b" or a bare integer "a".
func ParseFraction(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Fraction{}, fmt.Errorf("invalid fraction %q", s)
		}
		return Fraction{Num: n, Den: 1}, nil
	}
	parts := strings.SplitN(s, "/", 2)
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid numerator in %q", s)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid denominator in %q", s)
	}
	if den == 0 {
		return Fraction{}, fmt.Errorf("zero denominator in %q", s)
	}
	return NewFraction(num, den), nil
}

// Reduce returns the fraction in lowest terms.
func (f Fraction) Reduce() Fraction {
	g := GCD(abs64(f.Num), abs64(f.Den))
	if g == 0 {
		return Fraction{Num: 0, Den: 1}
	}
	return Fraction{Num: f.Num / g, Den: f.Den / g}
}

// Add returns f + g exactly.
func (f Fraction) Add(g Fraction) Fraction {
	return NewFraction(f.Num*g.Den+g.Num*f.Den, f.Den*g.Den).Reduce()
}

// Sub returns f - g exactly.
func (f Fraction) Sub(g Fraction) Fraction {
	return NewFraction(f.Num*g.Den-g.Num*f.Den, f.Den*g.Den).Reduce()
}

// Mul returns f * g exactly.
func (f Fraction) Mul(g Fraction) Fraction {
	return NewFraction(f.Num*g.Num, f.Den*g.Den).Reduce()
}

// Div returns f / g exactly. Division by a zero fraction returns f
// unchanged; generators guard against zero operands before calling.
func (f Fraction) Div(g Fraction) Fraction {
	if g.Num == 0 {
		return f
	}
	return NewFraction(f.Num*g.Den, f.Den*g.Num).Reduce()
}

// Equal reports exact equality of the reduced values.
func (f Fraction) Equal(g Fraction) bool {
	return f.Num*g.Den == g.Num*f.Den
}

// Float returns the decimal value.
func (f Fraction) Float() float64 {
	return float64(f.Num) / float64(f.Den)
}

// IsInteger reports whether the reduced value is a whole number.
func (f Fraction) IsInteger() bool {
	r := f.Reduce()
	return r.Den == 1
}

// String renders "n/d", or just "n" for whole values.
func (f Fraction) String() string {
	r := f.Reduce()
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// LaTeX renders \frac{n}{d}, or just "n" for whole values.
func (f Fraction) LaTeX() string {
	r := f.Reduce()
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	if r.Num < 0 {
		return fmt.Sprintf(`-\frac{%d}{%d}`, -r.Num, r.Den)
	}
	return fmt.Sprintf(`\frac{%d}{%d}`, r.Num, r.Den)
}

// GCD returns the greatest common divisor of two non-negative integers.
func GCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of two positive integers.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / GCD(a, b) * b
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
