package engine

import "testing"

func TestNewFractionNormalizesSign(t *testing.T) {
	f := NewFraction(1, -2)
	if f.Num != -1 || f.Den != 2 {
		t.Errorf("NewFraction(1, -2) = %d/%d, want -1/2", f.Num, f.Den)
	}
	f = NewFraction(-3, -4)
	if f.Num != 3 || f.Den != 4 {
		t.Errorf("NewFraction(-3, -4) = %d/%d, want 3/4", f.Num, f.Den)
	}
	f = NewFraction(5, 0)
	if f.Den != 1 {
		t.Errorf("zero denominator should coerce to 1, got %d", f.Den)
	}
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in      string
		want    Fraction
		wantErr bool
	}{
		{"1/2", Fraction{1, 2}, false},
		{" 3 / 4 ", Fraction{3, 4}, false},
		{"-2/6", Fraction{-2, 6}, false},
		{"5", Fraction{5, 1}, false},
		{"1/0", Fraction{}, true},
		{"a/b", Fraction{}, true},
		{"", Fraction{}, true},
	}
	for _, tt := range tests {
		got, err := ParseFraction(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFraction(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFraction(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFractionArithmetic(t *testing.T) {
	half := NewFraction(1, 2)
	third := NewFraction(1, 3)

	if got := half.Add(third); got != (Fraction{5, 6}) {
		t.Errorf("1/2 + 1/3 = %v, want 5/6", got)
	}
	if got := half.Sub(third); got != (Fraction{1, 6}) {
		t.Errorf("1/2 - 1/3 = %v, want 1/6", got)
	}
	if got := half.Mul(third); got != (Fraction{1, 6}) {
		t.Errorf("1/2 * 1/3 = %v, want 1/6", got)
	}
	if got := half.Div(third); got != (Fraction{3, 2}) {
		t.Errorf("1/2 / 1/3 = %v, want 3/2", got)
	}
}

func TestFractionReduceAndEqual(t *testing.T) {
	if got := NewFraction(4, 8).Reduce(); got != (Fraction{1, 2}) {
		t.Errorf("Reduce(4/8) = %v, want 1/2", got)
	}
	if got := NewFraction(0, 7).Reduce(); got != (Fraction{0, 1}) {
		t.Errorf("Reduce(0/7) = %v, want 0/1", got)
	}
	if !NewFraction(2, 4).Equal(NewFraction(1, 2)) {
		t.Error("2/4 should equal 1/2")
	}
	if NewFraction(1, 2).Equal(NewFraction(1, 3)) {
		t.Error("1/2 should not equal 1/3")
	}
}

func TestFractionString(t *testing.T) {
	tests := []struct {
		f    Fraction
		want string
	}{
		{NewFraction(1, 2), "1/2"},
		{NewFraction(4, 2), "2"},
		{NewFraction(-3, 6), "-1/2"},
		{NewFraction(0, 5), "0"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestFractionLaTeX(t *testing.T) {
	if got := NewFraction(1, 2).LaTeX(); got != `\frac{1}{2}` {
		t.Errorf("LaTeX(1/2) = %q", got)
	}
	if got := NewFraction(-1, 2).LaTeX(); got != `-\frac{1}{2}` {
		t.Errorf("LaTeX(-1/2) = %q", got)
	}
	if got := NewFraction(6, 3).LaTeX(); got != "2" {
		t.Errorf("LaTeX(6/3) = %q, want 2", got)
	}
}

func TestFractionIsInteger(t *testing.T) {
	if !NewFraction(6, 3).IsInteger() {
		t.Error("6/3 should be an integer")
	}
	if NewFraction(1, 2).IsInteger() {
		t.Error("1/2 should not be an integer")
	}
}

func TestGCDAndLCM(t *testing.T) {
	tests := []struct {
		a, b, gcd, lcm int64
	}{
		{12, 18, 6, 36},
		{7, 13, 1, 91},
		{0, 5, 5, 0},
		{10, 10, 10, 10},
	}
	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.gcd {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.gcd)
		}
		if got := LCM(tt.a, tt.b); got != tt.lcm {
			t.Errorf("LCM(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.lcm)
		}
	}
}
