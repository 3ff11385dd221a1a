package engine

import "testing"

func TestAnswerMatches(t *testing.T) {
	tests := []struct {
		name   string
		answer Answer
		input  string
		want   bool
	}{
		{"integer exact", IntAnswer(7), "7", true},
		{"integer leading zeros", IntAnswer(7), "007", true},
		{"integer negative", IntAnswer(-3), "-3", true},
		{"integer wrong", IntAnswer(7), "8", false},
		{"integer garbage", IntAnswer(7), "seven", false},
		{"integer empty", IntAnswer(7), "", false},
		{"integer whitespace", IntAnswer(42), "  42  ", true},

		{"decimal exact", DecimalAnswer(3.5), "3.5", true},
		{"decimal trailing zeros", DecimalAnswer(3.5), "3.50", true},
		{"decimal integer input", DecimalAnswer(4), "4", true},
		{"decimal wrong", DecimalAnswer(3.5), "3.6", false},
		{"decimal garbage", DecimalAnswer(3.5), "3.5x", false},

		{"fraction exact", FractionAnswer(NewFraction(1, 2)), "1/2", true},
		{"fraction unreduced", FractionAnswer(NewFraction(1, 2)), "2/4", true},
		{"fraction whole as integer", FractionAnswer(NewFraction(6, 3)), "2", true},
		{"fraction negative", FractionAnswer(NewFraction(-1, 2)), "-1/2", true},
		{"fraction wrong", FractionAnswer(NewFraction(1, 2)), "1/3", false},
		{"fraction zero denominator", FractionAnswer(NewFraction(1, 2)), "1/0", false},

		{"expression exact", ExpressionAnswer("x > 5"), "x > 5", true},
		{"expression case", ExpressionAnswer("x > 5"), "X > 5", true},
		{"expression spacing", ExpressionAnswer("x > 5"), "x  >   5", true},
		{"expression wrong", ExpressionAnswer("x > 5"), "x < 5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.answer.Matches(tt.input); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAnswerEquals(t *testing.T) {
	if !IntAnswer(5).Equals(IntAnswer(5)) {
		t.Error("equal integer answers should compare equal")
	}
	if !FractionAnswer(NewFraction(2, 4)).Equals(FractionAnswer(NewFraction(1, 2))) {
		t.Error("equal fractions in different terms should compare equal")
	}
	if IntAnswer(5).Equals(IntAnswer(6)) {
		t.Error("different values should not compare equal")
	}
}

func TestAnswerNumericAccessors(t *testing.T) {
	if got := IntAnswer(-12).Int(); got != -12 {
		t.Errorf("Int() = %d, want -12", got)
	}
	if got := DecimalAnswer(2.25).Float(); got != 2.25 {
		t.Errorf("Float() = %v, want 2.25", got)
	}
	if got := FractionAnswer(NewFraction(3, 4)).Float(); got != 0.75 {
		t.Errorf("fraction Float() = %v, want 0.75", got)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.5, "3.5"},
		{3.50, "3.5"},
		{4.0, "4"},
		{-2.25, "-2.25"},
		{0.1 + 0.2, "0.3"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(3.14159); got != 3.14 {
		t.Errorf("Round2(3.14159) = %v, want 3.14", got)
	}
	if got := Round2(2.005); got != 2.0 && got != 2.01 {
		t.Errorf("Round2(2.005) = %v, want a two-decimal value", got)
	}
}
