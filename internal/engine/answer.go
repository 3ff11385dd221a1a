package engine

import (
	"math"
	"strconv"
	"strings"
)

// Answer is a canonical answer value tagged with its format. The format tag
// travels with the value so a grader always knows how to compare it:
// integers ignore leading zeros, decimals ignore trailing zeros, fractions
// compare reduced values, expressions compare case-insensitively after
// whitespace normalization.
type Answer struct {
	Format AnswerFormat
	Value  string
}

// IntAnswer builds an integer-format answer.
func IntAnswer(n int64) Answer {
	return Answer{Format: FormatInteger, Value: strconv.FormatInt(n, 10)}
}

// DecimalAnswer builds a decimal-format answer with trailing zeros stripped.
func DecimalAnswer(f float64) Answer {
	return Answer{Format: FormatDecimal, Value: FormatFloat(f)}
}

// FractionAnswer builds a fraction-format answer in lowest terms.
func FractionAnswer(f Fraction) Answer {
	return Answer{Format: FormatFraction, Value: f.Reduce().String()}
}

// ExpressionAnswer builds an expression-format answer (set notation,
// intervals, polynomial expressions and similar).
func ExpressionAnswer(s string) Answer {
	return Answer{Format: FormatExpression, Value: strings.TrimSpace(s)}
}

// Int returns the integer value of an integer-format answer.
func (a Answer) Int() int64 {
	n, _ := strconv.ParseInt(a.Value, 10, 64)
	return n
}

// Float returns the numeric value for integer, decimal or fraction answers.
func (a Answer) Float() float64 {
	switch a.Format {
	case FormatFraction:
		f, err := ParseFraction(a.Value)
		if err != nil {
			return 0
		}
		return f.Float()
	default:
		f, _ := strconv.ParseFloat(a.Value, 64)
		return f
	}
}

// String returns the canonical rendering.
func (a Answer) String() string { return a.Value }

// Equals compares two answers using the normalization rules of a's format.
func (a Answer) Equals(b Answer) bool {
	return a.Matches(b.Value)
}

// Matches reports whether the raw input string is a correct response to a.
//
// Normalization, following the format tag:
//   - integer: "007" matches "7"
//   - decimal: "3.50" matches "3.5"; integers match their decimal value
//   - fraction: "2/4" matches "1/2"; whole fractions match bare integers
//   - expression: case-insensitive after trimming, interior spaces collapsed
func (a Answer) Matches(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	switch a.Format {
	case FormatInteger:
		n, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return false
		}
		return n == a.Int()

	case FormatDecimal:
		f, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return false
		}
		want, err := strconv.ParseFloat(a.Value, 64)
		if err != nil {
			return false
		}
		return math.Abs(f-want) < 1e-9

	case FormatFraction:
		got, err := ParseFraction(input)
		if err != nil {
			return false
		}
		want, err := ParseFraction(a.Value)
		if err != nil {
			return false
		}
		return got.Equal(want)

	default:
		return normalizeExpression(input) == normalizeExpression(a.Value)
	}
}

// normalizeExpression lowercases and collapses runs of whitespace so that
// "x > 5" and "X >  5" compare equal.
func normalizeExpression(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// FormatFloat renders a float with trailing zeros stripped, e.g. 3.50 -> "3.5"
// and 4.0 -> "4".
func FormatFloat(f float64) string {
	// Round away accumulated float noise before formatting; answers in this
	// engine never need more than 4 decimal places.
	rounded := math.Round(f*10000) / 10000
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// Round2 rounds to two decimal places, the precision used for currency and
// π≈3.14 geometry answers.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
