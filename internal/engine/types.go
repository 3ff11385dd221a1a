// Package engine contains the deterministic question engine core: the
// question and answer value types, difficulty scoring, distractor
// strategies, grade envelopes and the generator registry.
//
// The engine separates mathematical correctness from presentation. Every
// generated question carries the exact parameters it was built from, and the
// correct answer is always recomputable from those parameters alone.
package engine

import (
	"time"
)

// QuestionType identifies a topic domain handled by one generator.
type QuestionType string

const (
	TypeArithmetic     QuestionType = "arithmetic"
	TypeFractions      QuestionType = "fractions"
	TypePercentages    QuestionType = "percentages"
	TypeAlgebra        QuestionType = "algebra"
	TypeGeometry       QuestionType = "geometry"
	TypeRatios         QuestionType = "ratios"
	TypeExponents      QuestionType = "exponents"
	TypeStatistics     QuestionType = "statistics"
	TypeNumberTheory   QuestionType = "number_theory"
	TypeSystems        QuestionType = "systems_of_equations"
	TypeInequalities   QuestionType = "inequalities"
	TypeFunctions      QuestionType = "functions"
	TypeTrigonometry   QuestionType = "trigonometry"
	TypePolynomials    QuestionType = "polynomials"
	TypeSetsAndLogic   QuestionType = "sets_and_logic"
	TypeCoordGeometry  QuestionType = "coordinate_geometry"
)

// AllQuestionTypes lists every topic in registration order.
var AllQuestionTypes = []QuestionType{
	TypeArithmetic, TypeFractions, TypePercentages, TypeAlgebra,
	TypeGeometry, TypeRatios, TypeExponents, TypeStatistics,
	TypeNumberTheory, TypeSystems, TypeInequalities, TypeFunctions,
	TypeTrigonometry, TypePolynomials, TypeSetsAndLogic, TypeCoordGeometry,
}

// Operation is a finer-grained sub-operation tag within a topic.
type Operation string

const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
	OpMixed          Operation = "mixed"

	// Algebra
	OpLinear    Operation = "linear"
	OpQuadratic Operation = "quadratic"

	// Geometry
	OpArea          Operation = "area"
	OpPerimeter     Operation = "perimeter"
	OpVolume        Operation = "volume"
	OpSurfaceArea   Operation = "surface_area"
	OpCircumference Operation = "circumference"
	OpPythagorean   Operation = "pythagorean"

	// Percentages
	OpFindPercentage   Operation = "find_percentage"
	OpFindWhole        Operation = "find_whole"
	OpFindPercent      Operation = "find_percent"
	OpPercentageChange Operation = "percentage_change"
	OpDiscount         Operation = "discount"
	OpTax              Operation = "tax"

	// Ratios
	OpSimplifyRatio   Operation = "simplify"
	OpEquivalentRatio Operation = "equivalent"
	OpProportion      Operation = "solve_proportion"
	OpRatioWordProblem Operation = "word_problem"
	OpPartToWhole     Operation = "part_to_whole"
	OpScale           Operation = "scale"

	// Exponents & roots
	OpExponentiation      Operation = "exponentiation"
	OpSquareRoot          Operation = "square_root"
	OpCubeRoot            Operation = "cube_root"
	OpScientificNotation  Operation = "scientific_notation"

	// Statistics & probability
	OpMean        Operation = "mean"
	OpMedian      Operation = "median"
	OpMode        Operation = "mode"
	OpRange       Operation = "range"
	OpProbability Operation = "probability"
	OpCombination Operation = "combination"
	OpPermutation Operation = "permutation"

	// Number theory
	OpPrime         Operation = "prime"
	OpGCD           Operation = "gcd"
	OpLCM           Operation = "lcm"
	OpDivisibility  Operation = "divisibility"
	OpFactorization Operation = "factorization"

	// Systems of equations
	OpTwoVariable   Operation = "two_variable"
	OpThreeVariable Operation = "three_variable"

	// Inequalities
	OpLinearInequality        Operation = "linear_inequality"
	OpCompoundInequality      Operation = "compound_inequality"
	OpAbsoluteValueInequality Operation = "absolute_value_inequality"

	// Functions
	OpLinearFunction    Operation = "linear_function"
	OpQuadraticFunction Operation = "quadratic_function"
	OpDomainRange       Operation = "domain_range"
	OpComposition       Operation = "composition"
	OpInverseFunction   Operation = "inverse_function"

	// Trigonometry
	OpSine         Operation = "sine"
	OpCosine       Operation = "cosine"
	OpTangent      Operation = "tangent"
	OpTrigEquation Operation = "trig_equation"

	// Polynomials
	OpPolynomialAdd      Operation = "polynomial_add"
	OpPolynomialMultiply Operation = "polynomial_multiply"
	OpFactoring          Operation = "factoring"
	OpPolynomialDivision Operation = "polynomial_division"

	// Sets & logic
	OpSetUnion        Operation = "set_union"
	OpSetIntersection Operation = "set_intersection"
	OpSetDifference   Operation = "set_difference"
	OpVennDiagram     Operation = "venn_diagram"

	// Coordinate geometry
	OpDistance     Operation = "distance"
	OpMidpoint     Operation = "midpoint"
	OpSlope        Operation = "slope"
	OpLineEquation Operation = "line_equation"
)

// AnswerFormat describes how the canonical answer value is encoded and
// therefore how a grader must compare it.
type AnswerFormat string

const (
	FormatInteger    AnswerFormat = "integer"
	FormatDecimal    AnswerFormat = "decimal"
	FormatFraction   AnswerFormat = "fraction"
	FormatExpression AnswerFormat = "expression"
)

// DifficultyTier buckets the continuous [0,1] difficulty scale.
type DifficultyTier string

const (
	TierNovice       DifficultyTier = "novice"       // < 0.2
	TierBeginner     DifficultyTier = "beginner"     // < 0.4
	TierIntermediate DifficultyTier = "intermediate" // < 0.6
	TierAdvanced     DifficultyTier = "advanced"     // < 0.8
	TierExpert       DifficultyTier = "expert"       // <= 1.0
)

// TierFor maps a difficulty score to its tier.
func TierFor(difficulty float64) DifficultyTier {
	switch {
	case difficulty < 0.2:
		return TierNovice
	case difficulty < 0.4:
		return TierBeginner
	case difficulty < 0.6:
		return TierIntermediate
	case difficulty < 0.8:
		return TierAdvanced
	default:
		return TierExpert
	}
}

// Params holds the exact numeric inputs a question was built from.
// It is the single source of truth: ComputeAnswer over Params must always
// reproduce CorrectAnswer.
type Params map[string]any

// Int reads an integer parameter, accepting the numeric types a JSON
// round-trip can produce.
func (p Params) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Float reads a float parameter.
func (p Params) Float(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// String reads a string parameter.
func (p Params) String(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Ints reads an integer-slice parameter.
func (p Params) Ints(key string) []int {
	switch v := p[key].(type) {
	case []int:
		return v
	case []any:
		out := make([]int, 0, len(v))
		for _, e := range v {
			switch n := e.(type) {
			case int:
				out = append(out, n)
			case int64:
				out = append(out, int(n))
			case float64:
				out = append(out, int(n))
			}
		}
		return out
	}
	return nil
}

// GeneratedQuestion is a fully generated question. It is immutable once
// created and never persisted by the engine itself.
type GeneratedQuestion struct {
	QuestionID   string
	TemplateID   string
	QuestionType QuestionType
	Operation    Operation

	// Expression is the human-readable problem statement,
	// e.g. "15 + 8 = ?". ExpressionLaTeX is the typeset rendering.
	Expression      string
	ExpressionLaTeX string

	CorrectAnswer Answer
	Distractors   []Answer
	// AllOptions holds the correct answer and distractors in shuffled order
	// for multiple-choice presentation. Not a source of truth.
	AllOptions []Answer

	DifficultyScore float64
	DifficultyTier  DifficultyTier

	// Parameters are required for reproducibility and answer verification.
	Parameters Params

	CreatedAt time.Time
}

// ToMap serializes the question to a plain key/value map for transport.
// Parameters are always included so a consumer can verify the answer or
// build a step-by-step explanation.
func (q *GeneratedQuestion) ToMap() map[string]any {
	options := make([]string, len(q.AllOptions))
	for i, o := range q.AllOptions {
		options[i] = o.Value
	}
	distractors := make([]string, len(q.Distractors))
	for i, d := range q.Distractors {
		distractors[i] = d.Value
	}
	return map[string]any{
		"question_id":      q.QuestionID,
		"template_id":      q.TemplateID,
		"question_type":    string(q.QuestionType),
		"operation":        string(q.Operation),
		"expression":       q.Expression,
		"expression_latex": q.ExpressionLaTeX,
		"correct_answer":   q.CorrectAnswer.Value,
		"answer_format":    string(q.CorrectAnswer.Format),
		"distractors":      distractors,
		"options":          options,
		"difficulty_score": q.DifficultyScore,
		"difficulty_tier":  string(q.DifficultyTier),
		"parameters":       map[string]any(q.Parameters),
		"created_at":       q.CreatedAt.Format(time.RFC3339),
	}
}

// Request holds the caller-supplied knobs for one generation call.
type Request struct {
	// Difficulty is the target difficulty from 0.0 (easiest) to 1.0.
	Difficulty float64
	// Operation pins a specific sub-operation. Empty means the generator
	// picks one appropriate for the grade envelope.
	Operation Operation
	// GradeLevel pins a school grade (1-12). Zero means derive it from
	// Difficulty via the generator's grade bands.
	GradeLevel int
	// Seed makes generation fully reproducible when non-nil.
	Seed *int64
}

// Generator is the common contract every per-topic generator implements.
type Generator interface {
	// QuestionType returns the topic this generator produces.
	QuestionType() QuestionType

	// SupportedOperations returns the declared capability list.
	SupportedOperations() []Operation

	// Generate builds a question for the request. The returned question is
	// always well-formed: the answer is recomputable from Parameters and
	// no distractor equals the correct answer.
	Generate(req Request) (*GeneratedQuestion, error)

	// ComputeAnswer recomputes the correct answer from parameters. Pure and
	// deterministic; this is the single source of truth for grading.
	ComputeAnswer(params Params) (Answer, error)

	// Distractors generates plausible wrong answers for the given correct
	// answer and parameters.
	Distractors(correct Answer, params Params, count int) []Answer

	// Difficulty scores the question described by params in [0,1].
	Difficulty(params Params) float64
}
