package generators

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Systems generates systems of linear equations with two or three unknowns.
// The solution vector is chosen first and the right-hand sides derived from
// it, and coefficient matrices are re-rolled until the determinant is
// non-zero, so every system has exactly the intended integer solution.
type Systems struct {
	base
}

// NewSystems returns the systems of equations generator.
func NewSystems() *Systems {
	return &Systems{base: newBase()}
}

type systemsGrade struct {
	grade   int
	maxCoef int
	maxSol  int
	types   []string
}

var systemsGrades = []systemsGrade{
	{7, 10, 10, []string{"two_variable_easy"}},
	{8, 15, 15, []string{"two_variable_easy", "two_variable"}},
	{9, 20, 20, []string{"two_variable", "two_variable_word"}},
	{10, 25, 25, []string{"two_variable", "two_variable_word", "three_variable"}},
	{11, 30, 30, []string{"two_variable", "three_variable"}},
}

var systemsBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 7},
	{UpTo: 0.4, Grade: 8},
	{UpTo: 0.6, Grade: 9},
	{UpTo: 0.8, Grade: 10},
	{UpTo: 1.1, Grade: 11},
}

func (g *Systems) QuestionType() engine.QuestionType { return engine.TypeSystems }

func (g *Systems) SupportedOperations() []engine.Operation {
	return []engine.Operation{engine.OpTwoVariable, engine.OpThreeVariable}
}

func (g *Systems) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(systemsBands, req.Difficulty)
	}
	cfg := systemsGradeConfig(grade)

	var problemType string
	switch req.Operation {
	case "":
		problemType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpTwoVariable:
		problemType = "two_variable"
	case engine.OpThreeVariable:
		problemType = "three_variable"
	default:
		return nil, fmt.Errorf("systems: unsupported operation %q", req.Operation)
	}

	switch problemType {
	case "two_variable_easy":
		return g.twoVarEasy(r, req.Difficulty, cfg), nil
	case "two_variable_word":
		return g.twoVarWord(r, req.Difficulty, cfg), nil
	case "three_variable":
		return g.threeVar(r, req.Difficulty, cfg), nil
	default:
		return g.twoVar(r, req.Difficulty, cfg), nil
	}
}

// twoVarEasy is the x + y = s, x - y = d pattern.
func (g *Systems) twoVarEasy(r *rand.Rand, difficulty float64, cfg systemsGrade) *engine.GeneratedQuestion {
	x := engine.RandRange(r, 1, maxInt(3, int(float64(cfg.maxSol)*difficulty)))
	y := engine.RandRange(r, 1, maxInt(3, int(float64(cfg.maxSol)*difficulty)))
	s, d := x+y, x-y

	correct := engine.ExpressionAnswer(pairSolution(x, y))
	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(pairSolution(y, x)))
	set.add(engine.ExpressionAnswer(pairSolution(x+1, y-1)))
	set.add(engine.ExpressionAnswer(pairSolution(x-1, y+1)))

	score := engine.Clamp(0.25+0.15*difficulty, 0, 1)

	return g.build(r, "systems_two_var_easy", engine.OpTwoVariable,
		fmt.Sprintf("Solve the system:\nx + y = %d\nx - y = %d", s, d),
		fmt.Sprintf(`$\begin{cases} x + y = %d \\ x - y = %d \end{cases}$`, s, d),
		correct, set.take(3), score, engine.Params{
			"x": x, "y": y,
			"type": "two_variable_easy", "grade_level": cfg.grade,
		})
}

// twoVar is the general ax + by = c, dx + ey = f pattern.
func (g *Systems) twoVar(r *rand.Rand, difficulty float64, cfg systemsGrade) *engine.GeneratedQuestion {
	solMax := maxInt(2, int(float64(cfg.maxSol)*0.5*(0.3+0.7*difficulty)))
	x := engine.RandRange(r, 1, solMax)
	y := engine.RandRange(r, 1, solMax)

	coefMax := minInt(8, cfg.maxCoef)
	a := engine.RandRange(r, 1, coefMax)
	b := engine.RandRange(r, 1, coefMax)
	d := engine.RandRange(r, 1, coefMax)
	e := engine.RandRange(r, 1, coefMax)
	for a*e-b*d == 0 {
		e = engine.RandRange(r, 1, coefMax)
	}

	c := a*x + b*y
	f := d*x + e*y

	correct := engine.ExpressionAnswer(pairSolution(x, y))
	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(pairSolution(y, x)))
	set.add(engine.ExpressionAnswer(pairSolution(x+1, y)))
	set.add(engine.ExpressionAnswer(pairSolution(x, y+1)))

	score := engine.Clamp(0.45+0.25*difficulty, 0, 1)

	return g.build(r, "systems_two_var", engine.OpTwoVariable,
		fmt.Sprintf("Solve the system:\n%dx + %dy = %d\n%dx + %dy = %d", a, b, c, d, e, f),
		fmt.Sprintf(`$\begin{cases} %dx + %dy = %d \\ %dx + %dy = %d \end{cases}$`, a, b, c, d, e, f),
		correct, set.take(3), score, engine.Params{
			"x": x, "y": y,
			"a": a, "b": b, "c": c, "d": d, "e": e, "f": f,
			"type": "two_variable", "grade_level": cfg.grade,
		})
}

func (g *Systems) twoVarWord(r *rand.Rand, difficulty float64, cfg systemsGrade) *engine.GeneratedQuestion {
	score := engine.Clamp(0.5+0.2*difficulty, 0, 1)

	if r.Intn(2) == 0 {
		x := engine.RandRange(r, 3, maxInt(5, int(float64(cfg.maxSol)*0.5*difficulty)))
		y := engine.RandRange(r, 1, x-1)

		correct := engine.ExpressionAnswer(fmt.Sprintf("%d and %d", x, y))
		set := newAnswerSet(correct)
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%d and %d", x+1, y-1)))
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%d and %d", y, x)))
		set.add(engine.ExpressionAnswer(fmt.Sprintf("%d and %d", x+y, x-y)))

		return g.build(r, "systems_word_problem", engine.OpTwoVariable,
			fmt.Sprintf("The sum of two numbers is %d. Their difference is %d. Find the two numbers.", x+y, x-y),
			"", correct, set.take(3), score, engine.Params{
				"x": x, "y": y, "context": "sum_diff",
				"type": "two_variable_word", "grade_level": cfg.grade,
			})
	}

	applePrice := engine.RandRange(r, 2, 5)
	orangePrice := engine.RandRange(r, 1, applePrice-1)
	apples := engine.RandRange(r, 2, 8)
	oranges := engine.RandRange(r, 2, 8)
	totalFruits := apples + oranges
	totalCost := apples*applePrice + oranges*orangePrice

	correct := engine.IntAnswer(int64(apples))
	set := newAnswerSet(correct)
	set.add(engine.IntAnswer(int64(oranges)))
	set.add(engine.IntAnswer(int64(apples + 1)))
	set.add(engine.IntAnswer(int64(maxInt(1, apples-1))))

	return g.build(r, "systems_word_problem", engine.OpTwoVariable,
		fmt.Sprintf("A store sells apples for %d TL each and oranges for %d TL each. You buy %d total fruits and pay %d TL. How many apples did you buy?",
			applePrice, orangePrice, totalFruits, totalCost),
		"", correct, set.take(3), score, engine.Params{
			"apples": apples, "oranges": oranges,
			"apple_price": applePrice, "orange_price": orangePrice,
			"context": "shopping",
			"type":    "two_variable_word", "grade_level": cfg.grade,
		})
}

func (g *Systems) threeVar(r *rand.Rand, difficulty float64, cfg systemsGrade) *engine.GeneratedQuestion {
	solMax := maxInt(2, int(float64(cfg.maxSol)*0.3*(0.3+0.7*difficulty)))
	x := engine.RandRange(r, 1, solMax)
	y := engine.RandRange(r, 1, solMax)
	z := engine.RandRange(r, 1, solMax)

	var m [3][3]int
	for {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				m[i][j] = engine.RandRange(r, 1, 5)
			}
		}
		if det3(m) != 0 {
			break
		}
	}

	eqs := make([]string, 3)
	rhs := make([]int, 3)
	for i := 0; i < 3; i++ {
		rhs[i] = m[i][0]*x + m[i][1]*y + m[i][2]*z
		eqs[i] = fmt.Sprintf("%dx + %dy + %dz = %d", m[i][0], m[i][1], m[i][2], rhs[i])
	}

	correct := engine.ExpressionAnswer(tripleSolution(x, y, z))
	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(tripleSolution(y, x, z)))
	set.add(engine.ExpressionAnswer(tripleSolution(x+1, y, z)))
	if z > 1 {
		set.add(engine.ExpressionAnswer(tripleSolution(x, y+1, z-1)))
	} else {
		set.add(engine.ExpressionAnswer(tripleSolution(x, y, z+1)))
	}

	score := engine.Clamp(0.7+0.2*difficulty, 0, 1)

	return g.build(r, "systems_three_var", engine.OpThreeVariable,
		"Solve the system:\n"+strings.Join(eqs, "\n"),
		fmt.Sprintf(`$\begin{cases} %s \end{cases}$`, strings.Join(eqs, ` \\ `)),
		correct, set.take(3), score, engine.Params{
			"x": x, "y": y, "z": z,
			"type": "three_variable", "grade_level": cfg.grade,
		})
}

func (g *Systems) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "three_variable":
		return engine.ExpressionAnswer(tripleSolution(params.Int("x"), params.Int("y"), params.Int("z"))), nil
	case "two_variable_word":
		if params.String("context") == "shopping" {
			return engine.IntAnswer(int64(params.Int("apples"))), nil
		}
		return engine.ExpressionAnswer(fmt.Sprintf("%d and %d", params.Int("x"), params.Int("y"))), nil
	default:
		return engine.ExpressionAnswer(pairSolution(params.Int("x"), params.Int("y"))), nil
	}
}

func (g *Systems) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	x, y := params.Int("x"), params.Int("y")
	set := newAnswerSet(correct)
	if params.String("type") == "three_variable" {
		z := params.Int("z")
		set.add(engine.ExpressionAnswer(tripleSolution(y, x, z)))
		set.add(engine.ExpressionAnswer(tripleSolution(x+1, y, z)))
		set.add(engine.ExpressionAnswer(tripleSolution(x, y, z+1)))
	} else {
		set.add(engine.ExpressionAnswer(pairSolution(y, x)))
		set.add(engine.ExpressionAnswer(pairSolution(x+1, y)))
		set.add(engine.ExpressionAnswer(pairSolution(x, y+1)))
	}
	return set.take(count)
}

func (g *Systems) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "two_variable_easy":
		return 0.3
	case "two_variable":
		return 0.5
	case "two_variable_word":
		return 0.6
	case "three_variable":
		return 0.8
	}
	return 0.5
}

func (g *Systems) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      templateID,
		QuestionType:    g.QuestionType(),
		Operation:       op,
		Expression:      expression,
		ExpressionLaTeX: latex,
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters:      params,
		CreatedAt:       now(),
	}
}

func pairSolution(x, y int) string {
	return fmt.Sprintf("x = %d, y = %d", x, y)
}

func tripleSolution(x, y, z int) string {
	return fmt.Sprintf("x = %d, y = %d, z = %d", x, y, z)
}

func det3(m [3][3]int) int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func systemsGradeConfig(grade int) systemsGrade {
	for _, gc := range systemsGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return systemsGrades[len(systemsGrades)-1]
}
