package generators

import (
	"fmt"
	"math/rand"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Trigonometry generates special-angle evaluation, right-triangle ratio,
// identity, and equation questions. All values come from the exact special
// angle table, so answers stay symbolic.
type Trigonometry struct {
	base
}

// NewTrigonometry returns the trigonometry generator.
func NewTrigonometry() *Trigonometry {
	return &Trigonometry{base: newBase()}
}

type trigValues struct {
	sin, cos, tan string
}

// specialAngles holds exact values; "undefined" marks the tangent poles.
var specialAngles = map[int]trigValues{
	0:   {"0", "1", "0"},
	30:  {"1/2", "√3/2", "√3/3"},
	45:  {"√2/2", "√2/2", "1"},
	60:  {"√3/2", "1/2", "√3"},
	90:  {"1", "0", "undefined"},
	120: {"√3/2", "-1/2", "-√3"},
	135: {"√2/2", "-√2/2", "-1"},
	150: {"1/2", "-√3/2", "-√3/3"},
	180: {"0", "-1", "0"},
	270: {"-1", "0", "undefined"},
	360: {"0", "1", "0"},
}

// specialAngleOrder keeps deterministic iteration over the table.
var specialAngleOrder = []int{0, 30, 45, 60, 90, 120, 135, 150, 180, 270, 360}

func trigValue(angle int, fn string) string {
	v := specialAngles[angle]
	switch fn {
	case "sin":
		return v.sin
	case "cos":
		return v.cos
	default:
		return v.tan
	}
}

type trigIdentity struct {
	expression  string
	answer      string
	distractors []string
	latex       string
}

var trigIdentities = []trigIdentity{
	{"sin²(θ) + cos²(θ) = ?", "1", []string{"0", "2", "sin(2θ)"}, `$\sin^2(\theta) + \cos^2(\theta)$`},
	{"If sin(θ) = 3/5, find cos(θ) (0° < θ < 90°)", "4/5", []string{"3/5", "5/3", "2/5"}, `$\cos(\theta) = ?$`},
	{"tan(θ) = sin(θ) / ?", "cos(θ)", []string{"sin(θ)", "tan(θ)", "1"}, `$\tan(\theta) = \frac{\sin(\theta)}{?}$`},
	{"sin(2θ) = ?", "2sin(θ)cos(θ)", []string{"sin²(θ)", "2sin(θ)", "sin(θ) + cos(θ)"}, `$\sin(2\theta) = ?$`},
}

type trigEquation struct {
	eq          string
	answer      string
	distractors []string
}

var trigEquations = []trigEquation{
	{"sin(x) = 1/2", "30° and 150°", []string{"60° and 120°", "45° and 135°", "30° and 330°"}},
	{"cos(x) = 1/2", "60° and 300°", []string{"30° and 330°", "120° and 240°", "60° and 120°"}},
	{"tan(x) = 1", "45° and 225°", []string{"30° and 210°", "60° and 240°", "90° and 270°"}},
	{"sin(x) = √3/2", "60° and 120°", []string{"30° and 150°", "45° and 135°", "60° and 300°"}},
	{"cos(x) = 0", "90° and 270°", []string{"0° and 180°", "45° and 225°", "60° and 300°"}},
	{"sin(x) = 0", "0° and 180°", []string{"90° and 270°", "45° and 225°", "30° and 150°"}},
}

type trigonometryGrade struct {
	grade int
	types []string
}

var trigonometryGrades = []trigonometryGrade{
	{9, []string{"special_angle", "right_triangle"}},
	{10, []string{"special_angle", "right_triangle", "identity"}},
	{11, []string{"special_angle", "right_triangle", "identity", "trig_equation"}},
	{12, []string{"special_angle", "identity", "trig_equation"}},
}

var trigonometryBands = []engine.GradeBand{
	{UpTo: 0.3, Grade: 9},
	{UpTo: 0.5, Grade: 10},
	{UpTo: 0.7, Grade: 11},
	{UpTo: 1.1, Grade: 12},
}

func (g *Trigonometry) QuestionType() engine.QuestionType { return engine.TypeTrigonometry }

func (g *Trigonometry) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpSine, engine.OpCosine, engine.OpTangent, engine.OpTrigEquation,
	}
}

func (g *Trigonometry) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(trigonometryBands, req.Difficulty)
	}
	cfg := trigonometryGradeConfig(grade)

	var problemType, pinnedFunc string
	switch req.Operation {
	case "":
		problemType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpSine:
		problemType, pinnedFunc = "special_angle", "sin"
	case engine.OpCosine:
		problemType, pinnedFunc = "special_angle", "cos"
	case engine.OpTangent:
		problemType, pinnedFunc = "special_angle", "tan"
	case engine.OpTrigEquation:
		problemType = "trig_equation"
	default:
		return nil, fmt.Errorf("trigonometry: unsupported operation %q", req.Operation)
	}

	switch problemType {
	case "right_triangle":
		return g.rightTriangle(r, req.Difficulty, cfg), nil
	case "identity":
		return g.identity(r, req.Difficulty, cfg), nil
	case "trig_equation":
		return g.equation(r, req.Difficulty, cfg), nil
	default:
		return g.specialAngle(r, req.Difficulty, cfg, pinnedFunc), nil
	}
}

func (g *Trigonometry) specialAngle(r *rand.Rand, difficulty float64, cfg trigonometryGrade, pinnedFunc string) *engine.GeneratedQuestion {
	fn := pinnedFunc
	if fn == "" {
		fn = []string{"sin", "cos", "tan"}[r.Intn(3)]
	}

	var angles []int
	if difficulty < 0.4 {
		angles = []int{0, 30, 45, 60, 90}
	} else {
		angles = specialAngleOrder
	}
	if fn == "tan" {
		filtered := make([]int, 0, len(angles))
		for _, a := range angles {
			if a != 90 && a != 270 {
				filtered = append(filtered, a)
			}
		}
		angles = filtered
	}

	angle := angles[r.Intn(len(angles))]
	answer := trigValue(angle, fn)
	correct := engine.ExpressionAnswer(answer)

	set := newAnswerSet(correct)
	for _, of := range []string{"sin", "cos", "tan"} {
		if of == fn {
			continue
		}
		if v := trigValue(angle, of); v != "undefined" {
			set.add(engine.ExpressionAnswer(v))
		}
	}
	for _, na := range specialAngleOrder {
		if na == angle || na == 90 || na == 270 {
			continue
		}
		if v := trigValue(na, fn); v != "undefined" {
			set.add(engine.ExpressionAnswer(v))
		}
		if len(set.items) >= 3 {
			break
		}
	}
	for _, filler := range []string{"-1", "2", "-1/2", "√2", "0"} {
		if len(set.items) >= 3 {
			break
		}
		set.add(engine.ExpressionAnswer(filler))
	}

	score := 0.3 + 0.1*difficulty
	if angle > 90 {
		score += 0.1
	}
	score = engine.Clamp(score, 0, 1)

	opMap := map[string]engine.Operation{"sin": engine.OpSine, "cos": engine.OpCosine, "tan": engine.OpTangent}

	return g.build(r, "trig_"+fn+"_special", opMap[fn],
		fmt.Sprintf("Find %s(%d°)", fn, angle),
		fmt.Sprintf(`$\%s(%d°)$`, fn, angle),
		correct, set.take(3), score, engine.Params{
			"func": fn, "angle": angle,
			"type": "special_angle", "grade_level": cfg.grade,
		})
}

func (g *Trigonometry) rightTriangle(r *rand.Rand, difficulty float64, cfg trigonometryGrade) *engine.GeneratedQuestion {
	triples := [][3]int{{3, 4, 5}, {5, 12, 13}, {8, 15, 17}, {7, 24, 25}, {6, 8, 10}}
	var triple [3]int
	if difficulty < 0.5 {
		triple = triples[r.Intn(2)]
	} else {
		triple = triples[r.Intn(len(triples))]
	}

	scale := engine.RandRange(r, 1, maxInt(1, int(3*difficulty)))
	a, b, c := triple[0]*scale, triple[1]*scale, triple[2]*scale

	fn := []string{"sin", "cos", "tan"}[r.Intn(3)]
	var expression string
	var answer int
	switch fn {
	case "sin":
		expression = fmt.Sprintf("In a right triangle, the hypotenuse is %d and sin(θ) = %d/%d. Find the opposite side.", c, a, c)
		answer = a
	case "cos":
		expression = fmt.Sprintf("In a right triangle, the hypotenuse is %d and cos(θ) = %d/%d. Find the adjacent side.", c, b, c)
		answer = b
	default:
		expression = fmt.Sprintf("In a right triangle, the adjacent side is %d and tan(θ) = %d/%d. Find the opposite side.", b, a, b)
		answer = a
	}

	set := newAnswerSet(engine.IntAnswer(int64(answer)))
	for _, cand := range []int{b, c, a + b, absInt(c - a), absInt(c - b)} {
		if cand > 0 {
			set.add(engine.IntAnswer(int64(cand)))
		}
	}
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		off := []int{-2, -1, 1, 2, 3}[r.Intn(5)]
		if v := answer + off; v > 0 {
			set.add(engine.IntAnswer(int64(v)))
		}
	}

	score := engine.Clamp(0.35+0.2*difficulty, 0, 1)

	return g.build(r, "trig_right_triangle", engine.OpSine,
		expression, "",
		engine.IntAnswer(int64(answer)), set.take(3), score, engine.Params{
			"a": a, "b": b, "c": c, "func": fn, "answer": answer,
			"type": "right_triangle", "grade_level": cfg.grade,
		})
}

func (g *Trigonometry) identity(r *rand.Rand, difficulty float64, cfg trigonometryGrade) *engine.GeneratedQuestion {
	pool := trigIdentities
	if difficulty < 0.5 {
		pool = trigIdentities[:2]
	}
	id := pool[r.Intn(len(pool))]

	correct := engine.ExpressionAnswer(id.answer)
	set := newAnswerSet(correct)
	for _, d := range id.distractors {
		set.add(engine.ExpressionAnswer(d))
	}

	score := engine.Clamp(0.4+0.25*difficulty, 0, 1)

	return g.build(r, "trig_identity", engine.OpTrigEquation,
		id.expression, id.latex,
		correct, set.take(3), score, engine.Params{
			"identity": id.expression, "answer": id.answer,
			"type": "identity", "grade_level": cfg.grade,
		})
}

func (g *Trigonometry) equation(r *rand.Rand, difficulty float64, cfg trigonometryGrade) *engine.GeneratedQuestion {
	pool := trigEquations
	if difficulty < 0.5 {
		pool = trigEquations[:3]
	}
	eq := pool[r.Intn(len(pool))]

	correct := engine.ExpressionAnswer(eq.answer)
	set := newAnswerSet(correct)
	for _, d := range eq.distractors {
		set.add(engine.ExpressionAnswer(d))
	}

	score := engine.Clamp(0.6+0.2*difficulty, 0, 1)

	return g.build(r, "trig_equation", engine.OpTrigEquation,
		"Solve for x (0° ≤ x < 360°): "+eq.eq, "",
		correct, set.take(3), score, engine.Params{
			"equation": eq.eq, "answer": eq.answer,
			"type": "trig_equation", "grade_level": cfg.grade,
		})
}

func (g *Trigonometry) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "special_angle":
		v := trigValue(params.Int("angle"), params.String("func"))
		if v == "undefined" {
			return engine.Answer{}, fmt.Errorf("trigonometry: %s undefined at %d°", params.String("func"), params.Int("angle"))
		}
		return engine.ExpressionAnswer(v), nil
	case "right_triangle":
		switch params.String("func") {
		case "cos":
			return engine.IntAnswer(int64(params.Int("b"))), nil
		default:
			return engine.IntAnswer(int64(params.Int("a"))), nil
		}
	case "identity", "trig_equation":
		return engine.ExpressionAnswer(params.String("answer")), nil
	}
	return engine.Answer{}, fmt.Errorf("trigonometry: unknown problem type %q", params.String("type"))
}

func (g *Trigonometry) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	set := newAnswerSet(correct)
	if params.String("type") == "special_angle" {
		fn := params.String("func")
		for _, na := range specialAngleOrder {
			if na == 90 || na == 270 {
				continue
			}
			if v := trigValue(na, fn); v != "undefined" {
				set.add(engine.ExpressionAnswer(v))
			}
		}
	} else {
		for _, filler := range []string{"-1", "2", "-1/2", "√2", "0"} {
			set.add(engine.ExpressionAnswer(filler))
		}
	}
	return set.take(count)
}

func (g *Trigonometry) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "special_angle":
		return 0.35
	case "right_triangle":
		return 0.45
	case "identity":
		return 0.55
	case "trig_equation":
		return 0.7
	}
	return 0.4
}

func (g *Trigonometry) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

func trigonometryGradeConfig(grade int) trigonometryGrade {
	for _, gc := range trigonometryGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return trigonometryGrades[len(trigonometryGrades)-1]
}
