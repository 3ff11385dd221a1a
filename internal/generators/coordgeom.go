package generators

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// CoordGeometry generates distance, midpoint, slope, and line equation
// questions in the coordinate plane. Simple distance problems shift a
// Pythagorean triple so the answer stays an integer; the general form keeps
// irrational distances symbolic as √n.
type CoordGeometry struct {
	base
}

// NewCoordGeometry returns the coordinate geometry generator.
func NewCoordGeometry() *CoordGeometry {
	return &CoordGeometry{base: newBase()}
}

type coordGrade struct {
	grade    int
	maxCoord int
	types    []string
}

var coordGrades = []coordGrade{
	{7, 10, []string{"midpoint", "distance_simple"}},
	{8, 15, []string{"midpoint", "distance", "slope"}},
	{9, 20, []string{"midpoint", "distance", "slope", "line_equation"}},
	{10, 25, []string{"distance", "slope", "line_equation"}},
	{11, 30, []string{"distance", "slope", "line_equation", "parallel_perpendicular"}},
}

var coordBands = []engine.GradeBand{
	{UpTo: 0.2, Grade: 7},
	{UpTo: 0.4, Grade: 8},
	{UpTo: 0.6, Grade: 9},
	{UpTo: 0.8, Grade: 10},
	{UpTo: 1.1, Grade: 11},
}

func (g *CoordGeometry) QuestionType() engine.QuestionType { return engine.TypeCoordGeometry }

func (g *CoordGeometry) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpDistance, engine.OpMidpoint,
		engine.OpSlope, engine.OpLineEquation,
	}
}

func (g *CoordGeometry) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(coordBands, req.Difficulty)
	}
	cfg := coordGradeConfig(grade)

	var problemType string
	switch req.Operation {
	case "":
		problemType = cfg.types[r.Intn(len(cfg.types))]
	case engine.OpDistance:
		if containsString(cfg.types, "distance") {
			problemType = "distance"
		} else {
			problemType = "distance_simple"
		}
	case engine.OpMidpoint:
		problemType = "midpoint"
	case engine.OpSlope:
		if containsString(cfg.types, "parallel_perpendicular") && r.Intn(2) == 1 {
			problemType = "parallel_perpendicular"
		} else {
			problemType = "slope"
		}
	case engine.OpLineEquation:
		problemType = "line_equation"
	default:
		return nil, fmt.Errorf("coordinate geometry: unsupported operation %q", req.Operation)
	}

	switch problemType {
	case "distance_simple":
		return g.distanceSimple(r, req.Difficulty, cfg), nil
	case "distance":
		return g.distance(r, req.Difficulty, cfg), nil
	case "slope":
		return g.slope(r, req.Difficulty, cfg), nil
	case "line_equation":
		return g.lineEquation(r, req.Difficulty, cfg), nil
	case "parallel_perpendicular":
		return g.parallelPerpendicular(r, req.Difficulty, cfg), nil
	default:
		return g.midpoint(r, req.Difficulty, cfg), nil
	}
}

func point(x, y int) string {
	return fmt.Sprintf("(%d, %d)", x, y)
}

func (g *CoordGeometry) distanceSimple(r *rand.Rand, difficulty float64, cfg coordGrade) *engine.GeneratedQuestion {
	triples := [][3]int{{3, 4, 5}, {5, 12, 13}, {6, 8, 10}, {8, 15, 17}}
	var t [3]int
	if difficulty < 0.5 {
		t = triples[r.Intn(2)]
	} else {
		t = triples[r.Intn(len(triples))]
	}
	dx, dy, dist := t[0], t[1], t[2]

	x1 := engine.RandRange(r, 0, 5)
	y1 := engine.RandRange(r, 0, 5)
	x2, y2 := x1+dx, y1+dy

	expression := fmt.Sprintf("Find the distance between %s and %s", point(x1, y1), point(x2, y2))
	latex := fmt.Sprintf(`$d = \sqrt{(%d-%d)^2 + (%d-%d)^2}$`, x2, x1, y2, y1)

	distractors := g.coordCandidates(r, dist, []int{dx, dy, dx + dy, absInt(dist - 1), dist + 1})

	score := engine.Clamp(0.25+0.15*difficulty, 0, 1)

	return g.build(r, "coord_distance_simple", engine.OpDistance,
		expression, latex,
		engine.IntAnswer(int64(dist)), distractors, score, engine.Params{
			"x1": x1, "y1": y1, "x2": x2, "y2": y2,
			"type": "distance_simple", "grade_level": cfg.grade,
		})
}

func (g *CoordGeometry) distance(r *rand.Rand, difficulty float64, cfg coordGrade) *engine.GeneratedQuestion {
	maxC := engine.ScaledMax(cfg.maxCoord, difficulty, 5)
	x1 := engine.RandRange(r, -maxC, maxC)
	y1 := engine.RandRange(r, -maxC, maxC)
	x2 := engine.RandRange(r, -maxC, maxC)
	y2 := engine.RandRange(r, -maxC, maxC)
	for x1 == x2 && y1 == y2 {
		x2 = engine.RandRange(r, -maxC, maxC)
	}

	distSq := (x2-x1)*(x2-x1) + (y2-y1)*(y2-y1)
	correct := distanceAnswer(distSq)

	expression := fmt.Sprintf("Find the distance between %s and %s", point(x1, y1), point(x2, y2))
	latex := fmt.Sprintf(`$d = \sqrt{(%d-%d)^2 + (%d-%d)^2}$`, x2, x1, y2, y1)

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(fmt.Sprintf("√%d", distSq+1)))
	set.add(engine.ExpressionAnswer(fmt.Sprintf("√%d", maxInt(1, distSq-1))))
	set.add(engine.IntAnswer(int64(absInt(x2-x1) + absInt(y2-y1))))
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.ExpressionAnswer(fmt.Sprintf("√%d", distSq+engine.RandRange(r, 2, 5))))
	}

	score := engine.Clamp(0.35+0.2*difficulty, 0, 1)

	return g.build(r, "coord_distance", engine.OpDistance,
		expression, latex,
		correct, set.take(3), score, engine.Params{
			"x1": x1, "y1": y1, "x2": x2, "y2": y2,
			"type": "distance", "grade_level": cfg.grade,
		})
}

// distanceAnswer returns the exact distance for a squared distance: an
// integer when it is a perfect square, otherwise √n.
func distanceAnswer(distSq int) engine.Answer {
	root := int(math.Sqrt(float64(distSq)))
	if root*root == distSq {
		return engine.IntAnswer(int64(root))
	}
	return engine.ExpressionAnswer(fmt.Sprintf("√%d", distSq))
}

func (g *CoordGeometry) midpoint(r *rand.Rand, difficulty float64, cfg coordGrade) *engine.GeneratedQuestion {
	maxC := engine.ScaledMax(cfg.maxCoord, difficulty, 5)

	// Even deltas keep the midpoint on lattice points.
	x1 := engine.RandRange(r, -maxC, maxC)
	y1 := engine.RandRange(r, -maxC, maxC)
	x2 := x1 + 2*engine.RandRange(r, -maxC/2, maxC/2)
	y2 := y1 + 2*engine.RandRange(r, -maxC/2, maxC/2)
	for x1 == x2 && y1 == y2 {
		x2 = x1 + 2*engine.RandRange(r, 1, maxC/2)
	}

	mx, my := (x1+x2)/2, (y1+y2)/2
	correct := engine.ExpressionAnswer(point(mx, my))

	expression := fmt.Sprintf("Find the midpoint of %s and %s", point(x1, y1), point(x2, y2))
	latex := fmt.Sprintf(`$M = \left(\frac{%d+%d}{2}, \frac{%d+%d}{2}\right)$`, x1, x2, y1, y2)

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(point(mx+1, my)))
	set.add(engine.ExpressionAnswer(point(mx, my+1)))
	set.add(engine.ExpressionAnswer(point(x1+x2, y1+y2)))

	score := engine.Clamp(0.2+0.15*difficulty, 0, 1)

	return g.build(r, "coord_midpoint", engine.OpMidpoint,
		expression, latex,
		correct, set.take(3), score, engine.Params{
			"x1": x1, "y1": y1, "x2": x2, "y2": y2,
			"type": "midpoint", "grade_level": cfg.grade,
		})
}

func (g *CoordGeometry) slope(r *rand.Rand, difficulty float64, cfg coordGrade) *engine.GeneratedQuestion {
	maxC := engine.ScaledMax(cfg.maxCoord, difficulty, 5)
	x1 := engine.RandRange(r, -maxC, maxC)
	y1 := engine.RandRange(r, -maxC, maxC)
	x2 := engine.RandRange(r, -maxC, maxC)
	y2 := engine.RandRange(r, -maxC, maxC)
	for x1 == x2 {
		x2 = engine.RandRange(r, -maxC, maxC)
	}

	dy, dx := y2-y1, x2-x1
	frac := engine.NewFraction(int64(dy), int64(dx)).Reduce()
	correct := slopeAnswer(frac)

	expression := fmt.Sprintf("Find the slope of the line through %s and %s", point(x1, y1), point(x2, y2))
	latex := fmt.Sprintf(`$m = \frac{%d-%d}{%d-%d} = \frac{%d}{%d}$`, y2, y1, x2, x1, dy, dx)

	set := newAnswerSet(correct)
	if frac.IsInteger() {
		m := frac.Num
		for _, c := range []int64{-m, m + 1, m - 1, int64(dx)} {
			set.add(engine.IntAnswer(c))
		}
	} else {
		set.add(engine.FractionAnswer(engine.NewFraction(-frac.Num, frac.Den)))
		if frac.Num != 0 {
			set.add(engine.FractionAnswer(engine.NewFraction(frac.Den, frac.Num)))
		}
		set.add(engine.FractionAnswer(engine.NewFraction(frac.Num+1, frac.Den)))
	}
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.FractionAnswer(engine.NewFraction(frac.Num+int64(engine.RandRange(r, 2, 4)), frac.Den)))
	}

	score := engine.Clamp(0.3+0.2*difficulty, 0, 1)

	return g.build(r, "coord_slope", engine.OpSlope,
		expression, latex,
		correct, set.take(3), score, engine.Params{
			"x1": x1, "y1": y1, "x2": x2, "y2": y2,
			"type": "slope", "grade_level": cfg.grade,
		})
}

func slopeAnswer(frac engine.Fraction) engine.Answer {
	if frac.IsInteger() {
		return engine.IntAnswer(frac.Num)
	}
	return engine.FractionAnswer(frac)
}

func (g *CoordGeometry) lineEquation(r *rand.Rand, difficulty float64, cfg coordGrade) *engine.GeneratedQuestion {
	m := engine.RandRange(r, -5, 5)
	b := engine.RandRange(r, -10, 10)

	variants := []string{"from_slope_intercept", "from_two_points", "from_point_slope"}
	variant := variants[r.Intn(len(variants))]

	var expression string
	switch variant {
	case "from_two_points":
		x1 := engine.RandRange(r, -5, 5)
		x2 := x1 + engine.RandRange(r, 1, 3)
		expression = fmt.Sprintf("Find the equation of the line through %s and %s",
			point(x1, m*x1+b), point(x2, m*x2+b))
	case "from_point_slope":
		x1 := engine.RandRange(r, -5, 5)
		expression = fmt.Sprintf("Find the equation of the line with slope %d passing through %s",
			m, point(x1, m*x1+b))
	default:
		expression = fmt.Sprintf("Write the equation of a line with slope %d and y-intercept %d", m, b)
	}

	answer := lineEquationString(m, b)
	correct := engine.ExpressionAnswer(answer)

	set := newAnswerSet(correct)
	set.add(engine.ExpressionAnswer(lineEquationString(-m, b)))
	set.add(engine.ExpressionAnswer(lineEquationString(m, -b)))
	set.add(engine.ExpressionAnswer(lineEquationString(m+1, b)))
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.ExpressionAnswer(lineEquationString(m, b+engine.RandRange(r, 1, 4))))
	}

	score := engine.Clamp(0.4+0.25*difficulty, 0, 1)

	return g.build(r, "coord_line_equation", engine.OpLineEquation,
		expression, "",
		correct, set.take(3), score, engine.Params{
			"m": m, "b": b, "variant": variant,
			"type": "line_equation", "grade_level": cfg.grade,
		})
}

// lineEquationString renders y = mx + b in conventional form, dropping the
// slope coefficient for m = ±1 and the intercept term for b = 0.
func lineEquationString(m, b int) string {
	switch {
	case m == 0:
		return fmt.Sprintf("y = %d", b)
	case b == 0:
		switch m {
		case 1:
			return "y = x"
		case -1:
			return "y = -x"
		default:
			return fmt.Sprintf("y = %dx", m)
		}
	default:
		mx := fmt.Sprintf("%dx", m)
		if m == 1 {
			mx = "x"
		} else if m == -1 {
			mx = "-x"
		}
		return fmt.Sprintf("y = %s %s", mx, signedTerm(b))
	}
}

func (g *CoordGeometry) parallelPerpendicular(r *rand.Rand, difficulty float64, cfg coordGrade) *engine.GeneratedQuestion {
	m1 := engine.RandRange(r, -5, 5)
	for m1 == 0 {
		m1 = engine.RandRange(r, -5, 5)
	}
	b1 := engine.RandRange(r, -10, 10)

	relation := "parallel"
	if r.Intn(2) == 1 {
		relation = "perpendicular"
	}

	var correct engine.Answer
	set := newAnswerSet(engine.Answer{})
	if relation == "parallel" {
		correct = engine.IntAnswer(int64(m1))
		set = newAnswerSet(correct)
		set.add(engine.IntAnswer(int64(-m1)))
		set.add(engine.IntAnswer(int64(m1 + 1)))
		set.add(engine.FractionAnswer(engine.NewFraction(-1, int64(m1))))
	} else {
		correct = slopeAnswer(engine.NewFraction(-1, int64(m1)).Reduce())
		set = newAnswerSet(correct)
		set.add(engine.IntAnswer(int64(m1)))
		set.add(engine.IntAnswer(int64(-m1)))
		set.add(engine.IntAnswer(int64(m1 + 1)))
	}
	for i := 0; len(set.items) < 3 && i < 10; i++ {
		set.add(engine.IntAnswer(int64(m1 + engine.RandRange(r, 2, 5))))
	}

	expression := fmt.Sprintf("Find the slope of a line %s to %s", relation, lineEquationString(m1, b1))

	score := engine.Clamp(0.45+0.2*difficulty, 0, 1)

	return g.build(r, "coord_parallel_perpendicular", engine.OpSlope,
		expression, "",
		correct, set.take(3), score, engine.Params{
			"m1": m1, "b1": b1, "relation": relation,
			"type": "parallel_perpendicular", "grade_level": cfg.grade,
		})
}

func (g *CoordGeometry) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	switch params.String("type") {
	case "distance_simple", "distance":
		dx := params.Int("x2") - params.Int("x1")
		dy := params.Int("y2") - params.Int("y1")
		return distanceAnswer(dx*dx + dy*dy), nil
	case "midpoint":
		mx := (params.Int("x1") + params.Int("x2")) / 2
		my := (params.Int("y1") + params.Int("y2")) / 2
		return engine.ExpressionAnswer(point(mx, my)), nil
	case "slope":
		dy := int64(params.Int("y2") - params.Int("y1"))
		dx := int64(params.Int("x2") - params.Int("x1"))
		if dx == 0 {
			return engine.Answer{}, fmt.Errorf("coordinate geometry: vertical line has no slope")
		}
		return slopeAnswer(engine.NewFraction(dy, dx).Reduce()), nil
	case "line_equation":
		return engine.ExpressionAnswer(lineEquationString(params.Int("m"), params.Int("b"))), nil
	case "parallel_perpendicular":
		m1 := params.Int("m1")
		if m1 == 0 {
			return engine.Answer{}, fmt.Errorf("coordinate geometry: zero slope")
		}
		if params.String("relation") == "parallel" {
			return engine.IntAnswer(int64(m1)), nil
		}
		return slopeAnswer(engine.NewFraction(-1, int64(m1)).Reduce()), nil
	}
	return engine.Answer{}, fmt.Errorf("coordinate geometry: unknown problem type %q", params.String("type"))
}

func (g *CoordGeometry) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	if correct.Format == engine.FormatInteger {
		answer := int(correct.Int())
		out := g.coordCandidates(nil, answer, []int{-answer, answer + 1, answer - 1, answer * 2})
		if len(out) > count {
			out = out[:count]
		}
		return out
	}
	set := newAnswerSet(correct)
	switch params.String("type") {
	case "distance":
		dx := params.Int("x2") - params.Int("x1")
		dy := params.Int("y2") - params.Int("y1")
		distSq := dx*dx + dy*dy
		set.add(engine.ExpressionAnswer(fmt.Sprintf("√%d", distSq+1)))
		set.add(engine.ExpressionAnswer(fmt.Sprintf("√%d", maxInt(1, distSq-1))))
		set.add(engine.IntAnswer(int64(absInt(dx) + absInt(dy))))
	case "midpoint":
		mx := (params.Int("x1") + params.Int("x2")) / 2
		my := (params.Int("y1") + params.Int("y2")) / 2
		set.add(engine.ExpressionAnswer(point(mx+1, my)))
		set.add(engine.ExpressionAnswer(point(mx, my+1)))
		set.add(engine.ExpressionAnswer(point(mx-1, my)))
	case "line_equation":
		m, b := params.Int("m"), params.Int("b")
		set.add(engine.ExpressionAnswer(lineEquationString(-m, b)))
		set.add(engine.ExpressionAnswer(lineEquationString(m, -b)))
		set.add(engine.ExpressionAnswer(lineEquationString(m+1, b)))
	}
	return set.take(count)
}

func (g *CoordGeometry) Difficulty(params engine.Params) float64 {
	switch params.String("type") {
	case "distance_simple":
		return 0.3
	case "distance":
		return 0.4
	case "midpoint":
		return 0.25
	case "slope":
		return 0.4
	case "line_equation":
		return 0.55
	case "parallel_perpendicular":
		return 0.5
	}
	return 0.35
}

func (g *CoordGeometry) build(r *rand.Rand, templateID string, op engine.Operation, expression, latex string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
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

// coordCandidates keeps candidates distinct from the answer, topping up with
// small offsets. Negative values stay in, slopes can be negative. A nil rng
// falls back to fixed offsets.
func (g *CoordGeometry) coordCandidates(r *rand.Rand, answer int, candidates []int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))
	for _, c := range candidates {
		set.add(engine.IntAnswer(int64(c)))
	}
	offsets := []int{-2, -1, 1, 2, 3}
	for i := 0; len(set.items) < 3 && i < 20; i++ {
		var off int
		if r != nil {
			off = offsets[r.Intn(len(offsets))]
		} else {
			off = offsets[i%len(offsets)]
		}
		set.add(engine.IntAnswer(int64(answer + off)))
	}
	return set.take(3)
}

func coordGradeConfig(grade int) coordGrade {
	for _, gc := range coordGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return coordGrades[len(coordGrades)-1]
}
