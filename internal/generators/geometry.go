package generators

import (
	"fmt"
	"math/rand"

	"github.com/adaptivemath/mathgen/internal/engine"
)

// Geometry generates area, perimeter, circumference, volume, surface area,
// and Pythagorean theorem questions. Circle and solid-of-revolution answers
// use π = 3.14 rounded to two decimals; right triangles come from scaled
// Pythagorean triples so every side is an integer.
type Geometry struct {
	base
}

// NewGeometry returns the geometry generator.
func NewGeometry() *Geometry {
	return &Geometry{base: newBase()}
}

type shape string

const (
	shapeSquare    shape = "square"
	shapeRectangle shape = "rectangle"
	shapeTriangle  shape = "triangle"
	shapeCircle    shape = "circle"
	shapeParallel  shape = "parallelogram"
	shapeTrapezoid shape = "trapezoid"
	shapeCube      shape = "cube"
	shapePrism     shape = "rectangular_prism"
	shapeCylinder  shape = "cylinder"
	shapeSphere    shape = "sphere"
	shapeCone      shape = "cone"
)

type geometryGrade struct {
	grade    int
	shapes2D []shape
	shapes3D []shape
	ops      []engine.Operation
	maxDim   int
}

var geometryGrades = []geometryGrade{
	{3, []shape{shapeSquare, shapeRectangle}, nil,
		[]engine.Operation{engine.OpArea, engine.OpPerimeter}, 20},
	{4, []shape{shapeSquare, shapeRectangle, shapeTriangle}, []shape{shapeCube},
		[]engine.Operation{engine.OpArea, engine.OpPerimeter, engine.OpVolume}, 30},
	{5, []shape{shapeSquare, shapeRectangle, shapeTriangle, shapeParallel}, []shape{shapeCube, shapePrism},
		[]engine.Operation{engine.OpArea, engine.OpPerimeter, engine.OpVolume}, 50},
	{6, []shape{shapeSquare, shapeRectangle, shapeTriangle, shapeParallel, shapeCircle}, []shape{shapeCube, shapePrism, shapeCylinder},
		[]engine.Operation{engine.OpArea, engine.OpPerimeter, engine.OpVolume, engine.OpCircumference}, 50},
	{7, []shape{shapeSquare, shapeRectangle, shapeTriangle, shapeParallel, shapeTrapezoid, shapeCircle}, []shape{shapeCube, shapePrism, shapeCylinder, shapeCone},
		[]engine.Operation{engine.OpArea, engine.OpPerimeter, engine.OpVolume, engine.OpCircumference, engine.OpPythagorean}, 100},
	{8, []shape{shapeSquare, shapeRectangle, shapeTriangle, shapeParallel, shapeTrapezoid, shapeCircle}, []shape{shapeCube, shapePrism, shapeCylinder, shapeCone, shapeSphere},
		[]engine.Operation{engine.OpArea, engine.OpPerimeter, engine.OpVolume, engine.OpSurfaceArea, engine.OpCircumference, engine.OpPythagorean}, 100},
}

var geometryBands = []engine.GradeBand{
	{UpTo: 0.15, Grade: 3},
	{UpTo: 0.3, Grade: 4},
	{UpTo: 0.45, Grade: 5},
	{UpTo: 0.6, Grade: 6},
	{UpTo: 0.8, Grade: 7},
	{UpTo: 1.1, Grade: 8},
}

// pythagoreanTriples are the clean right triangles, including scaled
// multiples of 3-4-5.
var pythagoreanTriples = [][3]int{
	{3, 4, 5}, {5, 12, 13}, {8, 15, 17}, {7, 24, 25},
	{6, 8, 10}, {9, 12, 15}, {12, 16, 20}, {15, 20, 25},
}

// pi is the classroom approximation used throughout.
const pi = 3.14

func (g *Geometry) QuestionType() engine.QuestionType { return engine.TypeGeometry }

func (g *Geometry) SupportedOperations() []engine.Operation {
	return []engine.Operation{
		engine.OpArea, engine.OpPerimeter, engine.OpVolume,
		engine.OpSurfaceArea, engine.OpCircumference, engine.OpPythagorean,
	}
}

func (g *Geometry) Generate(req engine.Request) (*engine.GeneratedQuestion, error) {
	r := engine.NewRand(req.Seed)

	grade := req.GradeLevel
	if grade == 0 {
		grade = engine.GradeForDifficulty(geometryBands, req.Difficulty)
	}
	cfg := geometryGradeConfig(grade)

	op := req.Operation
	if op == "" {
		op = cfg.ops[r.Intn(len(cfg.ops))]
	} else if !containsOp(cfg.ops, op) {
		for _, gc := range geometryGrades {
			if gc.grade > cfg.grade && containsOp(gc.ops, op) {
				cfg = gc
				break
			}
		}
		if !containsOp(cfg.ops, op) {
			return nil, fmt.Errorf("geometry: unsupported operation %q", op)
		}
	}

	switch op {
	case engine.OpArea:
		return g.area(r, req.Difficulty, cfg), nil
	case engine.OpPerimeter:
		return g.perimeter(r, req.Difficulty, cfg), nil
	case engine.OpCircumference:
		return g.circumference(r, req.Difficulty, cfg), nil
	case engine.OpVolume:
		return g.volume(r, req.Difficulty, cfg), nil
	case engine.OpSurfaceArea:
		return g.surfaceArea(r, req.Difficulty, cfg), nil
	case engine.OpPythagorean:
		return g.pythagorean(r, req.Difficulty, cfg), nil
	}
	return nil, fmt.Errorf("geometry: unsupported operation %q", op)
}

func (g *Geometry) area(r *rand.Rand, difficulty float64, cfg geometryGrade) *engine.GeneratedQuestion {
	sh := cfg.shapes2D[r.Intn(len(cfg.shapes2D))]
	scaledMax := engine.ScaledMax(cfg.maxDim, difficulty, 3)

	var area float64
	var expression, formula string
	params := engine.Params{"shape": string(sh), "operation": "area", "grade_level": cfg.grade}

	switch sh {
	case shapeRectangle:
		length := engine.RandRange(r, 3, scaledMax)
		width := 2
		if length > 2 {
			width = engine.RandRange(r, 2, length-1)
		}
		area = float64(length * width)
		expression = fmt.Sprintf("Find the area of a rectangle with length %d units and width %d units.", length, width)
		formula = fmt.Sprintf(`Area = l \times w = %d \times %d`, length, width)
		params["length"], params["width"] = length, width

	case shapeTriangle:
		b := engine.RandRange(r, 3, scaledMax)
		h := engine.RandRange(r, 2, scaledMax)
		if b*h%2 == 1 {
			b++
		}
		area = float64(b * h / 2)
		expression = fmt.Sprintf("Find the area of a triangle with base %d units and height %d units.", b, h)
		formula = fmt.Sprintf(`Area = \frac{1}{2} \times b \times h = \frac{1}{2} \times %d \times %d`, b, h)
		params["base"], params["height"] = b, h

	case shapeParallel:
		b := engine.RandRange(r, 3, scaledMax)
		h := engine.RandRange(r, 2, scaledMax)
		area = float64(b * h)
		expression = fmt.Sprintf("Find the area of a parallelogram with base %d units and height %d units.", b, h)
		formula = fmt.Sprintf(`Area = b \times h = %d \times %d`, b, h)
		params["base"], params["height"] = b, h

	case shapeTrapezoid:
		a := engine.RandRange(r, 3, scaledMax)
		b := engine.RandRange(r, 2, scaledMax)
		h := engine.RandRange(r, 2, maxInt(2, scaledMax/2))
		if (a+b)*h%2 == 1 {
			h++
		}
		area = float64((a + b) * h / 2)
		expression = fmt.Sprintf("Find the area of a trapezoid with parallel sides %d and %d units, and height %d units.", a, b, h)
		formula = fmt.Sprintf(`Area = \frac{1}{2}(a + b) \times h = \frac{1}{2}(%d + %d) \times %d`, a, b, h)
		params["a"], params["b"], params["height"] = a, b, h

	case shapeCircle:
		radius := engine.RandRange(r, 2, minInt(20, scaledMax))
		area = engine.Round2(pi * float64(radius) * float64(radius))
		expression = fmt.Sprintf("Find the area of a circle with radius %d units. (Use π = 3.14)", radius)
		formula = fmt.Sprintf(`Area = \pi r^2 = 3.14 \times %d^2`, radius)
		params["radius"] = radius

	default: // square
		sh = shapeSquare
		params["shape"] = string(sh)
		side := engine.RandRange(r, 2, scaledMax)
		area = float64(side * side)
		expression = fmt.Sprintf("Find the area of a square with side length %d units.", side)
		formula = fmt.Sprintf(`Area = s^2 = %d^2`, side)
		params["side"] = side
	}

	params["answer"] = area
	return g.build(r, "geometry_area_"+string(sh), engine.OpArea, expression, formula,
		numericAnswer(area), g.geometryDistractors(area, sh, "area", params),
		geometryDifficulty(sh, "area"), params)
}

func (g *Geometry) perimeter(r *rand.Rand, difficulty float64, cfg geometryGrade) *engine.GeneratedQuestion {
	pool := make([]shape, 0, len(cfg.shapes2D))
	for _, s := range cfg.shapes2D {
		if s != shapeCircle && s != shapeParallel && s != shapeTrapezoid {
			pool = append(pool, s)
		}
	}
	sh := pool[r.Intn(len(pool))]
	scaledMax := engine.ScaledMax(cfg.maxDim, difficulty, 3)

	var perimeter int
	var expression, formula string
	params := engine.Params{"shape": string(sh), "operation": "perimeter", "grade_level": cfg.grade}

	switch sh {
	case shapeRectangle:
		length := engine.RandRange(r, 3, scaledMax)
		width := 2
		if length > 2 {
			width = engine.RandRange(r, 2, length-1)
		}
		perimeter = 2 * (length + width)
		expression = fmt.Sprintf("Find the perimeter of a rectangle with length %d units and width %d units.", length, width)
		formula = fmt.Sprintf(`Perimeter = 2(l + w) = 2(%d + %d)`, length, width)
		params["length"], params["width"] = length, width

	case shapeTriangle:
		a := engine.RandRange(r, 3, scaledMax)
		b := engine.RandRange(r, 3, scaledMax)
		// Triangle inequality keeps the sides realizable.
		c := engine.RandRange(r, absInt(a-b)+1, a+b-1)
		perimeter = a + b + c
		expression = fmt.Sprintf("Find the perimeter of a triangle with sides %d, %d, and %d units.", a, b, c)
		formula = fmt.Sprintf(`Perimeter = a + b + c = %d + %d + %d`, a, b, c)
		params["a"], params["b"], params["c"] = a, b, c

	default: // square
		side := engine.RandRange(r, 2, scaledMax)
		perimeter = 4 * side
		expression = fmt.Sprintf("Find the perimeter of a square with side length %d units.", side)
		formula = fmt.Sprintf(`Perimeter = 4s = 4 \times %d`, side)
		params["side"] = side
	}

	params["answer"] = perimeter
	ans := float64(perimeter)
	return g.build(r, "geometry_perimeter_"+string(sh), engine.OpPerimeter, expression, formula,
		engine.IntAnswer(int64(perimeter)), g.geometryDistractors(ans, sh, "perimeter", params),
		geometryDifficulty(sh, "perimeter"), params)
}

func (g *Geometry) circumference(r *rand.Rand, difficulty float64, cfg geometryGrade) *engine.GeneratedQuestion {
	scaledMax := engine.ScaledMax(cfg.maxDim, difficulty, 3)
	radius := engine.RandRange(r, 2, minInt(20, scaledMax))

	var circ float64
	var expression, formula string
	params := engine.Params{"shape": string(shapeCircle), "operation": "circumference", "grade_level": cfg.grade}

	if r.Intn(2) == 0 {
		diameter := radius * 2
		circ = engine.Round2(pi * float64(diameter))
		expression = fmt.Sprintf("Find the circumference of a circle with diameter %d units. (Use π = 3.14)", diameter)
		formula = fmt.Sprintf(`C = \pi d = 3.14 \times %d`, diameter)
		params["diameter"] = diameter
	} else {
		circ = engine.Round2(2 * pi * float64(radius))
		expression = fmt.Sprintf("Find the circumference of a circle with radius %d units. (Use π = 3.14)", radius)
		formula = fmt.Sprintf(`C = 2\pi r = 2 \times 3.14 \times %d`, radius)
		params["radius"] = radius
	}

	params["answer"] = circ
	score := engine.Clamp(0.4+0.2*difficulty, 0, 1)
	return g.build(r, "geometry_circumference", engine.OpCircumference, expression, formula,
		engine.DecimalAnswer(circ), g.geometryDistractors(circ, shapeCircle, "circumference", params),
		score, params)
}

func (g *Geometry) volume(r *rand.Rand, difficulty float64, cfg geometryGrade) *engine.GeneratedQuestion {
	pool := cfg.shapes3D
	if len(pool) == 0 {
		pool = []shape{shapeCube}
	}
	sh := pool[r.Intn(len(pool))]
	scaledMax := engine.ScaledMax(cfg.maxDim, difficulty, 3)

	var volume float64
	var expression, formula string
	params := engine.Params{"shape": string(sh), "operation": "volume", "grade_level": cfg.grade}

	switch sh {
	case shapePrism:
		length := engine.RandRange(r, 2, minInt(15, scaledMax))
		width := engine.RandRange(r, 2, minInt(10, scaledMax))
		height := engine.RandRange(r, 2, minInt(10, scaledMax))
		volume = float64(length * width * height)
		expression = fmt.Sprintf("Find the volume of a rectangular prism with length %d, width %d, and height %d units.", length, width, height)
		formula = fmt.Sprintf(`V = l \times w \times h = %d \times %d \times %d`, length, width, height)
		params["length"], params["width"], params["height"] = length, width, height

	case shapeCylinder:
		radius := engine.RandRange(r, 2, minInt(10, scaledMax))
		height := engine.RandRange(r, 3, minInt(15, scaledMax))
		volume = engine.Round2(pi * float64(radius*radius*height))
		expression = fmt.Sprintf("Find the volume of a cylinder with radius %d and height %d units. (Use π = 3.14)", radius, height)
		formula = fmt.Sprintf(`V = \pi r^2 h = 3.14 \times %d^2 \times %d`, radius, height)
		params["radius"], params["height"] = radius, height

	case shapeCone:
		radius := engine.RandRange(r, 2, minInt(10, scaledMax))
		height := engine.RandRange(r, 3, minInt(15, scaledMax))
		volume = engine.Round2(pi * float64(radius*radius*height) / 3)
		expression = fmt.Sprintf("Find the volume of a cone with radius %d and height %d units. (Use π = 3.14)", radius, height)
		formula = fmt.Sprintf(`V = \frac{1}{3}\pi r^2 h = \frac{1}{3} \times 3.14 \times %d^2 \times %d`, radius, height)
		params["radius"], params["height"] = radius, height

	case shapeSphere:
		radius := engine.RandRange(r, 2, minInt(8, scaledMax))
		volume = engine.Round2(4.0 / 3.0 * pi * float64(radius*radius*radius))
		expression = fmt.Sprintf("Find the volume of a sphere with radius %d units. (Use π = 3.14)", radius)
		formula = fmt.Sprintf(`V = \frac{4}{3}\pi r^3 = \frac{4}{3} \times 3.14 \times %d^3`, radius)
		params["radius"] = radius

	default: // cube
		sh = shapeCube
		params["shape"] = string(sh)
		side := engine.RandRange(r, 2, minInt(15, scaledMax))
		volume = float64(side * side * side)
		expression = fmt.Sprintf("Find the volume of a cube with side length %d units.", side)
		formula = fmt.Sprintf(`V = s^3 = %d^3`, side)
		params["side"] = side
	}

	params["answer"] = volume
	return g.build(r, "geometry_volume_"+string(sh), engine.OpVolume, expression, formula,
		numericAnswer(volume), g.geometryDistractors(volume, sh, "volume", params),
		geometryDifficulty(sh, "volume"), params)
}

func (g *Geometry) surfaceArea(r *rand.Rand, difficulty float64, cfg geometryGrade) *engine.GeneratedQuestion {
	sh := shapeCube
	for _, s := range cfg.shapes3D {
		if s == shapePrism && r.Intn(2) == 0 {
			sh = shapePrism
		}
	}
	scaledMax := engine.ScaledMax(cfg.maxDim, difficulty, 3)

	var sa int
	var expression, formula string
	params := engine.Params{"shape": string(sh), "operation": "surface_area", "grade_level": cfg.grade}

	if sh == shapePrism {
		l := engine.RandRange(r, 2, minInt(10, scaledMax))
		w := engine.RandRange(r, 2, minInt(8, scaledMax))
		h := engine.RandRange(r, 2, minInt(8, scaledMax))
		sa = 2 * (l*w + w*h + l*h)
		expression = fmt.Sprintf("Find the surface area of a rectangular prism with length %d, width %d, and height %d units.", l, w, h)
		formula = fmt.Sprintf(`SA = 2(lw + wh + lh) = 2(%d\times%d + %d\times%d + %d\times%d)`, l, w, w, h, l, h)
		params["length"], params["width"], params["height"] = l, w, h
	} else {
		side := engine.RandRange(r, 2, minInt(12, scaledMax))
		sa = 6 * side * side
		expression = fmt.Sprintf("Find the surface area of a cube with side length %d units.", side)
		formula = fmt.Sprintf(`SA = 6s^2 = 6 \times %d^2`, side)
		params["side"] = side
	}

	params["answer"] = sa
	score := engine.Clamp(0.5+0.25*difficulty, 0, 1)
	return g.build(r, "geometry_surface_area_"+string(sh), engine.OpSurfaceArea, expression, formula,
		engine.IntAnswer(int64(sa)), g.geometryDistractors(float64(sa), sh, "surface_area", params),
		score, params)
}

func (g *Geometry) pythagorean(r *rand.Rand, difficulty float64, cfg geometryGrade) *engine.GeneratedQuestion {
	triple := pythagoreanTriples[r.Intn(len(pythagoreanTriples))]
	scale := 1
	if difficulty >= 0.5 {
		scale = engine.RandRange(r, 1, 3)
	}
	a, b, c := triple[0]*scale, triple[1]*scale, triple[2]*scale

	var answer int
	var expression, formula, findType string
	params := engine.Params{"operation": "pythagorean", "grade_level": cfg.grade}

	if r.Intn(2) == 0 {
		findType = "hypotenuse"
		answer = c
		expression = fmt.Sprintf("A right triangle has legs of length %d and %d. Find the length of the hypotenuse.", a, b)
		formula = fmt.Sprintf(`c = \sqrt{a^2 + b^2} = \sqrt{%d^2 + %d^2}`, a, b)
	} else {
		findType = "leg"
		answer = a
		expression = fmt.Sprintf("A right triangle has one leg of length %d and hypotenuse of length %d. Find the length of the other leg.", b, c)
		formula = fmt.Sprintf(`a = \sqrt{c^2 - b^2} = \sqrt{%d^2 - %d^2}`, c, b)
	}

	params["find_type"] = findType
	params["a"], params["b"], params["c"] = a, b, c
	params["answer"] = answer

	score := engine.Clamp(0.5+0.2*difficulty, 0, 1)
	return g.build(r, "geometry_pythagorean", engine.OpPythagorean, expression, formula,
		engine.IntAnswer(int64(answer)), g.pythagoreanDistractors(answer, a, b, c),
		score, params)
}

func (g *Geometry) ComputeAnswer(params engine.Params) (engine.Answer, error) {
	sh := shape(params.String("shape"))
	switch params.String("operation") {
	case "area":
		switch sh {
		case shapeSquare:
			s := params.Int("side")
			return engine.IntAnswer(int64(s * s)), nil
		case shapeRectangle:
			return engine.IntAnswer(int64(params.Int("length") * params.Int("width"))), nil
		case shapeTriangle:
			return engine.IntAnswer(int64(params.Int("base") * params.Int("height") / 2)), nil
		case shapeParallel:
			return engine.IntAnswer(int64(params.Int("base") * params.Int("height"))), nil
		case shapeTrapezoid:
			return engine.IntAnswer(int64((params.Int("a") + params.Int("b")) * params.Int("height") / 2)), nil
		case shapeCircle:
			rad := float64(params.Int("radius"))
			return numericAnswer(engine.Round2(pi * rad * rad)), nil
		}
	case "perimeter":
		switch sh {
		case shapeSquare:
			return engine.IntAnswer(int64(4 * params.Int("side"))), nil
		case shapeRectangle:
			return engine.IntAnswer(int64(2 * (params.Int("length") + params.Int("width")))), nil
		case shapeTriangle:
			return engine.IntAnswer(int64(params.Int("a") + params.Int("b") + params.Int("c"))), nil
		}
	case "circumference":
		if d := params.Int("diameter"); d != 0 {
			return engine.DecimalAnswer(engine.Round2(pi * float64(d))), nil
		}
		return engine.DecimalAnswer(engine.Round2(2 * pi * float64(params.Int("radius")))), nil
	case "volume":
		switch sh {
		case shapeCube:
			s := int64(params.Int("side"))
			return engine.IntAnswer(s * s * s), nil
		case shapePrism:
			return engine.IntAnswer(int64(params.Int("length") * params.Int("width") * params.Int("height"))), nil
		case shapeCylinder:
			rad := float64(params.Int("radius"))
			return numericAnswer(engine.Round2(pi * rad * rad * float64(params.Int("height")))), nil
		case shapeCone:
			rad := float64(params.Int("radius"))
			return numericAnswer(engine.Round2(pi * rad * rad * float64(params.Int("height")) / 3)), nil
		case shapeSphere:
			rad := float64(params.Int("radius"))
			return numericAnswer(engine.Round2(4.0 / 3.0 * pi * rad * rad * rad)), nil
		}
	case "surface_area":
		switch sh {
		case shapeCube:
			s := int64(params.Int("side"))
			return engine.IntAnswer(6 * s * s), nil
		case shapePrism:
			l, w, h := int64(params.Int("length")), int64(params.Int("width")), int64(params.Int("height"))
			return engine.IntAnswer(2 * (l*w + w*h + l*h)), nil
		}
	case "pythagorean":
		if params.String("find_type") == "hypotenuse" {
			return engine.IntAnswer(int64(params.Int("c"))), nil
		}
		return engine.IntAnswer(int64(params.Int("a"))), nil
	}
	return engine.Answer{}, fmt.Errorf("geometry: cannot compute answer for %q/%q", params.String("operation"), sh)
}

func (g *Geometry) Distractors(correct engine.Answer, params engine.Params, count int) []engine.Answer {
	var out []engine.Answer
	if params.String("operation") == "pythagorean" {
		out = g.pythagoreanDistractors(int(correct.Int()), params.Int("a"), params.Int("b"), params.Int("c"))
	} else {
		out = g.geometryDistractors(correct.Float(), shape(params.String("shape")), params.String("operation"), params)
	}
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (g *Geometry) Difficulty(params engine.Params) float64 {
	return geometryDifficulty(shape(params.String("shape")), params.String("operation"))
}

func (g *Geometry) build(r *rand.Rand, templateID string, op engine.Operation, expression, formula string, correct engine.Answer, distractors []engine.Answer, score float64, params engine.Params) *engine.GeneratedQuestion {
	return &engine.GeneratedQuestion{
		QuestionID:      g.newID(),
		TemplateID:      templateID,
		QuestionType:    g.QuestionType(),
		Operation:       op,
		Expression:      expression,
		ExpressionLaTeX: "$" + formula + "$",
		CorrectAnswer:   correct,
		Distractors:     distractors,
		AllOptions:      engine.ShuffleAnswers(r, correct, distractors),
		DifficultyScore: score,
		DifficultyTier:  engine.TierFor(score),
		Parameters:      params,
		CreatedAt:       now(),
	}
}

var shapeDifficulty = map[shape]float64{
	shapeSquare:    0.0,
	shapeRectangle: 0.1,
	shapeTriangle:  0.2,
	shapeParallel:  0.25,
	shapeCircle:    0.3,
	shapeTrapezoid: 0.35,
	shapeCube:      0.3,
	shapePrism:     0.4,
	shapeCylinder:  0.5,
	shapeCone:      0.55,
	shapeSphere:    0.6,
}

var geometryOpDifficulty = map[string]float64{
	"perimeter":     0.0,
	"area":          0.1,
	"circumference": 0.2,
	"volume":        0.25,
	"surface_area":  0.35,
	"pythagorean":   0.4,
}

func geometryDifficulty(sh shape, op string) float64 {
	difficulty := 0.2
	if d, ok := shapeDifficulty[sh]; ok {
		difficulty += d
	} else {
		difficulty += 0.2
	}
	if d, ok := geometryOpDifficulty[op]; ok {
		difficulty += d
	} else {
		difficulty += 0.1
	}
	return engine.Clamp(difficulty, 0, 1)
}

// geometryDistractors mixes the operation confusions (perimeter for area,
// forgot the halving, squared instead of cubed) with generic offsets.
func (g *Geometry) geometryDistractors(answer float64, sh shape, op string, params engine.Params) []engine.Answer {
	set := newAnswerSet(numericAnswer(answer))

	switch {
	case op == "area" && sh == shapeRectangle:
		set.add(numericAnswer(float64(2 * (params.Int("length") + params.Int("width")))))
	case op == "perimeter" && sh == shapeRectangle:
		set.add(numericAnswer(float64(params.Int("length") * params.Int("width"))))
	case op == "area" && sh == shapeTriangle:
		set.add(numericAnswer(float64(params.Int("base") * params.Int("height"))))
	case op == "volume" && sh == shapeCube:
		s := params.Int("side")
		set.add(numericAnswer(float64(s * s)))
	}

	set.add(numericAnswer(answer + 5))
	if answer > 5 {
		set.add(numericAnswer(answer - 5))
	}
	set.add(numericAnswer(answer * 2))
	if answer > 10 {
		set.add(numericAnswer(engine.Round2(answer / 2)))
	}

	return set.take(3)
}

func (g *Geometry) pythagoreanDistractors(answer, a, b, c int) []engine.Answer {
	set := newAnswerSet(engine.IntAnswer(int64(answer)))

	set.add(engine.IntAnswer(int64(a + b)))
	set.add(engine.IntAnswer(int64(absInt(c - b))))
	set.add(engine.IntAnswer(int64(absInt(c - a))))
	set.add(engine.IntAnswer(int64(answer + 1)))
	set.add(engine.IntAnswer(int64(answer - 1)))

	return set.take(3)
}

func geometryGradeConfig(grade int) geometryGrade {
	for _, gc := range geometryGrades {
		if gc.grade >= grade {
			return gc
		}
	}
	return geometryGrades[len(geometryGrades)-1]
}

func containsOp(ops []engine.Operation, op engine.Operation) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
