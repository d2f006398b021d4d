package calc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/annel0/vector1/internal/vec"
)

// maxExactInt - граница, до которой float64 представляет целые числа точно
const maxExactInt = 1 << 53

func init() {
	registerConstant("zero", "Vec1(0)", vec.Zero)
	registerConstant("one", "Vec1(1)", vec.One)
	registerConstant("forward", "Vec1(1)", vec.Forward)
	registerConstant("back", "Vec1(1), совпадает с one", vec.Back)

	registerUnary("new", KindVec1, "создает Vec1(x)", func(v vec.Vec1) Output {
		return vec1Output(v)
	})
	registerUnary("magnitude", KindScalar, "длина |x|", func(v vec.Vec1) Output {
		return scalarOutput(v.Magnitude())
	})
	registerUnary("sqr_magnitude", KindScalar, "квадрат длины x*x", func(v vec.Vec1) Output {
		return scalarOutput(v.SqrMagnitude())
	})
	registerUnary("normalized", KindVec1, "0 для нуля, иначе 1", func(v vec.Vec1) Output {
		return vec1Output(v.Normalized())
	})
	registerUnary("normalize", KindVec1, "нормализует вектор на месте", func(v vec.Vec1) Output {
		v.Normalize()
		return vec1Output(v)
	})
	registerUnary("neg", KindVec1, "-x", func(v vec.Vec1) Output {
		return vec1Output(v.Neg())
	})
	registerUnary("to_int", KindInt, "усечение компоненты к нулю", func(v vec.Vec1) Output {
		n := v.Int()
		return Output{Values: []Number{Number(n)}, Text: strconv.Itoa(n)}
	})
	registerUnary("to_float64", KindScalar, "компонента как float64", func(v vec.Vec1) Output {
		f := v.Float64()
		return Output{Values: []Number{Number(f)}, Text: strconv.FormatFloat(f, 'g', -1, 64)}
	})
	registerUnary("to_vec2", KindVec2, "(x, 0)", func(v vec.Vec1) Output {
		w := v.ToVec2Float()
		return vectorOutput(w.Components(), w.String())
	})
	registerUnary("to_vec3", KindVec3, "(x, 0, 0)", func(v vec.Vec1) Output {
		w := v.ToVec3Float()
		return vectorOutput(w.Components(), w.String())
	})
	registerUnary("to_vec4", KindVec4, "(x, 0, 0, 0)", func(v vec.Vec1) Output {
		w := v.ToVec4Float()
		return vectorOutput(w.Components(), w.String())
	})

	registerBinary("set", KindVec1, "заменяет компоненту a на b", func(a, b vec.Vec1) (Output, error) {
		a.Set(b.X)
		return vec1Output(a), nil
	})
	registerBinary("angle", KindScalar, "угол в градусах: 180 для противоположных знаков, иначе 0", func(a, b vec.Vec1) (Output, error) {
		return scalarOutput(vec.Angle(a, b)), nil
	})
	registerBinary("max", KindVec1, "больший из векторов, при равенстве второй", func(a, b vec.Vec1) (Output, error) {
		return vec1Output(vec.Max(a, b)), nil
	})
	registerBinary("min", KindVec1, "меньший из векторов, при равенстве второй", func(a, b vec.Vec1) (Output, error) {
		return vec1Output(vec.Min(a, b)), nil
	})
	registerBinary("add", KindVec1, "a + b", func(a, b vec.Vec1) (Output, error) {
		return vec1Output(a.Add(b)), nil
	})
	registerBinary("sub", KindVec1, "a - b", func(a, b vec.Vec1) (Output, error) {
		return vec1Output(a.Sub(b)), nil
	})
	registerBinary("mul", KindVec1, "a * b", func(a, b vec.Vec1) (Output, error) {
		return vec1Output(a.Mul(b)), nil
	})
	registerBinary("div", KindVec1, "a / b, ошибка при b == 0", func(a, b vec.Vec1) (Output, error) {
		q, err := a.Div(b)
		if err != nil {
			return Output{}, err
		}
		return vec1Output(q), nil
	})
	registerBinary("equals", KindBool, "a == b", func(a, b vec.Vec1) (Output, error) {
		return boolOutput(a.Equals(b)), nil
	})

	Register(Operation{
		Name:        "clamp_magnitude",
		Arity:       2,
		Kind:        KindVec1,
		Description: "ограничивает |x| значением max_length, ограниченный результат меняет знак",
		Apply: func(args []float64) (Output, error) {
			v := vec.Vec1FromFloat64(args[0])
			return vec1Output(vec.ClampMagnitude(v, float32(args[1]))), nil
		},
	})

	Register(Operation{
		Name:        "from_int",
		Arity:       1,
		Kind:        KindVec1,
		Description: "Vec1 из целого числа",
		Apply: func(args []float64) (Output, error) {
			n := args[0]
			if math.IsNaN(n) || math.Trunc(n) != n || math.Abs(n) > maxExactInt {
				return Output{}, fmt.Errorf("%w: from_int expects an integer, got %v", ErrInvalidArgument, n)
			}
			return vec1Output(vec.Vec1FromInt(int(n))), nil
		},
	})

	Register(Operation{
		Name:        "from_vec2",
		Arity:       2,
		Kind:        KindVec1,
		Description: "X из (x, y)",
		Apply: func(args []float64) (Output, error) {
			return vec1Output(vec.Vec2Float{X: args[0], Y: args[1]}.ToVec1()), nil
		},
	})
	Register(Operation{
		Name:        "from_vec3",
		Arity:       3,
		Kind:        KindVec1,
		Description: "X из (x, y, z)",
		Apply: func(args []float64) (Output, error) {
			return vec1Output(vec.Vec3Float{X: args[0], Y: args[1], Z: args[2]}.ToVec1()), nil
		},
	})
	Register(Operation{
		Name:        "from_vec4",
		Arity:       4,
		Kind:        KindVec1,
		Description: "X из (x, y, z, w)",
		Apply: func(args []float64) (Output, error) {
			return vec1Output(vec.Vec4Float{X: args[0], Y: args[1], Z: args[2], W: args[3]}.ToVec1()), nil
		},
	})
}

func registerConstant(name, description string, value func() vec.Vec1) {
	Register(Operation{
		Name:        name,
		Arity:       0,
		Kind:        KindVec1,
		Description: description,
		Apply: func([]float64) (Output, error) {
			return vec1Output(value()), nil
		},
	})
}

func registerUnary(name string, kind Kind, description string, fn func(vec.Vec1) Output) {
	Register(Operation{
		Name:        name,
		Arity:       1,
		Kind:        kind,
		Description: description,
		Apply: func(args []float64) (Output, error) {
			return fn(vec.Vec1FromFloat64(args[0])), nil
		},
	})
}

func registerBinary(name string, kind Kind, description string, fn func(a, b vec.Vec1) (Output, error)) {
	Register(Operation{
		Name:        name,
		Arity:       2,
		Kind:        kind,
		Description: description,
		Apply: func(args []float64) (Output, error) {
			return fn(vec.Vec1FromFloat64(args[0]), vec.Vec1FromFloat64(args[1]))
		},
	})
}

func vec1Output(v vec.Vec1) Output {
	return Output{Values: []Number{numberFromFloat32(v.X)}, Text: v.String()}
}

func scalarOutput(f float32) Output {
	return Output{
		Values: []Number{numberFromFloat32(f)},
		Text:   strconv.FormatFloat(float64(f), 'g', -1, 32),
	}
}

func boolOutput(b bool) Output {
	if b {
		return Output{Values: []Number{1}, Text: "true"}
	}
	return Output{Values: []Number{0}, Text: "false"}
}

func vectorOutput(components []float64, text string) Output {
	values := make([]Number, len(components))
	for i, c := range components {
		values[i] = Number(c)
	}
	return Output{Values: values, Text: text}
}
