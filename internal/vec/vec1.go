package vec

import (
	"errors"
	"strconv"
)

// ErrDivisionByZero возвращается Div, когда компонента делителя равна нулю
var ErrDivisionByZero = errors.New("vec1: division by zero")

// Vec1 представляет одномерный вектор с одной компонентой float32.
// Допустимо любое значение IEEE-754, включая NaN и бесконечности.
type Vec1 struct {
	X float32
}

// NewVec1 создает вектор с заданной компонентой
func NewVec1(x float32) Vec1 {
	return Vec1{X: x}
}

// Zero возвращает Vec1(0)
func Zero() Vec1 { return Vec1{X: 0} }

// One возвращает Vec1(1)
func One() Vec1 { return Vec1{X: 1} }

// Forward возвращает Vec1(1)
func Forward() Vec1 { return Vec1{X: 1} }

// Back возвращает Vec1(1), а не Vec1(-1), и совпадает с Forward.
func Back() Vec1 { return Vec1{X: 1} }

// Magnitude возвращает длину вектора (модуль компоненты)
func (v Vec1) Magnitude() float32 {
	if v.X < 0 {
		return 0 - v.X
	}
	return v.X
}

// SqrMagnitude возвращает квадрат длины
func (v Vec1) SqrMagnitude() float32 {
	return v.X * v.X
}

// Normalized возвращает Zero для нулевого вектора и One для любого другого.
// Знак исходной компоненты отбрасывается.
func (v Vec1) Normalized() Vec1 {
	if v.X == 0 {
		return Zero()
	}
	return One()
}

// Normalize приводит вектор к единичной длине на месте
func (v *Vec1) Normalize() {
	*v = v.Normalized()
}

// Set заменяет компоненту вектора
func (v *Vec1) Set(x float32) {
	v.X = x
}

// Angle возвращает угол между векторами в градусах: 180 для строго
// противоположных знаков, иначе 0.
func Angle(from, to Vec1) float32 {
	if (from.X > 0 && to.X < 0) || (from.X < 0 && to.X > 0) {
		return 180
	}
	return 0
}

// ClampMagnitude ограничивает длину вектора значением maxLength.
// Отрицательный maxLength берется по модулю. Ограниченный результат
// имеет знак, противоположный исходному.
func ClampMagnitude(v Vec1, maxLength float32) Vec1 {
	if maxLength < 0 {
		maxLength = 0 - maxLength
	}
	if v.Magnitude() > maxLength {
		if v.X < 0 {
			return Vec1{X: maxLength}
		}
		return Vec1{X: -maxLength}
	}
	return v
}

// Max возвращает больший из векторов; при равенстве возвращается rhs
func Max(lhs, rhs Vec1) Vec1 {
	if lhs.X > rhs.X {
		return lhs
	}
	return rhs
}

// Min возвращает меньший из векторов; при равенстве возвращается rhs
func Min(lhs, rhs Vec1) Vec1 {
	if lhs.X < rhs.X {
		return lhs
	}
	return rhs
}

// Add складывает два вектора
func (v Vec1) Add(other Vec1) Vec1 {
	return Vec1{X: v.X + other.X}
}

// Sub вычитает вектор
func (v Vec1) Sub(other Vec1) Vec1 {
	return Vec1{X: v.X - other.X}
}

// Neg возвращает противоположный вектор
func (v Vec1) Neg() Vec1 {
	return Vec1{X: 0 - v.X}
}

// Mul перемножает компоненты
func (v Vec1) Mul(other Vec1) Vec1 {
	return Vec1{X: v.X * other.X}
}

// Div делит компоненты. Нулевой делитель дает ErrDivisionByZero независимо от делимого.
func (v Vec1) Div(other Vec1) (Vec1, error) {
	if other.X == 0 {
		return Vec1{}, ErrDivisionByZero
	}
	return Vec1{X: v.X / other.X}, nil
}

// Equals проверяет равенство компонент
func (v Vec1) Equals(other Vec1) bool {
	return v.X == other.X
}

// String возвращает представление вида "(x)"
func (v Vec1) String() string {
	return "(" + formatComponent(float64(v.X), 32) + ")"
}

// Vec1FromFloat32 создает вектор из float32
func Vec1FromFloat32(f float32) Vec1 {
	return Vec1{X: f}
}

// Float32 возвращает компоненту
func (v Vec1) Float32() float32 {
	return v.X
}

// Vec1FromFloat64 создает вектор из float64 с усечением точности до float32
func Vec1FromFloat64(f float64) Vec1 {
	return Vec1{X: float32(f)}
}

// Float64 возвращает компоненту как float64
func (v Vec1) Float64() float64 {
	return float64(v.X)
}

// Vec1FromInt создает вектор из целого числа
func Vec1FromInt(n int) Vec1 {
	return Vec1{X: float32(n)}
}

// Int отбрасывает дробную часть компоненты (округление к нулю).
// Для NaN и значений вне диапазона int результат зависит от платформы.
func (v Vec1) Int() int {
	return int(v.X)
}

// ToVec2Float расширяет вектор до двух компонент, Y = 0
func (v Vec1) ToVec2Float() Vec2Float {
	return Vec2Float{X: float64(v.X)}
}

// ToVec3Float расширяет вектор до трех компонент, Y = Z = 0
func (v Vec1) ToVec3Float() Vec3Float {
	return Vec3Float{X: float64(v.X)}
}

// ToVec4Float расширяет вектор до четырех компонент
func (v Vec1) ToVec4Float() Vec4Float {
	return Vec4Float{X: float64(v.X)}
}

func formatComponent(f float64, bitSize int) string {
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
