package vec

import "math"

// Vec2Float представляет 2D вектор с плавающей точкой
type Vec2Float struct {
	X, Y float64
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub вычитает вектор
func (v Vec2Float) Sub(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Y: v.Y * scalar}
}

// Length возвращает длину вектора
func (v Vec2Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// ToVec1 отбрасывает Y и сужает X до float32
func (v Vec2Float) ToVec1() Vec1 {
	return Vec1{X: float32(v.X)}
}

// Components возвращает компоненты в порядке X, Y
func (v Vec2Float) Components() []float64 {
	return []float64{v.X, v.Y}
}

func (v Vec2Float) String() string {
	return formatComponents(v.Components())
}
