package vec

import (
	"math"
	"strings"
)

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Vec4Float представляет четырехмерный вектор с плавающими координатами
type Vec4Float struct {
	X float64
	Y float64
	Z float64
	W float64
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ToVec1 оставляет только X
func (v Vec3Float) ToVec1() Vec1 {
	return Vec1{X: float32(v.X)}
}

// Components возвращает компоненты в порядке X, Y, Z
func (v Vec3Float) Components() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func (v Vec3Float) String() string {
	return formatComponents(v.Components())
}

// Add складывает два вектора
func (v Vec4Float) Add(other Vec4Float) Vec4Float {
	return Vec4Float{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
		W: v.W + other.W,
	}
}

// Sub вычитает вектор
func (v Vec4Float) Sub(other Vec4Float) Vec4Float {
	return Vec4Float{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
		W: v.W - other.W,
	}
}

// Mul умножает вектор на скаляр
func (v Vec4Float) Mul(scalar float64) Vec4Float {
	return Vec4Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar, W: v.W * scalar}
}

// Length возвращает длину вектора
func (v Vec4Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W)
}

// ToVec1 оставляет только X
func (v Vec4Float) ToVec1() Vec1 {
	return Vec1{X: float32(v.X)}
}

// Components возвращает компоненты в порядке X, Y, Z, W
func (v Vec4Float) Components() []float64 {
	return []float64{v.X, v.Y, v.Z, v.W}
}

func (v Vec4Float) String() string {
	return formatComponents(v.Components())
}

// formatComponents форматирует компоненты как "(x, y, ...)"
func formatComponents(components []float64) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = formatComponent(c, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
