package model

import "math"

// Vec2 — позиция на плоскости сцены (единицы мира, не пиксели).
// Value type, передаётся по значению.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// NewVec2 создаёт Vec2 с указанными координатами.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add возвращает сумму векторов.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub возвращает разность векторов.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale умножает вектор на скаляр.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt).
func (v Vec2) DistanceSquared(other Vec2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}

// Distance возвращает евклидово расстояние до другой точки.
func (v Vec2) Distance(other Vec2) float64 {
	return math.Sqrt(v.DistanceSquared(other))
}

// MoveTowards сдвигает v к target не более чем на maxDelta.
// Если target ближе maxDelta — возвращает target.
func (v Vec2) MoveTowards(target Vec2, maxDelta float64) Vec2 {
	d := target.Sub(v)
	dist := math.Sqrt(d.X*d.X + d.Y*d.Y)
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return v.Add(d.Scale(maxDelta / dist))
}
