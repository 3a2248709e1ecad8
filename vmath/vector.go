package vmath

import "math"

// Vec2 is a float64 2D vector in world units
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// Normalize returns the unit vector, zero vector for zero input
func (v Vec2) Normalize() Vec2 {
	mag := v.Len()
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// Distance returns the Euclidean distance between a and b
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// Midpoint returns the point halfway between a and b
func Midpoint(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}
