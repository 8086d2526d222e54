package vmath

import "math"

// Vec2 is a float64 2D vector in world units, +Y is up
type Vec2 struct {
	X, Y float64
}

// Size is a width/height footprint in world units
type Size struct {
	Width  float64 `yaml:"width" env:"WIDTH"`
	Height float64 `yaml:"height" env:"HEIGHT"`
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2Normalize returns the unit vector of v, zero vector stays zero
func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// V2Dist returns the euclidean distance between two points
func V2Dist(a, b Vec2) float64 {
	return V2Mag(V2Sub(a, b))
}

// Direction returns the unit vector for an angle in degrees
// Angle 0 points up (+Y); positive angles rotate counter-clockwise
func Direction(degrees int) Vec2 {
	rad := float64(degrees) * math.Pi / 180
	return Vec2{X: -math.Sin(rad), Y: math.Cos(rad)}
}

// Corners returns the four half-extent offsets of a footprint
// Order: top left, top right, bottom left, bottom right
func Corners(s Size) [4]Vec2 {
	hw, hh := s.Width/2, s.Height/2
	return [4]Vec2{
		{-hw, +hh},
		{+hw, +hh},
		{-hw, -hh},
		{+hw, -hh},
	}
}
