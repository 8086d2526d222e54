package vmath

import "math"

// rayEpsilon treats near-parallel ray components as parallel
const rayEpsilon = 1e-12

// Rect is an axis-aligned rectangle, Min is bottom-left and Max is top-right
type Rect struct {
	Min, Max Vec2
}

// RectAround builds a rectangle of the given size centered on c
func RectAround(c Vec2, s Size) Rect {
	hw, hh := s.Width/2, s.Height/2
	return Rect{
		Min: Vec2{c.X - hw, c.Y - hh},
		Max: Vec2{c.X + hw, c.Y + hh},
	}
}

// Center returns the center point of the rectangle
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Size returns the rectangle extents
func (r Rect) Size() Size {
	return Size{Width: r.Max.X - r.Min.X, Height: r.Max.Y - r.Min.Y}
}

// Contains checks if p lies within the rectangle, edges inclusive
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps checks if two rectangles share any area
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Inset shrinks the rectangle by d on every side, collapsing to the center if too small
func (r Rect) Inset(d float64) Rect {
	out := Rect{
		Min: Vec2{r.Min.X + d, r.Min.Y + d},
		Max: Vec2{r.Max.X - d, r.Max.Y - d},
	}
	c := r.Center()
	if out.Min.X > out.Max.X {
		out.Min.X, out.Max.X = c.X, c.X
	}
	if out.Min.Y > out.Max.Y {
		out.Min.Y, out.Max.Y = c.Y, c.Y
	}
	return out
}

// Clamp returns the point of r closest to p
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: math.Max(r.Min.X, math.Min(r.Max.X, p.X)),
		Y: math.Max(r.Min.Y, math.Min(r.Max.Y, p.Y)),
	}
}

// RayHit intersects the segment origin + t*dir, t in [0, maxDist], with the rectangle
// dir must be a unit vector; a ray starting inside the rectangle hits at t = 0
// Slab method, returns the entry distance
func (r Rect) RayHit(origin, dir Vec2, maxDist float64) (float64, bool) {
	if maxDist < 0 {
		return 0, false
	}
	if r.Contains(origin) {
		return 0, true
	}

	tMin, tMax := 0.0, maxDist
	axes := [2][4]float64{
		{origin.X, dir.X, r.Min.X, r.Max.X},
		{origin.Y, dir.Y, r.Min.Y, r.Max.Y},
	}
	for _, a := range axes {
		o, d, lo, hi := a[0], a[1], a[2], a[3]
		if math.Abs(d) < rayEpsilon {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
