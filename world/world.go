// Package world owns the obstacle geometry: arena bounds, window structures
// with their wall frames, and loose colliders such as files. It answers
// placement probes and instantiates new structures.
package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lixenwraith/winhop/placement"
	"github.com/lixenwraith/winhop/vmath"
)

// ErrOutOfBounds is returned when a structure would not fit inside the arena
var ErrOutOfBounds = errors.New("structure outside arena bounds")

// boundsThickness is the depth of the walls fencing the arena
const boundsThickness = 1.0

// ColliderID identifies a collider for removal
type ColliderID uint64

// Handle identifies an instantiated structure
type Handle struct {
	ID       uuid.UUID
	Position vmath.Vec2
	Size     vmath.Size
}

// Interior returns the walkable rectangle of the structure
func (h Handle) Interior() vmath.Rect {
	return vmath.RectAround(h.Position, h.Size)
}

// Collider is a probe-visible rectangle
type Collider struct {
	ID    ColliderID
	Rect  vmath.Rect
	Class placement.ObstacleClass
	Owner uuid.UUID // uuid.Nil for arena and loose colliders
}

type structure struct {
	handle    Handle
	colliders []ColliderID
}

// World is the obstacle world
// Structures become probe-visible synchronously inside AddStructure
// Not safe for concurrent use; the game loop owns it
type World struct {
	bounds        vmath.Rect
	wallThickness float64

	nextID     ColliderID
	colliders  []Collider
	structures []*structure
}

// New creates a world fenced by walls around bounds
// Window frames are wallThickness deep
func New(bounds vmath.Rect, wallThickness float64) *World {
	w := &World{
		bounds:        bounds,
		wallThickness: wallThickness,
	}
	w.addBoundsWalls()
	return w
}

// Bounds returns the playable arena rectangle
func (w *World) Bounds() vmath.Rect {
	return w.bounds
}

// Probe implements placement.Probe by testing the ray against every collider
// of the requested class
func (w *World) Probe(origin, dir vmath.Vec2, maxDist float64, class placement.ObstacleClass) bool {
	for i := range w.colliders {
		c := &w.colliders[i]
		if c.Class != class {
			continue
		}
		if _, hit := c.Rect.RayHit(origin, dir, maxDist); hit {
			return true
		}
	}
	return false
}

// AddStructure instantiates a window interior of size centered on pos,
// fenced by a four-sided wall frame
func (w *World) AddStructure(pos vmath.Vec2, size vmath.Size) (Handle, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return Handle{}, fmt.Errorf("structure size %gx%g must be positive", size.Width, size.Height)
	}
	interior := vmath.RectAround(pos, size)
	if !w.bounds.Contains(interior.Min) || !w.bounds.Contains(interior.Max) {
		return Handle{}, fmt.Errorf("structure at (%.1f, %.1f): %w", pos.X, pos.Y, ErrOutOfBounds)
	}

	h := Handle{ID: uuid.New(), Position: pos, Size: size}
	s := &structure{handle: h}

	s.colliders = append(s.colliders, w.addCollider(interior, placement.ClassGround, h.ID))
	for _, r := range frame(interior, w.wallThickness) {
		s.colliders = append(s.colliders, w.addCollider(r, placement.ClassWall, h.ID))
	}

	w.structures = append(w.structures, s)
	return h, nil
}

// RemoveStructure deletes a structure and its colliders, false if unknown
func (w *World) RemoveStructure(id uuid.UUID) bool {
	for i, s := range w.structures {
		if s.handle.ID != id {
			continue
		}
		for _, cid := range s.colliders {
			w.RemoveCollider(cid)
		}
		w.structures = append(w.structures[:i], w.structures[i+1:]...)
		return true
	}
	return false
}

// Structure returns the handle for id
func (w *World) Structure(id uuid.UUID) (Handle, bool) {
	for _, s := range w.structures {
		if s.handle.ID == id {
			return s.handle, true
		}
	}
	return Handle{}, false
}

// Structures returns all structures in creation order
func (w *World) Structures() []Handle {
	out := make([]Handle, len(w.structures))
	for i, s := range w.structures {
		out[i] = s.handle
	}
	return out
}

// GroundAt returns the structure whose interior contains p
// The most recently created structure wins on overlap
func (w *World) GroundAt(p vmath.Vec2) (Handle, bool) {
	for i := len(w.structures) - 1; i >= 0; i-- {
		h := w.structures[i].handle
		if h.Interior().Contains(p) {
			return h, true
		}
	}
	return Handle{}, false
}

// AddCollider registers a loose collider
func (w *World) AddCollider(r vmath.Rect, class placement.ObstacleClass) ColliderID {
	return w.addCollider(r, class, uuid.Nil)
}

// RemoveCollider deletes a collider, false if unknown
func (w *World) RemoveCollider(id ColliderID) bool {
	for i := range w.colliders {
		if w.colliders[i].ID == id {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

// Colliders returns a copy of the colliders of class
func (w *World) Colliders(class placement.ObstacleClass) []Collider {
	var out []Collider
	for _, c := range w.colliders {
		if c.Class == class {
			out = append(out, c)
		}
	}
	return out
}

// Reset removes all structures and loose colliders, keeping the arena walls
func (w *World) Reset() {
	w.colliders = w.colliders[:0]
	w.structures = nil
	w.addBoundsWalls()
}

func (w *World) addCollider(r vmath.Rect, class placement.ObstacleClass, owner uuid.UUID) ColliderID {
	w.nextID++
	w.colliders = append(w.colliders, Collider{ID: w.nextID, Rect: r, Class: class, Owner: owner})
	return w.nextID
}

func (w *World) addBoundsWalls() {
	for _, r := range frame(w.bounds, boundsThickness) {
		w.addCollider(r, placement.ClassWall, uuid.Nil)
	}
}

// frame returns the top, bottom, left and right walls enclosing inner
// Top and bottom span the full outer width, left and right fill the sides
func frame(inner vmath.Rect, t float64) [4]vmath.Rect {
	return [4]vmath.Rect{
		{Min: vmath.Vec2{X: inner.Min.X - t, Y: inner.Max.Y}, Max: vmath.Vec2{X: inner.Max.X + t, Y: inner.Max.Y + t}},
		{Min: vmath.Vec2{X: inner.Min.X - t, Y: inner.Min.Y - t}, Max: vmath.Vec2{X: inner.Max.X + t, Y: inner.Min.Y}},
		{Min: vmath.Vec2{X: inner.Min.X - t, Y: inner.Min.Y}, Max: vmath.Vec2{X: inner.Min.X, Y: inner.Max.Y}},
		{Min: vmath.Vec2{X: inner.Max.X, Y: inner.Min.Y}, Max: vmath.Vec2{X: inner.Max.X + t, Y: inner.Max.Y}},
	}
}
