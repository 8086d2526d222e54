// Package placement finds collision-free positions for new structures by
// sampling directions on a circle around an origin and probing each candidate
// footprint against the obstacle world.
package placement

import (
	"fmt"

	"github.com/lixenwraith/winhop/vmath"
)

// ObstacleClass selects which colliders a probe can hit
type ObstacleClass uint8

const (
	ClassWall ObstacleClass = iota
	ClassGround
	ClassFile
)

// Probe is the collision query the engine consumes
// Implementations must be side-effect free and callable at any frequency
type Probe interface {
	// Probe reports whether a ray from origin along the unit vector dir hits a
	// collider of class within maxDist
	Probe(origin, dir vmath.Vec2, maxDist float64, class ObstacleClass) bool
}

// ProbeFunc adapts a function to Probe
type ProbeFunc func(origin, dir vmath.Vec2, maxDist float64, class ObstacleClass) bool

func (f ProbeFunc) Probe(origin, dir vmath.Vec2, maxDist float64, class ObstacleClass) bool {
	return f(origin, dir, maxDist, class)
}

// Request describes one candidate search, transient per call
type Request struct {
	Origin        vmath.Vec2
	Footprint     vmath.Size
	Distance      float64
	MinSeparation float64
	Samples       int
}

// Validate checks the request can produce a finite direction sweep
func (r Request) Validate() error {
	if r.Samples < 1 || r.Samples > 360 {
		return fmt.Errorf("samples must be in [1, 360], got %d", r.Samples)
	}
	if r.Distance < 0 {
		return fmt.Errorf("distance must not be negative, got %g", r.Distance)
	}
	if r.MinSeparation < 0 {
		return fmt.Errorf("min separation must not be negative, got %g", r.MinSeparation)
	}
	return nil
}

// Candidate is a validated structure center and the angle it was sampled at
type Candidate struct {
	Position vmath.Vec2
	Angle    int
}

// Directions returns the sampled angles in degrees
// step = 360 / samples with integer division; angles 0, step, 2*step, ... below 360
// When 360 is not divisible by samples the sweep yields extra directions
func Directions(samples int) []int {
	if samples < 1 || samples > 360 {
		return nil
	}
	step := 360 / samples
	angles := make([]int, 0, 360/step)
	for a := 0; a < 360; a += step {
		angles = append(angles, a)
	}
	return angles
}

// Engine runs placement queries against a probe
// Queries are pure reads of the probe; the world may change between queries
type Engine struct {
	probe Probe
}

// NewEngine creates an engine over probe
func NewEngine(probe Probe) *Engine {
	return &Engine{probe: probe}
}

// FindCandidates returns every sampled center on the circle of radius
// req.Distance whose footprint is wall free and whose surroundings are clear
// for req.MinSeparation, in ascending angle order
// An empty result means no placement exists at this distance and size
// Invalid requests yield no candidates
func (e *Engine) FindCandidates(req Request) []Candidate {
	if req.Validate() != nil {
		return nil
	}

	angles := Directions(req.Samples)
	corners := vmath.Corners(req.Footprint)
	var out []Candidate

	for _, angle := range angles {
		center := vmath.V2Add(req.Origin, vmath.V2Scale(vmath.Direction(angle), req.Distance))

		if e.footprintBlocked(center, corners) {
			continue
		}
		if e.tooClose(center, angles, req.MinSeparation) {
			continue
		}
		out = append(out, Candidate{Position: center, Angle: angle})
	}
	return out
}

// footprintBlocked casts one ray per corner, stopping at the first hit
func (e *Engine) footprintBlocked(center vmath.Vec2, corners [4]vmath.Vec2) bool {
	for _, c := range corners {
		mag := vmath.V2Mag(c)
		if mag == 0 {
			continue
		}
		if e.probe.Probe(center, vmath.V2Normalize(c), mag, ClassWall) {
			return true
		}
	}
	return false
}

// tooClose sweeps the same directions out to minSep, stopping at the first hit
func (e *Engine) tooClose(center vmath.Vec2, angles []int, minSep float64) bool {
	if minSep <= 0 {
		return false
	}
	for _, angle := range angles {
		if e.probe.Probe(center, vmath.Direction(angle), minSep, ClassWall) {
			return true
		}
	}
	return false
}

// Choose picks one candidate uniformly, false when there are none
func Choose(rng *vmath.FastRand, candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
