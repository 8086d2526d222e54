// Package system holds the gameplay entities: windows and their files, the
// player, the antivirus sweeper and the director that starts and ends runs.
// Every entity is a phase handler registered through engine.Managed.
package system

import (
	"github.com/lixenwraith/winhop/audio"
	"github.com/lixenwraith/winhop/vmath"
)

// Cues plays gameplay sounds
type Cues interface {
	Play(cue audio.Cue)
}

// Generator starts window generation around an origin
type Generator interface {
	RequestGeneration(origin vmath.Vec2) bool
}

type nopCues struct{}

func (nopCues) Play(audio.Cue) {}

type nopGenerator struct{}

func (nopGenerator) RequestGeneration(vmath.Vec2) bool { return false }

// progress returns elapsed/total clamped to [0, 1], a zero total is complete
func progress(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	p := elapsed / total
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
