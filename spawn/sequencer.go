// Package spawn paces window generation: it turns a generation request into a
// series of placement queries and instantiate calls separated by a fixed delay,
// driven by the engine scheduler and cancelled when the game leaves InGame.
package spawn

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/winhop/config"
	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/placement"
	"github.com/lixenwraith/winhop/status"
	"github.com/lixenwraith/winhop/vmath"
	"github.com/lixenwraith/winhop/world"
)

// Instantiator creates a structure the world can probe
// The structure must be visible to the probe before SpawnStructure returns
type Instantiator interface {
	SpawnStructure(pos vmath.Vec2, size vmath.Size) (world.Handle, error)
}

// Sequencer runs generation sequences as scheduler tasks
// All sequences share one cancellation scope, opened on entering InGame and
// cancelled on entering any other phase
type Sequencer struct {
	cfg    config.SpawnConfig
	engine *placement.Engine
	inst   Instantiator
	sched  *engine.Scheduler
	rng    *vmath.FastRand
	life   *engine.Managed

	scope  context.Context
	cancel context.CancelFunc

	statPlaced    *atomic.Int64
	statSkipped   *atomic.Int64
	statCancelled *atomic.Int64
	statDistance  *status.AtomicFloat
}

// NewSequencer registers a sequencer with the game's state store
// Call Start once the sequencer is fully wired
func NewSequencer(gc *engine.GameContext, probe placement.Probe, inst Instantiator) *Sequencer {
	s := &Sequencer{
		cfg:           gc.Config.Spawn,
		engine:        placement.NewEngine(probe),
		inst:          inst,
		sched:         gc.Scheduler,
		rng:           gc.Rand,
		statPlaced:    gc.Status.Ints.Get(parameter.StatSpawnPlaced),
		statSkipped:   gc.Status.Ints.Get(parameter.StatSpawnSkipped),
		statCancelled: gc.Status.Ints.Get(parameter.StatSpawnCancelled),
		statDistance:  gc.Status.Floats.Get(parameter.StatSpawnDistance),
	}
	s.life = engine.NewManaged(gc.Store, s)
	return s
}

func (s *Sequencer) String() string { return "spawn.Sequencer" }

// Start delivers the catch-up transition for the current phase
func (s *Sequencer) Start() error {
	return s.life.Start()
}

// Destroy cancels in-flight sequences and unregisters
func (s *Sequencer) Destroy() {
	s.closeScope()
	s.life.Destroy()
}

// OnPhaseChange opens a fresh scope on InGame and cancels it otherwise
func (s *Sequencer) OnPhaseChange(previous, next engine.Phase) error {
	if next.Active() {
		s.closeScope()
		s.scope, s.cancel = context.WithCancel(context.Background())
		return nil
	}
	s.closeScope()
	return nil
}

// Active reports whether a generation scope is open
func (s *Sequencer) Active() bool {
	return s.scope != nil && s.scope.Err() == nil
}

// RequestGeneration starts a sequence around origin
// Returns false when no scope is open or the sequence finished without suspending
func (s *Sequencer) RequestGeneration(origin vmath.Vec2) bool {
	if !s.Active() {
		log.Printf("[spawn] generation around %v ignored outside InGame", origin)
		return false
	}
	return s.sched.Go(s.scope, &sequence{seq: s, origin: origin})
}

func (s *Sequencer) closeScope() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// spawnOne runs one window iteration, returns true when a structure was placed
func (s *Sequencer) spawnOne(origin vmath.Vec2) bool {
	distance := s.cfg.Distance.Pick(s.rng)
	size := vmath.Size{
		Width:  s.cfg.Width.Pick(s.rng),
		Height: s.cfg.Height.Pick(s.rng),
	}

	candidates := s.engine.FindCandidates(placement.Request{
		Origin:        origin,
		Footprint:     size,
		Distance:      distance,
		MinSeparation: s.cfg.MinSeparation,
		Samples:       s.cfg.RayCount,
	})
	c, ok := placement.Choose(s.rng, candidates)
	if !ok {
		s.statSkipped.Add(1)
		return false
	}

	if _, err := s.inst.SpawnStructure(c.Position, size); err != nil {
		s.statSkipped.Add(1)
		log.Printf("[spawn] WARNING: instantiate at %v failed: %v", c.Position, err)
		return false
	}

	s.statPlaced.Add(1)
	s.statDistance.Set(distance)
	return true
}

// sequence is one generation request as an explicit state machine
// The window count is drawn on the first step
type sequence struct {
	seq       *Sequencer
	origin    vmath.Vec2
	remaining int
	drawn     bool
}

func (q *sequence) Step(now time.Time) (time.Time, bool) {
	if !q.drawn {
		q.drawn = true
		q.remaining = q.seq.cfg.Count.Pick(q.seq.rng)
	}

	for q.remaining > 0 {
		q.remaining--
		if q.seq.spawnOne(q.origin) {
			return now.Add(q.seq.cfg.Delay), false
		}
	}
	return time.Time{}, true
}

func (q *sequence) Cancelled(now time.Time) {
	q.seq.statCancelled.Add(1)
	log.Printf("[spawn] sequence around %v cancelled with %d windows left", q.origin, q.remaining)
}
