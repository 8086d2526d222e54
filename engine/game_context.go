package engine

import (
	"time"

	"github.com/lixenwraith/winhop/config"
	"github.com/lixenwraith/winhop/status"
	"github.com/lixenwraith/winhop/vmath"
	"github.com/lixenwraith/winhop/world"
)

// GameContext is the single explicitly passed owner of game-wide state
// Built once by the application driver; every component receives it instead of
// reaching for globals
//
// All fields are set in NewGameContext and never reassigned; the objects they
// point to are mutated only from the game loop goroutine
type GameContext struct {
	Config *config.Config
	Status *status.Registry
	Clock  TimeProvider

	Store     *StateStore
	Scheduler *Scheduler
	Score     *Score
	World     *world.World
	Rand      *vmath.FastRand
}

// NewGameContext wires the store, scheduler, score and world for cfg
// The store starts in MenuUI; a zero seed derives one from the clock
func NewGameContext(cfg *config.Config, clock TimeProvider) *GameContext {
	reg := status.NewRegistry()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	bounds := vmath.Rect{
		Min: vmath.Vec2{X: -cfg.Game.ArenaHalfWidth, Y: -cfg.Game.ArenaHalfHeight},
		Max: vmath.Vec2{X: cfg.Game.ArenaHalfWidth, Y: cfg.Game.ArenaHalfHeight},
	}

	return &GameContext{
		Config:    cfg,
		Status:    reg,
		Clock:     clock,
		Store:     NewStateStore(PhaseMenuUI, reg),
		Scheduler: NewScheduler(clock, reg),
		Score:     &Score{},
		World:     world.New(bounds, cfg.Window.WallThickness),
		Rand:      vmath.NewFastRand(seed),
	}
}

// Phase returns the active phase
func (g *GameContext) Phase() Phase {
	return g.Store.Phase()
}

// Transition forwards to the store
func (g *GameContext) Transition(next Phase) []NotifyError {
	return g.Store.Transition(next)
}

// Tick resumes due scheduler tasks at the current clock time
func (g *GameContext) Tick() {
	g.Scheduler.Tick(g.Clock.Now())
}
