package system

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/winhop/audio"
	"github.com/lixenwraith/winhop/config"
	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/placement"
	"github.com/lixenwraith/winhop/vmath"
)

// Player walks inside its window and charges jumps between windows
// A terminal has no key release, so a jump is charged by one press and
// released by the next
type Player struct {
	gc      *engine.GameContext
	cfg     config.PlayerConfig
	windows *Windows
	cues    Cues

	pos    vmath.Vec2
	look   vmath.Vec2
	window *Window
	input  bool
	dead   bool

	charging    bool
	chargeStart time.Time

	airborne    bool
	jumpFrom    vmath.Vec2
	jumpTo      vmath.Vec2
	jumpStart   time.Time
	lastLanding time.Time

	life   *engine.Managed
	ctx    context.Context
	cancel context.CancelFunc

	statJumps *atomic.Int64
}

// NewPlayer registers a player standing at pos, call Start to catch up
func NewPlayer(gc *engine.GameContext, windows *Windows, cues Cues, pos vmath.Vec2) *Player {
	if cues == nil {
		cues = nopCues{}
	}
	p := &Player{
		gc:        gc,
		cfg:       gc.Config.Player,
		windows:   windows,
		cues:      cues,
		pos:       pos,
		look:      vmath.Vec2{X: 1},
		statJumps: gc.Status.Ints.Get(parameter.StatJumps),
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.life = engine.NewManaged(gc.Store, p)
	return p
}

func (p *Player) String() string { return "player" }

// Start delivers the catch-up transition
func (p *Player) Start() error {
	return p.life.Start()
}

// Destroy cancels in-flight jumps and timers and unregisters
func (p *Player) Destroy() {
	p.cancel()
	p.life.Destroy()
}

func (p *Player) OnPhaseChange(previous, next engine.Phase) error {
	switch next {
	case engine.PhaseInGame:
		p.input = true
	case engine.PhaseDying:
		p.input = false
		p.dead = true
		p.charging = false
		p.cancel()
		p.ctx, p.cancel = context.WithCancel(context.Background())
		p.gc.Scheduler.Go(p.ctx, engine.After(p.cfg.DyingDelay, func(time.Time) {
			p.gc.Transition(engine.PhaseGameOverUI)
		}))
	default:
		p.input = false
		p.charging = false
	}
	return nil
}

func (p *Player) Position() vmath.Vec2 { return p.pos }
func (p *Player) Look() vmath.Vec2     { return p.look }
func (p *Player) Airborne() bool       { return p.airborne }
func (p *Player) Charging() bool       { return p.charging }
func (p *Player) Dead() bool           { return p.dead }

// Window returns the window the player stands in
func (p *Player) Window() *Window { return p.window }

// Update settles the player onto the ground it stands on
// A freshly spawned player visits its start window on the first update
func (p *Player) Update(now time.Time) {
	if p.window != nil || p.airborne || p.dead {
		return
	}
	if w, ok := p.windows.WindowAt(p.pos); ok {
		p.window = w
		w.Visit()
	}
}

// Move steps one unit along dir unless a wall is in the way
func (p *Player) Move(dir vmath.Vec2) bool {
	if !p.input || p.airborne || p.charging {
		return false
	}
	if vmath.V2MagSq(dir) == 0 {
		return false
	}
	dir = vmath.V2Normalize(dir)
	p.look = dir

	if p.gc.World.Probe(p.pos, dir, p.cfg.Step, placement.ClassWall) {
		return false
	}
	p.pos = vmath.V2Add(p.pos, vmath.V2Scale(dir, p.cfg.Step))
	p.touchFile()
	return true
}

// Aim turns the player without moving, used while a jump is charging
func (p *Player) Aim(dir vmath.Vec2) bool {
	if !p.input || p.airborne || vmath.V2MagSq(dir) == 0 {
		return false
	}
	p.look = vmath.V2Normalize(dir)
	return true
}

// BeginCharge starts charging a jump once the landing cooldown has passed
func (p *Player) BeginCharge(now time.Time) bool {
	if !p.input || p.airborne || p.charging {
		return false
	}
	if !p.lastLanding.IsZero() && now.Before(p.lastLanding.Add(p.cfg.JumpCooldown)) {
		return false
	}
	p.charging = true
	p.chargeStart = now
	return true
}

// Charge returns the jump strength in [0, 1]
func (p *Player) Charge(now time.Time) float64 {
	if !p.charging {
		return 0
	}
	return progress(float64(now.Sub(p.chargeStart)), float64(p.cfg.JumpFillDuration))
}

// AbortCharge drops the charge without jumping
func (p *Player) AbortCharge() {
	p.charging = false
}

// Release ends the charge and jumps along the look direction
// A charge shorter than JumpMinCharge is dropped
func (p *Player) Release(now time.Time) bool {
	if !p.charging {
		return false
	}
	strength := p.Charge(now)
	p.charging = false
	if now.Sub(p.chargeStart) < p.cfg.JumpMinCharge {
		return false
	}

	p.airborne = true
	p.window = nil
	p.jumpFrom = p.pos
	p.jumpTo = vmath.V2Add(p.pos, vmath.V2Scale(p.look, p.cfg.JumpMaxDistance*strength))
	p.jumpStart = now
	p.statJumps.Add(1)
	p.cues.Play(audio.CueJump)

	p.gc.Scheduler.Go(p.ctx, engine.TaskFunc(p.fly))
	return true
}

// Target returns where the current jump lands
func (p *Player) Target() vmath.Vec2 {
	return p.jumpTo
}

// Hit is called when the sweeper catches the player on the ground
func (p *Player) Hit() {
	if p.airborne || p.dead || !p.input {
		return
	}
	log.Printf("[player] caught by sweeper at (%.1f, %.1f)", p.pos.X, p.pos.Y)
	p.gc.Transition(engine.PhaseDying)
}

// fly moves the player along the jump each tick and lands at the end
func (p *Player) fly(now time.Time) (time.Time, bool) {
	t := progress(float64(now.Sub(p.jumpStart)), float64(p.cfg.AirborneDuration))
	p.pos = vmath.V2Add(p.jumpFrom, vmath.V2Scale(vmath.V2Sub(p.jumpTo, p.jumpFrom), t))
	if t < 1 {
		return now, false
	}
	p.land(now)
	return time.Time{}, true
}

func (p *Player) land(now time.Time) {
	p.airborne = false
	p.lastLanding = now

	w, ok := p.windows.WindowAt(p.pos)
	if !ok {
		log.Printf("[player] missed at (%.1f, %.1f)", p.pos.X, p.pos.Y)
		p.gc.Transition(engine.PhaseDying)
		return
	}

	p.window = w
	p.cues.Play(audio.CueLand)
	w.Visit()
	p.touchFile()
}

func (p *Player) touchFile() {
	if f, ok := p.windows.FileAt(p.pos); ok {
		f.Touch()
	}
}
