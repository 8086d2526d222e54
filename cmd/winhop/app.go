package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/winhop/audio"
	"github.com/lixenwraith/winhop/config"
	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/render"
	"github.com/lixenwraith/winhop/spawn"
	"github.com/lixenwraith/winhop/system"
	"github.com/lixenwraith/winhop/vmath"
)

// lifecycle is the start/destroy half of every managed entity the app owns
type lifecycle interface {
	Start() error
	Destroy()
}

// app owns the game context and every long-lived entity, and maps terminal
// input onto them. All methods run on the game loop goroutine
type app struct {
	screen tcell.Screen
	clock  *engine.PausableClock
	gc     *engine.GameContext

	windows  *system.Windows
	seq      *spawn.Sequencer
	sweeper  *system.Sweeper
	director *system.Director
	cues     *audio.CuePlayer
	renderer *render.Renderer

	entities []lifecycle
}

func newApp(cfg *config.Config, screen tcell.Screen, sink audio.Sink, real engine.TimeProvider) *app {
	clock := engine.NewPausableClock(real)
	gc := engine.NewGameContext(cfg, clock)

	a := &app{screen: screen, clock: clock, gc: gc}
	a.cues = audio.NewCuePlayer(gc, sink)
	a.windows = system.NewWindows(gc, a.cues)
	a.seq = spawn.NewSequencer(gc, gc.World, a.windows)
	a.windows.SetGenerator(a.seq)
	a.sweeper = system.NewSweeper(gc, a.cues)
	a.director = system.NewDirector(gc, a.windows, a.sweeper, a.cues)
	a.renderer = render.NewRenderer(screen, gc, a.windows, a.director, a.sweeper)
	a.renderer.SetMuted(a.cues.Muted())

	// Registration order is broadcast order: the sequencer opens its scope
	// before the director spawns the start window
	// A failed start is already logged by the store and the entity stays registered
	a.entities = []lifecycle{a.seq, a.sweeper, a.director, a.cues, a.renderer}
	for _, e := range a.entities {
		_ = e.Start()
	}
	return a
}

func (a *app) close() {
	for i := len(a.entities) - 1; i >= 0; i-- {
		a.entities[i].Destroy()
	}
	a.entities = nil
}

// tick advances game time by one step unless paused
func (a *app) tick() {
	if a.clock.IsPaused() {
		return
	}
	a.gc.Tick()
	a.director.Update()
}

func (a *app) draw() {
	a.renderer.Draw(a.clock.Now())
}

// handleEvent applies one terminal event, returning false to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		if phase := a.gc.Phase(); phase == engine.PhaseMenuUI || phase == engine.PhaseGameOverUI {
			a.gc.Transition(engine.PhaseInGame)
		}
	case tcell.KeyEscape:
		if a.gc.Phase() != engine.PhaseMenuUI {
			a.gc.Transition(engine.PhaseMenuUI)
		}
	case tcell.KeyUp:
		a.steer(vmath.Vec2{Y: 1})
	case tcell.KeyDown:
		a.steer(vmath.Vec2{Y: -1})
	case tcell.KeyLeft:
		a.steer(vmath.Vec2{X: -1})
	case tcell.KeyRight:
		a.steer(vmath.Vec2{X: 1})
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return true
}

func (a *app) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		a.jump()
	case 'p':
		paused := a.clock.Toggle()
		a.renderer.SetPaused(paused)
		log.Printf("[app] paused: %v", paused)
	case 'm':
		a.renderer.SetMuted(a.cues.ToggleMute())
	case 'd':
		a.renderer.ToggleDebug()
	}
	return true
}

// steer walks the player, or turns it while a jump is charging
func (a *app) steer(dir vmath.Vec2) {
	p := a.director.Player()
	if p == nil || a.clock.IsPaused() {
		return
	}
	if p.Charging() {
		p.Aim(dir)
		return
	}
	p.Move(dir)
}

// jump toggles between charging and releasing
func (a *app) jump() {
	p := a.director.Player()
	if p == nil || a.clock.IsPaused() {
		return
	}
	now := a.clock.Now()
	if p.Charging() {
		p.Release(now)
		return
	}
	p.BeginCharge(now)
}

// run drives ticks and frames until events closes or a quit key arrives
func (a *app) run(events <-chan tcell.Event) {
	tick := time.NewTicker(a.gc.Config.Game.TickInterval)
	defer tick.Stop()
	frame := time.NewTicker(parameter.FrameUpdateInterval)
	defer frame.Stop()

	a.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case <-tick.C:
			a.tick()
		case <-frame.C:
			a.draw()
		}
	}
}
