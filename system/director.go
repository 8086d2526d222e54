package system

import (
	"log"

	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/vmath"
)

// Director starts and tears down runs
// Entering InGame clears the score, opens the start window and spawns the
// player; entering a menu phase removes the player and every window
type Director struct {
	gc      *engine.GameContext
	windows *Windows
	sweeper *Sweeper
	cues    Cues

	player *Player
	life   *engine.Managed
}

// NewDirector registers the director, call Start to catch up
func NewDirector(gc *engine.GameContext, windows *Windows, sweeper *Sweeper, cues Cues) *Director {
	if cues == nil {
		cues = nopCues{}
	}
	d := &Director{
		gc:      gc,
		windows: windows,
		sweeper: sweeper,
		cues:    cues,
	}
	d.life = engine.NewManaged(gc.Store, d)
	return d
}

func (d *Director) String() string { return "director" }

func (d *Director) Start() error {
	return d.life.Start()
}

func (d *Director) Destroy() {
	d.removePlayer()
	d.life.Destroy()
}

// Player returns the live player, nil outside a run
func (d *Director) Player() *Player {
	return d.player
}

func (d *Director) OnPhaseChange(previous, next engine.Phase) error {
	switch next {
	case engine.PhaseInGame:
		return d.setupRun()
	case engine.PhaseMenuUI, engine.PhaseGameOverUI:
		d.removePlayer()
		d.windows.Clear()
	}
	return nil
}

// Update forwards the tick to the player
func (d *Director) Update() {
	if d.player != nil {
		d.player.Update(d.gc.Clock.Now())
	}
}

func (d *Director) setupRun() error {
	d.removePlayer()
	d.windows.Clear()
	d.gc.Score.Clear()

	origin := vmath.Vec2{}
	if _, err := d.windows.SpawnStructure(origin, d.gc.Config.Game.StartWindow); err != nil {
		return err
	}

	d.player = NewPlayer(d.gc, d.windows, d.cues, origin)
	if err := d.player.Start(); err != nil {
		return err
	}
	if d.sweeper != nil {
		d.sweeper.Track(d.player)
	}
	log.Printf("[director] run started in a %gx%g window", d.gc.Config.Game.StartWindow.Width, d.gc.Config.Game.StartWindow.Height)
	return nil
}

func (d *Director) removePlayer() {
	if d.player == nil {
		return
	}
	d.player.Destroy()
	d.player = nil
	if d.sweeper != nil {
		d.sweeper.Track(nil)
	}
}
