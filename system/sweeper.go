package system

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/winhop/audio"
	"github.com/lixenwraith/winhop/config"
	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/vmath"
)

// Target is what the sweeper hunts
type Target interface {
	Position() vmath.Vec2
	Airborne() bool
	Hit()
}

// Sweeper is the antivirus: a vertical band that periodically scans across
// the view around the player, killing a grounded player it crosses
//
// Loop: wait Delay.Max once, then scan for Duration and wait a random delay
// in [Delay.Min, Delay.Max), repeated until the game leaves InGame
type Sweeper struct {
	gc     *engine.GameContext
	cfg    config.SweeperConfig
	cues   Cues
	target Target

	scanning  bool
	reversed  bool
	position  float64 // band position across the span, 0 left to 1 right
	lock      vmath.Vec2
	scanStart time.Time

	life   *engine.Managed
	ctx    context.Context
	cancel context.CancelFunc

	statScans *atomic.Int64
}

// NewSweeper registers the sweeper, call Start to catch up
func NewSweeper(gc *engine.GameContext, cues Cues) *Sweeper {
	if cues == nil {
		cues = nopCues{}
	}
	s := &Sweeper{
		gc:        gc,
		cfg:       gc.Config.Sweeper,
		cues:      cues,
		statScans: gc.Status.Ints.Get(parameter.StatScans),
	}
	s.life = engine.NewManaged(gc.Store, s)
	return s
}

func (s *Sweeper) String() string { return "sweeper" }

func (s *Sweeper) Start() error {
	return s.life.Start()
}

func (s *Sweeper) Destroy() {
	s.stop()
	s.life.Destroy()
}

// Track sets the hunted target, nil stops hits
func (s *Sweeper) Track(t Target) {
	s.target = t
}

func (s *Sweeper) OnPhaseChange(previous, next engine.Phase) error {
	s.stop()
	if next.Active() {
		s.ctx, s.cancel = context.WithCancel(context.Background())
		s.gc.Scheduler.Go(s.ctx, &sweepLoop{s: s})
	}
	return nil
}

// Scanning reports whether a scan is in progress
func (s *Sweeper) Scanning() bool {
	return s.scanning
}

// Band returns the scan band rectangle while scanning
func (s *Sweeper) Band() (vmath.Rect, bool) {
	if !s.scanning {
		return vmath.Rect{}, false
	}
	x := s.bandX()
	half := s.cfg.BandWidth / 2
	return vmath.Rect{
		Min: vmath.Vec2{X: x - half, Y: s.lock.Y - s.cfg.HalfSpan},
		Max: vmath.Vec2{X: x + half, Y: s.lock.Y + s.cfg.HalfSpan},
	}, true
}

func (s *Sweeper) bandX() float64 {
	start := s.lock.X - s.cfg.HalfSpan
	return start + 2*s.cfg.HalfSpan*s.position
}

func (s *Sweeper) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.scanning = false
}

func (s *Sweeper) beginScan(now time.Time) {
	s.scanning = true
	s.scanStart = now
	s.reversed = s.position >= 0.5
	if s.target != nil {
		s.lock = s.target.Position()
	}
	s.statScans.Add(1)
	s.cues.Play(audio.CueScan)
}

// advance moves the band, returns true when the scan is complete
func (s *Sweeper) advance(now time.Time) bool {
	p := progress(float64(now.Sub(s.scanStart)), float64(s.cfg.Duration))
	if s.reversed {
		s.position = 1 - p
	} else {
		s.position = p
	}
	if p >= 1 {
		s.scanning = false
		return true
	}
	return false
}

// catches reports whether the band overlaps a grounded target
func (s *Sweeper) catches() bool {
	if s.target == nil || s.target.Airborne() {
		return false
	}
	return math.Abs(s.target.Position().X-s.bandX()) <= s.cfg.BandWidth/2
}

type sweepStage uint8

const (
	sweepFirstWait sweepStage = iota
	sweepStartScan
	sweepScanning
)

// sweepLoop is the scan cycle as a scheduler task
type sweepLoop struct {
	s     *Sweeper
	stage sweepStage
}

func (l *sweepLoop) Step(now time.Time) (time.Time, bool) {
	s := l.s
	switch l.stage {
	case sweepFirstWait:
		l.stage = sweepStartScan
		return now.Add(s.cfg.Delay.Max), false

	case sweepStartScan:
		s.beginScan(now)
		l.stage = sweepScanning
		fallthrough

	case sweepScanning:
		done := s.advance(now)
		if s.catches() {
			s.target.Hit()
			return time.Time{}, true
		}
		if !done {
			return now, false
		}
		l.stage = sweepStartScan
		return now.Add(s.cfg.Delay.Pick(s.gc.Rand)), false
	}
	return time.Time{}, true
}

func (l *sweepLoop) Cancelled(time.Time) {
	l.s.scanning = false
}
