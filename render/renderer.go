// Package render draws the game to a tcell screen: the world around the
// player, the HUD and the menu and game-over overlays.
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/placement"
	"github.com/lixenwraith/winhop/system"
	"github.com/lixenwraith/winhop/vmath"
)

// Terminal cells are about twice as tall as wide
const (
	cellsPerUnitX = 2
	cellsPerUnitY = 1
)

// Overlay is the full-screen panel drawn over the world
type Overlay uint8

const (
	OverlayNone Overlay = iota
	OverlayMenu
	OverlayGameOver
)

// Renderer is a managed entity that tracks which overlay to show
// Draw runs on the game loop goroutine
type Renderer struct {
	screen   tcell.Screen
	gc       *engine.GameContext
	windows  *system.Windows
	director *system.Director
	sweeper  *system.Sweeper

	overlay Overlay
	camera  vmath.Vec2
	debug   bool
	muted   bool
	paused  bool

	life *engine.Managed
}

// NewRenderer registers a renderer for screen, call Start to catch up
func NewRenderer(screen tcell.Screen, gc *engine.GameContext, windows *system.Windows, director *system.Director, sweeper *system.Sweeper) *Renderer {
	r := &Renderer{
		screen:   screen,
		gc:       gc,
		windows:  windows,
		director: director,
		sweeper:  sweeper,
		debug:    gc.Config.Debug,
	}
	r.life = engine.NewManaged(gc.Store, r)
	return r
}

func (r *Renderer) String() string { return "renderer" }

func (r *Renderer) Start() error {
	return r.life.Start()
}

func (r *Renderer) Destroy() {
	r.life.Destroy()
}

func (r *Renderer) OnPhaseChange(previous, next engine.Phase) error {
	switch next {
	case engine.PhaseMenuUI, engine.PhaseCreated:
		r.overlay = OverlayMenu
	case engine.PhaseGameOverUI:
		r.overlay = OverlayGameOver
	default:
		r.overlay = OverlayNone
	}
	return nil
}

// Overlay returns the panel currently shown
func (r *Renderer) Overlay() Overlay {
	return r.overlay
}

// ToggleDebug flips the metrics panel
func (r *Renderer) ToggleDebug() bool {
	r.debug = !r.debug
	return r.debug
}

// SetMuted sets the mute marker shown in the HUD
func (r *Renderer) SetMuted(muted bool) {
	r.muted = muted
}

// SetPaused sets the pause marker shown in the HUD
func (r *Renderer) SetPaused(paused bool) {
	r.paused = paused
}

// Draw renders one frame
func (r *Renderer) Draw(now time.Time) {
	r.screen.Clear()
	w, h := r.screen.Size()
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.fill(0, 0, w, h, ' ', bg)

	if p := r.director.Player(); p != nil {
		r.camera = p.Position()
	}

	r.drawWorld(now, w, h, bg)
	r.drawHud(now, w, bg)
	if r.debug {
		r.drawStatus(w, h, bg)
	}

	switch r.overlay {
	case OverlayMenu:
		r.drawPanel(w, h, []string{"W I N H O P", "", "hop between windows", "dodge the antivirus", "", "[Enter] start   [q] quit"})
	case OverlayGameOver:
		r.drawPanel(w, h, []string{"G A M E   O V E R", "", fmt.Sprintf("score %d", r.gc.Score.Value()), "", "[Enter] retry   [Esc] menu"})
	}

	r.screen.Show()
}

// toScreen maps a world point to a cell, the camera sits at the screen center
func (r *Renderer) toScreen(p vmath.Vec2, w, h int) (int, int) {
	x := w/2 + int(math.Round((p.X-r.camera.X)*cellsPerUnitX))
	y := h/2 - int(math.Round((p.Y-r.camera.Y)*cellsPerUnitY))
	return x, y
}

// fillRect paints the cells covered by a world rectangle
func (r *Renderer) fillRect(rect vmath.Rect, w, h int, ch rune, style tcell.Style) {
	x0, y1 := r.toScreen(rect.Min, w, h)
	x1, y0 := r.toScreen(rect.Max, w, h)
	r.fill(x0, y0, x1-x0, y1-y0, ch, style)
}

// fill paints a cell rectangle clipped to the screen
func (r *Renderer) fill(x, y, cw, ch int, c rune, style tcell.Style) {
	w, h := r.screen.Size()
	for row := max(y, 0); row < min(y+ch, h); row++ {
		for col := max(x, 0); col < min(x+cw, w); col++ {
			r.screen.SetContent(col, row, c, nil, style)
		}
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	w, h := r.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for i, ch := range []rune(s) {
		if x+i >= 0 && x+i < w {
			r.screen.SetContent(x+i, y, ch, nil, style)
		}
	}
}

func (r *Renderer) drawWorld(now time.Time, w, h int, bg tcell.Style) {
	for _, win := range r.windows.All() {
		scale := win.Scale(now)
		if scale <= 0 {
			continue
		}
		hd := win.Handle()
		size := vmath.Size{Width: hd.Size.Width * scale, Height: hd.Size.Height * scale}
		ground := bg.Background(RgbGround)
		if win.Visited() {
			ground = bg.Background(RgbVisited)
		}
		r.fillRect(vmath.RectAround(hd.Position, size), w, h, ' ', ground)
	}

	for _, c := range r.gc.World.Colliders(placement.ClassWall) {
		color := RgbWall
		if c.Owner == uuid.Nil {
			color = RgbArena
		}
		r.fillRect(c.Rect, w, h, '█', bg.Foreground(color))
	}

	for _, win := range r.windows.All() {
		for _, f := range win.Files() {
			x, y := r.toScreen(f.Position, w, h)
			style := bg.Background(RgbGround).Foreground(RgbFile)
			glyph := '■'
			if f.State() == system.FileGlitching {
				style = style.Foreground(RgbFileGlitch)
				glyph = '▒'
			}
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}

	if band, ok := r.sweeper.Band(); ok {
		r.fillRect(band, w, h, '░', bg.Foreground(RgbSweeper))
	}

	p := r.director.Player()
	if p == nil {
		return
	}
	if p.Airborne() {
		tx, ty := r.toScreen(p.Target(), w, h)
		r.screen.SetContent(tx, ty, '+', nil, bg.Foreground(RgbCharge))
	}

	x, y := r.toScreen(p.Position(), w, h)
	switch {
	case p.Dead():
		r.screen.SetContent(x, y, 'X', nil, bg.Foreground(RgbPlayerDead))
	case p.Airborne():
		r.screen.SetContent(x, y, '^', nil, bg.Foreground(RgbPlayer))
	default:
		r.screen.SetContent(x, y, '@', nil, bg.Foreground(RgbPlayer))
		lx, ly := r.toScreen(vmath.V2Add(p.Position(), p.Look()), w, h)
		r.screen.SetContent(lx, ly, lookGlyph(p.Look()), nil, bg.Foreground(RgbHudDim))
	}
}

// lookGlyph picks an arrow for the dominant axis of dir
func lookGlyph(dir vmath.Vec2) rune {
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		if dir.X >= 0 {
			return '>'
		}
		return '<'
	}
	if dir.Y >= 0 {
		return '^'
	}
	return 'v'
}

func (r *Renderer) drawHud(now time.Time, w int, bg tcell.Style) {
	hud := bg.Background(tcell.ColorBlack).Foreground(RgbHudText)
	r.fill(0, 0, w, 1, ' ', hud)

	score := r.gc.Score
	line := fmt.Sprintf(" SCORE %d  WINDOWS %d  FILES %d  [%s]", score.Value(), score.VisitedWindows(), score.DestroyedFiles(), r.gc.Phase())
	if r.muted {
		line += "  muted"
	}
	if r.paused {
		line += "  PAUSED"
	}
	r.text(0, 0, line, hud)

	p := r.director.Player()
	if p == nil || !p.Charging() {
		return
	}
	const barWidth = 20
	charge := p.Charge(now)
	filled := int(math.Round(charge * barWidth))
	bar := "JUMP [" + strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled) + "]"
	r.text(w-len(bar)-1, 0, bar, hud.Foreground(RgbCharge))
}

func (r *Renderer) drawStatus(w, h int, bg tcell.Style) {
	lines := r.gc.Status.Lines()
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	style := bg.Foreground(RgbHudDim)
	for i, l := range lines {
		if 1+i >= h {
			break
		}
		r.text(w-width-1, 1+i, l, style)
	}
}

func (r *Renderer) drawPanel(w, h int, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 6
	height := len(lines) + 2
	x := (w - width) / 2
	y := (h - height) / 2

	panel := tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbHudText)
	r.fill(x, y, width, height, ' ', panel)
	for i, l := range lines {
		style := panel
		if i == 0 {
			style = panel.Foreground(RgbOverlayHot).Bold(true)
		}
		lx := x + (width-len([]rune(l)))/2
		r.text(lx, y+1+i, l, style)
	}
}
