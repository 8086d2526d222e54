package system

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/winhop/audio"
	"github.com/lixenwraith/winhop/config"
	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/placement"
	"github.com/lixenwraith/winhop/vmath"
	"github.com/lixenwraith/winhop/world"
)

// WindowState is the animation lifecycle of a window
type WindowState uint8

const (
	WindowOpening WindowState = iota
	WindowOpen
	WindowClosing
	WindowClosed
)

// Window is one spawned structure as a phase-aware entity
// It opens over OpenDuration, fills with files, and closes when the player dies
type Window struct {
	windows *Windows
	handle  world.Handle

	state     WindowState
	animStart time.Time
	visited   bool
	files     []*File

	life   *engine.Managed
	ctx    context.Context
	cancel context.CancelFunc
}

func (w *Window) String() string {
	return "window " + w.handle.ID.String()[:8]
}

func (w *Window) OnPhaseChange(previous, next engine.Phase) error {
	if next == engine.PhaseDying {
		w.Close()
	}
	return nil
}

// Handle returns the world structure behind the window
func (w *Window) Handle() world.Handle {
	return w.handle
}

func (w *Window) State() WindowState {
	return w.state
}

func (w *Window) Visited() bool {
	return w.visited
}

// Files returns the files not yet destroyed
func (w *Window) Files() []*File {
	return w.files
}

// Scale is the open fraction used for drawing, 0 closed and 1 fully open
func (w *Window) Scale(now time.Time) float64 {
	d := float64(w.windows.cfg.OpenDuration)
	p := progress(float64(now.Sub(w.animStart)), d)
	switch w.state {
	case WindowOpening:
		return p
	case WindowClosing:
		return 1 - p
	case WindowClosed:
		return 0
	default:
		return 1
	}
}

// Visit handles the player reaching the window
// The first visit scores and requests generation around the window center
func (w *Window) Visit() bool {
	if w.visited || w.state >= WindowClosing {
		return false
	}
	w.visited = true
	w.windows.gc.Score.IncrementVisitedWindows()
	w.windows.cues.Play(audio.CueVisit)
	w.windows.gen.RequestGeneration(w.handle.Position)
	return true
}

// Close starts the close animation, after which the window leaves the world
func (w *Window) Close() {
	if w.state >= WindowClosing {
		return
	}
	w.state = WindowClosing
	w.animStart = w.windows.gc.Clock.Now()
	w.windows.gc.Scheduler.Go(w.ctx, engine.After(w.windows.cfg.OpenDuration, func(time.Time) {
		w.windows.remove(w)
	}))
}

// open runs the open animation then spawns files one per tick
func (w *Window) open() {
	w.animStart = w.windows.gc.Clock.Now()
	w.windows.gc.Scheduler.Go(w.ctx, engine.After(w.windows.cfg.OpenDuration, func(time.Time) {
		if w.state != WindowOpening {
			return
		}
		w.state = WindowOpen
		w.windows.gc.Scheduler.Go(w.ctx, w.fileSpawner())
	}))
}

// fileSpawner places one file per tick until the drawn count is reached
func (w *Window) fileSpawner() engine.Task {
	cfg := w.windows.cfg
	slots := FileSlots(w.handle.Interior(), cfg.FileGrid)
	count := w.windows.gc.Rand.IntRange(cfg.Files.Min, min(len(slots), cfg.Files.Max))
	count = min(count, len(slots))
	next := 0

	return engine.TaskFunc(func(now time.Time) (time.Time, bool) {
		if next >= count {
			return time.Time{}, true
		}
		w.windows.addFile(w, slots[next], cfg.FileGrid)
		next++
		return now, next >= count
	})
}

// FileSlots returns the centers of the file grid cells inside interior,
// row by row from the top
func FileSlots(interior vmath.Rect, cell vmath.Size) []vmath.Vec2 {
	if cell.Width <= 0 || cell.Height <= 0 {
		return nil
	}
	size := interior.Size()
	cols := int(math.Floor(size.Width / cell.Width))
	rows := int(math.Floor(size.Height / cell.Height))

	// Center the grid inside the interior
	originX := interior.Min.X + (size.Width-float64(cols)*cell.Width)/2
	originY := interior.Max.Y - (size.Height-float64(rows)*cell.Height)/2

	slots := make([]vmath.Vec2, 0, max(cols*rows, 0))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			slots = append(slots, vmath.Vec2{
				X: originX + (float64(x)+0.5)*cell.Width,
				Y: originY - (float64(y)+0.5)*cell.Height,
			})
		}
	}
	return slots
}

// Windows owns every live window and instantiates new ones
// It is the spawn instantiator and the lookup the player and renderer use
type Windows struct {
	gc   *engine.GameContext
	cfg  config.WindowConfig
	cues Cues
	gen  Generator

	order  []*Window
	byID   map[uuid.UUID]*Window
	byFile map[world.ColliderID]*File

	statStructures *atomic.Int64
}

// NewWindows creates the window set, cues may be nil
func NewWindows(gc *engine.GameContext, cues Cues) *Windows {
	if cues == nil {
		cues = nopCues{}
	}
	return &Windows{
		gc:             gc,
		cfg:            gc.Config.Window,
		cues:           cues,
		gen:            nopGenerator{},
		byID:           make(map[uuid.UUID]*Window),
		byFile:         make(map[world.ColliderID]*File),
		statStructures: gc.Status.Ints.Get(parameter.StatStructures),
	}
}

// SetGenerator wires first visits to window generation
func (ws *Windows) SetGenerator(g Generator) {
	if g == nil {
		g = nopGenerator{}
	}
	ws.gen = g
}

// SpawnStructure adds a window to the world and starts its open animation
// The window is probe-visible when this returns
func (ws *Windows) SpawnStructure(pos vmath.Vec2, size vmath.Size) (world.Handle, error) {
	h, err := ws.gc.World.AddStructure(pos, size)
	if err != nil {
		return world.Handle{}, fmt.Errorf("spawn window: %w", err)
	}

	w := &Window{windows: ws, handle: h}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.life = engine.NewManaged(ws.gc.Store, w)

	ws.order = append(ws.order, w)
	ws.byID[h.ID] = w
	ws.statStructures.Store(int64(len(ws.order)))

	if err := w.life.Start(); err != nil {
		log.Printf("[window] WARNING: %v", err)
	}
	w.open()
	return h, nil
}

// WindowAt returns the window whose ground contains p
func (ws *Windows) WindowAt(p vmath.Vec2) (*Window, bool) {
	h, ok := ws.gc.World.GroundAt(p)
	if !ok {
		return nil, false
	}
	w, ok := ws.byID[h.ID]
	return w, ok
}

// FileAt returns an intact file whose collider contains p
func (ws *Windows) FileAt(p vmath.Vec2) (*File, bool) {
	for _, c := range ws.gc.World.Colliders(placement.ClassFile) {
		if !c.Rect.Contains(p) {
			continue
		}
		if f, ok := ws.byFile[c.ID]; ok && f.state == FileIdle {
			return f, true
		}
	}
	return nil, false
}

// All returns live windows in creation order
func (ws *Windows) All() []*Window {
	return ws.order
}

func (ws *Windows) Len() int {
	return len(ws.order)
}

// Clear destroys every window and resets the world
func (ws *Windows) Clear() {
	for _, w := range ws.order {
		w.destroy()
	}
	ws.order = nil
	ws.byID = make(map[uuid.UUID]*Window)
	ws.byFile = make(map[world.ColliderID]*File)
	ws.gc.World.Reset()
	ws.statStructures.Store(0)
}

func (ws *Windows) addFile(w *Window, pos vmath.Vec2, cell vmath.Size) {
	f := &File{
		Name:     fileName(ws.gc.Rand),
		Position: pos,
		window:   w,
	}
	f.collider = ws.gc.World.AddCollider(vmath.RectAround(pos, cell), placement.ClassFile)
	w.files = append(w.files, f)
	ws.byFile[f.collider] = f
}

func (ws *Windows) removeFile(f *File) {
	ws.gc.World.RemoveCollider(f.collider)
	delete(ws.byFile, f.collider)

	w := f.window
	for i, other := range w.files {
		if other == f {
			w.files = append(w.files[:i], w.files[i+1:]...)
			break
		}
	}
}

// remove takes a closed window out of the world
func (ws *Windows) remove(w *Window) {
	w.destroy()
	ws.gc.World.RemoveStructure(w.handle.ID)
	delete(ws.byID, w.handle.ID)
	for i, other := range ws.order {
		if other == w {
			ws.order = append(ws.order[:i], ws.order[i+1:]...)
			break
		}
	}
	ws.statStructures.Store(int64(len(ws.order)))
}

// destroy stops the window's tasks, drops its files and unregisters it
func (w *Window) destroy() {
	w.state = WindowClosed
	w.cancel()
	for _, f := range w.files {
		w.windows.gc.World.RemoveCollider(f.collider)
		delete(w.windows.byFile, f.collider)
		f.state = FileDestroyed
	}
	w.files = nil
	w.life.Destroy()
}
