package system

import (
	"time"

	"github.com/lixenwraith/winhop/audio"
	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/vmath"
	"github.com/lixenwraith/winhop/world"
)

// FileState tracks a collectible file
type FileState uint8

const (
	FileIdle FileState = iota
	FileGlitching
	FileDestroyed
)

var (
	fileNameParts = []string{"tax", "holiday", "cat", "budget", "secret", "final", "backup", "invoice", "meme", "draft"}
	fileExts      = []string{"doc", "xls", "jpg", "mp3", "zip", "txt", "pdf"}
)

// fileName builds a random name like "cat_budget.xls"
func fileName(rng *vmath.FastRand) string {
	return fileNameParts[rng.Intn(len(fileNameParts))] + "_" +
		fileNameParts[rng.Intn(len(fileNameParts))] + "." +
		fileExts[rng.Intn(len(fileExts))]
}

// File is a collectible inside a window
// Touching it glitches it for FileDelay, then it is destroyed and scored
type File struct {
	Name     string
	Position vmath.Vec2

	window   *Window
	collider world.ColliderID
	state    FileState
}

func (f *File) State() FileState {
	return f.state
}

// Touch starts the destroy countdown, false if already touched
func (f *File) Touch() bool {
	if f.state != FileIdle {
		return false
	}
	f.state = FileGlitching

	ws := f.window.windows
	ws.gc.Scheduler.Go(f.window.ctx, engine.After(ws.cfg.FileDelay, func(time.Time) {
		f.state = FileDestroyed
		ws.gc.Score.IncrementDestroyedFiles()
		ws.cues.Play(audio.CueFile)
		ws.removeFile(f)
	}))
	return true
}
