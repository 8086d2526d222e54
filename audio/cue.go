// Package audio synthesizes short cue tones for phase changes and gameplay
// moments and plays them through a pluggable sink.
package audio

// Cue identifies one synthesized sound
type Cue uint8

const (
	CueNone Cue = iota
	CueStart
	CueJump
	CueLand
	CueVisit
	CueFile
	CueScan
	CueDying
	CueGameOver
)

var cueNames = [...]string{
	CueNone:     "none",
	CueStart:    "start",
	CueJump:     "jump",
	CueLand:     "land",
	CueVisit:    "visit",
	CueFile:     "file",
	CueScan:     "scan",
	CueDying:    "dying",
	CueGameOver: "gameover",
}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}
