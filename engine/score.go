package engine

import "github.com/lixenwraith/winhop/parameter"

// Score tracks visited windows and destroyed files for the current run
// Owned by GameContext, cleared when a run starts
type Score struct {
	visitedWindows int
	destroyedFiles int
}

// Value returns the weighted score
func (s *Score) Value() int {
	return s.visitedWindows*parameter.ScoreVisitedWindow + s.destroyedFiles*parameter.ScoreDestroyedFile
}

func (s *Score) Clear() {
	s.visitedWindows = 0
	s.destroyedFiles = 0
}

func (s *Score) IncrementVisitedWindows() {
	s.visitedWindows++
}

func (s *Score) IncrementDestroyedFiles() {
	s.destroyedFiles++
}

func (s *Score) VisitedWindows() int {
	return s.visitedWindows
}

func (s *Score) DestroyedFiles() int {
	return s.destroyedFiles
}
