package engine

import "fmt"

// Phase is the process-wide game phase, exactly one is active at a time
type Phase uint8

const (
	PhaseCreated Phase = iota
	PhaseMenuUI
	PhaseInGame
	PhaseDying
	PhaseGameOverUI
)

var phaseNames = [...]string{
	PhaseCreated:    "Created",
	PhaseMenuUI:     "MenuUI",
	PhaseInGame:     "InGame",
	PhaseDying:      "Dying",
	PhaseGameOverUI: "GameOverUI",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// Valid reports whether p is one of the five defined phases
func (p Phase) Valid() bool {
	return int(p) < len(phaseNames)
}

// Active reports whether gameplay sequences may run in this phase
// Every phase other than InGame is terminal or inactive
func (p Phase) Active() bool {
	return p == PhaseInGame
}

// ParsePhase resolves a phase by its String name
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}
