package parameter

import "time"

// Window Generation
const (
	// MinNewWindowCount is the inclusive lower bound of windows requested per generation
	MinNewWindowCount = 1

	// MaxNewWindowCount is the exclusive upper bound of windows requested per generation
	MaxNewWindowCount = 4

	// MinSpawnDistance and MaxSpawnDistance bound the radius a new window is placed at
	MinSpawnDistance = 14.0
	MaxSpawnDistance = 24.0

	// MinSpawnSeparation is the wall-free clearance required around a candidate center
	MinSpawnSeparation = 3.0

	// TimeBetweenSpawns is the pause after each successful window spawn
	TimeBetweenSpawns = 400 * time.Millisecond

	// RadialRayCount is the number of directions sampled around the origin
	RadialRayCount = 16
)

// Window Footprint
const (
	WindowMinWidth  = 8.0
	WindowMaxWidth  = 16.0
	WindowMinHeight = 5.0
	WindowMaxHeight = 9.0
)

// Window Behavior
const (
	// WindowOpenDuration is the open/close animation length
	WindowOpenDuration = 300 * time.Millisecond

	// WindowWallThickness is the width of the collider frame around a window interior
	WindowWallThickness = 1.0

	// WindowMinFiles and WindowMaxFiles bound the collectible files per window
	WindowMinFiles = 1
	WindowMaxFiles = 4

	// FileGridWidth and FileGridHeight define the slot size of the file grid inside a window
	FileGridWidth  = 3.0
	FileGridHeight = 2.0

	// FileDestroyDelay is how long a touched file glitches before it is removed
	FileDestroyDelay = 600 * time.Millisecond
)

// Start Window
const (
	StartWindowWidth  = 12.0
	StartWindowHeight = 7.0
)

// Score
const (
	ScoreVisitedWindow = 100
	ScoreDestroyedFile = 10
)

// Player
const (
	// PlayerStep is the distance covered per movement key press
	PlayerStep = 1.0

	// JumpMinCharge is the minimum charge time for a jump to be executed
	JumpMinCharge = 150 * time.Millisecond

	// JumpFillDuration is the charge time needed for a full-strength jump
	JumpFillDuration = 1500 * time.Millisecond

	// JumpMaxDistance is the distance of a full-strength jump
	JumpMaxDistance = 28.0

	// JumpAirborneDuration is the time spent in the air before landing
	JumpAirborneDuration = 350 * time.Millisecond

	// JumpCooldown is the delay after landing before another charge can start
	JumpCooldown = 200 * time.Millisecond

	// DyingDelay is the time between entering Dying and the game over screen
	DyingDelay = 2 * time.Second
)

// Antivirus Sweeper
const (
	SweepDuration = 3 * time.Second
	SweepDelayMin = 4 * time.Second
	SweepDelayMax = 8 * time.Second

	// SweepBandWidth is the width of the scanner band in world units
	SweepBandWidth = 2.0

	// SweepHalfSpan is half the horizontal span swept around the lock position
	SweepHalfSpan = 30.0
)

// Arena
const (
	// ArenaHalfWidth and ArenaHalfHeight bound the playable world around the origin
	ArenaHalfWidth  = 200.0
	ArenaHalfHeight = 120.0
)
