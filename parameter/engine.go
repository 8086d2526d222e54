package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameUpdateInterval is the game logic update interval (scheduler tick)
	GameUpdateInterval = 50 * time.Millisecond

	// EventChannelSize is the buffer of the terminal event channel feeding the game loop
	EventChannelSize = 64
)

// Metric keys shared between packages
const (
	StatTransitions    = "state.transitions"
	StatNotifyFailures = "state.failures"
	StatPhase          = "state.phase"
	StatSpawnPlaced    = "spawn.placed"
	StatSpawnSkipped   = "spawn.skipped"
	StatSpawnCancelled = "spawn.cancelled"
	StatSpawnDistance  = "spawn.last_distance"
	StatSchedulerTasks = "scheduler.tasks"
	StatStructures     = "world.structures"
	StatJumps          = "player.jumps"
	StatScans          = "sweeper.scans"
	StatCuesPlayed     = "audio.cues"
)
