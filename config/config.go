// Package config loads game tunables from an optional YAML file followed by
// WINHOP_* environment overrides, then validates them before anything starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/vmath"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "WINHOP_"

var (
	// ErrInvalidRange is returned when a range has Min greater than Max
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidValue is returned for out-of-domain scalar settings
	ErrInvalidValue = errors.New("invalid value")
)

// IntRange is a uniform integer range, Min inclusive and Max exclusive
// Min == Max is a degenerate range that always yields Min
type IntRange struct {
	Min int `yaml:"min" env:"MIN"`
	Max int `yaml:"max" env:"MAX"`
}

// Pick draws a value from the range
func (r IntRange) Pick(rng *vmath.FastRand) int {
	return rng.IntRange(r.Min, r.Max)
}

func (r IntRange) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s: min %d > max %d: %w", name, r.Min, r.Max, ErrInvalidRange)
	}
	return nil
}

// FloatRange is a uniform float range, Min inclusive and Max exclusive
type FloatRange struct {
	Min float64 `yaml:"min" env:"MIN"`
	Max float64 `yaml:"max" env:"MAX"`
}

// Pick draws a value from the range
func (r FloatRange) Pick(rng *vmath.FastRand) float64 {
	return rng.FloatRange(r.Min, r.Max)
}

func (r FloatRange) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s: min %g > max %g: %w", name, r.Min, r.Max, ErrInvalidRange)
	}
	return nil
}

// DurationRange is a uniform duration range, Min inclusive and Max exclusive
type DurationRange struct {
	Min time.Duration `yaml:"min" env:"MIN"`
	Max time.Duration `yaml:"max" env:"MAX"`
}

// Pick draws a value from the range
func (r DurationRange) Pick(rng *vmath.FastRand) time.Duration {
	return time.Duration(rng.FloatRange(float64(r.Min), float64(r.Max)))
}

func (r DurationRange) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s: min %s > max %s: %w", name, r.Min, r.Max, ErrInvalidRange)
	}
	return nil
}

// Config is the complete set of runtime tunables
type Config struct {
	Debug bool   `yaml:"debug" env:"DEBUG"`
	Seed  uint64 `yaml:"seed" env:"SEED"`

	Game    GameConfig    `yaml:"game" envPrefix:"GAME_"`
	Spawn   SpawnConfig   `yaml:"spawn" envPrefix:"SPAWN_"`
	Window  WindowConfig  `yaml:"window" envPrefix:"WINDOW_"`
	Player  PlayerConfig  `yaml:"player" envPrefix:"PLAYER_"`
	Sweeper SweeperConfig `yaml:"sweeper" envPrefix:"SWEEPER_"`
	Audio   AudioConfig   `yaml:"audio" envPrefix:"AUDIO_"`
}

// GameConfig covers the loop and the arena
type GameConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	ArenaHalfWidth  float64       `yaml:"arena_half_width" env:"ARENA_HALF_WIDTH"`
	ArenaHalfHeight float64       `yaml:"arena_half_height" env:"ARENA_HALF_HEIGHT"`
	StartWindow     vmath.Size    `yaml:"start_window" envPrefix:"START_WINDOW_"`
}

// SpawnConfig drives the window generation sequence
type SpawnConfig struct {
	Count         IntRange      `yaml:"count" envPrefix:"COUNT_"`
	Distance      FloatRange    `yaml:"distance" envPrefix:"DISTANCE_"`
	Width         FloatRange    `yaml:"width" envPrefix:"WIDTH_"`
	Height        FloatRange    `yaml:"height" envPrefix:"HEIGHT_"`
	MinSeparation float64       `yaml:"min_separation" env:"MIN_SEPARATION"`
	Delay         time.Duration `yaml:"delay" env:"DELAY"`
	RayCount      int           `yaml:"ray_count" env:"RAY_COUNT"`
}

// WindowConfig covers window animation and file placement
type WindowConfig struct {
	OpenDuration  time.Duration `yaml:"open_duration" env:"OPEN_DURATION"`
	WallThickness float64       `yaml:"wall_thickness" env:"WALL_THICKNESS"`
	Files         IntRange      `yaml:"files" envPrefix:"FILES_"`
	FileGrid      vmath.Size    `yaml:"file_grid" envPrefix:"FILE_GRID_"`
	FileDelay     time.Duration `yaml:"file_delay" env:"FILE_DELAY"`
}

// PlayerConfig covers movement and the jump charge
type PlayerConfig struct {
	Step             float64       `yaml:"step" env:"STEP"`
	JumpMinCharge    time.Duration `yaml:"jump_min_charge" env:"JUMP_MIN_CHARGE"`
	JumpFillDuration time.Duration `yaml:"jump_fill_duration" env:"JUMP_FILL_DURATION"`
	JumpMaxDistance  float64       `yaml:"jump_max_distance" env:"JUMP_MAX_DISTANCE"`
	AirborneDuration time.Duration `yaml:"airborne_duration" env:"AIRBORNE_DURATION"`
	JumpCooldown     time.Duration `yaml:"jump_cooldown" env:"JUMP_COOLDOWN"`
	DyingDelay       time.Duration `yaml:"dying_delay" env:"DYING_DELAY"`
}

// SweeperConfig covers the antivirus scan loop
type SweeperConfig struct {
	Duration  time.Duration `yaml:"duration" env:"DURATION"`
	Delay     DurationRange `yaml:"delay" envPrefix:"DELAY_"`
	BandWidth float64       `yaml:"band_width" env:"BAND_WIDTH"`
	HalfSpan  float64       `yaml:"half_span" env:"HALF_SPAN"`
}

// AudioConfig covers cue playback
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" env:"ENABLED"`
	Volume  float64 `yaml:"volume" env:"VOLUME"`
}

// Default returns the configuration built from parameter constants
func Default() *Config {
	return &Config{
		Game: GameConfig{
			TickInterval:    parameter.GameUpdateInterval,
			ArenaHalfWidth:  parameter.ArenaHalfWidth,
			ArenaHalfHeight: parameter.ArenaHalfHeight,
			StartWindow:     vmath.Size{Width: parameter.StartWindowWidth, Height: parameter.StartWindowHeight},
		},
		Spawn: SpawnConfig{
			Count:         IntRange{Min: parameter.MinNewWindowCount, Max: parameter.MaxNewWindowCount},
			Distance:      FloatRange{Min: parameter.MinSpawnDistance, Max: parameter.MaxSpawnDistance},
			Width:         FloatRange{Min: parameter.WindowMinWidth, Max: parameter.WindowMaxWidth},
			Height:        FloatRange{Min: parameter.WindowMinHeight, Max: parameter.WindowMaxHeight},
			MinSeparation: parameter.MinSpawnSeparation,
			Delay:         parameter.TimeBetweenSpawns,
			RayCount:      parameter.RadialRayCount,
		},
		Window: WindowConfig{
			OpenDuration:  parameter.WindowOpenDuration,
			WallThickness: parameter.WindowWallThickness,
			Files:         IntRange{Min: parameter.WindowMinFiles, Max: parameter.WindowMaxFiles},
			FileGrid:      vmath.Size{Width: parameter.FileGridWidth, Height: parameter.FileGridHeight},
			FileDelay:     parameter.FileDestroyDelay,
		},
		Player: PlayerConfig{
			Step:             parameter.PlayerStep,
			JumpMinCharge:    parameter.JumpMinCharge,
			JumpFillDuration: parameter.JumpFillDuration,
			JumpMaxDistance:  parameter.JumpMaxDistance,
			AirborneDuration: parameter.JumpAirborneDuration,
			JumpCooldown:     parameter.JumpCooldown,
			DyingDelay:       parameter.DyingDelay,
		},
		Sweeper: SweeperConfig{
			Duration:  parameter.SweepDuration,
			Delay:     DurationRange{Min: parameter.SweepDelayMin, Max: parameter.SweepDelayMax},
			BandWidth: parameter.SweepBandWidth,
			HalfSpan:  parameter.SweepHalfSpan,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  parameter.AudioCueVolume,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path when
// path is non-empty, then environment overrides, then validation
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on settings that would otherwise produce silently wrong behavior
func (c *Config) Validate() error {
	var errs []error

	for _, err := range []error{
		c.Spawn.Count.validate("spawn.count"),
		c.Spawn.Distance.validate("spawn.distance"),
		c.Spawn.Width.validate("spawn.width"),
		c.Spawn.Height.validate("spawn.height"),
		c.Window.Files.validate("window.files"),
		c.Sweeper.Delay.validate("sweeper.delay"),
	} {
		if err != nil {
			errs = append(errs, err)
		}
	}

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalidValue)...))
		}
	}

	check(c.Game.TickInterval > 0, "game.tick_interval must be positive, got %s", c.Game.TickInterval)
	check(c.Game.ArenaHalfWidth > 0 && c.Game.ArenaHalfHeight > 0, "game arena must be positive")
	check(c.Game.StartWindow.Width > 0 && c.Game.StartWindow.Height > 0, "game.start_window must be positive")
	check(c.Spawn.Count.Min >= 0, "spawn.count.min must not be negative, got %d", c.Spawn.Count.Min)
	check(c.Spawn.Distance.Min >= 0, "spawn.distance.min must not be negative, got %g", c.Spawn.Distance.Min)
	check(c.Spawn.Width.Min > 0 && c.Spawn.Height.Min > 0, "spawn footprint must be positive")
	check(c.Spawn.MinSeparation >= 0, "spawn.min_separation must not be negative, got %g", c.Spawn.MinSeparation)
	check(c.Spawn.Delay >= 0, "spawn.delay must not be negative, got %s", c.Spawn.Delay)
	check(c.Spawn.RayCount >= 1 && c.Spawn.RayCount <= 360, "spawn.ray_count must be in [1, 360], got %d", c.Spawn.RayCount)
	check(c.Window.OpenDuration >= 0, "window.open_duration must not be negative")
	check(c.Window.WallThickness > 0, "window.wall_thickness must be positive")
	check(c.Window.Files.Min >= 0, "window.files.min must not be negative")
	check(c.Window.FileGrid.Width > 0 && c.Window.FileGrid.Height > 0, "window.file_grid must be positive")
	check(c.Player.Step > 0, "player.step must be positive")
	check(c.Player.JumpFillDuration > 0, "player.jump_fill_duration must be positive")
	check(c.Player.JumpMaxDistance > 0, "player.jump_max_distance must be positive")
	check(c.Player.DyingDelay >= 0, "player.dying_delay must not be negative")
	check(c.Sweeper.Duration > 0, "sweeper.duration must be positive")
	check(c.Sweeper.BandWidth > 0, "sweeper.band_width must be positive")
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0, 1], got %g", c.Audio.Volume)

	return errors.Join(errs...)
}
