package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/winhop/vmath"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
}

func TestValidateRejectsInvertedRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"count", func(c *Config) { c.Spawn.Count = IntRange{Min: 5, Max: 2} }},
		{"distance", func(c *Config) { c.Spawn.Distance = FloatRange{Min: 30, Max: 10} }},
		{"width", func(c *Config) { c.Spawn.Width = FloatRange{Min: 20, Max: 4} }},
		{"height", func(c *Config) { c.Spawn.Height = FloatRange{Min: 20, Max: 4} }},
		{"files", func(c *Config) { c.Window.Files = IntRange{Min: 9, Max: 3} }},
		{"sweep delay", func(c *Config) { c.Sweeper.Delay = DurationRange{Min: time.Second, Max: time.Millisecond} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("Expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestValidateRejectsBadScalars(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero rays", func(c *Config) { c.Spawn.RayCount = 0 }},
		{"too many rays", func(c *Config) { c.Spawn.RayCount = 361 }},
		{"negative separation", func(c *Config) { c.Spawn.MinSeparation = -1 }},
		{"negative delay", func(c *Config) { c.Spawn.Delay = -time.Second }},
		{"zero tick", func(c *Config) { c.Game.TickInterval = 0 }},
		{"loud audio", func(c *Config) { c.Audio.Volume = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestDegenerateCountRangeIsValid(t *testing.T) {
	cfg := Default()
	cfg.Spawn.Count = IntRange{Min: 1, Max: 1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected [1,1) to be valid, got %v", err)
	}

	rng := vmath.NewFastRand(7)
	for i := 0; i < 100; i++ {
		if got := cfg.Spawn.Count.Pick(rng); got != 1 {
			t.Fatalf("Expected degenerate range to yield 1, got %d", got)
		}
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "winhop.yaml")
	data := []byte(`
debug: true
spawn:
  count:
    min: 2
    max: 3
  delay: 250ms
  ray_count: 8
game:
  start_window:
    width: 10
    height: 6
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("WINHOP_SPAWN_MIN_SEPARATION", "4.5")
	t.Setenv("WINHOP_SWEEPER_DELAY_MAX", "9s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Debug {
		t.Error("Expected debug from file")
	}
	if cfg.Spawn.Count != (IntRange{Min: 2, Max: 3}) {
		t.Errorf("Unexpected count range %+v", cfg.Spawn.Count)
	}
	if cfg.Spawn.Delay != 250*time.Millisecond {
		t.Errorf("Expected 250ms delay, got %s", cfg.Spawn.Delay)
	}
	if cfg.Spawn.RayCount != 8 {
		t.Errorf("Expected 8 rays, got %d", cfg.Spawn.RayCount)
	}
	if cfg.Game.StartWindow != (vmath.Size{Width: 10, Height: 6}) {
		t.Errorf("Unexpected start window %+v", cfg.Game.StartWindow)
	}
	if cfg.Spawn.MinSeparation != 4.5 {
		t.Errorf("Expected env separation 4.5, got %g", cfg.Spawn.MinSeparation)
	}
	if cfg.Sweeper.Delay.Max != 9*time.Second {
		t.Errorf("Expected env sweep delay max 9s, got %s", cfg.Sweeper.Delay.Max)
	}
	// Untouched values keep defaults
	if cfg.Spawn.Distance != Default().Spawn.Distance {
		t.Errorf("Expected default distance range, got %+v", cfg.Spawn.Distance)
	}
}

func TestLoadFailsFastOnInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("spawn:\n  count:\n    min: 4\n    max: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Expected ErrInvalidRange, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
