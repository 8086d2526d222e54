package engine

import (
	"context"
	"testing"
	"time"

	"github.com/lixenwraith/winhop/status"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, got t1=%v, t2=%v", t1, t2)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if !mock.Now().Equal(start) {
		t.Errorf("Expected %v, got %v", start, mock.Now())
	}
	if got := mock.Advance(90 * time.Minute); !got.Equal(start.Add(90 * time.Minute)) {
		t.Errorf("Advance returned %v", got)
	}
	if !mock.Now().Equal(start.Add(90 * time.Minute)) {
		t.Error("Now should report the advanced time")
	}
}

func TestPausableClock(t *testing.T) {
	wall := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(wall)
	start := pc.Now()

	wall.Advance(time.Second)
	if got := pc.Now().Sub(start); got != time.Second {
		t.Fatalf("elapsed = %v, want 1s", got)
	}

	if !pc.Toggle() || !pc.IsPaused() {
		t.Fatal("Toggle should pause")
	}
	wall.Advance(3 * time.Second)
	if got := pc.Now().Sub(start); got != time.Second {
		t.Errorf("paused clock advanced to %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 3*time.Second {
		t.Errorf("ongoing pause = %v", got)
	}

	pc.Resume()
	pc.Resume()
	wall.Advance(time.Second)
	if got := pc.Now().Sub(start); got != 2*time.Second {
		t.Errorf("elapsed after resume = %v, want 2s", got)
	}
}

// Timed sequences freeze while the game clock is paused
func TestSchedulerOnPausableClock(t *testing.T) {
	wall := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(wall)
	s := NewScheduler(pc, status.NewRegistry())

	fired := false
	s.Go(context.Background(), After(time.Second, func(time.Time) { fired = true }))

	pc.Pause()
	wall.Advance(5 * time.Second)
	s.Tick(pc.Now())
	if fired {
		t.Fatal("task fired while paused")
	}

	pc.Resume()
	wall.Advance(time.Second)
	s.Tick(pc.Now())
	if !fired {
		t.Error("task should fire after one second of game time")
	}
}
