package spawn

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/winhop/config"
	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/placement"
	"github.com/lixenwraith/winhop/vmath"
	"github.com/lixenwraith/winhop/world"
)

const testDelay = 400 * time.Millisecond

// worldInstantiator places structures in a world and records every call
type worldInstantiator struct {
	w     *world.World
	calls []vmath.Vec2
	fail  error
}

func (i *worldInstantiator) SpawnStructure(pos vmath.Vec2, size vmath.Size) (world.Handle, error) {
	i.calls = append(i.calls, pos)
	if i.fail != nil {
		return world.Handle{}, i.fail
	}
	return i.w.AddStructure(pos, size)
}

func newTestContext(count int) (*engine.GameContext, *engine.MockTimeProvider) {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.Spawn.Count = config.IntRange{Min: count, Max: count}
	cfg.Spawn.Distance = config.FloatRange{Min: 15, Max: 15}
	cfg.Spawn.Width = config.FloatRange{Min: 4, Max: 4}
	cfg.Spawn.Height = config.FloatRange{Min: 4, Max: 4}
	cfg.Spawn.MinSeparation = 1
	cfg.Spawn.Delay = testDelay
	cfg.Spawn.RayCount = 8

	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	return engine.NewGameContext(cfg, clock), clock
}

func newTestSequencer(t *testing.T, gc *engine.GameContext, probe placement.Probe) (*Sequencer, *worldInstantiator) {
	t.Helper()
	inst := &worldInstantiator{w: gc.World}
	if probe == nil {
		probe = gc.World
	}
	seq := NewSequencer(gc, probe, inst)
	if err := seq.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return seq, inst
}

func tick(gc *engine.GameContext, clock *engine.MockTimeProvider, d time.Duration) {
	clock.Advance(d)
	gc.Tick()
}

func TestDegenerateCountSpawnsExactlyOne(t *testing.T) {
	// [1,1) is empty under min-inclusive max-exclusive; the degenerate range yields min
	gc, clock := newTestContext(1)
	seq, inst := newTestSequencer(t, gc, nil)
	gc.Transition(engine.PhaseInGame)

	for run := 1; run <= 5; run++ {
		if !seq.RequestGeneration(vmath.Vec2{}) {
			t.Fatalf("run %d: sequence finished without suspending", run)
		}
		if len(inst.calls) != run {
			t.Fatalf("run %d: %d instantiate calls, want %d", run, len(inst.calls), run)
		}
		tick(gc, clock, testDelay)
		if gc.Scheduler.Len() != 0 {
			t.Fatalf("run %d: sequence still scheduled after its only window", run)
		}
	}

	if got := gc.Status.Ints.Get(parameter.StatSpawnPlaced).Load(); got != 5 {
		t.Errorf("placed = %d, want 5", got)
	}
	if got := len(gc.World.Structures()); got != 5 {
		t.Errorf("structures = %d, want 5", got)
	}
}

func TestEmptyResultSkipsWithoutDelay(t *testing.T) {
	gc, _ := newTestContext(3)
	blocked := placement.ProbeFunc(func(vmath.Vec2, vmath.Vec2, float64, placement.ObstacleClass) bool {
		return true
	})
	seq, inst := newTestSequencer(t, gc, blocked)
	gc.Transition(engine.PhaseInGame)

	if seq.RequestGeneration(vmath.Vec2{}) {
		t.Fatal("fully blocked sequence should finish in its first step")
	}
	if len(inst.calls) != 0 {
		t.Errorf("instantiate called %d times", len(inst.calls))
	}
	if got := gc.Status.Ints.Get(parameter.StatSpawnSkipped).Load(); got != 3 {
		t.Errorf("skipped = %d, want 3", got)
	}
	if gc.Scheduler.Len() != 0 {
		t.Error("nothing should stay scheduled")
	}
}

func TestDelayPacing(t *testing.T) {
	gc, clock := newTestContext(3)
	seq, inst := newTestSequencer(t, gc, nil)
	gc.Transition(engine.PhaseInGame)

	seq.RequestGeneration(vmath.Vec2{})
	if len(inst.calls) != 1 {
		t.Fatalf("first window should spawn immediately, got %d calls", len(inst.calls))
	}

	tick(gc, clock, testDelay-time.Millisecond)
	if len(inst.calls) != 1 {
		t.Fatalf("second window spawned before the delay elapsed")
	}

	tick(gc, clock, time.Millisecond)
	if len(inst.calls) != 2 {
		t.Fatalf("calls = %d after one delay, want 2", len(inst.calls))
	}

	tick(gc, clock, testDelay)
	if len(inst.calls) != 3 {
		t.Fatalf("calls = %d after two delays, want 3", len(inst.calls))
	}

	tick(gc, clock, testDelay)
	if gc.Scheduler.Len() != 0 {
		t.Error("sequence should finish after its last window")
	}

	// Every window is a new obstacle, so no two share a position
	seen := make(map[vmath.Vec2]bool)
	for _, p := range inst.calls {
		if seen[p] {
			t.Errorf("two windows placed at %v", p)
		}
		seen[p] = true
	}
}

func TestCancelledAtNextSuspension(t *testing.T) {
	gc, clock := newTestContext(3)
	seq, inst := newTestSequencer(t, gc, nil)
	gc.Transition(engine.PhaseInGame)

	seq.RequestGeneration(vmath.Vec2{})
	gc.Transition(engine.PhaseDying)

	if seq.Active() {
		t.Error("Dying should close the generation scope")
	}

	tick(gc, clock, testDelay)
	if len(inst.calls) != 1 {
		t.Errorf("calls = %d after cancellation, want 1", len(inst.calls))
	}
	if gc.Scheduler.Len() != 0 {
		t.Error("cancelled sequence should be dropped")
	}
	if got := gc.Status.Ints.Get(parameter.StatSpawnCancelled).Load(); got != 1 {
		t.Errorf("cancelled = %d, want 1", got)
	}
}

func TestRequestOutsideInGameIgnored(t *testing.T) {
	gc, _ := newTestContext(1)
	seq, inst := newTestSequencer(t, gc, nil)

	if seq.RequestGeneration(vmath.Vec2{}) {
		t.Error("generation in MenuUI should be ignored")
	}
	if len(inst.calls) != 0 {
		t.Errorf("instantiate called %d times", len(inst.calls))
	}
}

func TestInstantiateErrorCountsAsSkip(t *testing.T) {
	gc, _ := newTestContext(2)
	seq, inst := newTestSequencer(t, gc, nil)
	inst.fail = errors.New("no room")
	gc.Transition(engine.PhaseInGame)

	if seq.RequestGeneration(vmath.Vec2{}) {
		t.Error("sequence with only failed windows should not suspend")
	}
	if len(inst.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(inst.calls))
	}
	if got := gc.Status.Ints.Get(parameter.StatSpawnSkipped).Load(); got != 2 {
		t.Errorf("skipped = %d, want 2", got)
	}
}

func TestStartCatchesUpWithInGame(t *testing.T) {
	gc, _ := newTestContext(1)
	gc.Transition(engine.PhaseInGame)

	inst := &worldInstantiator{w: gc.World}
	seq := NewSequencer(gc, gc.World, inst)
	if seq.Active() {
		t.Fatal("scope should open only once the sequencer starts")
	}
	if err := seq.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !seq.Active() {
		t.Error("Start in InGame should open the scope")
	}

	seq.Destroy()
	if seq.Active() || gc.Store.Registered(seq) {
		t.Error("Destroy should close the scope and unregister")
	}
}

func TestNewRoundGetsFreshScope(t *testing.T) {
	gc, clock := newTestContext(3)
	seq, inst := newTestSequencer(t, gc, nil)

	gc.Transition(engine.PhaseInGame)
	seq.RequestGeneration(vmath.Vec2{X: -60})

	gc.Transition(engine.PhaseGameOverUI)
	gc.Transition(engine.PhaseInGame)
	seq.RequestGeneration(vmath.Vec2{X: 60})

	if len(inst.calls) != 2 {
		t.Fatalf("calls = %d, want one per round", len(inst.calls))
	}

	tick(gc, clock, testDelay)
	if len(inst.calls) != 3 {
		t.Fatalf("calls = %d, only the new round should continue", len(inst.calls))
	}
	if last := inst.calls[2]; last.X < 0 {
		t.Errorf("window from the cancelled round placed at %v", last)
	}
}
