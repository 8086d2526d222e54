package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/status"
)

// recorder appends "name:prev->next" to a shared log and runs an optional hook
type recorder struct {
	name string
	log  *[]string
	hook func(previous, next Phase) error
}

func (r *recorder) OnPhaseChange(previous, next Phase) error {
	*r.log = append(*r.log, fmt.Sprintf("%s:%s->%s", r.name, previous, next))
	if r.hook != nil {
		return r.hook(previous, next)
	}
	return nil
}

func (r *recorder) String() string { return r.name }

func newRecorders(log *[]string, names ...string) []*recorder {
	out := make([]*recorder, len(names))
	for i, n := range names {
		out[i] = &recorder{name: n, log: log}
	}
	return out
}

func equalLog(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("log = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("log = %v, want %v", got, want)
		}
	}
}

func TestTransitionSamePhaseIsNoOp(t *testing.T) {
	var log []string
	s := NewStateStore(PhaseMenuUI, status.NewRegistry())
	for _, r := range newRecorders(&log, "a", "b") {
		s.Register(r)
	}

	if failures := s.Transition(PhaseMenuUI); failures != nil {
		t.Errorf("failures = %v", failures)
	}
	if len(log) != 0 {
		t.Errorf("no-op transition notified: %v", log)
	}
	if s.Len() != 2 || s.Phase() != PhaseMenuUI {
		t.Errorf("store changed: len=%d phase=%s", s.Len(), s.Phase())
	}
}

func TestBroadcastOrder(t *testing.T) {
	var log []string
	s := NewStateStore(PhaseMenuUI, status.NewRegistry())
	for _, r := range newRecorders(&log, "a", "b", "c") {
		s.Register(r)
	}

	s.Transition(PhaseInGame)
	equalLog(t, log, []string{
		"a:MenuUI->InGame",
		"b:MenuUI->InGame",
		"c:MenuUI->InGame",
	})
}

func TestRegisterDeduplicates(t *testing.T) {
	var log []string
	s := NewStateStore(PhaseMenuUI, status.NewRegistry())
	rs := newRecorders(&log, "a", "b")

	if !s.Register(rs[0]) || !s.Register(rs[1]) {
		t.Fatal("first registration should succeed")
	}
	if s.Register(rs[0]) {
		t.Error("second registration of a should be rejected")
	}
	if s.Register(nil) {
		t.Error("nil handler should be rejected")
	}

	s.Transition(PhaseInGame)
	equalLog(t, log, []string{"a:MenuUI->InGame", "b:MenuUI->InGame"})

	if !s.Unregister(rs[0]) || s.Unregister(rs[0]) {
		t.Error("unregister should succeed exactly once")
	}
	if s.Registered(rs[0]) || !s.Registered(rs[1]) {
		t.Error("registry membership wrong after unregister")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	var log []string
	s := NewStateStore(PhaseMenuUI, status.NewRegistry())
	rs := newRecorders(&log, "a", "b", "c")
	late := &recorder{name: "late", log: &log}

	rs[0].hook = func(previous, next Phase) error {
		if next == PhaseInGame {
			s.Unregister(rs[1])
			s.Register(late)
		}
		return nil
	}
	for _, r := range rs {
		s.Register(r)
	}

	s.Transition(PhaseInGame)
	equalLog(t, log, []string{
		"a:MenuUI->InGame",
		"b:MenuUI->InGame",
		"c:MenuUI->InGame",
	})

	log = log[:0]
	s.Transition(PhaseDying)
	equalLog(t, log, []string{
		"a:InGame->Dying",
		"c:InGame->Dying",
		"late:InGame->Dying",
	})
}

func TestFailureIsolation(t *testing.T) {
	var log []string
	reg := status.NewRegistry()
	s := NewStateStore(PhaseMenuUI, reg)
	rs := newRecorders(&log, "a", "b", "c", "d")

	errBoom := errors.New("boom")
	rs[1].hook = func(Phase, Phase) error { return errBoom }
	rs[2].hook = func(Phase, Phase) error { panic("kaput") }
	for _, r := range rs {
		s.Register(r)
	}

	failures := s.Transition(PhaseInGame)
	equalLog(t, log, []string{
		"a:MenuUI->InGame",
		"b:MenuUI->InGame",
		"c:MenuUI->InGame",
		"d:MenuUI->InGame",
	})

	if len(failures) != 2 {
		t.Fatalf("failures = %v, want 2", failures)
	}
	if failures[0].Handler != rs[1] || !errors.Is(failures[0], errBoom) {
		t.Errorf("first failure = %v", failures[0])
	}
	if failures[1].Handler != rs[2] || !errors.Is(failures[1], ErrPanic) {
		t.Errorf("second failure = %v", failures[1])
	}
	if failures[1].Previous != PhaseMenuUI || failures[1].Next != PhaseInGame {
		t.Errorf("failure phases = %s -> %s", failures[1].Previous, failures[1].Next)
	}

	if got := reg.Ints.Get(parameter.StatNotifyFailures).Load(); got != 2 {
		t.Errorf("failure metric = %d, want 2", got)
	}
	if s.Phase() != PhaseInGame {
		t.Errorf("phase = %s, failures must not roll back", s.Phase())
	}
}

func TestReentrantTransition(t *testing.T) {
	var log []string
	s := NewStateStore(PhaseMenuUI, status.NewRegistry())
	rs := newRecorders(&log, "a", "b")

	// a moves straight on to Dying when the game starts
	rs[0].hook = func(previous, next Phase) error {
		if next == PhaseInGame {
			s.Transition(PhaseDying)
		}
		return nil
	}
	for _, r := range rs {
		s.Register(r)
	}

	s.Transition(PhaseInGame)

	// The nested pass completes first, the outer pass keeps its own phases
	equalLog(t, log, []string{
		"a:MenuUI->InGame",
		"a:InGame->Dying",
		"b:InGame->Dying",
		"b:MenuUI->InGame",
	})
	if s.Phase() != PhaseDying {
		t.Errorf("phase = %s, want Dying", s.Phase())
	}
}

func TestTransitionMetrics(t *testing.T) {
	reg := status.NewRegistry()
	s := NewStateStore(PhaseMenuUI, reg)

	s.Transition(PhaseInGame)
	s.Transition(PhaseInGame)
	s.Transition(PhaseGameOverUI)

	if got := reg.Ints.Get(parameter.StatTransitions).Load(); got != 2 {
		t.Errorf("transitions = %d, want 2", got)
	}
	if got := reg.Strings.Get(parameter.StatPhase).Load(); got != "GameOverUI" {
		t.Errorf("phase metric = %q", got)
	}
}

func TestParsePhase(t *testing.T) {
	for p := PhaseCreated; p <= PhaseGameOverUI; p++ {
		got, err := ParsePhase(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePhase("Paused"); err == nil {
		t.Error("unknown phase should fail")
	}
	if Phase(9).Valid() || Phase(9).String() != "Phase(9)" {
		t.Error("out of range phase should be invalid")
	}
}

func TestManagedLifecycle(t *testing.T) {
	var log []string
	s := NewStateStore(PhaseMenuUI, status.NewRegistry())
	s.Transition(PhaseInGame)

	r := &recorder{name: "w", log: &log}
	m := NewManaged(s, r)
	if !s.Registered(r) {
		t.Fatal("NewManaged should register")
	}

	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	equalLog(t, log, []string{"w:Created->InGame"})

	m.Destroy()
	m.Destroy()
	if m.Alive() || s.Registered(r) {
		t.Error("Destroy should unregister")
	}

	s.Transition(PhaseDying)
	if len(log) != 1 {
		t.Errorf("destroyed handler notified: %v", log)
	}
}

func TestManagedStartFailure(t *testing.T) {
	var log []string
	reg := status.NewRegistry()
	s := NewStateStore(PhaseMenuUI, reg)
	r := &recorder{name: "w", log: &log, hook: func(Phase, Phase) error { panic("init") }}

	m := NewManaged(s, r)
	err := m.Start()

	var ne NotifyError
	if !errors.As(err, &ne) || ne.Previous != PhaseCreated || ne.Next != PhaseMenuUI {
		t.Fatalf("Start error = %v", err)
	}
	if !errors.Is(err, ErrPanic) {
		t.Error("panic should surface as ErrPanic")
	}
	if got := reg.Ints.Get(parameter.StatNotifyFailures).Load(); got != 1 {
		t.Errorf("failure metric = %d", got)
	}
	if !m.Alive() {
		t.Error("a failed start leaves the entity registered")
	}
}
