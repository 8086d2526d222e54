package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/status"
)

// ErrPanic wraps a panic recovered from a phase handler
var ErrPanic = errors.New("phase handler panicked")

// PhaseHandler is implemented by every object that reacts to phase transitions
// Implementations must be comparable (pointer receivers), registry identity is ==
type PhaseHandler interface {
	// OnPhaseChange is called synchronously on the game loop goroutine
	// previous is whatever the store held before; no other assumption is valid
	OnPhaseChange(previous, next Phase) error
}

// NotifyError records one handler failure during a broadcast
type NotifyError struct {
	Handler  PhaseHandler
	Previous Phase
	Next     Phase
	Err      error
}

func (e NotifyError) Error() string {
	return fmt.Sprintf("%s on %s -> %s: %v", HandlerName(e.Handler), e.Previous, e.Next, e.Err)
}

// HandlerName identifies a handler in logs, Stringer implementations name themselves
func HandlerName(h PhaseHandler) string {
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", h)
}

func (e NotifyError) Unwrap() error {
	return e.Err
}

// StateStore holds the active phase and the ordered handler registry
//
// Ownership:
//   - Owned by GameContext, mutated only from the game loop goroutine
//   - No locking: a broadcast walks a snapshot taken at its start, so handlers may
//     register, unregister or transition again from inside OnPhaseChange
//   - A nested Transition runs to completion on its own snapshot before the outer
//     pass resumes; the outer pass keeps delivering its own (previous, next)
type StateStore struct {
	phase    Phase
	registry []PhaseHandler

	statTransitions *atomic.Int64
	statFailures    *atomic.Int64
	statPhase       *status.AtomicString
}

// NewStateStore creates a store starting at initial
func NewStateStore(initial Phase, reg *status.Registry) *StateStore {
	s := &StateStore{
		phase:           initial,
		statTransitions: reg.Ints.Get(parameter.StatTransitions),
		statFailures:    reg.Ints.Get(parameter.StatNotifyFailures),
		statPhase:       reg.Strings.Get(parameter.StatPhase),
	}
	s.statPhase.Store(initial.String())
	return s
}

// Phase returns the active phase
func (s *StateStore) Phase() Phase {
	return s.phase
}

// Len returns the number of registered handlers
func (s *StateStore) Len() int {
	return len(s.registry)
}

// Registered reports whether h is in the registry
func (s *StateStore) Registered(h PhaseHandler) bool {
	return s.indexOf(h) >= 0
}

// Register appends h to the registry
// Registration is deduplicated: a second call for the same handler returns false
// and the handler keeps its original position
func (s *StateStore) Register(h PhaseHandler) bool {
	if h == nil || s.indexOf(h) >= 0 {
		return false
	}
	s.registry = append(s.registry, h)
	return true
}

// Unregister removes h, absent handlers are a no-op returning false
func (s *StateStore) Unregister(h PhaseHandler) bool {
	i := s.indexOf(h)
	if i < 0 {
		return false
	}
	s.registry = append(s.registry[:i], s.registry[i+1:]...)
	return true
}

// Transition switches to next and notifies every handler registered at call time
// Returns the failures of this pass in registry order, nil when all succeeded
// Transition to the active phase is a no-op with no notifications
func (s *StateStore) Transition(next Phase) []NotifyError {
	previous := s.phase
	if previous == next {
		log.Printf("[state] already at %s, not changing", next)
		return nil
	}

	s.phase = next
	s.statTransitions.Add(1)
	s.statPhase.Store(next.String())
	log.Printf("[state] exiting %s", previous)

	snapshot := make([]PhaseHandler, len(s.registry))
	copy(snapshot, s.registry)

	var failures []NotifyError
	for _, h := range snapshot {
		if err := notify(h, previous, next); err != nil {
			ne := NotifyError{Handler: h, Previous: previous, Next: next, Err: err}
			failures = append(failures, ne)
			s.statFailures.Add(1)
			log.Printf("[state] WARNING: failed to update handler: %v", ne)
		}
	}

	log.Printf("[state] entered %s", next)
	return failures
}

// notify isolates one handler call, converting panics into errors
func notify(h PhaseHandler, previous, next Phase) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return h.OnPhaseChange(previous, next)
}

func (s *StateStore) indexOf(h PhaseHandler) int {
	for i, r := range s.registry {
		if r == h {
			return i
		}
	}
	return -1
}
