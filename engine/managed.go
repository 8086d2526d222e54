package engine

import "log"

// Managed couples a handler's registration to its owner's lifetime
// Construction registers, Start delivers the catch-up transition, Destroy unregisters
type Managed struct {
	store     *StateStore
	handler   PhaseHandler
	started   bool
	destroyed bool
}

// NewManaged registers h with the store
func NewManaged(store *StateStore, h PhaseHandler) *Managed {
	store.Register(h)
	return &Managed{store: store, handler: h}
}

// Start delivers one synthetic Created -> current transition so late objects
// initialize against the phase the game already reached
// Only the first call delivers; later calls and calls after Destroy return nil
func (m *Managed) Start() error {
	if m.started || m.destroyed {
		return nil
	}
	m.started = true

	if err := notify(m.handler, PhaseCreated, m.store.Phase()); err != nil {
		ne := NotifyError{Handler: m.handler, Previous: PhaseCreated, Next: m.store.Phase(), Err: err}
		m.store.statFailures.Add(1)
		log.Printf("[state] WARNING: failed to start handler: %v", ne)
		return ne
	}
	return nil
}

// Destroy unregisters the handler, safe to call more than once
func (m *Managed) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.store.Unregister(m.handler)
}

// Alive reports whether Destroy has not been called
func (m *Managed) Alive() bool {
	return !m.destroyed
}

// Store returns the store the handler is registered with
func (m *Managed) Store() *StateStore {
	return m.store
}
