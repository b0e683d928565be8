package catalog

import "sync"

// Phase is the loading lifecycle position
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoaded:
		return "Loaded"
	case PhaseError:
		return "Error"
	}
	return "Loading"
}

// State is what is currently true about loading; exactly one phase at a
// time. Groups is only set when loaded, Err only when errored.
// Published values are replaced wholesale and must be treated as immutable
type State struct {
	Phase  Phase
	Groups []Group
	Err    error
}

func Loading() State {
	return State{Phase: PhaseLoading}
}

// Loaded wraps a built catalog; an empty catalog is still a loaded one,
// "nothing found" is not "couldn't search"
func Loaded(groups []Group) State {
	if groups == nil {
		groups = []Group{}
	}
	return State{Phase: PhaseLoaded, Groups: groups}
}

func Failed(err error) State {
	return State{Phase: PhaseError, Err: err}
}

// Store is a single-writer multi-reader cell holding the latest State.
// Observers get a capacity-1 channel with last-value-wins delivery; a slow
// consumer only ever misses intermediate values, never the newest one
type Store struct {
	mu        sync.RWMutex
	current   State
	observers []chan State
}

func NewStore() *Store {
	return &Store{current: Loading()}
}

// Current returns the latest published state
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Observe registers for state updates; the current state is delivered
// immediately, then at least once per transition
func (s *Store) Observe() <-chan State {
	s.mu.Lock()
	defer s.mu.Unlock()
	observer := make(chan State, 1)
	observer <- s.current
	s.observers = append(s.observers, observer)
	return observer
}

// Publish replaces the state and notifies every observer
func (s *Store) Publish(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = state
	for _, observer := range s.observers {
		// Drop an unread previous value so the send below can't block
		select {
		case <-observer:
		default:
		}
		observer <- state
	}
}
