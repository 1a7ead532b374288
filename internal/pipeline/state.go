package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// State is a step of a single portfolio generation.
type State string

const (
	StateIdle              State = "idle"
	StateValidating        State = "validating"
	StateGeneratingContent State = "generating_content"
	StateGeneratingDesign  State = "generating_design"
	StateRendered          State = "rendered"
	StateFailed            State = "failed"
)

// ErrInvalidTransition is returned for an edge the machine does not allow.
var ErrInvalidTransition = errors.New("invalid state transition")

var transitions = map[State][]State{
	StateIdle:              {StateValidating},
	StateValidating:        {StateGeneratingContent, StateFailed},
	StateGeneratingContent: {StateGeneratingDesign, StateFailed},
	StateGeneratingDesign:  {StateRendered, StateFailed},
	StateRendered:          {StateIdle, StateValidating},
	StateFailed:            {StateIdle},
}

// Machine tracks the state of one generation.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine returns a machine in StateIdle.
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Transition moves the machine to next, or returns ErrInvalidTransition.
func (m *Machine) Transition(next State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !CanTransition(m.state, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, next)
	}
	m.state = next
	return nil
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}
