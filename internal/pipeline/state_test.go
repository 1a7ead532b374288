package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateIdle, m.State())

	for _, next := range []State{StateValidating, StateGeneratingContent, StateGeneratingDesign, StateRendered, StateIdle} {
		require.NoError(t, m.Transition(next), "to %s", next)
		assert.Equal(t, next, m.State())
	}
}

func TestMachine_FailedReturnsToIdle(t *testing.T) {
	for _, from := range []State{StateValidating, StateGeneratingContent, StateGeneratingDesign} {
		t.Run(string(from), func(t *testing.T) {
			m := &Machine{state: from}
			require.NoError(t, m.Transition(StateFailed))
			require.NoError(t, m.Transition(StateIdle))
			assert.Equal(t, StateIdle, m.State())
		})
	}
}

func TestMachine_RejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		from, to State
	}{
		{StateIdle, StateRendered},
		{StateIdle, StateFailed},
		{StateIdle, StateGeneratingContent},
		{StateValidating, StateGeneratingDesign},
		{StateGeneratingContent, StateRendered},
		{StateFailed, StateRendered},
		{StateFailed, StateValidating},
		{StateRendered, StateFailed},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			m := &Machine{state: tt.from}
			err := m.Transition(tt.to)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, m.State(), "state unchanged after rejection")
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateRendered, StateValidating))
	assert.False(t, CanTransition(State("bogus"), StateIdle))
}
