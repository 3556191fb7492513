package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessState_Constants_HaveExpectedStringValues(t *testing.T) {
	assert.Equal(t, ProcessState("New"), StateNew)
	assert.Equal(t, ProcessState("Ready"), StateReady)
	assert.Equal(t, ProcessState("Running"), StateRunning)
	assert.Equal(t, ProcessState("Exit"), StateExit)
}

func TestNewProcessControlBlock_StartsNewAtCursor(t *testing.T) {
	catalog := program([]Operation{run(7)})

	// WHEN a PCB is created at the A(start) marker (index 1)
	p := NewProcessControlBlock(0, catalog, 1)

	// THEN it is New, positioned at the marker, with a one-entry history
	assert.Equal(t, StateNew, p.State)
	assert.Equal(t, 1, p.StartIndex)
	assert.Equal(t, 1, p.Cursor)
	assert.Equal(t, []ProcessState{StateNew}, p.History)
	assert.Equal(t, OutcomePending, p.Outcome)
}

func TestProcessControlBlock_Transition_FullLifecycle(t *testing.T) {
	p := NewProcessControlBlock(0, program(nil), 1)

	require.NoError(t, p.Transition(StateReady))
	require.NoError(t, p.Transition(StateRunning))
	require.NoError(t, p.Transition(StateExit))

	assert.Equal(t, []ProcessState{StateNew, StateReady, StateRunning, StateExit}, p.History)
}

func TestProcessControlBlock_Transition_RejectsSkipRepeatAndRestart(t *testing.T) {
	tests := []struct {
		name  string
		setup []ProcessState
		to    ProcessState
	}{
		{"skip ready", nil, StateRunning},
		{"skip to exit", nil, StateExit},
		{"repeat new", nil, StateNew},
		{"repeat ready", []ProcessState{StateReady}, StateReady},
		{"backwards", []ProcessState{StateReady, StateRunning}, StateReady},
		{"exit is terminal", []ProcessState{StateReady, StateRunning, StateExit}, StateNew},
		{"exit twice", []ProcessState{StateReady, StateRunning, StateExit}, StateExit},
		{"exit to empty state", []ProcessState{StateReady, StateRunning, StateExit}, ProcessState("")},
		{"new to empty state", nil, ProcessState("")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProcessControlBlock(0, program(nil), 1)
			for _, s := range tc.setup {
				require.NoError(t, p.Transition(s))
			}
			before := p.State
			historyLen := len(p.History)

			err := p.Transition(tc.to)

			assert.True(t, errors.Is(err, ErrIllegalTransition), "got %v", err)
			assert.Equal(t, before, p.State, "state must not change on illegal transition")
			assert.Len(t, p.History, historyLen)
		})
	}
}

func TestProcessControlBlock_Advance_MovesForwardAndTracksCycles(t *testing.T) {
	catalog := program([]Operation{run(4), input("keyboard", 9)})
	p := NewProcessControlBlock(0, catalog, 1)

	p.Advance()
	op, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, run(4), op)
	assert.Equal(t, 4, p.CurrentCycles)

	p.Advance()
	assert.Equal(t, 3, p.Cursor)
	assert.Equal(t, 9, p.CurrentCycles)
	assert.Equal(t, 1, p.StartIndex, "advancing must not move the start marker")
}

func TestProcessControlBlock_Advance_PastEndOfCatalog(t *testing.T) {
	catalog := NewOperationCatalog([]Operation{appStart()})
	p := NewProcessControlBlock(0, catalog, 0)

	p.Advance()

	_, ok := p.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, p.CurrentCycles)
}

func TestProcessControlBlock_String_IncludesState(t *testing.T) {
	p := NewProcessControlBlock(3, program(nil), 1)
	assert.Contains(t, p.String(), "New")
	assert.Contains(t, p.String(), "ID: 3")
}
