// Defines the ProcessControlBlock that models one simulated process's lifecycle.
// Tracks identity, state, and the cursor into the shared OperationCatalog.

package sim

import (
	"errors"
	"fmt"
)

// ProcessState represents the lifecycle state of a PCB.
type ProcessState string

const (
	StateNew     ProcessState = "New"
	StateReady   ProcessState = "Ready"
	StateRunning ProcessState = "Running"
	StateExit    ProcessState = "Exit"
)

// nextState is the only legal successor of each state. Exit is terminal.
var nextState = map[ProcessState]ProcessState{
	StateNew:     StateReady,
	StateReady:   StateRunning,
	StateRunning: StateExit,
}

// ErrIllegalTransition is returned when a PCB is asked to skip or repeat a state.
var ErrIllegalTransition = errors.New("illegal process state transition")

// ProcessOutcome records how a process left the Running state.
type ProcessOutcome string

const (
	OutcomePending   ProcessOutcome = ""          // not yet exited
	OutcomeCompleted ProcessOutcome = "completed" // exhausted its operations
	OutcomeFaulted   ProcessOutcome = "faulted"   // terminated early on a failed operation
)

// ProcessControlBlock is the runtime record of one simulated process.
// Created by BuildProcessTable; mutated only by the Simulator.
type ProcessControlBlock struct {
	ID            int            // 0-based ordinal among A(start) markers
	State         ProcessState   // New, Ready, Running, Exit
	StartIndex    int            // catalog index of this process's A(start) marker; never changes
	Cursor        int            // index of the current operation in the catalog
	CurrentCycles int            // cycle count of the operation at Cursor
	Outcome       ProcessOutcome // set on transition to Exit
	History       []ProcessState // every state entered, in order

	catalog *OperationCatalog
}

// NewProcessControlBlock creates a PCB in the New state positioned at cursor.
func NewProcessControlBlock(id int, catalog *OperationCatalog, cursor int) *ProcessControlBlock {
	p := &ProcessControlBlock{
		ID:      id,
		State:      StateNew,
		StartIndex: cursor,
		Cursor:     cursor,
		History:    []ProcessState{StateNew},
		catalog:    catalog,
	}
	if op, ok := catalog.At(cursor); ok {
		p.CurrentCycles = op.Cycles
	}
	return p
}

// Transition moves the PCB to the next lifecycle state.
// Returns ErrIllegalTransition if to is not the direct successor of the current state.
func (p *ProcessControlBlock) Transition(to ProcessState) error {
	next, ok := nextState[p.State]
	if !ok || next != to {
		return fmt.Errorf("process %d: %s -> %s: %w", p.ID, p.State, to, ErrIllegalTransition)
	}
	p.State = to
	p.History = append(p.History, to)
	return nil
}

// Current returns the operation under the cursor, false once past the end of the catalog.
func (p *ProcessControlBlock) Current() (Operation, bool) {
	return p.catalog.At(p.Cursor)
}

// Advance moves the cursor forward by one operation and refreshes CurrentCycles.
func (p *ProcessControlBlock) Advance() {
	p.Cursor++
	if op, ok := p.catalog.At(p.Cursor); ok {
		p.CurrentCycles = op.Cycles
	} else {
		p.CurrentCycles = 0
	}
}

// This method returns a human-readable string representation of a PCB.
func (p ProcessControlBlock) String() string {
	return fmt.Sprintf("PCB: (ID: %d, State: %s, Cursor: %d, Cycles: %d)", p.ID, p.State, p.Cursor, p.CurrentCycles)
}
