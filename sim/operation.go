// Defines the Operation and OperationCatalog types that describe the simulated program.
// The catalog is built once by the script parser and shared read-only by every PCB.

package sim

import (
	"fmt"
)

// OpKind identifies the component an operation belongs to.
type OpKind int

const (
	KindSystem      OpKind = iota // S: simulator start/end markers
	KindCompute                   // P: processor burst
	KindAppBoundary               // A: application start/end markers
	KindMemory                    // M: MMU allocate/access request
	KindInput                     // I: input device burst
	KindOutput                    // O: output device burst
)

// Action literals that carry meaning inside the engine.
const (
	ActionStart    = "start"
	ActionEnd      = "end"
	ActionRun      = "run"
	ActionAllocate = "allocate"
	ActionAccess   = "access"
)

var kindLetters = map[OpKind]byte{
	KindSystem:      'S',
	KindCompute:     'P',
	KindAppBoundary: 'A',
	KindMemory:      'M',
	KindInput:       'I',
	KindOutput:      'O',
}

var lettersToKind = func() map[byte]OpKind {
	m := make(map[byte]OpKind, len(kindLetters))
	for k, l := range kindLetters {
		m[l] = k
	}
	return m
}()

// KindFromLetter maps a script component letter to its OpKind.
func KindFromLetter(letter byte) (OpKind, bool) {
	k, ok := lettersToKind[letter]
	return k, ok
}

// Letter returns the script component letter for the kind.
func (k OpKind) Letter() byte {
	return kindLetters[k]
}

func (k OpKind) String() string {
	switch k {
	case KindSystem:
		return "System"
	case KindCompute:
		return "Compute"
	case KindAppBoundary:
		return "AppBoundary"
	case KindMemory:
		return "Memory"
	case KindInput:
		return "Input"
	case KindOutput:
		return "Output"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// MaxCycles is the largest cycle count a script entry may carry (nine digits, enough
// for any encoded memory request).
const MaxCycles = 999_999_999

// Operation is one unit of work from the script. Immutable after parse.
type Operation struct {
	Kind   OpKind
	Action string
	Cycles int
}

// IsProcessStart reports whether op opens an application (A(start)).
func (op Operation) IsProcessStart() bool {
	return op.Kind == KindAppBoundary && op.Action == ActionStart
}

func (op Operation) String() string {
	return fmt.Sprintf("%c(%s)%d", op.Kind.Letter(), op.Action, op.Cycles)
}

// OperationCatalog is the ordered, immutable sequence of operations for a program.
// Construct with NewOperationCatalog; the zero value is an empty catalog.
type OperationCatalog struct {
	ops []Operation
}

// NewOperationCatalog copies ops into a new catalog so later mutation of the
// caller's slice cannot leak into PCBs holding cursors into it.
func NewOperationCatalog(ops []Operation) *OperationCatalog {
	owned := make([]Operation, len(ops))
	copy(owned, ops)
	return &OperationCatalog{ops: owned}
}

// Len returns the number of operations. Safe on a nil catalog.
func (c *OperationCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ops)
}

// At returns the operation at index i and whether i is in range.
func (c *OperationCatalog) At(i int) (Operation, bool) {
	if c == nil || i < 0 || i >= len(c.ops) {
		return Operation{}, false
	}
	return c.ops[i], true
}

// CountProcessStarts returns the number of A(start) markers.
func (c *OperationCatalog) CountProcessStarts() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.ops[i].IsProcessStart() {
			n++
		}
	}
	return n
}
