// Package trace provides decision-trace recording for process scheduling analysis.
// This package has no dependencies on sim/; it stores pure data types.
// Clock fields are elapsed simulated time in nanoseconds.
package trace

// SelectionRecord captures the scheduler handing the CPU to a process.
type SelectionRecord struct {
	ProcessID   int
	Clock       int64
	Policy      string
	EstimatedMs int64
}

// TransitionRecord captures one PCB state change.
type TransitionRecord struct {
	ProcessID int
	Clock     int64
	From      string
	To        string
}

// MemoryRecord captures a single MMU allocate or access decision.
type MemoryRecord struct {
	ProcessID int
	Clock     int64
	Op        string // "allocate" or "access"
	Segment   int
	Base      int
	Length    int
	Granted   bool
}

// FaultRecord captures a process terminated early.
type FaultRecord struct {
	ProcessID      int
	Clock          int64
	OperationIndex int    // catalog index of the failed operation
	Reason         string // e.g. "MMU access denied"
}
