package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures selections, state transitions, memory requests and faults.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during one simulation run.
type SimulationTrace struct {
	RunID       string
	Config      TraceConfig
	Selections  []SelectionRecord
	Transitions []TransitionRecord
	Memory      []MemoryRecord
	Faults      []FaultRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(runID string, config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		RunID:       runID,
		Config:      config,
		Selections:  make([]SelectionRecord, 0),
		Transitions: make([]TransitionRecord, 0),
		Memory:      make([]MemoryRecord, 0),
		Faults:      make([]FaultRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordSelection appends a scheduler selection record.
func (st *SimulationTrace) RecordSelection(record SelectionRecord) {
	st.Selections = append(st.Selections, record)
}

// RecordTransition appends a state transition record.
func (st *SimulationTrace) RecordTransition(record TransitionRecord) {
	st.Transitions = append(st.Transitions, record)
}

// RecordMemory appends an MMU request record.
func (st *SimulationTrace) RecordMemory(record MemoryRecord) {
	st.Memory = append(st.Memory, record)
}

// RecordFault appends a process fault record.
func (st *SimulationTrace) RecordFault(record FaultRecord) {
	st.Faults = append(st.Faults, record)
}
