package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTraceLevel(t *testing.T) {
	assert.True(t, IsValidTraceLevel("none"))
	assert.True(t, IsValidTraceLevel("decisions"))
	assert.True(t, IsValidTraceLevel(""))
	assert.False(t, IsValidTraceLevel("detailed"))
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	assert.False(t, nilTrace.Enabled())
	assert.False(t, NewSimulationTrace("r", TraceConfig{Level: TraceLevelNone}).Enabled())
	assert.True(t, NewSimulationTrace("r", TraceConfig{Level: TraceLevelDecisions}).Enabled())
}

func TestSimulationTrace_RecordsAppendInOrder(t *testing.T) {
	st := NewSimulationTrace("run-7", TraceConfig{Level: TraceLevelDecisions})

	st.RecordSelection(SelectionRecord{ProcessID: 1, Policy: "SJF-N", EstimatedMs: 20})
	st.RecordSelection(SelectionRecord{ProcessID: 0, Policy: "SJF-N", EstimatedMs: 50})
	st.RecordTransition(TransitionRecord{ProcessID: 1, From: "Ready", To: "Running"})
	st.RecordMemory(MemoryRecord{ProcessID: 1, Op: "allocate", Base: 5, Length: 90, Granted: true})
	st.RecordFault(FaultRecord{ProcessID: 1, OperationIndex: 4, Reason: "MMU access denied"})

	assert.Equal(t, "run-7", st.RunID)
	assert.Equal(t, []int{1, 0}, []int{st.Selections[0].ProcessID, st.Selections[1].ProcessID})
	assert.Len(t, st.Transitions, 1)
	assert.Len(t, st.Memory, 1)
	assert.Equal(t, 4, st.Faults[0].OperationIndex)
}
