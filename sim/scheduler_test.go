package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy_AcceptedLiterals(t *testing.T) {
	tests := map[string]Policy{
		"NONE":   PolicyFCFSN,
		"FCFS-N": PolicyFCFSN,
		"SJF-N":  PolicySJFN,
		"SRTF-P": PolicySRTFP,
		"FCFS-P": PolicyFCFSP,
		"RR-P":   PolicyRRP,
	}
	for literal, want := range tests {
		got, err := ParsePolicy(literal)
		require.NoError(t, err, literal)
		assert.Equal(t, want, got, literal)
		assert.True(t, IsValidPolicy(literal))
	}
}

func TestParsePolicy_RejectsUnknownAndCaseVariants(t *testing.T) {
	for _, literal := range []string{"", "sjf-n", "SJF", "SRTF-N", "LIFO"} {
		_, err := ParsePolicy(literal)
		assert.Error(t, err, literal)
		assert.False(t, IsValidPolicy(literal), literal)
	}
}

func TestPolicy_Preemptive(t *testing.T) {
	assert.False(t, PolicyFCFSN.Preemptive())
	assert.False(t, PolicySJFN.Preemptive())
	assert.True(t, PolicySRTFP.Preemptive())
	assert.True(t, PolicyFCFSP.Preemptive())
	assert.True(t, PolicyRRP.Preemptive())
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "SJF-N", PolicySJFN.String())
	assert.Equal(t, "Policy(42)", Policy(42).String())
}

func TestServiceTimeEstimator_Estimate_WeightsByKind(t *testing.T) {
	// GIVEN one process: run 3 (x10ms), input 2 (x20ms), output 1 (x20ms), allocate (0)
	catalog := program([]Operation{run(3), input("keyboard", 2), output("monitor", 1), allocate(5090)})
	p := NewProcessControlBlock(0, catalog, 1)
	est := ServiceTimeEstimator{Catalog: catalog, Timing: NewTimingConfig(10, 20)}

	// THEN the estimate is 30 + 40 + 20
	assert.Equal(t, int64(90), est.Estimate(p))
}

func TestServiceTimeEstimator_Estimate_StopsAtProcessEnd(t *testing.T) {
	catalog := program([]Operation{run(1)}, []Operation{run(50)})
	est := ServiceTimeEstimator{Catalog: catalog, Timing: NewTimingConfig(10, 20)}

	first := NewProcessControlBlock(0, catalog, 1)
	second := NewProcessControlBlock(1, catalog, 4)

	assert.Equal(t, int64(10), est.Estimate(first))
	assert.Equal(t, int64(500), est.Estimate(second))
}

func TestServiceTimeEstimator_Estimate_EmptyBodyIsZero(t *testing.T) {
	catalog := program(nil)
	est := ServiceTimeEstimator{Catalog: catalog, Timing: NewTimingConfig(10, 20)}
	assert.Equal(t, int64(0), est.Estimate(NewProcessControlBlock(0, catalog, 1)))
}

func TestServiceTimeEstimator_Estimate_IsPure(t *testing.T) {
	catalog := program([]Operation{run(2)})
	p := NewProcessControlBlock(0, catalog, 1)
	est := ServiceTimeEstimator{Catalog: catalog, Timing: NewTimingConfig(10, 20)}

	est.Estimate(p)

	assert.Equal(t, 1, p.Cursor)
	assert.Equal(t, StateNew, p.State)
}

func TestServiceTimeEstimator_Estimate_IndependentOfCursor(t *testing.T) {
	// GIVEN a process whose cursor has moved past its first operations
	catalog := program([]Operation{run(3), input("keyboard", 2)}, []Operation{run(7)})
	p := NewProcessControlBlock(0, catalog, 1)
	est := ServiceTimeEstimator{Catalog: catalog, Timing: NewTimingConfig(10, 20)}
	before := est.Estimate(p)

	// WHEN the cursor advances onto and past the end marker
	for i := 0; i < 4; i++ {
		p.Advance()
		// THEN the estimate still covers the whole process body
		assert.Equal(t, before, est.Estimate(p), "after %d advances", i+1)
	}
	assert.Equal(t, int64(70), before)
}

func TestServiceTimeEstimator_Estimate_SaturatesInsteadOfWrapping(t *testing.T) {
	// GIVEN an I/O burst whose cycles x cycle time exceeds int64
	huge := Operation{Kind: KindInput, Action: "keyboard", Cycles: 1_000_000_000_000_000}
	catalog := program([]Operation{run(1)}, []Operation{huge, run(1)})
	est := ServiceTimeEstimator{Catalog: catalog, Timing: NewTimingConfig(10, 10000)}

	// THEN the estimate clamps to MaxInt64
	assert.Equal(t, int64(math.MaxInt64), est.Estimate(NewProcessControlBlock(1, catalog, 4)))

	// AND SJF still runs the short job first
	cfg := testConfig(PolicySJFN)
	cfg.Timing = NewTimingConfig(10, 10000)
	table := BuildProcessTable(catalog, cfg)
	assert.Equal(t, []int{0, 1}, processIDs(table))
}

func TestSJFScheduler_OrdersByEstimate(t *testing.T) {
	// GIVEN estimates 300, 100, 200 in arrival order
	catalog := program([]Operation{run(30)}, []Operation{run(10)}, []Operation{run(20)})
	table := BuildProcessTable(catalog, testConfig(PolicyFCFSN))
	require.Equal(t, []int{0, 1, 2}, processIDs(table))

	s := &SJFScheduler{Estimator: ServiceTimeEstimator{Catalog: catalog, Timing: NewTimingConfig(10, 20)}}
	s.OrderProcesses(table)

	assert.Equal(t, []int{1, 2, 0}, processIDs(table))
}

func TestSJFScheduler_TiesKeepArrivalOrder(t *testing.T) {
	catalog := program(
		[]Operation{run(5)},
		[]Operation{run(2)},
		[]Operation{input("keyboard", 1)}, // 20ms, ties with process 1
		[]Operation{run(5)},
	)
	table := BuildProcessTable(catalog, testConfig(PolicySJFN))
	assert.Equal(t, []int{1, 2, 0, 3}, processIDs(table))
}

func TestArrivalOrderScheduler_IsNoOp(t *testing.T) {
	catalog := program([]Operation{run(30)}, []Operation{run(10)})
	table := BuildProcessTable(catalog, testConfig(PolicyFCFSN))

	(&ArrivalOrderScheduler{}).OrderProcesses(table)

	assert.Equal(t, []int{0, 1}, processIDs(table))
}

func TestNewScheduler_ReturnsExpectedType(t *testing.T) {
	est := ServiceTimeEstimator{}
	assert.IsType(t, &SJFScheduler{}, NewScheduler(PolicySJFN, est))
	for _, p := range []Policy{PolicyFCFSN, PolicySRTFP, PolicyFCFSP, PolicyRRP} {
		assert.IsType(t, &ArrivalOrderScheduler{}, NewScheduler(p, est), p.String())
	}
}

func TestNewScheduler_UnknownPolicy_Panics(t *testing.T) {
	assert.Panics(t, func() { NewScheduler(Policy(99), ServiceTimeEstimator{}) })
}
