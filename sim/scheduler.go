package sim

import (
	"fmt"
	"math"
	"sort"
)

// Policy is a CPU scheduling code accepted from the configuration profile.
type Policy int

const (
	PolicyFCFSN Policy = iota // first-come first-served, non-preemptive (also "NONE")
	PolicySJFN                // shortest job first, non-preemptive
	PolicySRTFP               // shortest remaining time, preemptive (runs as arrival order)
	PolicyFCFSP               // first-come first-served, preemptive (runs as arrival order)
	PolicyRRP                 // round robin (runs as arrival order)
)

var policyNames = map[Policy]string{
	PolicyFCFSN: "FCFS-N",
	PolicySJFN:  "SJF-N",
	PolicySRTFP: "SRTF-P",
	PolicyFCFSP: "FCFS-P",
	PolicyRRP:   "RR-P",
}

// policyLiterals maps every accepted profile literal to its code.
// "NONE" aliases FCFS-N.
var policyLiterals = map[string]Policy{
	"NONE":   PolicyFCFSN,
	"FCFS-N": PolicyFCFSN,
	"SJF-N":  PolicySJFN,
	"SRTF-P": PolicySRTFP,
	"FCFS-P": PolicyFCFSP,
	"RR-P":   PolicyRRP,
}

// ParsePolicy maps a profile scheduling literal to a Policy. Matching is exact.
func ParsePolicy(literal string) (Policy, error) {
	p, ok := policyLiterals[literal]
	if !ok {
		return 0, fmt.Errorf("unknown scheduling code %q; valid: NONE, FCFS-N, SJF-N, SRTF-P, FCFS-P, RR-P", literal)
	}
	return p, nil
}

// IsValidPolicy returns true if literal is a recognized scheduling code.
func IsValidPolicy(literal string) bool {
	_, ok := policyLiterals[literal]
	return ok
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Preemptive reports whether the code names a preemptive policy.
// The engine accepts these but never preempts.
func (p Policy) Preemptive() bool {
	return p == PolicySRTFP || p == PolicyFCFSP || p == PolicyRRP
}

// ServiceTimeEstimator computes the estimated service time of a process.
type ServiceTimeEstimator struct {
	Catalog *OperationCatalog
	Timing  TimingConfig
}

// Estimate sums cycles x ioCycleMs for Input/Output and cycles x procCycleMs for Compute,
// from just after the process's start marker up to the next AppBoundary operation.
// Other kinds contribute nothing. The sum saturates at math.MaxInt64.
// Depends only on StartIndex, never on the cursor.
func (e ServiceTimeEstimator) Estimate(p *ProcessControlBlock) int64 {
	var total int64
	for i := p.StartIndex + 1; ; i++ {
		op, ok := e.Catalog.At(i)
		if !ok || op.Kind == KindAppBoundary {
			return total
		}
		switch op.Kind {
		case KindInput, KindOutput:
			total = saturatingAdd(total, saturatingMul(int64(op.Cycles), e.Timing.IOCycleMs))
		case KindCompute:
			total = saturatingAdd(total, saturatingMul(int64(op.Cycles), e.Timing.ProcCycleMs))
		}
	}
}

// ProcessScheduler reorders the process table before execution.
// Implementations sort the slice in-place using sort.SliceStable for determinism.
type ProcessScheduler interface {
	OrderProcesses(pcbs []*ProcessControlBlock)
}

// ArrivalOrderScheduler preserves catalog order (no-op).
// Used for FCFS and for every preemptive code, which the engine does not honor.
type ArrivalOrderScheduler struct{}

func (a *ArrivalOrderScheduler) OrderProcesses(_ []*ProcessControlBlock) {
	// No-op: arrival order preserved from table construction
}

// SJFScheduler sorts processes by estimated service time (ascending).
// Equal estimates keep arrival order.
type SJFScheduler struct {
	Estimator ServiceTimeEstimator
}

func (s *SJFScheduler) OrderProcesses(pcbs []*ProcessControlBlock) {
	estimates := make(map[int]int64, len(pcbs))
	for _, p := range pcbs {
		estimates[p.ID] = s.Estimator.Estimate(p)
	}
	sort.SliceStable(pcbs, func(i, j int) bool {
		return estimates[pcbs[i].ID] < estimates[pcbs[j].ID]
	})
}

// NewScheduler creates a ProcessScheduler for policy.
// Only SJF-N produces an order distinct from arrival order.
func NewScheduler(policy Policy, estimator ServiceTimeEstimator) ProcessScheduler {
	switch policy {
	case PolicySJFN:
		return &SJFScheduler{Estimator: estimator}
	case PolicyFCFSN, PolicySRTFP, PolicyFCFSP, PolicyRRP:
		return &ArrivalOrderScheduler{}
	default:
		panic(fmt.Sprintf("unhandled scheduling policy %v", policy))
	}
}

// saturatingMul returns a*b for non-negative operands, clamped to math.MaxInt64.
func saturatingMul(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

// saturatingAdd returns a+b for non-negative operands, clamped to math.MaxInt64.
func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
