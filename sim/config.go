package sim

import (
	"math"
	"time"
)

// TimingConfig groups the per-cycle durations of the virtual machine.
type TimingConfig struct {
	ProcCycleMs int64 // milliseconds per processor cycle (must be > 0)
	IOCycleMs   int64 // milliseconds per I/O cycle (must be > 0)
}

// ComputeDuration returns the wall duration of a compute burst of the given cycles.
func (t TimingConfig) ComputeDuration(cycles int) time.Duration {
	return burstDuration(cycles, t.ProcCycleMs)
}

// IODuration returns the wall duration of an I/O burst of the given cycles.
func (t TimingConfig) IODuration(cycles int) time.Duration {
	return burstDuration(cycles, t.IOCycleMs)
}

// burstDuration converts cycles x cycleMs to a Duration, saturating instead of wrapping.
func burstDuration(cycles int, cycleMs int64) time.Duration {
	ms := saturatingMul(int64(cycles), cycleMs)
	if ms > math.MaxInt64/int64(time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms) * time.Millisecond
}

// PolicyConfig groups scheduling policy selection.
type PolicyConfig struct {
	Scheduler     Policy // scheduling code from the profile
	QuantumCycles int    // accepted and reported; the engine never time-slices
}

// MemoryConfig groups the memory bound checked by the MemoryManager.
type MemoryConfig struct {
	AvailableKB int // upper bound for base+length of any committed region
}

// SimConfig is everything the engine needs from a ConfigurationProfile.
type SimConfig struct {
	Timing TimingConfig
	Policy PolicyConfig
	Memory MemoryConfig
}

// NewTimingConfig creates a TimingConfig with all fields explicitly set.
func NewTimingConfig(procCycleMs, ioCycleMs int64) TimingConfig {
	return TimingConfig{ProcCycleMs: procCycleMs, IOCycleMs: ioCycleMs}
}

// NewPolicyConfig creates a PolicyConfig with all fields explicitly set.
func NewPolicyConfig(scheduler Policy, quantumCycles int) PolicyConfig {
	return PolicyConfig{Scheduler: scheduler, QuantumCycles: quantumCycles}
}

// NewMemoryConfig creates a MemoryConfig with all fields explicitly set.
func NewMemoryConfig(availableKB int) MemoryConfig {
	return MemoryConfig{AvailableKB: availableKB}
}
