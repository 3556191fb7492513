package sim

import (
	"strings"
	"sync"
)

// recordingSink keeps every emitted line for assertions.
type recordingSink struct {
	mu    sync.Mutex
	lines []LogLine
}

func (r *recordingSink) Emit(line LogLine) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

// texts returns the emitted texts without timestamps.
func (r *recordingSink) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	for i, l := range r.lines {
		out[i] = l.Text
	}
	return out
}

// indexOf returns the position of the first line whose text equals text, or -1.
func (r *recordingSink) indexOf(text string) int {
	for i, t := range r.texts() {
		if t == text {
			return i
		}
	}
	return -1
}

func (r *recordingSink) containsPrefix(prefix string) bool {
	for _, t := range r.texts() {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

func appStart() Operation { return Operation{Kind: KindAppBoundary, Action: ActionStart} }
func appEnd() Operation { return Operation{Kind: KindAppBoundary, Action: ActionEnd} }
func sysStart() Operation { return Operation{Kind: KindSystem, Action: ActionStart} }
func sysEnd() Operation { return Operation{Kind: KindSystem, Action: ActionEnd} }
func run(cycles int) Operation { return Operation{Kind: KindCompute, Action: ActionRun, Cycles: cycles} }
func input(device string, cycles int) Operation {
	return Operation{Kind: KindInput, Action: device, Cycles: cycles}
}
func output(device string, cycles int) Operation {
	return Operation{Kind: KindOutput, Action: device, Cycles: cycles}
}
func allocate(v int) Operation { return Operation{Kind: KindMemory, Action: ActionAllocate, Cycles: v} }
func access(v int) Operation { return Operation{Kind: KindMemory, Action: ActionAccess, Cycles: v} }

// program wraps each process body in A(start)/A(end) and the whole in S(start)/S(end).
func program(processes ...[]Operation) *OperationCatalog {
	ops := []Operation{sysStart()}
	for _, body := range processes {
		ops = append(ops, appStart())
		ops = append(ops, body...)
		ops = append(ops, appEnd())
	}
	ops = append(ops, sysEnd())
	return NewOperationCatalog(ops)
}

// testConfig returns a SimConfig with the given policy and 10ms/20ms cycles, 1000KB memory.
func testConfig(policy Policy) SimConfig {
	return SimConfig{
		Timing: NewTimingConfig(10, 20),
		Policy: NewPolicyConfig(policy, 3),
		Memory: NewMemoryConfig(1000),
	}
}

func processIDs(pcbs []*ProcessControlBlock) []int {
	ids := make([]int, len(pcbs))
	for i, p := range pcbs {
		ids[i] = p.ID
	}
	return ids
}
