package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/procsim/procsim/sim/trace"
)

// eventLog stamps text with the clock and forwards it to the sink.
type eventLog struct {
	clock Clock
	sink  LogSink
}

func (l eventLog) printf(format string, args ...any) {
	if l.sink == nil {
		return
	}
	l.sink.Emit(LogLine{Time: l.clock.Now(), Text: fmt.Sprintf(format, args...)})
}

// Dispatcher executes a single operation for the running process.
type Dispatcher struct {
	Clock  Clock
	Memory *MemoryManager
	Timing TimingConfig
	Trace  *trace.SimulationTrace

	log eventLog
}

// NewDispatcher creates a Dispatcher writing to sink. trace may be nil.
func NewDispatcher(clock Clock, memory *MemoryManager, timing TimingConfig, sink LogSink, st *trace.SimulationTrace) *Dispatcher {
	return &Dispatcher{
		Clock:  clock,
		Memory: memory,
		Timing: timing,
		Trace:  st,
		log:    eventLog{clock: clock, sink: sink},
	}
}

// Dispatch runs op on behalf of p. Compute and I/O always succeed; memory requests
// succeed iff the MemoryManager grants them. Any other kind fails.
func (d *Dispatcher) Dispatch(p *ProcessControlBlock, op Operation, registry *MemoryRegistry) bool {
	logrus.Debugf("[process %d] dispatch %s at cursor %d", p.ID, op, p.Cursor)
	switch op.Kind {
	case KindCompute:
		d.log.printf("Process %d, %s operation start", p.ID, op.Action)
		d.Clock.Wait(d.Timing.ComputeDuration(op.Cycles))
		d.log.printf("Process %d, %s operation end", p.ID, op.Action)
		return true
	case KindInput, KindOutput:
		direction := "input"
		if op.Kind == KindOutput {
			direction = "output"
		}
		d.log.printf("Process %d, %s %s start", p.ID, op.Action, direction)
		d.Clock.Wait(d.Timing.IODuration(op.Cycles))
		d.log.printf("Process %d, %s %s end", p.ID, op.Action, direction)
		return true
	case KindMemory:
		return d.dispatchMemory(p, op, registry)
	default:
		logrus.Warnf("[process %d] cannot dispatch %s operation %s", p.ID, op.Kind, op)
		return false
	}
}

func (d *Dispatcher) dispatchMemory(p *ProcessControlBlock, op Operation, registry *MemoryRegistry) bool {
	region := DecodeRegion(p.ID, op.Cycles)

	var label string
	var granted bool
	switch op.Action {
	case ActionAllocate:
		label = "Allocation"
		d.log.printf("Process %d, MMU %s: %s start", p.ID, label, region)
		granted = d.Memory.Allocate(region, registry)
	case ActionAccess:
		label = "Access"
		d.log.printf("Process %d, MMU %s: %s start", p.ID, label, region)
		granted = d.Memory.Access(region, registry)
	default:
		logrus.Warnf("[process %d] unknown memory action %q", p.ID, op.Action)
		return false
	}

	if d.Trace.Enabled() {
		d.Trace.RecordMemory(trace.MemoryRecord{
			ProcessID: p.ID,
			Clock:     int64(d.Clock.Now()),
			Op:        op.Action,
			Segment:   region.Segment,
			Base:      region.Base,
			Length:    region.Length,
			Granted:   granted,
		})
	}

	if granted {
		d.log.printf("Process %d, MMU %s: Successful", p.ID, label)
	} else {
		d.log.printf("Process %d, MMU %s: Failed", p.ID, label)
	}
	return granted
}
