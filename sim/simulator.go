// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/procsim/procsim/sim/trace"
)

const tracerName = "github.com/procsim/procsim/sim"

// ErrEmptyCatalog is returned when a simulator is built from a nil or empty catalog.
var ErrEmptyCatalog = errors.New("operation catalog is empty")

// Simulator is the execution engine: it owns the process table, the ready queue and the
// clock, and runs processes one at a time to completion in scheduler order.
type Simulator struct {
	Config  SimConfig
	Catalog *OperationCatalog
	Clock   Clock
	// Processes is the process table in scheduler order.
	Processes  []*ProcessControlBlock
	ReadyQ     *ReadyQueue
	Memory     *MemoryManager
	Estimator  ServiceTimeEstimator
	Dispatcher *Dispatcher
	// Trace is nil unless decision tracing is enabled.
	Trace *trace.SimulationTrace

	log    eventLog
	tracer oteltrace.Tracer
}

// NewSimulator builds the process table for catalog and wires the dispatcher.
// sink receives the event log; st may be nil.
func NewSimulator(cfg SimConfig, catalog *OperationCatalog, clock Clock, sink LogSink, st *trace.SimulationTrace) (*Simulator, error) {
	if catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if clock == nil {
		clock = NewWallClock()
	}
	memory := NewMemoryManager(cfg.Memory)
	s := &Simulator{
		Config:     cfg,
		Catalog:    catalog,
		Clock:      clock,
		Processes:  BuildProcessTable(catalog, cfg),
		ReadyQ:     &ReadyQueue{},
		Memory:     memory,
		Estimator:  ServiceTimeEstimator{Catalog: catalog, Timing: cfg.Timing},
		Dispatcher: NewDispatcher(clock, memory, cfg.Timing, sink, st),
		Trace:      st,
		log:        eventLog{clock: clock, sink: sink},
		tracer:     otel.Tracer(tracerName),
	}
	return s, nil
}

// Run executes every process in the table. All PCBs move New -> Ready together,
// then each is selected, run until its end marker or first failed operation, and exited.
// A fault ends only the offending process. The returned error reports a broken
// state-machine invariant, never a memory fault.
func (s *Simulator) Run(ctx context.Context) error {
	s.Clock.Reset()
	s.log.printf("OS: System Start")
	s.log.printf("OS: Begin PCB Creation")

	if s.Config.Policy.Scheduler.Preemptive() {
		logrus.Warnf("scheduling code %s (quantum=%d) accepted; processes run to completion in arrival order",
			s.Config.Policy.Scheduler, s.Config.Policy.QuantumCycles)
	}
	s.log.printf("OS: All Processes initialized in New state")

	for _, p := range s.Processes {
		if err := s.transition(p, StateReady); err != nil {
			return err
		}
		s.ReadyQ.Enqueue(p)
	}
	s.log.printf("OS: All Processes now set to Ready state")
	logrus.Infof("ready queue %v under %s", s.ReadyQ, s.Config.Policy.Scheduler)

	for s.ReadyQ.Len() > 0 {
		if err := s.runProcess(ctx, s.ReadyQ.Dequeue()); err != nil {
			return err
		}
	}

	s.log.printf("OS: System stop")
	return nil
}

func (s *Simulator) runProcess(ctx context.Context, p *ProcessControlBlock) error {
	estimate := s.Estimator.Estimate(p)
	_, span := s.tracer.Start(ctx, "process.run", oteltrace.WithAttributes(
		attribute.Int("process.id", p.ID),
		attribute.String("process.policy", s.Config.Policy.Scheduler.String()),
		attribute.Int64("process.estimated_ms", estimate),
	))
	defer span.End()

	s.log.printf("OS: %s Strategy selects Process %d with time: %d mSec", s.Config.Policy.Scheduler, p.ID, estimate)
	if s.Trace.Enabled() {
		s.Trace.RecordSelection(trace.SelectionRecord{
			ProcessID:   p.ID,
			Clock:       int64(s.Clock.Now()),
			Policy:      s.Config.Policy.Scheduler.String(),
			EstimatedMs: estimate,
		})
	}

	if err := s.transition(p, StateRunning); err != nil {
		return err
	}
	s.log.printf("OS: Process %d set in %s state", p.ID, p.State)

	p.Advance()
	registry := NewMemoryRegistry(p.ID)
	outcome := OutcomeCompleted

	for p.State == StateRunning {
		op, ok := p.Current()
		if !ok || op.Kind == KindAppBoundary {
			break
		}
		if !s.Dispatcher.Dispatch(p, op, registry) {
			s.fault(p, op)
			span.SetStatus(codes.Error, "segmentation fault")
			outcome = OutcomeFaulted
			break
		}
		p.Advance()
	}

	if err := s.transition(p, StateExit); err != nil {
		return err
	}
	p.Outcome = outcome
	s.log.printf("OS: Process %d set in %s state", p.ID, p.State)
	span.SetAttributes(
		attribute.String("process.outcome", string(outcome)),
		attribute.Int("process.regions", registry.Len()),
	)
	logrus.Infof("[process %d] exited (%s) after %d committed regions", p.ID, outcome, registry.Len())
	return nil
}

func (s *Simulator) fault(p *ProcessControlBlock, op Operation) {
	s.log.printf("OS: Process %d Segmentation Fault - Process ended", p.ID)
	logrus.Warnf("[process %d] fault on %s at cursor %d", p.ID, op, p.Cursor)
	if s.Trace.Enabled() {
		s.Trace.RecordFault(trace.FaultRecord{
			ProcessID:      p.ID,
			Clock:          int64(s.Clock.Now()),
			OperationIndex: p.Cursor,
			Reason:         faultReason(op),
		})
	}
}

func faultReason(op Operation) string {
	if op.Kind == KindMemory {
		return fmt.Sprintf("MMU %s denied", op.Action)
	}
	return fmt.Sprintf("undispatchable %s operation", op.Kind)
}

// transition applies a state change and records it in the trace.
func (s *Simulator) transition(p *ProcessControlBlock, to ProcessState) error {
	from := p.State
	if err := p.Transition(to); err != nil {
		return err
	}
	if s.Trace.Enabled() {
		s.Trace.RecordTransition(trace.TransitionRecord{
			ProcessID: p.ID,
			Clock:     int64(s.Clock.Now()),
			From:      string(from),
			To:        string(to),
		})
	}
	return nil
}
