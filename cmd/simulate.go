package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"gopkg.in/yaml.v3"

	sim "github.com/procsim/procsim/sim"
	"github.com/procsim/procsim/sim/logsink"
	"github.com/procsim/procsim/sim/profile"
	"github.com/procsim/procsim/sim/script"
	"github.com/procsim/procsim/sim/trace"
)

// runOptions carries everything runSimulation needs besides the filesystem.
type runOptions struct {
	ConfigURL  string
	Clock      sim.Clock
	TraceLevel trace.TraceLevel
	SummaryURL string
	Monitor    io.Writer
}

// runResult is what a completed run leaves behind.
type runResult struct {
	RunID     string
	Processes []*sim.ProcessControlBlock
	Lines     []sim.LogLine
	Summary   *trace.TraceSummary // nil unless decision tracing was enabled
	Faulted   int
}

// runSimulation loads the profile and script, runs the engine and flushes outputs.
// Configuration and script errors abort before any PCB is created.
func runSimulation(ctx context.Context, fs afs.Service, opts runOptions) (*runResult, error) {
	if fs == nil {
		fs = afs.New()
	}
	p, err := profile.Load(ctx, fs, opts.ConfigURL)
	if err != nil {
		return nil, err
	}
	cfg, err := p.SimConfig()
	if err != nil {
		return nil, err
	}
	dest, err := p.Destination()
	if err != nil {
		return nil, err
	}
	catalog, err := script.Load(ctx, fs, p.ResolveScriptURL(opts.ConfigURL))
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := logrus.WithField("run", runID)
	log.Infof("Starting simulation: policy=%s quantum=%d memory=%dKB proc=%dms io=%dms log=%s operations=%d",
		cfg.Policy.Scheduler, cfg.Policy.QuantumCycles, cfg.Memory.AvailableKB,
		cfg.Timing.ProcCycleMs, cfg.Timing.IOCycleMs, dest, catalog.Len())

	if opts.SummaryURL != "" && opts.TraceLevel != trace.TraceLevelDecisions {
		return nil, fmt.Errorf("--summary-out requires --trace %s", trace.TraceLevelDecisions)
	}
	var st *trace.SimulationTrace
	if opts.TraceLevel == trace.TraceLevelDecisions {
		st = trace.NewSimulationTrace(runID, trace.TraceConfig{Level: opts.TraceLevel})
	}

	sink := logsink.New(dest, opts.Monitor, fs, p.LogPath)
	s, err := sim.NewSimulator(cfg, catalog, opts.Clock, sink, st)
	if err != nil {
		return nil, err
	}
	if err := s.Run(ctx); err != nil {
		return nil, err
	}
	if err := sink.Close(ctx); err != nil {
		return nil, err
	}

	result := &runResult{RunID: runID, Processes: s.Processes, Lines: sink.Lines()}
	for _, pcb := range s.Processes {
		if pcb.Outcome == sim.OutcomeFaulted {
			result.Faulted++
		}
	}
	if st != nil {
		result.Summary = trace.Summarize(st)
		log.Infof("Trace: %d selections, %d memory requests (%d denied), %d faults",
			len(st.Selections), len(st.Memory), result.Summary.MemoryDenied, len(st.Faults))
	}
	if opts.SummaryURL != "" {
		if err := writeSummary(ctx, fs, opts.SummaryURL, result.Summary); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func writeSummary(ctx context.Context, fs afs.Service, url string, summary *trace.TraceSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := fs.Upload(ctx, url, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing summary %s: %w", url, err)
	}
	return nil
}

// validateConfig loads the profile and its script and prints a dump of both.
func validateConfig(ctx context.Context, fs afs.Service, configURL string, out io.Writer) error {
	if fs == nil {
		fs = afs.New()
	}
	p, err := profile.Load(ctx, fs, configURL)
	if err != nil {
		return err
	}
	scriptURL := p.ResolveScriptURL(configURL)
	catalog, err := script.Load(ctx, fs, scriptURL)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "___________BEGIN CFG DUMP___________")
	fmt.Fprint(out, p.Dump())
	fmt.Fprintf(out, "Script              : %s (%d operations, %d processes)\n",
		scriptURL, catalog.Len(), catalog.CountProcessStarts())
	return nil
}
