package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/procsim/procsim/sim"
	"github.com/procsim/procsim/sim/trace"
)

var (
	logLevel   string // Log verbosity level for diagnostics (stderr)
	clockMode  string // "wall" paces waits in real time; "virtual" advances instantly
	traceLevel string // Decision trace level: none, decisions
	otelOut    string // File receiving OpenTelemetry spans (empty = disabled)
	summaryOut string // afs URL receiving the YAML run summary (empty = disabled)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsim",
	Short: "Process scheduling and memory management simulator",
}

// runCmd executes the simulation described by a configuration file
var runCmd = &cobra.Command{
	Use:   "run <config-file>",
	Short: "Run the simulation for a configuration profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !sim.IsValidClock(clockMode) {
			logrus.Fatalf("Invalid clock: %s (valid: wall, virtual)", clockMode)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, decisions)", traceLevel)
		}

		opts := runOptions{
			ConfigURL:  args[0],
			Clock:      sim.NewClock(clockMode),
			TraceLevel: trace.TraceLevel(traceLevel),
			SummaryURL: summaryOut,
			Monitor:    cmd.OutOrStdout(),
		}
		result, err := executeRun(context.Background(), opts, otelOut)
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete: %d processes, %d faulted", len(result.Processes), result.Faulted)
	},
}

// executeRun installs the span exporter when spanPath is set, runs the simulation and
// shuts the exporter down before returning, so spans are flushed even on failure.
func executeRun(ctx context.Context, opts runOptions, spanPath string) (*runResult, error) {
	if spanPath == "" {
		return runSimulation(ctx, nil, opts)
	}
	shutdown, err := installTracer(spanPath)
	if err != nil {
		return nil, fmt.Errorf("unable to install tracer: %w", err)
	}
	result, runErr := runSimulation(ctx, nil, opts)
	if err := shutdown(ctx); err != nil {
		if runErr != nil {
			logrus.Warnf("tracer shutdown: %v", err)
		} else {
			runErr = fmt.Errorf("tracer shutdown: %w", err)
		}
	}
	if runErr != nil {
		return nil, runErr
	}
	return result, nil
}

// validateCmd loads the profile and script without running them
var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a configuration profile and its operation script",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if err := validateConfig(context.Background(), nil, args[0], cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("validation failed: %v", err)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&clockMode, "clock", "wall", "Clock: wall (real-time waits) or virtual (instant, deterministic timestamps)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&otelOut, "otel-out", "", "Write OpenTelemetry spans to this file")
	runCmd.Flags().StringVar(&summaryOut, "summary-out", "", "Write the YAML run summary to this URL (requires --trace decisions)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
