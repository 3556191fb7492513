// Package testutil provides shared test infrastructure for the procsim engine.
// It holds the golden scenario dataset types and assertion helpers used by
// end-to-end engine tests in sim/.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// ScenarioDataset represents the structure of testdata/scenarios.yaml.
type ScenarioDataset struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is one script run under one machine configuration.
type Scenario struct {
	Name        string           `yaml:"name"`
	Policy      string           `yaml:"policy"`
	Quantum     int              `yaml:"quantum"`
	ProcCycleMs int64            `yaml:"proc_cycle_ms"`
	IOCycleMs   int64            `yaml:"io_cycle_ms"`
	MemoryKB    int              `yaml:"memory_kb"`
	Script      string           `yaml:"script"`
	Expected    ScenarioExpected `yaml:"expected"`
}

// ScenarioExpected holds the observable outcome of a scenario.
type ScenarioExpected struct {
	// Order is the process ID sequence in which processes are selected.
	Order []int `yaml:"order"`
	// Estimates maps process ID to estimated service time (ms).
	Estimates map[int]int64 `yaml:"estimates"`
	// Faulted lists process IDs that terminate early.
	Faulted []int `yaml:"faulted"`
	// LogContains lists log texts (without timestamp) that must appear, in this order.
	LogContains []string `yaml:"log_contains"`
	// LogAbsent lists log texts that must not appear.
	LogAbsent []string `yaml:"log_absent"`
}

// LoadScenarios loads the scenario dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadScenarios(t *testing.T) *ScenarioDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "scenarios.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read scenario dataset: %v", err)
	}

	var dataset ScenarioDataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&dataset); err != nil {
		t.Fatalf("Failed to parse scenario dataset: %v", err)
	}
	if len(dataset.Scenarios) == 0 {
		t.Fatal("scenario dataset is empty")
	}
	return &dataset
}

// AssertOrderedSubsequence checks that every entry of want appears in got, in order.
func AssertOrderedSubsequence(t *testing.T, name string, got, want []string) {
	t.Helper()
	i := 0
	for _, g := range got {
		if i < len(want) && g == want[i] {
			i++
		}
	}
	if i < len(want) {
		t.Errorf("%s: missing %q (matched %d of %d) in:\n%s", name, want[i], i, len(want), strings.Join(got, "\n"))
	}
}
