// Package profile loads the ConfigurationProfile of a simulation run.
//
// Two encodings are accepted: the legacy line grammar framed by
// "Start Simulator Configuration File" / "End Simulator Configuration File.", and YAML
// (selected by a .yaml or .yml extension) parsed with strict field checking.
// Any missing key, out-of-range number or unrecognized literal fails the load; no
// profile is returned.
package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/procsim/procsim/sim"
	"github.com/procsim/procsim/sim/logsink"
)

var (
	// ErrMissingKey reports a required key absent from the profile.
	ErrMissingKey = errors.New("missing configuration key")
	// ErrOutOfRange reports a numeric field outside its bound.
	ErrOutOfRange = errors.New("configuration value out of range")
	// ErrUnknownValue reports an enum literal that matches nothing.
	ErrUnknownValue = errors.New("unrecognized configuration value")
)

// Profile is the parsed configuration of one run.
type Profile struct {
	Version       int    `yaml:"version"`
	ScriptPath    string `yaml:"script_path"`
	Scheduler     string `yaml:"cpu_scheduling_code"`
	QuantumCycles int    `yaml:"quantum_cycles"`
	MemoryKB      int    `yaml:"memory_available_kb"`
	ProcCycleMs   int    `yaml:"processor_cycle_ms"`
	IOCycleMs     int    `yaml:"io_cycle_ms"`
	LogTo         string `yaml:"log_to"`
	LogPath       string `yaml:"log_path"`
}

type bound struct {
	name     string
	min, max int
}

var (
	versionBound = bound{"version", 0, 10}
	quantumBound = bound{"quantum cycles", 1, 99}
	memoryBound  = bound{"memory available (KB)", 1, 1048576}
	procBound    = bound{"processor cycle time (ms)", 1, 10000}
	ioBound      = bound{"I/O cycle time (ms)", 1, 10000}
)

func (b bound) check(v int) error {
	if v < b.min || v > b.max {
		return fmt.Errorf("%s must be in [%d, %d], got %d: %w", b.name, b.min, b.max, v, ErrOutOfRange)
	}
	return nil
}

// Load reads a profile from an afs URL, choosing the grammar by extension.
func Load(ctx context.Context, fs afs.Service, url string) (*Profile, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("reading configuration %s: %w", url, err)
	}
	var p *Profile
	switch strings.ToLower(path.Ext(url)) {
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	default:
		p, err = ParseLegacy(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing configuration %s: %w", url, err)
	}
	return p, nil
}

// ParseYAML decodes and validates a YAML profile.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseYAML(data []byte) (*Profile, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, key := range yamlKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%s: %w", key, ErrMissingKey)
		}
	}

	var p Profile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

var yamlKeys = []string{
	"version", "script_path", "cpu_scheduling_code", "quantum_cycles",
	"memory_available_kb", "processor_cycle_ms", "io_cycle_ms", "log_to", "log_path",
}

// Validate checks every bound and literal.
func (p *Profile) Validate() error {
	checks := []struct {
		b bound
		v int
	}{
		{versionBound, p.Version},
		{quantumBound, p.QuantumCycles},
		{memoryBound, p.MemoryKB},
		{procBound, p.ProcCycleMs},
		{ioBound, p.IOCycleMs},
	}
	for _, c := range checks {
		if err := c.b.check(c.v); err != nil {
			return err
		}
	}
	if !sim.IsValidPolicy(p.Scheduler) {
		return fmt.Errorf("cpu scheduling code %q: %w", p.Scheduler, ErrUnknownValue)
	}
	if _, err := logsink.ParseDestination(p.LogTo); err != nil {
		return fmt.Errorf("%v: %w", err, ErrUnknownValue)
	}
	if p.ScriptPath == "" {
		return fmt.Errorf("script path: %w", ErrMissingKey)
	}
	if p.LogPath == "" {
		return fmt.Errorf("log file path: %w", ErrMissingKey)
	}
	return nil
}

// SimConfig converts the profile into the engine configuration.
func (p *Profile) SimConfig() (sim.SimConfig, error) {
	policy, err := sim.ParsePolicy(p.Scheduler)
	if err != nil {
		return sim.SimConfig{}, err
	}
	return sim.SimConfig{
		Timing: sim.NewTimingConfig(int64(p.ProcCycleMs), int64(p.IOCycleMs)),
		Policy: sim.NewPolicyConfig(policy, p.QuantumCycles),
		Memory: sim.NewMemoryConfig(p.MemoryKB),
	}, nil
}

// Destination returns the parsed log destination.
func (p *Profile) Destination() (logsink.Destination, error) {
	return logsink.ParseDestination(p.LogTo)
}

// ResolveScriptURL returns the script location. A relative script path is taken
// relative to the directory of the profile URL.
func (p *Profile) ResolveScriptURL(profileURL string) string {
	if strings.Contains(p.ScriptPath, "://") || path.IsAbs(p.ScriptPath) {
		return p.ScriptPath
	}
	scheme, location := "", profileURL
	if i := strings.Index(profileURL, "://"); i >= 0 {
		scheme, location = profileURL[:i+3], profileURL[i+3:]
	}
	dir := path.Dir(location)
	if dir == "." {
		return scheme + p.ScriptPath
	}
	return scheme + path.Join(dir, p.ScriptPath)
}
