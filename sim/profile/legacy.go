package profile

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	legacyStart = "Start Simulator Configuration File"
	legacyEnd   = "End Simulator Configuration File."
)

// legacyField assigns one "Key: value" line onto a Profile.
type legacyField func(p *Profile, value string) error

var legacyFields = map[string]legacyField{
	"Version/Phase": func(p *Profile, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("version %q: %w", v, ErrUnknownValue)
		}
		p.Version = int(f)
		return versionBound.check(p.Version)
	},
	"File Path": func(p *Profile, v string) error {
		p.ScriptPath = v
		return nil
	},
	"CPU Scheduling Code": func(p *Profile, v string) error {
		p.Scheduler = v
		return nil
	},
	"Quantum Time (cycles)":       intField(func(p *Profile) *int { return &p.QuantumCycles }, quantumBound),
	"Memory Available (KB)":       intField(func(p *Profile) *int { return &p.MemoryKB }, memoryBound),
	"Processor Cycle Time (msec)": intField(func(p *Profile) *int { return &p.ProcCycleMs }, procBound),
	"I/O Cycle Time (msec)":       intField(func(p *Profile) *int { return &p.IOCycleMs }, ioBound),
	"Log To": func(p *Profile, v string) error {
		p.LogTo = v
		return nil
	},
	"Log File Path": func(p *Profile, v string) error {
		p.LogPath = v
		return nil
	},
}

// legacyOrder lists the required keys, used for missing-key reporting.
var legacyOrder = []string{
	"Version/Phase", "File Path", "CPU Scheduling Code", "Quantum Time (cycles)",
	"Memory Available (KB)", "Processor Cycle Time (msec)", "I/O Cycle Time (msec)",
	"Log To", "Log File Path",
}

func intField(target func(*Profile) *int, b bound) legacyField {
	return func(p *Profile, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s %q: %w", b.name, v, ErrUnknownValue)
		}
		*target(p) = n
		return b.check(n)
	}
}

// ParseLegacy parses the line-oriented configuration grammar. Lines before the start
// marker are ignored; unknown keys inside the frame are ignored.
func ParseLegacy(data []byte) (*Profile, error) {
	var p Profile
	seen := make(map[string]bool, len(legacyFields))
	started, ended := false, false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !started {
			started = line == legacyStart
			continue
		}
		if line == legacyEnd {
			ended = true
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		assign, known := legacyFields[key]
		if !known {
			continue
		}
		if err := assign(&p, value); err != nil {
			return nil, err
		}
		seen[key] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !started || !ended {
		return nil, fmt.Errorf("configuration frame %q ... %q incomplete: %w", legacyStart, legacyEnd, ErrMissingKey)
	}
	for _, key := range legacyOrder {
		if !seen[key] {
			return nil, fmt.Errorf("%s: %w", key, ErrMissingKey)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Dump renders the profile in the legacy layout, one field per line.
func (p *Profile) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version             : %d\n", p.Version)
	fmt.Fprintf(&sb, "Meta Data File Path : %s\n", p.ScriptPath)
	fmt.Fprintf(&sb, "CPU Scheduling Code : %s\n", p.Scheduler)
	fmt.Fprintf(&sb, "Quantum Time Cycles : %d\n", p.QuantumCycles)
	fmt.Fprintf(&sb, "Memory Available    : %d\n", p.MemoryKB)
	fmt.Fprintf(&sb, "Processor Cycle Time: %d\n", p.ProcCycleMs)
	fmt.Fprintf(&sb, "I/O Cycle Time      : %d\n", p.IOCycleMs)
	fmt.Fprintf(&sb, "Logging             : %s\n", p.LogTo)
	fmt.Fprintf(&sb, "Log File Path       : %s\n", p.LogPath)
	return sb.String()
}
