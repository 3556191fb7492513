// Package logsink routes the simulation event log to the monitor, a file, or both.
// File output is accumulated in memory and written through afs when the sink is closed,
// so the log path may be any afs URL (local path, file://, mem://).
package logsink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/procsim/procsim/sim"
)

// Destination selects where LogLines are written.
type Destination int

const (
	Monitor Destination = iota
	File
	Both
)

var destinationNames = map[Destination]string{
	Monitor: "Monitor",
	File:    "File",
	Both:    "Both",
}

var destinationLiterals = map[string]Destination{
	"Monitor": Monitor,
	"File":    File,
	"Both":    Both,
}

// ParseDestination maps a profile "Log To" literal to a Destination. Matching is exact.
func ParseDestination(literal string) (Destination, error) {
	d, ok := destinationLiterals[literal]
	if !ok {
		return 0, fmt.Errorf("unknown log destination %q; valid: Monitor, File, Both", literal)
	}
	return d, nil
}

func (d Destination) String() string {
	if name, ok := destinationNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Destination(%d)", int(d))
}

func (d Destination) toMonitor() bool { return d == Monitor || d == Both }
func (d Destination) toFile() bool    { return d == File || d == Both }

// Sink implements sim.LogSink. Every emitted line is kept in order regardless of destination.
type Sink struct {
	mu      sync.Mutex
	dest    Destination
	monitor io.Writer
	fs      afs.Service
	path    string
	lines   []sim.LogLine
	buf     bytes.Buffer
}

// New creates a Sink. monitor receives lines for Monitor/Both; path is the afs URL
// written on Close for File/Both.
func New(dest Destination, monitor io.Writer, fs afs.Service, path string) *Sink {
	if fs == nil {
		fs = afs.New()
	}
	return &Sink{dest: dest, monitor: monitor, fs: fs, path: path}
}

// Emit records line and routes it to the configured destination.
func (s *Sink) Emit(line sim.LogLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	text := line.String() + "\n"
	if s.dest.toMonitor() && s.monitor != nil {
		if _, err := io.WriteString(s.monitor, text); err != nil {
			logrus.Warnf("log sink: monitor write failed: %v", err)
		}
	}
	if s.dest.toFile() {
		s.buf.WriteString(text)
	}
}

// Lines returns a copy of every emitted line in emission order.
func (s *Sink) Lines() []sim.LogLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sim.LogLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Close writes the accumulated file log to the log path. A no-op for Monitor.
func (s *Sink) Close(ctx context.Context) error {
	if !s.dest.toFile() {
		return nil
	}
	if s.path == "" {
		return fmt.Errorf("log destination %s requires a log file path", s.dest)
	}
	s.mu.Lock()
	data := append([]byte(nil), s.buf.Bytes()...)
	s.mu.Unlock()
	if err := s.fs.Upload(ctx, s.path, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing log file %s: %w", s.path, err)
	}
	logrus.Infof("log file written to %s (%d bytes)", s.path, len(data))
	return nil
}
